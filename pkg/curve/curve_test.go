package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	suite := DefaultSuite()
	group := suite.(Group)
	p := group.Point().Pick(suite.RandomStream())

	c, err := CompressPoint(p)
	require.NoError(t, err)

	got, err := DecompressPoint(group, c)
	require.NoError(t, err)
	require.True(t, p.Equal(got))
}

func TestBatchDecompressPointsAggregatesFailures(t *testing.T) {
	suite := DefaultSuite()
	group := suite.(Group)

	good, err := CompressPoint(group.Point().Pick(suite.RandomStream()))
	require.NoError(t, err)

	bad := CPoint([]byte{0xff, 0xff, 0xff})

	_, err = BatchDecompressPoints(group, []CPoint{good, bad})
	require.Error(t, err)
}

func TestBatchDecompressPointsAllGood(t *testing.T) {
	suite := DefaultSuite()
	group := suite.(Group)

	var cs []CPoint
	var pts []Point
	for i := 0; i < 5; i++ {
		p := group.Point().Pick(suite.RandomStream())
		c, err := CompressPoint(p)
		require.NoError(t, err)
		cs = append(cs, c)
		pts = append(pts, p)
	}

	got, err := BatchDecompressPoints(group, cs)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := range pts {
		require.True(t, pts[i].Equal(got[i]))
	}
}

func TestIndexScalarDistinct(t *testing.T) {
	group := DefaultSuite().(Group)
	s1 := IndexScalar(group, 1)
	s2 := IndexScalar(group, 2)
	require.False(t, s1.Equal(s2))
}
