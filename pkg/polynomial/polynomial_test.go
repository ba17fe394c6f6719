package polynomial

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georgio/pi-vss/pkg/curve"
	"github.com/georgio/pi-vss/pkg/powertable"
)

func scalarFromInt(group curve.Group, v int64) curve.Scalar {
	return group.Scalar().SetInt64(v)
}

// TestComputeZAndComputeREval mirrors the original crate's test_thing:
// f1(x) = 13x^3 + 2x^2 + 7x + 128, f2(x) = 81x^3 + 7x^2 + 153x + 32,
// r(x) = 7x^3 + 15x^2 + 81x + 2.
func TestComputeZAndComputeREval(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)

	coefs := func(vals ...int64) []curve.Scalar {
		out := make([]curve.Scalar, len(vals))
		for i, v := range vals {
			out[i] = scalarFromInt(group, v)
		}
		return out
	}

	f1 := FromCoefficients(group, coefs(128, 7, 2, 13))
	f2 := FromCoefficients(group, coefs(32, 153, 7, 81))
	r := FromCoefficients(group, coefs(2, 81, 15, 7))

	f1At5 := f1.Evaluate(5)
	f2At5 := f2.Evaluate(5)
	rAt5 := r.Evaluate(5)

	require.True(t, f1At5.Equal(scalarFromInt(group, 1838)))
	require.True(t, f2At5.Equal(scalarFromInt(group, 11097)))
	require.True(t, rAt5.Equal(scalarFromInt(group, 1657)))

	d1 := scalarFromInt(group, 127)
	d2 := scalarFromInt(group, 17)

	rz1 := r.Clone()
	rz1.ComputeZ([]*Polynomial{f1}, []curve.Scalar{d1})
	z1At5 := rz1.Evaluate(5)
	require.True(t, z1At5.Equal(scalarFromInt(group, 235083)))

	rz2 := r.Clone()
	rz2.ComputeZ([]*Polynomial{f1, f2}, []curve.Scalar{d1, d2})
	z2At5 := rz2.Evaluate(5)
	require.True(t, z2At5.Equal(scalarFromInt(group, 423732)))

	potentialR1 := ComputeREval(group, z1At5, []curve.Scalar{f1At5}, []curve.Scalar{d1})
	potentialR2 := ComputeREval(group, z2At5, []curve.Scalar{f1At5, f2At5}, []curve.Scalar{d1, d2})

	require.True(t, potentialR1.Equal(rAt5))
	require.True(t, potentialR2.Equal(rAt5))
}

func TestSampleNSetF0RejectsLengthMismatch(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	_, err := SampleNSetF0(group, 3, 2, []curve.Scalar{scalarFromInt(group, 1)})
	require.Error(t, err)
}

func TestEvaluateRangePrecompMatchesEvaluate(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	p := Sample(group, 3)
	table := powertable.Generate(group, 6, 3)

	direct := p.EvaluateRange(1, 6)
	precomp := p.EvaluateRangePrecomp(table, 1, 6)

	require.Len(t, precomp, len(direct))
	for i := range direct {
		require.True(t, direct[i].Equal(precomp[i]))
	}
}

func TestEvaluateManyRangePrecomp(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	polys := []*Polynomial{Sample(group, 2), Sample(group, 2)}
	table := powertable.Generate(group, 4, 2)

	got := EvaluateManyRangePrecomp(table, polys, 1, 4)
	require.Len(t, got, 4)
	for i, row := range got {
		require.Len(t, row, 2)
		for k, poly := range polys {
			require.True(t, row[k].Equal(poly.Evaluate(i+1)))
		}
	}
}
