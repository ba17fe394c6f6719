package variants

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georgio/pi-vss/pkg/curve"
	"github.com/georgio/pi-vss/pkg/polynomial"
	"github.com/georgio/pi-vss/pkg/powertable"
)

func randPoints(group curve.Group, suite curve.Suite, n int) []curve.Point {
	out := make([]curve.Point, n)
	for i := range out {
		out[i] = group.Point().Mul(group.Scalar().Pick(suite.RandomStream()), nil)
	}
	return out
}

func TestFeldmanCommitAndVerify(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	suite := curve.DefaultSuite()
	n, tt, k := 6, 2, 3

	g := randPoints(group, suite, k)
	secrets := make([]curve.Scalar, k)
	for i := range secrets {
		secrets[i] = group.Scalar().Pick(suite.RandomStream())
	}
	fPolynomials, err := polynomial.SampleNSetF0(group, k, tt, secrets)
	require.NoError(t, err)

	f := Feldman{Group: group, G: g, T: tt}
	cVals := f.Commit(fPolynomials)
	require.Len(t, cVals, tt+1)
	require.Equal(t, "B_Feldman", f.Variant())

	powers := powertable.Generate(group, n, tt)
	fEvals := polynomial.EvaluateManyRangePrecomp(powers, fPolynomials, 1, n)

	for i := 1; i <= n; i++ {
		require.True(t, f.VerifyShare(i, fEvals[i-1], cVals))
	}

	tampered := make([]curve.Scalar, k)
	copy(tampered, fEvals[0])
	tampered[0] = group.Scalar().Add(tampered[0], group.Scalar().One())
	require.False(t, f.VerifyShare(1, tampered, cVals))
}

func TestPedersenCommitAndVerify(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	suite := curve.DefaultSuite()
	n, tt, k := 5, 2, 2

	g0 := randPoints(group, suite, 1)[0]
	g := randPoints(group, suite, k)
	secrets := make([]curve.Scalar, k)
	for i := range secrets {
		secrets[i] = group.Scalar().Pick(suite.RandomStream())
	}
	fPolynomials, err := polynomial.SampleNSetF0(group, k, tt, secrets)
	require.NoError(t, err)

	p := Pedersen{Group: group, G0: g0, G: g, T: tt}
	powers := powertable.Generate(group, n, tt)
	cVals, rEvals := p.Commit(powers, n, fPolynomials)
	require.Len(t, cVals, tt+1)

	fEvals := polynomial.EvaluateManyRangePrecomp(powers, fPolynomials, 1, n)
	for i := 1; i <= n; i++ {
		require.True(t, p.VerifyShare(i, fEvals[i-1], rEvals[i-1], cVals))
	}

	require.False(t, p.VerifyShare(1, fEvals[0], group.Scalar().Zero(), cVals))
}

func TestPiFDealAndVerify(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	suite := curve.DefaultSuite()
	n, tt, k := 6, 2, 3

	g0 := randPoints(group, suite, 1)[0]
	g := randPoints(group, suite, k)
	secrets := make([]curve.Scalar, k)
	for i := range secrets {
		secrets[i] = group.Scalar().Pick(suite.RandomStream())
	}

	piF := PiF{Group: group, Suite: suite, G0: g0, G: g, T: tt}
	powers := powertable.Generate(group, n, tt)
	fEvals, cVals, z, err := piF.Deal(powers, n, secrets)
	require.NoError(t, err)
	require.Equal(t, "B_Pi_F", piF.Variant())

	for i := 1; i <= n; i++ {
		require.True(t, piF.VerifyShare(i, fEvals[i-1], cVals, z))
	}

	tampered := make([]curve.Scalar, k)
	copy(tampered, fEvals[2])
	tampered[1] = group.Scalar().Add(tampered[1], group.Scalar().One())
	require.False(t, piF.VerifyShare(3, tampered, cVals, z))
}

func TestPiPDealAndVerify(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	suite := curve.DefaultSuite()
	n, tt := 5, 2

	g1, g2, g3 := randPoints(group, suite, 1)[0], randPoints(group, suite, 1)[0], randPoints(group, suite, 1)[0]
	secret := group.Scalar().Pick(suite.RandomStream())

	piP := PiP{Group: group, Suite: suite, G1: g1, G2: g2, G3: g3, T: tt}
	powers := powertable.Generate(group, n, tt)
	fEvals, gammas, cVals, z, err := piP.Deal(powers, n, secret)
	require.NoError(t, err)
	require.Equal(t, "B_Pi_P", piP.Variant())

	for i := 1; i <= n; i++ {
		require.True(t, piP.VerifyShare(i, fEvals[i-1], gammas[i-1], cVals, z))
	}

	require.False(t, piP.VerifyShare(1, group.Scalar().Add(fEvals[0], group.Scalar().One()), gammas[0], cVals, z))
}

func TestPiPPlusDealAndVerify(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	suite := curve.DefaultSuite()
	n, tt, k := 5, 2, 2

	g1, g2 := randPoints(group, suite, 1)[0], randPoints(group, suite, 1)[0]
	secrets := make([]curve.Scalar, k)
	for i := range secrets {
		secrets[i] = group.Scalar().Pick(suite.RandomStream())
	}

	piPPlus := PiPPlus{Group: group, Suite: suite, G1: g1, G2: g2, T: tt}
	powers := powertable.Generate(group, n, tt)
	fEvals, gammas, cVals, z, err := piPPlus.Deal(powers, n, secrets)
	require.NoError(t, err)
	require.Equal(t, "B_Pi_P+", piPPlus.Variant())

	for i := 1; i <= n; i++ {
		require.True(t, piPPlus.VerifyShare(i, fEvals[i-1], gammas[i-1], cVals, z))
	}

	tampered := make([]curve.Scalar, k)
	copy(tampered, fEvals[0])
	tampered[0] = group.Scalar().Add(tampered[0], group.Scalar().One())
	require.False(t, piPPlus.VerifyShare(1, tampered, gammas[0], cVals, z))
}

// TestPiFDealAndVerifyBLS12381G1 exercises PiF's full Deal/VerifyShare
// round trip (point arithmetic, RandomStream sampling, and Fiat-Shamir
// transcript XOF derivation) under the alternate BLS12-381 G1 suite
// instead of the default NIST P-256 suite, confirming no component here
// hardcodes a specific curve.
func TestPiFDealAndVerifyBLS12381G1(t *testing.T) {
	suite := curve.BLS12381G1Suite()
	group := suite.(curve.Group)
	n, tt, k := 6, 2, 3

	g0 := randPoints(group, suite, 1)[0]
	g := randPoints(group, suite, k)
	secrets := make([]curve.Scalar, k)
	for i := range secrets {
		secrets[i] = group.Scalar().Pick(suite.RandomStream())
	}

	piF := PiF{Group: group, Suite: suite, G0: g0, G: g, T: tt}
	powers := powertable.Generate(group, n, tt)
	fEvals, cVals, z, err := piF.Deal(powers, n, secrets)
	require.NoError(t, err)

	for i := 1; i <= n; i++ {
		require.True(t, piF.VerifyShare(i, fEvals[i-1], cVals, z))
	}

	tampered := make([]curve.Scalar, k)
	copy(tampered, fEvals[2])
	tampered[1] = group.Scalar().Add(tampered[1], group.Scalar().One())
	require.False(t, piF.VerifyShare(3, tampered, cVals, z))
}

func TestPiSDealAndVerify(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	suite := curve.DefaultSuite()
	n, tt, k := 6, 2, 2

	privateKeys := make([]curve.Scalar, n)
	publicKeys := make([]curve.Point, n)
	for i := range privateKeys {
		privateKeys[i] = group.Scalar().Pick(suite.RandomStream())
		publicKeys[i] = group.Point().Mul(privateKeys[i], nil)
	}
	secrets := make([]curve.Scalar, k)
	for i := range secrets {
		secrets[i] = group.Scalar().Pick(suite.RandomStream())
	}

	piS := PiS{Group: group, Suite: suite, PublicKeys: publicKeys, T: tt}
	powers := powertable.Generate(group, n, tt)
	encryptedShares, d, z, err := piS.Deal(powers, n, secrets)
	require.NoError(t, err)
	require.Equal(t, "B_Pi_S", piS.Variant())

	require.True(t, piS.VerifyEncryptedShares(encryptedShares, d, z))

	tampered := make([][]curve.Point, len(encryptedShares))
	copy(tampered, encryptedShares)
	tamperedRow := make([]curve.Point, k)
	copy(tamperedRow, encryptedShares[0])
	tamperedRow[0] = group.Point().Add(tamperedRow[0], group.Point().Base())
	tampered[0] = tamperedRow

	require.False(t, piS.VerifyEncryptedShares(tampered, d, z))
}
