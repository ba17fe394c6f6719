package secretsharing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georgio/pi-vss/pkg/curve"
	"github.com/georgio/pi-vss/pkg/powertable"
)

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestGenerateSharesBatchedAndReconstruct(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	suite := curve.DefaultSuite()
	n, tt, k := 8, 3, 5

	powers := powertable.Generate(group, n, tt)

	secrets := make([]curve.Scalar, k)
	for i := range secrets {
		secrets[i] = group.Scalar().Pick(suite.RandomStream())
	}

	_, fEvals, err := GenerateSharesBatched(group, n, tt, powers, secrets)
	require.NoError(t, err)
	require.Len(t, fEvals, n)

	rng := rand.New(rand.NewSource(1))
	qualified, err := SelectQualifiedSet(rng, tt, fEvals, allIndices(n))
	require.NoError(t, err)
	require.Len(t, qualified, tt+1)

	indices := make([]int, len(qualified))
	for i, e := range qualified {
		indices[i] = e.Index
	}
	lambdas := ComputeLagrangeBases(group, indices)

	recovered := ReconstructSecrets(group, qualified, lambdas)
	require.Len(t, recovered, k)
	for i := range secrets {
		require.True(t, secrets[i].Equal(recovered[i]))
	}
}

func TestSelectQualifiedSetInsufficientShares(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	rng := rand.New(rand.NewSource(1))

	shares := []curve.Scalar{group.Scalar().One(), group.Scalar().One()}
	_, err := SelectQualifiedSet(rng, 3, shares, []int{0, 1})
	require.Error(t, err)
}

func TestSelectQualifiedSetUninitialized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var shares []curve.Scalar
	_, err := SelectQualifiedSet[curve.Scalar](rng, 1, shares, []int{0, 1, 2})
	require.Error(t, err)
}

func TestEncryptedSharesRoundTripViaExponent(t *testing.T) {
	group := curve.DefaultSuite().(curve.Group)
	suite := curve.DefaultSuite()
	n, tt := 6, 2

	powers := powertable.Generate(group, n, tt)

	privateKeys := make([]curve.Scalar, n)
	publicKeys := make([]curve.Point, n)
	for i := range privateKeys {
		privateKeys[i] = group.Scalar().Pick(suite.RandomStream())
		publicKeys[i] = group.Point().Mul(privateKeys[i], nil)
	}

	secret := group.Scalar().Pick(suite.RandomStream())

	_, encShares, err := GenerateEncryptedSharesBatched(group, tt, powers, publicKeys, []curve.Scalar{secret})
	require.NoError(t, err)

	decrypted := make([]curve.Point, n)
	for i := range encShares {
		decrypted[i] = DecryptShare(group, privateKeys[i], encShares[i][0])
	}

	rng := rand.New(rand.NewSource(7))
	qualified, err := SelectQualifiedSet(rng, tt, decrypted, allIndices(n))
	require.NoError(t, err)

	indices := make([]int, len(qualified))
	for i, e := range qualified {
		indices[i] = e.Index
	}
	lambdas := ComputeLagrangeBases(group, indices)

	got := ReconstructSecretExponent(group, qualified, lambdas)
	want := group.Point().Mul(secret, nil)
	require.True(t, want.Equal(got))
}
