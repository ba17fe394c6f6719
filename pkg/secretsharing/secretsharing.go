// Package secretsharing implements the batched Shamir/encrypted-share
// primitives: generating n shares of k secrets at once, selecting a
// qualified set of validated shares at random, computing Lagrange bases,
// and reconstructing the original secrets.
//
// Grounded on common/src/secret_sharing.rs and common/src/utils.rs of the
// original Rust crate.
package secretsharing

import (
	"math/rand"

	"github.com/georgio/pi-vss/pkg/curve"
	"github.com/georgio/pi-vss/pkg/polynomial"
	"github.com/georgio/pi-vss/pkg/powertable"
	"github.com/georgio/pi-vss/pkg/pvsserr"
)

// GenerateSharesBatched samples one degree-t polynomial per secret (k of
// them), each pinned at its secret's value, and evaluates all k at every
// party index [1, n] using the shared power table. Mirrors
// generate_shares_batched.
func GenerateSharesBatched(group curve.Group, n, t int, powers *powertable.Table, secrets []curve.Scalar) ([]*polynomial.Polynomial, [][]curve.Scalar, error) {
	fPolynomials, err := polynomial.SampleNSetF0(group, len(secrets), t, secrets)
	if err != nil {
		return nil, nil, err
	}
	fEvals := polynomial.EvaluateManyRangePrecomp(powers, fPolynomials, 1, n)
	return fPolynomials, fEvals, nil
}

// GenerateEncryptedSharesBatched behaves as GenerateSharesBatched, then
// encrypts each party's per-secret evaluation under that party's public
// key (ElGamal-style: f_eval * pubKey), for the publicly verifiable
// variants. Mirrors generate_encrypted_shares_batched.
func GenerateEncryptedSharesBatched(group curve.Group, t int, powers *powertable.Table, publicKeys []curve.Point, secrets []curve.Scalar) ([]*polynomial.Polynomial, [][]curve.Point, error) {
	fPolynomials, fEvals, err := GenerateSharesBatched(group, len(publicKeys), t, powers, secrets)
	if err != nil {
		return nil, nil, err
	}
	encrypted := make([][]curve.Point, len(fEvals))
	for i, row := range fEvals {
		encRow := make([]curve.Point, len(row))
		for k, fEval := range row {
			encRow[k] = group.Point().Mul(fEval, publicKeys[i])
		}
		encrypted[i] = encRow
	}
	return fPolynomials, encrypted, nil
}

// DecryptShare recovers the plaintext share point from an encrypted share
// under privateKey: privateKey^-1 * encryptedShare. Mirrors decrypt_share.
func DecryptShare(group curve.Group, privateKey curve.Scalar, encryptedShare curve.Point) curve.Point {
	inv := group.Scalar().Inv(privateKey)
	return group.Point().Mul(inv, encryptedShare)
}

// QualifiedEntry pairs a 1-based party index with its validated share
// value, generic over the share representation (scalar, point, or a
// batched slice of either).
type QualifiedEntry[T any] struct {
	Index int
	Value T
}

// SelectQualifiedSet draws t+1 entries at random from validatedShares
// (indices into shares, 0-based) and pairs each with its 1-based index
// and share value. Requires more than t validated shares; mirrors
// Party::select_qualified_set (which checks the count of *validated*
// shares, the corrected invariant relative to the free function of the
// same name in secret_sharing.rs — see DESIGN.md).
func SelectQualifiedSet[T any](rng *rand.Rand, t int, shares []T, validatedShares []int) ([]QualifiedEntry[T], error) {
	if shares == nil {
		return nil, pvsserr.UninitializedValue("party.shares")
	}
	if len(validatedShares) <= t {
		return nil, pvsserr.InsufficientShares(len(validatedShares), t)
	}
	tmp := make([]int, len(validatedShares))
	copy(tmp, validatedShares)
	rng.Shuffle(len(tmp), func(i, j int) { tmp[i], tmp[j] = tmp[j], tmp[i] })
	tmp = tmp[:t+1]

	out := make([]QualifiedEntry[T], t+1)
	for i, x := range tmp {
		out[i] = QualifiedEntry[T]{Index: x + 1, Value: shares[x]}
	}
	return out, nil
}

// ComputeLagrangeBasis computes the Lagrange basis coefficient for index i
// relative to the full qualified set, evaluated at x=0 (the constant term
// / secret). Mirrors compute_lagrange_basis.
func ComputeLagrangeBasis(group curve.Group, i int, qualifiedSet []int) curve.Scalar {
	zqI := curve.IndexScalar(group, i)
	acc := group.Scalar().One()
	for _, j := range qualifiedSet {
		if i == j {
			continue
		}
		zqJ := curve.IndexScalar(group, j)
		diff := group.Scalar().Sub(zqJ, zqI)
		term := group.Scalar().Div(zqJ, diff)
		acc.Mul(acc, term)
	}
	return acc
}

// ComputeLagrangeBases computes the Lagrange basis for every index in
// qualifiedSet. Mirrors compute_lagrange_bases.
func ComputeLagrangeBases(group curve.Group, qualifiedSet []int) []curve.Scalar {
	out := make([]curve.Scalar, len(qualifiedSet))
	for idx, i := range qualifiedSet {
		out[idx] = ComputeLagrangeBasis(group, i, qualifiedSet)
	}
	return out
}

// ReconstructSecrets recombines a qualified set of batched shares (each a
// length-k slice of scalars) into the k original secrets, scaling each
// party's contribution by its Lagrange basis coefficient. Mirrors
// reconstruct_secrets.
func ReconstructSecrets(group curve.Group, qualifiedSet []QualifiedEntry[[]curve.Scalar], lambdas []curve.Scalar) []curve.Scalar {
	k := len(qualifiedSet[0].Value)
	out := make([]curve.Scalar, k)
	for j := 0; j < k; j++ {
		acc := group.Scalar().Zero()
		term := group.Scalar()
		for idx, entry := range qualifiedSet {
			term.Mul(lambdas[idx], entry.Value[j])
			acc.Add(acc, term)
		}
		out[j] = acc
	}
	return out
}

// ReconstructSecret recombines a qualified set of single (non-batched)
// shares into the original secret. Mirrors reconstruct_secret.
func ReconstructSecret(group curve.Group, qualifiedSet []QualifiedEntry[curve.Scalar], lambdas []curve.Scalar) curve.Scalar {
	acc := group.Scalar().Zero()
	term := group.Scalar()
	for idx, entry := range qualifiedSet {
		term.Mul(lambdas[idx], entry.Value)
		acc.Add(acc, term)
	}
	return acc
}

// ReconstructSecretExponent recombines a qualified set of decrypted-share
// points (the group-element analogue, for publicly verifiable variants)
// into the secret's group-element image g^secret. Mirrors
// reconstruct_secret_exponent.
func ReconstructSecretExponent(group curve.Group, qualifiedSet []QualifiedEntry[curve.Point], lambdas []curve.Scalar) curve.Point {
	acc := group.Point().Null()
	term := group.Point()
	for idx, entry := range qualifiedSet {
		term.Mul(lambdas[idx], entry.Value)
		acc.Add(acc, term)
	}
	return acc
}
