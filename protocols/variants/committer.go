// Package variants gives every commitment shape spec.md's table
// enumerates (besides Pi_LA, which gets the full dealer/party treatment in
// protocols/pila) a concrete, testable implementation: Feldman, Pedersen,
// Pi_F, Pi_P, Pi_P+, and Pi_S. None of these get a full state machine —
// each is exercised directly as a commit/verify pair, grounded on the
// corresponding original_source crate's dealer.rs/party.rs.
package variants

import (
	"github.com/georgio/pi-vss/pkg/curve"
	"github.com/georgio/pi-vss/pkg/polynomial"
	"github.com/georgio/pi-vss/pkg/powertable"
	"github.com/georgio/pi-vss/pkg/pvsserr"
	"github.com/georgio/pi-vss/pkg/secretsharing"
	"github.com/georgio/pi-vss/pkg/transcript"
)

// Committer names the commitment strategy a variant implements. Each
// variant below is its own concrete Dealer/Verify pair rather than a
// shared generic interface: their commit/verify equations differ too much
// in shape (per-coefficient vs per-party, hash digest vs group element,
// single secret vs batched) for one method set to fit all without
// resorting to `any` params that would just push the type assertions into
// the caller. Variant implements Committer only so code that enumerates
// "every commitment shape spec.md names" can do so uniformly.
type Committer interface {
	Variant() string
}

// deriveChallengePowersPoints absorbs a sequence of compressed commitment
// points into a fresh transcript and expands the resulting challenge to k
// powers, the point-commitment analogue of pila's deriveChallengePowers
// (which absorbs hash digests instead). Grounded on
// common::utils::compute_d_powers_from_point_commitments.
func deriveChallengePowersPoints(group curve.Group, suite curve.Suite, label []byte, cVals []curve.Point, k int) []curve.Scalar {
	tr := transcript.New(group, suite, label)
	_ = tr.AbsorbPoints(cVals...)
	d := tr.Challenge()
	return transcript.ExpandChallenge(group, d, k)
}

// foldCoefficientCommitments recombines a coefficient-indexed commitment
// vector C_0..C_t at evaluation point index: C_0 + sum_{j=1}^{t} C_j *
// index^j. Shared by Feldman and Pedersen, whose commitments live in
// coefficient space rather than one-per-party.
func foldCoefficientCommitments(group curve.Group, cVals []curve.Point, index int) curve.Point {
	acc := cVals[0]
	ipow := group.Scalar().One()
	idx := curve.IndexScalar(group, index)
	for j := 1; j < len(cVals); j++ {
		ipow.Mul(ipow, idx)
		acc = group.Point().Add(acc, group.Point().Mul(ipow, cVals[j]))
	}
	return acc
}

// ---- Feldman ----

// Feldman commits to a batch of secret-sharing polynomials' coefficients
// directly: C_t = sum_k g_k * f_k[t] for t in [0, threshold]. There is no
// Fiat-Shamir challenge or blinding term; the commitment is unconditionally
// binding but not hiding. Grounded on
// _examples/original_source/b_feldman/src/{dealer,party}.rs.
type Feldman struct {
	Group curve.Group
	G     []curve.Point
	T     int
}

func (Feldman) Variant() string { return "B_Feldman" }

// Commit produces the threshold+1 coefficient commitments for a batch of k
// degree-T polynomials (one per secret sharing the same g_1..g_k).
func (f Feldman) Commit(fPolynomials []*polynomial.Polynomial) []curve.Point {
	cVals := make([]curve.Point, f.T+1)
	for t := 0; t <= f.T; t++ {
		c := f.Group.Point().Null()
		for k, poly := range fPolynomials {
			c = f.Group.Point().Add(c, f.Group.Point().Mul(poly.CoefAt(t), f.G[k]))
		}
		cVals[t] = c
	}
	return cVals
}

// VerifyShare checks party index's batched evaluations fEvals against the
// published coefficient commitments: sum_k f_k(i)*g_k ?= sum_t C_t*i^t.
func (f Feldman) VerifyShare(index int, fEvals []curve.Scalar, cVals []curve.Point) bool {
	a := f.Group.Point().Null()
	for k, fEval := range fEvals {
		a = f.Group.Point().Add(a, f.Group.Point().Mul(fEval, f.G[k]))
	}
	b := foldCoefficientCommitments(f.Group, cVals, index)
	return a.Equal(b)
}

// ---- Pedersen ----

// Pedersen adds a blinding polynomial r to Feldman's coefficient
// commitments: C_t = g_0*r[t] + sum_k g_k*f_k[t]. The dealer additionally
// publishes r's evaluations (one per party) as the opening each party
// needs to verify its own share. Grounded on
// _examples/original_source/b_pedersen/src/{dealer,party}.rs.
type Pedersen struct {
	Group curve.Group
	G0    curve.Point
	G     []curve.Point
	T     int
}

func (Pedersen) Variant() string { return "B_Pedersen" }

// Commit samples the blinding polynomial r, evaluates it at every party
// index [1, n], and returns both the t+1 commitments and r's evaluations
// (the per-party opening).
func (p Pedersen) Commit(powers *powertable.Table, n int, fPolynomials []*polynomial.Polynomial) ([]curve.Point, []curve.Scalar) {
	r := polynomial.Sample(p.Group, p.T)
	rEvals := r.EvaluateRangePrecomp(powers, 1, n)

	cVals := make([]curve.Point, p.T+1)
	for t := 0; t <= p.T; t++ {
		c := p.Group.Point().Mul(r.CoefAt(t), p.G0)
		for k, poly := range fPolynomials {
			c = p.Group.Point().Add(c, p.Group.Point().Mul(poly.CoefAt(t), p.G[k]))
		}
		cVals[t] = c
	}
	return cVals, rEvals
}

// VerifyShare checks party index's batched evaluations and its published
// r(index) opening against the commitments: g_0*r(i) + sum_k f_k(i)*g_k
// ?= sum_t C_t*i^t.
func (p Pedersen) VerifyShare(index int, fEvals []curve.Scalar, rEval curve.Scalar, cVals []curve.Point) bool {
	a := p.Group.Point().Mul(rEval, p.G0)
	for k, fEval := range fEvals {
		a = p.Group.Point().Add(a, p.Group.Point().Mul(fEval, p.G[k]))
	}
	b := foldCoefficientCommitments(p.Group, cVals, index)
	return a.Equal(b)
}

// ---- Pi_F ----

var piFLabel = []byte("pi-vss/pi-f/v1")

// PiF commits per party (not per coefficient), with a single blinding
// generator g_0 and the same challenge-folded z as Pi_LA, but the
// commitment itself is a group element rather than a hash digest: C_i =
// sum_k f_k(i)*g_k + r(i)*g_0. Grounded on
// _examples/original_source/{pi_f,b_pi_f}/src/{dealer,party}.rs.
type PiF struct {
	Group curve.Group
	Suite curve.Suite
	G0    curve.Point
	G     []curve.Point
	T     int
}

func (PiF) Variant() string { return "B_Pi_F" }

// Deal samples k batched secret polynomials pinned at secrets, commits
// each party's batched evaluation plus a shared blinding polynomial's
// evaluation, derives the Fiat-Shamir challenge from the n commitments,
// and folds every polynomial's contribution into z.
func (f PiF) Deal(powers *powertable.Table, n int, secrets []curve.Scalar) ([][]curve.Scalar, []curve.Point, *polynomial.Polynomial, error) {
	fPolynomials, fEvals, err := secretsharing.GenerateSharesBatched(f.Group, n, f.T, powers, secrets)
	if err != nil {
		return nil, nil, nil, err
	}

	r := polynomial.Sample(f.Group, f.T)
	rEvals := r.EvaluateRangePrecomp(powers, 1, n)

	cVals := make([]curve.Point, n)
	for i := 0; i < n; i++ {
		c := f.Group.Point().Mul(rEvals[i], f.G0)
		for k, fEval := range fEvals[i] {
			c = f.Group.Point().Add(c, f.Group.Point().Mul(fEval, f.G[k]))
		}
		cVals[i] = c
	}

	dVals := deriveChallengePowersPoints(f.Group, f.Suite, piFLabel, cVals, len(secrets))
	r.ComputeZ(fPolynomials, dVals)

	return fEvals, cVals, r, nil
}

// VerifyShare recomputes the challenge from the published commitments,
// recovers r(index) from z via ComputeREval, and checks the per-party
// commitment equation: C_i ?= sum_k f_k(i)*g_k + r(i)*g_0.
func (f PiF) VerifyShare(index int, fEvals []curve.Scalar, cVals []curve.Point, z *polynomial.Polynomial) bool {
	dVals := deriveChallengePowersPoints(f.Group, f.Suite, piFLabel, cVals, len(fEvals))
	zEval := z.Evaluate(index)
	rVal := polynomial.ComputeREval(f.Group, zEval, fEvals, dVals)

	c := f.Group.Point().Mul(rVal, f.G0)
	for k, fEval := range fEvals {
		c = f.Group.Point().Add(c, f.Group.Point().Mul(fEval, f.G[k]))
	}
	return c.Equal(cVals[index-1])
}

// ---- Pi_P ----

var piPLabel = []byte("pi-vss/pi-p/v1")

// maxDegenerateRetries bounds PiP's resample-on-degenerate-challenge loop
// (see PiP.Deal). The original Rust panics when g_1 == g_2^d; a panic in a
// library a long-running party process calls is a worse failure mode than
// a bounded retry followed by a structured error, so this redesigns that
// behavior rather than reproducing it (see DESIGN.md).
const maxDegenerateRetries = 8

// PiP is single-secret: a three-generator commitment C_i = g_1*f(i) +
// g_2*r(i) + g_3*gamma_i, where gamma_i is an independent per-party random
// blinding scalar published alongside each share. Grounded on
// _examples/original_source/pi_p/src/{dealer,party}.rs.
type PiP struct {
	Group      curve.Group
	Suite      curve.Suite
	G1, G2, G3 curve.Point
	T          int
}

func (PiP) Variant() string { return "B_Pi_P" }

// Deal samples f (pinned at secret) and a blinding polynomial r, commits
// each party's (f(i), r(i)) plus an independent random gamma_i under the
// three generators, and derives d from the n commitments. If g_1 == g_2^d
// the commitment scheme degenerates (the verification equation becomes
// independent of r); Deal resamples r up to maxDegenerateRetries times
// before returning pvsserr.InvalidProof rather than panicking.
func (p PiP) Deal(powers *powertable.Table, n int, secret curve.Scalar) ([]curve.Scalar, []curve.Scalar, []curve.Point, *polynomial.Polynomial, error) {
	f := polynomial.SampleSetF0(p.Group, p.T, secret)
	fEvals := f.EvaluateRangePrecomp(powers, 1, n)

	for attempt := 0; attempt < maxDegenerateRetries; attempt++ {
		r := polynomial.Sample(p.Group, p.T)
		rEvals := r.EvaluateRangePrecomp(powers, 1, n)

		gammas := make([]curve.Scalar, n)
		for i := range gammas {
			gammas[i] = p.Group.Scalar().Pick(p.Suite.RandomStream())
		}

		cVals := make([]curve.Point, n)
		for i := 0; i < n; i++ {
			c := p.Group.Point().Mul(fEvals[i], p.G1)
			c = p.Group.Point().Add(c, p.Group.Point().Mul(rEvals[i], p.G2))
			c = p.Group.Point().Add(c, p.Group.Point().Mul(gammas[i], p.G3))
			cVals[i] = c
		}

		dVals := deriveChallengePowersPoints(p.Group, p.Suite, piPLabel, cVals, 1)
		d := dVals[0]

		if p.G1.Equal(p.Group.Point().Mul(d, p.G2)) {
			continue
		}

		z := r.Clone()
		z.ComputeZ([]*polynomial.Polynomial{f}, []curve.Scalar{d})
		return fEvals, gammas, cVals, z, nil
	}
	return nil, nil, nil, nil, pvsserr.InvalidProof("g1 == g2^d persisted after bounded resampling")
}

// VerifyShare recomputes d, recovers r(index) = z(index) - d*f(index), and
// checks C_i ?= g_1*f(i) + g_2*r(i) + g_3*gamma_i.
func (p PiP) VerifyShare(index int, fEval, gamma curve.Scalar, cVals []curve.Point, z *polynomial.Polynomial) bool {
	dVals := deriveChallengePowersPoints(p.Group, p.Suite, piPLabel, cVals, 1)
	rVal := polynomial.ComputeREval(p.Group, z.Evaluate(index), []curve.Scalar{fEval}, dVals)

	c := p.Group.Point().Mul(fEval, p.G1)
	c = p.Group.Point().Add(c, p.Group.Point().Mul(rVal, p.G2))
	c = p.Group.Point().Add(c, p.Group.Point().Mul(gamma, p.G3))
	return c.Equal(cVals[index-1])
}

// ---- Pi_P+ ----

var piPPlusLabel = []byte("pi-vss/pi-p-plus/v1")

// PiPPlus is Pi_P's batched sibling: instead of a third generator it folds
// the blinding term through a hash, C_i = g_1*h_i + g_2*gamma_i where h_i =
// H(f^1(i) || ... || f^k(i) || r(i)), one fewer generator needed regardless
// of k. Grounded on
// _examples/original_source/b_pi_p_plus/src/{dealer,party}.rs.
type PiPPlus struct {
	Group  curve.Group
	Suite  curve.Suite
	G1, G2 curve.Point
	T      int
}

func (PiPPlus) Variant() string { return "B_Pi_P+" }

func hashToScalar(group curve.Group, suite curve.Suite, parts ...[]byte) curve.Scalar {
	digest := transcript.HashCommitment(suite, parts...)
	return group.Scalar().SetBytes(digest[:])
}

func commitPiPPlus(fEval []curve.Scalar, rEval curve.Scalar, gamma curve.Scalar, p PiPPlus) curve.Point {
	parts := make([][]byte, 0, len(fEval)+1)
	for _, f := range fEval {
		b, _ := f.MarshalBinary()
		parts = append(parts, b)
	}
	rb, _ := rEval.MarshalBinary()
	parts = append(parts, rb)
	h := hashToScalar(p.Group, p.Suite, parts...)

	c := p.Group.Point().Mul(h, p.G1)
	return p.Group.Point().Add(c, p.Group.Point().Mul(gamma, p.G2))
}

// Deal samples k batched polynomials pinned at secrets plus a blinding
// polynomial r, commits each party's batched evaluation via the hash-then-
// two-generator scheme, derives the challenge from the n commitments, and
// folds every polynomial's contribution into z.
func (p PiPPlus) Deal(powers *powertable.Table, n int, secrets []curve.Scalar) ([][]curve.Scalar, []curve.Scalar, []curve.Point, *polynomial.Polynomial, error) {
	fPolynomials, fEvals, err := secretsharing.GenerateSharesBatched(p.Group, n, p.T, powers, secrets)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	r := polynomial.Sample(p.Group, p.T)
	rEvals := r.EvaluateRangePrecomp(powers, 1, n)

	gammas := make([]curve.Scalar, n)
	for i := range gammas {
		gammas[i] = p.Group.Scalar().Pick(p.Suite.RandomStream())
	}

	cVals := make([]curve.Point, n)
	for i := 0; i < n; i++ {
		cVals[i] = commitPiPPlus(fEvals[i], rEvals[i], gammas[i], p)
	}

	dVals := deriveChallengePowersPoints(p.Group, p.Suite, piPPlusLabel, cVals, len(secrets))
	r.ComputeZ(fPolynomials, dVals)

	return fEvals, gammas, cVals, r, nil
}

// VerifyShare recomputes the challenge, recovers r(index) via ComputeREval,
// rehashes h from the party's own share, and checks C_i ?= g_1*h + g_2*gamma.
func (p PiPPlus) VerifyShare(index int, fEvals []curve.Scalar, gamma curve.Scalar, cVals []curve.Point, z *polynomial.Polynomial) bool {
	dVals := deriveChallengePowersPoints(p.Group, p.Suite, piPPlusLabel, cVals, len(fEvals))
	zEval := z.Evaluate(index)
	rVal := polynomial.ComputeREval(p.Group, zEval, fEvals, dVals)

	c := commitPiPPlus(fEvals, rVal, gamma, p)
	return c.Equal(cVals[index-1])
}

// ---- Pi_S ----

var piSLabel = []byte("pi-vss/pi-s/v1")

// PiS is the publicly verifiable variant: the "commitment" each party
// receives is its own ElGamal-encrypted share f^j(i)*pk_i, so anyone
// holding the public keys (not just the party) can check the Fiat-Shamir
// equation without decrypting anything. Grounded on
// _examples/original_source/{pi_s,b_pi_s}/src/{dealer,party}.rs.
type PiS struct {
	Group      curve.Group
	Suite      curve.Suite
	PublicKeys []curve.Point
	T          int
}

func (PiS) Variant() string { return "B_Pi_S" }

// Deal samples k batched polynomials pinned at secrets, ElGamal-encrypts
// every party's batched evaluation under its own public key, does the same
// for a blinding polynomial r, derives a single challenge scalar d from
// the flattened encrypted shares plus r's encrypted evaluations, and folds
// every polynomial's contribution into z. Returns the encrypted shares
// (the public commitment), d, and z.
func (s PiS) Deal(powers *powertable.Table, n int, secrets []curve.Scalar) ([][]curve.Point, curve.Scalar, *polynomial.Polynomial, error) {
	if len(s.PublicKeys) != n {
		return nil, nil, nil, pvsserr.CountMismatch(n, "parties", len(s.PublicKeys), "public keys")
	}

	fPolynomials, encryptedShares, err := secretsharing.GenerateEncryptedSharesBatched(s.Group, s.T, powers, s.PublicKeys, secrets)
	if err != nil {
		return nil, nil, nil, err
	}

	r := polynomial.Sample(s.Group, s.T)
	rEvals := r.EvaluateRangePrecomp(powers, 1, n)

	commitments := make([]curve.Point, 0, n*len(secrets)+n)
	for _, row := range encryptedShares {
		commitments = append(commitments, row...)
	}
	for i := 0; i < n; i++ {
		commitments = append(commitments, s.Group.Point().Mul(rEvals[i], s.PublicKeys[i]))
	}

	dVals := deriveChallengePowersPoints(s.Group, s.Suite, piSLabel, commitments, len(secrets))
	d := dVals[0]

	r.ComputeZ(fPolynomials, dVals)
	return encryptedShares, d, r, nil
}

// VerifyEncryptedShares recomputes, for every party i, its recovered
// blinding commitment r(i)*pk_i = z(i)*pk_i - sum_k d^k*encryptedShares[i][k]
// (the ElGamal-homomorphic inverse of Deal's folding step), then checks
// that hashing the original encrypted shares together with those recovered
// commitments reproduces the published challenge d. This matches the
// dealer's own derivation exactly, so any tampering with a share or with d
// itself is caught without anyone needing to decrypt anything.
func (s PiS) VerifyEncryptedShares(encryptedShares [][]curve.Point, d curve.Scalar, z *polynomial.Polynomial) bool {
	k := len(encryptedShares[0])
	n := len(s.PublicKeys)
	dVals := transcript.ExpandChallenge(s.Group, d, k)
	zEvals := z.EvaluateRange(1, n)

	recovered := make([]curve.Point, n)
	for i := 0; i < n; i++ {
		acc := s.Group.Point().Null()
		for kk, enc := range encryptedShares[i] {
			acc = s.Group.Point().Add(acc, s.Group.Point().Mul(dVals[kk], enc))
		}
		lhs := s.Group.Point().Mul(zEvals[i], s.PublicKeys[i])
		recovered[i] = s.Group.Point().Sub(lhs, acc)
	}

	commitments := make([]curve.Point, 0, n*k+n)
	for _, row := range encryptedShares {
		commitments = append(commitments, row...)
	}
	commitments = append(commitments, recovered...)

	tr := transcript.New(s.Group, s.Suite, piSLabel)
	_ = tr.AbsorbPoints(commitments...)
	dComp := tr.Challenge()

	return d.Equal(dComp)
}
