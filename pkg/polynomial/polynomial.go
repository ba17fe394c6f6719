// Package polynomial implements the batched polynomial algebra the
// secret-sharing and transcript layers are built on: sampling random
// polynomials (optionally pinning the constant term to a given secret),
// evaluating them at party indices, and the fused compute_z/compute_r_eval
// pair the Fiat-Shamir proof step and its verification hinge on.
//
// Grounded on common/src/polynomial.rs of the original Rust crate; method
// names and the evaluate/compute_z semantics follow that file closely,
// translated from curve25519-dalek Scalar arithmetic to kyber's
// Group-parameterized Scalar.
package polynomial

import (
	"github.com/georgio/pi-vss/pkg/curve"
	"github.com/georgio/pi-vss/pkg/powertable"
	"github.com/georgio/pi-vss/pkg/pvsserr"
)

// Polynomial is a dense representation over a scalar field: coefficients[i]
// is the coefficient of x^i, so len(coefficients) == degree+1.
type Polynomial struct {
	group        curve.Group
	coefficients []curve.Scalar
}

// FromCoefficients wraps an existing coefficient slice (lowest degree
// first) as a Polynomial.
func FromCoefficients(group curve.Group, coefficients []curve.Scalar) *Polynomial {
	return &Polynomial{group: group, coefficients: coefficients}
}

// Len returns degree+1, i.e. the number of coefficients.
func (p *Polynomial) Len() int { return len(p.coefficients) }

// Coefficients returns the underlying coefficient slice. Callers must not
// retain it past a mutating call such as ComputeZ.
func (p *Polynomial) Coefficients() []curve.Scalar { return p.coefficients }

// CoefAt returns the coefficient of x^index, or nil if out of range.
func (p *Polynomial) CoefAt(index int) curve.Scalar {
	if index < 0 || index >= len(p.coefficients) {
		return nil
	}
	return p.coefficients[index]
}

// Sample draws a uniformly random polynomial of the given degree.
func Sample(group curve.Group, degree int) *Polynomial {
	coefs := make([]curve.Scalar, degree+1)
	for i := range coefs {
		coefs[i] = group.Scalar().Pick(group.(curve.Suite).RandomStream())
	}
	return &Polynomial{group: group, coefficients: coefs}
}

// SampleSetF0 draws a random polynomial of the given degree whose constant
// term is pinned to f0 (the secret being shared).
func SampleSetF0(group curve.Group, degree int, f0 curve.Scalar) *Polynomial {
	p := Sample(group, degree)
	p.coefficients[0] = f0.Clone()
	return p
}

// SampleNSetF0 draws n independent random polynomials of the given degree,
// one per entry of f0Vals, each pinned at its own constant term. Mirrors
// Polynomial::sample_n_set_f0, which errors with CountMismatch when n and
// len(f0Vals) disagree rather than silently truncating.
func SampleNSetF0(group curve.Group, n, degree int, f0Vals []curve.Scalar) ([]*Polynomial, error) {
	if len(f0Vals) != n {
		return nil, pvsserr.CountMismatch(n, "degree", len(f0Vals), "f0 values")
	}
	out := make([]*Polynomial, n)
	for i := 0; i < n; i++ {
		out[i] = SampleSetF0(group, degree, f0Vals[i])
	}
	return out, nil
}

// xPowers builds [1, x, x^2, ..., x^(upto-1)] where upto is the number of
// powers needed (typically the polynomial's coefficient count).
func xPowers(group curve.Group, x, upto int) []curve.Scalar {
	powers := make([]curve.Scalar, upto)
	powers[0] = group.Scalar().One()
	if upto == 1 {
		return powers
	}
	powers[1] = group.Scalar().SetInt64(int64(x))
	for i := 2; i < upto; i++ {
		powers[i] = group.Scalar().Mul(powers[1], powers[i-1])
	}
	return powers
}

// Evaluate computes p(x) via Horner-free power expansion, matching the
// original's x_powers-then-dot-product approach (parallelizable per spec,
// but small enough here to stay sequential; see EvaluateManyRangePrecomp
// for the batched hot path, which is sequential as well).
func (p *Polynomial) Evaluate(x int) curve.Scalar {
	powers := xPowers(p.group, x, len(p.coefficients))
	return dot(p.group, p.coefficients, powers)
}

func dot(group curve.Group, coefs, powers []curve.Scalar) curve.Scalar {
	acc := group.Scalar().Zero()
	term := group.Scalar()
	for i := range coefs {
		term.Mul(coefs[i], powers[i])
		acc.Add(acc, term)
	}
	return acc
}

// EvaluateRange computes p(i) for i in [from, to] inclusive.
func (p *Polynomial) EvaluateRange(from, to int) []curve.Scalar {
	out := make([]curve.Scalar, to-from+1)
	for i := from; i <= to; i++ {
		out[i-from] = p.Evaluate(i)
	}
	return out
}

// EvaluateRangePrecomp evaluates p at indices [from, to] reusing a
// precomputed power table (1-indexed: powers.Row(i) holds i's power
// vector, so callers pass a table sized for at least `to`).
func (p *Polynomial) EvaluateRangePrecomp(powers *powertable.Table, from, to int) []curve.Scalar {
	out := make([]curve.Scalar, to-from+1)
	for i := from; i <= to; i++ {
		out[i-from] = dot(p.group, p.coefficients, powers.Row(i))
	}
	return out
}

// EvaluateManyRangePrecomp evaluates every polynomial in polys at every
// index in [from, to], reusing a shared power table. All polynomials must
// have the same degree. Returns one slice of evaluations per index, each
// holding one evaluation per polynomial (outer index: position in range,
// inner index: polynomial).
func EvaluateManyRangePrecomp(powers *powertable.Table, polys []*Polynomial, from, to int) [][]curve.Scalar {
	group := polys[0].group
	out := make([][]curve.Scalar, to-from+1)
	for i := from; i <= to; i++ {
		row := make([]curve.Scalar, len(polys))
		for k, poly := range polys {
			row[k] = dot(group, poly.coefficients, powers.Row(i))
		}
		out[i-from] = row
	}
	return out
}

// ComputeZ computes, in place, z = r + sum_k(d_k * f_k), where r is the
// receiver. Mirrors Polynomial::compute_z: the dealer's proof-generation
// hot path that folds every batched polynomial's contribution, scaled by
// its Fiat-Shamir challenge power, into the blinding polynomial r.
func (p *Polynomial) ComputeZ(fPolynomials []*Polynomial, dVals []curve.Scalar) {
	term := p.group.Scalar()
	contrib := p.group.Scalar()
	for i := range p.coefficients {
		contrib.Zero()
		for k, f := range fPolynomials {
			term.Mul(f.coefficients[i], dVals[k])
			contrib.Add(contrib, term)
		}
		p.coefficients[i].Add(p.coefficients[i], contrib)
	}
}

// ComputeREval inverts ComputeZ at a single evaluation point: given z(x)
// and the per-polynomial evaluations f_k(x), recovers r(x) = z(x) -
// sum_k(d_k * f_k(x)). This is the verifier-side half of the Fiat-Shamir
// proof check.
func ComputeREval(group curve.Group, zEval curve.Scalar, fEvals []curve.Scalar, dVals []curve.Scalar) curve.Scalar {
	sum := group.Scalar().Zero()
	term := group.Scalar()
	for k := range fEvals {
		term.Mul(fEvals[k], dVals[k])
		sum.Add(sum, term)
	}
	return group.Scalar().Sub(zEval, sum)
}

// Clone returns a deep copy of p.
func (p *Polynomial) Clone() *Polynomial {
	out := make([]curve.Scalar, len(p.coefficients))
	for i, c := range p.coefficients {
		out[i] = c.Clone()
	}
	return &Polynomial{group: p.group, coefficients: out}
}

// Sum returns the coefficient-wise sum of p and other; both must have the
// same length.
func (p *Polynomial) Sum(other *Polynomial) *Polynomial {
	out := make([]curve.Scalar, len(p.coefficients))
	for i := range out {
		out[i] = p.group.Scalar().Add(p.coefficients[i], other.coefficients[i])
	}
	return &Polynomial{group: p.group, coefficients: out}
}
