// Package transcript implements the Fiat-Shamir transcript used to derive
// the batched VSS challenge scalar d and its power expansion
// [d, d^2, ..., d^k] from a dealer's published commitments.
//
// Grounded on the XOF-absorb/squeeze pattern the b_pi_la dealer and party
// use directly (blake3::Hasher::update / finalize_xof().fill / reset), and
// on kyber's XOF abstraction (kyber.Suite.XOF), which backs the same
// pattern in Go: the default suite's XOF is blake2xb, a tree-mode BLAKE2
// construction with extendable output, the Go-idiomatic equivalent of the
// Rust source's blake3 XOF use.
package transcript

import (
	"github.com/georgio/pi-vss/pkg/curve"
)

// squeezeSize is the number of bytes read from the XOF per challenge
// derivation; 64 bytes gives a wide reduction into the scalar field with
// negligible bias, matching the original's [u8; 64] buffer and
// random_scalar's 64-byte wide reduction.
const squeezeSize = 64

// Transcript absorbs commitments and squeezes Fiat-Shamir challenges from
// a kyber XOF, zeroizing its squeeze buffer and reseeding the XOF after
// every challenge draw.
type Transcript struct {
	group curve.Group
	xof   curve.XOF
}

// New starts a fresh transcript under group, seeded with label (the
// session/domain separator).
func New(group curve.Group, suite curve.Suite, label []byte) *Transcript {
	return &Transcript{group: group, xof: suite.XOF(label)}
}

// Absorb writes raw bytes (e.g. a compressed point or a hash commitment)
// into the transcript.
func (tr *Transcript) Absorb(data []byte) {
	_, _ = tr.xof.Write(data)
}

// AbsorbPoints marshals and absorbs each point in order.
func (tr *Transcript) AbsorbPoints(points ...curve.Point) error {
	for _, p := range points {
		b, err := p.MarshalBinary()
		if err != nil {
			return err
		}
		tr.Absorb(b)
	}
	return nil
}

// AbsorbDigests absorbs a list of opaque hash-commitment digests in
// order, as used by the hash-digest-commitment variants (B_Pi_LA).
func (tr *Transcript) AbsorbDigests(digests ...[]byte) {
	for _, d := range digests {
		tr.Absorb(d)
	}
}

// Challenge squeezes squeezeSize bytes from the transcript, wide-reduces
// them into a scalar via Scalar.SetBytes (big-endian, reduced mod the
// group order), zeroizes the intermediate buffer, and reseeds the XOF
// (kyber's XOF.Reseed, which keys a fresh XOF from the current output) so
// the transcript accepts further absorbs. The absorbed history is not
// discarded: a later challenge from the same Transcript still depends on
// everything absorbed before it. Every caller in this module uses a fresh
// Transcript per challenge.
func (tr *Transcript) Challenge() curve.Scalar {
	buf := make([]byte, squeezeSize)
	_, _ = tr.xof.Read(buf)

	d := tr.group.Scalar().SetBytes(buf)

	zeroize(buf)
	tr.xof.Reseed()

	return d
}

func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// HashCommitment computes a fresh, one-shot 64-byte XOF digest over parts
// in order, independent of any Transcript instance. This is the B_Pi_LA
// per-party commitment primitive: H(f^1(i) || ... || f^k(i) || r(i)),
// grounded directly on b_pi_la's per-party Hasher::new()/update/
// finalize_xof().fill pattern (one fresh hasher per party, not the shared
// transcript used for challenge derivation).
func HashCommitment(suite curve.Suite, parts ...[]byte) [squeezeSize]byte {
	xof := suite.XOF(nil)
	for _, p := range parts {
		_, _ = xof.Write(p)
	}
	var out [squeezeSize]byte
	_, _ = xof.Read(out[:])
	return out
}

// ExpandChallenge returns [d, d^2, ..., d^k], the power expansion of a
// single challenge scalar used to weight each batched polynomial's
// contribution in compute_z/compute_r_eval.
func ExpandChallenge(group curve.Group, d curve.Scalar, k int) []curve.Scalar {
	powers := make([]curve.Scalar, k)
	if k == 0 {
		return powers
	}
	powers[0] = d.Clone()
	for i := 1; i < k; i++ {
		powers[i] = group.Scalar().Mul(powers[i-1], d)
	}
	return powers
}
