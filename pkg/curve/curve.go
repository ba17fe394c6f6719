// Package curve wires the kyber group/scalar/point abstractions used
// throughout this module, and provides the compressed-point (CPoint)
// helpers the secret-sharing and transcript layers build on.
//
// The default suite is NIST P-256 with a blake2xb XOF
// (go.dedis.ch/kyber/v3/group/nist.NewBlakeSHA256P256, imported here as
// github.com/drand/kyber/group/nist), the same suite drand/drand itself
// depends on. A second suite, BLS12-381 G1, is offered via BLS12381G1Suite
// so callers are not locked to a single curve (spec's "group parameter
// injection" external interface).
package curve

import (
	"crypto/cipher"
	"fmt"
	"sync"

	"github.com/drand/kyber"
	bls12381 "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/group/nist"
	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Group, Scalar, Point and XOF are aliases over the kyber abstractions so
// that callers of this package never need to import kyber directly.
type (
	Group  = kyber.Group
	Scalar = kyber.Scalar
	Point  = kyber.Point
	XOF    = kyber.XOF
	Suite  = kyber.Suite
)

// CPoint is the canonical compressed (marshaled) encoding of a Point, as
// produced by Point.MarshalBinary under whatever suite is in use.
type CPoint []byte

// DefaultSuite returns the module's default cipher suite: NIST P-256 with
// a blake2xb XOF and crypto/rand-backed randomness.
func DefaultSuite() Suite {
	return nist.NewBlakeSHA256P256()
}

// BLS12381G1Suite returns an alternate pairing-friendly suite (BLS12-381,
// G1 group) a caller may inject instead of the default, demonstrating that
// no package here hardcodes a specific curve. The pairing's G1() accessor
// only returns a bare Group, so it is wrapped with the pairing's own
// XOF/RandomStream to satisfy the full Suite interface the protocol layers
// need, the same way drand's own crypto/schemes.go wraps a bare key group
// with a schnorrSuite to give it RandomStream.
func BLS12381G1Suite() Suite {
	pairing := bls12381.NewBLS12381Suite()
	return bls12381G1Suite{Group: pairing.G1(), pairing: pairing}
}

// bls12381G1Suite adapts the BLS12-381 G1 group to the Suite interface by
// forwarding XOF and RandomStream to the underlying pairing, which already
// implements them.
type bls12381G1Suite struct {
	kyber.Group
	pairing kyber.Suite
}

func (s bls12381G1Suite) XOF(seed []byte) kyber.XOF {
	return s.pairing.XOF(seed)
}

func (s bls12381G1Suite) RandomStream() cipher.Stream {
	return s.pairing.RandomStream()
}

// CompressPoint returns the canonical compressed encoding of p.
func CompressPoint(p Point) (CPoint, error) {
	b, err := p.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return CPoint(b), nil
}

// DecompressPoint decodes c back into a Point under group.
func DecompressPoint(group Group, c CPoint) (Point, error) {
	p := group.Point()
	if err := p.UnmarshalBinary(c); err != nil {
		return nil, fmt.Errorf("decompress point: %w", err)
	}
	return p, nil
}

// BatchDecompressPoints decodes every element of cs in parallel, returning
// every decompression failure it encounters (aggregated via multierror)
// rather than stopping at the first bad point, so a caller ingesting n
// public keys learns exactly which ones are malformed.
func BatchDecompressPoints(group Group, cs []CPoint) ([]Point, error) {
	out := make([]Point, len(cs))
	var g errgroup.Group
	var mu multierrorMutex
	for i := range cs {
		i := i
		g.Go(func() error {
			p, err := DecompressPoint(group, cs[i])
			if err != nil {
				mu.append(fmt.Errorf("index %d: %w", i, err))
				return nil
			}
			out[i] = p
			return nil
		})
	}
	_ = g.Wait()
	if err := mu.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// multierrorMutex serializes concurrent appends to a *multierror.Error.
type multierrorMutex struct {
	mu  sync.Mutex
	agg *multierror.Error
}

func (m *multierrorMutex) append(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agg = multierror.Append(m.agg, err)
}

func (m *multierrorMutex) err() error {
	if m.agg == nil {
		return nil
	}
	return m.agg
}

// IndexScalar returns the scalar representation of the 1-based party index
// i under group, matching the original source's convention that party
// indices start at 1 and are embedded as field elements for polynomial
// evaluation and Lagrange interpolation.
func IndexScalar(group Group, i int) Scalar {
	return group.Scalar().SetInt64(int64(i))
}
