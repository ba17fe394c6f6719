package pila

import (
	"math/rand"

	"github.com/georgio/pi-vss/log"
	"github.com/georgio/pi-vss/pkg/curve"
	"github.com/georgio/pi-vss/pkg/polynomial"
	"github.com/georgio/pi-vss/pkg/pvsserr"
	"github.com/georgio/pi-vss/pkg/secretsharing"
)

// Party is one participant's local state machine: Created ->
// PublicKeysIngested -> ShareIngested/ProofIngested -> SharesVerified ->
// QualifiedSetSelected -> Reconstructed. Every field beyond the
// constructor's is optional until its ingest/compute step runs; reading
// one early returns a KindUninitializedValue error rather than a panic.
// Mirrors Party (b_pi_la/src/party.rs).
type Party struct {
	group curve.Group
	suite curve.Suite

	privateKey curve.Scalar
	publicKey  curve.Point

	index, n, t int

	publicKeys []curve.Point
	proof      *DealerProof

	validatedShares []int

	share  []curve.Scalar
	shares [][]curve.Scalar

	qualifiedSet []secretsharing.QualifiedEntry[[]curve.Scalar]

	log log.Logger
}

// NewParty creates a party at 1-based index for an (n, t) batched-VSS
// session, sampling its own key pair. Requires index <= n and t ==
// floor((n-1)/2), the batched-protocol parameter constraint; violating it
// returns KindInvalidParameterSet rather than panicking. Mirrors
// Party::new.
func NewParty(group curve.Group, suite curve.Suite, n, t, index int) (*Party, error) {
	if !(index >= 1 && index <= n && t < n && t == (n-1)/2) {
		return nil, pvsserr.InvalidParameterSet(n, t, index)
	}
	logger := log.DefaultLogger().Named("pila.party")
	privateKey := group.Scalar().Pick(suite.RandomStream())
	publicKey := group.Point().Mul(privateKey, nil)
	logger.Infow("party created", "index", index, "n", n, "t", t)
	return &Party{
		group:      group,
		suite:      suite,
		privateKey: privateKey,
		publicKey:  publicKey,
		index:      index,
		n:          n,
		t:          t,
		log:        logger,
	}, nil
}

// PublicKey returns this party's own public key.
func (p *Party) PublicKey() curve.Point { return p.publicKey }

// IngestShare records this party's own k-length share, for the
// single-share verification path (VerifyShare).
func (p *Party) IngestShare(share []curve.Scalar) {
	p.share = share
}

// IngestPublicKeys accepts the n-1 other parties' compressed public keys,
// decompresses them, and inserts this party's own key at its index so
// PublicKeys() returns all n in index order. Mirrors
// Party::ingest_public_keys.
func (p *Party) IngestPublicKeys(others []curve.CPoint) error {
	if len(others) != p.n-1 {
		return pvsserr.CountMismatch(p.n, "parties", len(others), "public_keys")
	}
	pks, err := curve.BatchDecompressPoints(p.group, others)
	if err != nil {
		return pvsserr.DecompressionFailure(err.Error())
	}
	out := make([]curve.Point, 0, p.n)
	out = append(out, pks[:p.index-1]...)
	out = append(out, p.publicKey)
	out = append(out, pks[p.index-1:]...)
	p.publicKeys = out
	return nil
}

// PublicKeys returns all n ingested public keys, in index order.
func (p *Party) PublicKeys() []curve.Point { return p.publicKeys }

// IngestDealerProof validates and records the dealer's published proof.
// Requires z to have t+1 coefficients and exactly n commitments,
// otherwise returns KindInvalidProof. Mirrors Party::ingest_dealer_proof.
func (p *Party) IngestDealerProof(proof *DealerProof) error {
	if proof.Z.Len() != p.t+1 {
		return pvsserr.InvalidProof("z length does not match t+1")
	}
	if len(proof.CVals) != p.n {
		return pvsserr.InvalidProof("commitment count does not match n")
	}
	p.proof = proof
	p.log.Debugw("dealer proof ingested", "index", p.index)
	return nil
}

// VerifyShare recomputes the Fiat-Shamir challenge from the dealer's
// published commitments, evaluates z at this party's own index, recovers
// r(index) via ComputeREval, and checks that hashing this party's share
// together with that r reproduces the dealer's published commitment for
// this index. Mirrors Party::verify_share.
func (p *Party) VerifyShare() (bool, error) {
	if p.proof == nil {
		return false, pvsserr.UninitializedValue("party.dealer_proof")
	}
	if p.share == nil {
		return false, pvsserr.UninitializedValue("party.share")
	}

	k := len(p.share)
	dVals := deriveChallengePowers(p.group, p.suite, p.proof.CVals, k)

	zEval := p.proof.Z.Evaluate(p.index)
	rVal := polynomial.ComputeREval(p.group, zEval, p.share, dVals)

	commitment := commitShare(p.suite, p.share, rVal)
	ok := commitment == p.proof.CVals[p.index-1]
	p.log.Infow("share verified", "index", p.index, "ok", ok)
	return ok, nil
}

// IngestShares records the full set of n parties' shares (this party's
// decrypted/received copies), the prerequisite for VerifyShares and
// SelectQualifiedSet. Requires exactly n entries. Mirrors
// Party::ingest_shares.
func (p *Party) IngestShares(shares [][]curve.Scalar) error {
	if len(shares) != p.n {
		return pvsserr.CountMismatch(p.n, "parties", len(shares), "ingestable shares")
	}
	p.shares = shares
	return nil
}

// VerifyShares recomputes the same Fiat-Shamir challenge once, evaluates
// z at every index [1, n], and checks each party i's share against the
// dealer's commitment for i independently, recording every index (0-based
// into p.shares) that checks out in p.validatedShares. Returns whether
// more than t shares validated. Mirrors Party::verify_shares.
func (p *Party) VerifyShares() (bool, error) {
	if p.proof == nil {
		return false, pvsserr.UninitializedValue("party.dealer_proof")
	}
	if p.shares == nil {
		return false, pvsserr.UninitializedValue("party.shares")
	}

	k := len(p.shares[0])
	dVals := deriveChallengePowers(p.group, p.suite, p.proof.CVals, k)
	zEvals := p.proof.Z.EvaluateRange(1, p.n)

	var validated []int
	for i := 0; i < p.n; i++ {
		rVal := polynomial.ComputeREval(p.group, zEvals[i], p.shares[i], dVals)
		commitment := commitShare(p.suite, p.shares[i], rVal)
		ok := commitment == p.proof.CVals[i]
		p.log.Debugw("share outcome", "index", i+1, "ok", ok)
		if ok {
			validated = append(validated, i)
		}
	}
	p.validatedShares = validated
	qualifies := len(validated) > p.t
	p.log.Infow("shares verified", "validated", len(validated), "t", p.t, "qualifies", qualifies)
	return qualifies, nil
}

// SelectQualifiedSet draws t+1 of the validated shares at random and
// records them (1-based index, share) as the qualified set reconstruction
// will use. Requires VerifyShares to have validated more than t shares.
// Mirrors Party::select_qualified_set.
func (p *Party) SelectQualifiedSet(rng *rand.Rand) error {
	qs, err := secretsharing.SelectQualifiedSet(rng, p.t, p.shares, p.validatedShares)
	if err != nil {
		return err
	}
	p.qualifiedSet = qs
	p.log.Debugw("qualified set selected", "index", p.index, "size", len(qs))
	return nil
}

// QualifiedSet returns the selected qualified set, or nil if
// SelectQualifiedSet has not run.
func (p *Party) QualifiedSet() []secretsharing.QualifiedEntry[[]curve.Scalar] {
	return p.qualifiedSet
}

// ReconstructSecrets recombines the qualified set into the k original
// secrets, given the Lagrange basis coefficients for the qualified set's
// indices (see secretsharing.ComputeLagrangeBases). Mirrors
// Party::reconstruct_secrets.
func (p *Party) ReconstructSecrets(lambdas []curve.Scalar) ([]curve.Scalar, error) {
	if p.qualifiedSet == nil {
		return nil, pvsserr.UninitializedValue("party.qualified_set")
	}
	secrets := secretsharing.ReconstructSecrets(p.group, p.qualifiedSet, lambdas)
	p.log.Infow("secrets reconstructed", "index", p.index, "k", len(secrets))
	return secrets, nil
}

// GenerateParties builds n parties for an (n, t) session, 1-indexed.
// Mirrors generate_parties.
func GenerateParties(group curve.Group, suite curve.Suite, n, t int) ([]*Party, error) {
	parties := make([]*Party, n)
	for i := 1; i <= n; i++ {
		p, err := NewParty(group, suite, n, t, i)
		if err != nil {
			return nil, err
		}
		parties[i-1] = p
	}
	return parties, nil
}
