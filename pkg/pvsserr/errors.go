// Package pvsserr defines the structured error taxonomy shared across the
// polynomial, transcript, secret-sharing and protocol packages.
//
// The shape mirrors the original Rust crate's error_chain! definition
// (common/src/error.rs): each failure mode carries the fields a caller needs
// to report a useful diagnostic, rather than collapsing to a bare string.
package pvsserr

import "fmt"

// Kind identifies which invariant failed.
type Kind int

const (
	// KindCountMismatch reports that two related slices disagree in length.
	KindCountMismatch Kind = iota
	// KindDecompressionFailure reports that a compressed point failed to decode.
	KindDecompressionFailure
	// KindInvalidParameterSet reports an (n, t, index) triple that violates
	// the t == floor((n-1)/2) batched-VSS constraint, or a similar
	// out-of-range parameter.
	KindInvalidParameterSet
	// KindInvalidProof reports a dealer proof whose shape does not match
	// the expected (n, t) sizes.
	KindInvalidProof
	// KindInsufficientShares reports fewer validated shares than the
	// reconstruction threshold requires.
	KindInsufficientShares
	// KindUninitializedValue reports a call made before its prerequisite
	// ingestion/generation step.
	KindUninitializedValue
)

func (k Kind) String() string {
	switch k {
	case KindCountMismatch:
		return "count_mismatch"
	case KindDecompressionFailure:
		return "decompression_failure"
	case KindInvalidParameterSet:
		return "invalid_parameter_set"
	case KindInvalidProof:
		return "invalid_proof"
	case KindInsufficientShares:
		return "insufficient_shares"
	case KindUninitializedValue:
		return "uninitialized_value"
	default:
		return "unknown"
	}
}

// Error is the structured error type this module returns for the failure
// kinds listed above. Lower-level failures (pkg/curve's point decoding,
// power-table scalar decoding, TOML parsing) are returned as ordinary
// wrapped errors instead. Use errors.As to recover the Kind and its fields.
type Error struct {
	Kind Kind

	// CountMismatch fields.
	Count1     int
	Count1Type string
	Count2     int
	Count2Type string

	// DecompressionFailure / InvalidProof fields.
	Detail string

	// InvalidParameterSet fields.
	N     int
	T     int
	Index int

	// InsufficientShares fields.
	Have int
	Need int

	// UninitializedValue field.
	Field string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindCountMismatch:
		return fmt.Sprintf("count mismatch: %d %s vs %d %s", e.Count1, e.Count1Type, e.Count2, e.Count2Type)
	case KindDecompressionFailure:
		return fmt.Sprintf("point decompression failure: %s", e.Detail)
	case KindInvalidParameterSet:
		return fmt.Sprintf("invalid parameter set: n=%d t=%d index=%d", e.N, e.T, e.Index)
	case KindInvalidProof:
		return fmt.Sprintf("invalid proof: %s", e.Detail)
	case KindInsufficientShares:
		return fmt.Sprintf("insufficient shares: have %d, need more than %d", e.Have, e.Need)
	case KindUninitializedValue:
		return fmt.Sprintf("uninitialized value: %s", e.Field)
	default:
		return "pvss error"
	}
}

// Is reports whether target is a *Error with the same Kind, so that
// errors.Is(err, pvsserr.CountMismatch(0, "", 0, "")) style checks by Kind
// work without comparing the payload fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// CountMismatch reports that count1 (labelled type1) and count2 (labelled
// type2) were expected to agree but did not.
func CountMismatch(count1 int, type1 string, count2 int, type2 string) *Error {
	return &Error{Kind: KindCountMismatch, Count1: count1, Count1Type: type1, Count2: count2, Count2Type: type2}
}

// DecompressionFailure reports that a compressed point failed to decode,
// with detail describing which one and why.
func DecompressionFailure(detail string) *Error {
	return &Error{Kind: KindDecompressionFailure, Detail: detail}
}

// InvalidParameterSet reports that (n, t, index) do not satisfy the
// batched-VSS parameter constraints.
func InvalidParameterSet(n, t, index int) *Error {
	return &Error{Kind: KindInvalidParameterSet, N: n, T: t, Index: index}
}

// InvalidProof reports that an ingested dealer proof's shape does not match
// what was expected, with detail describing the mismatch.
func InvalidProof(detail string) *Error {
	return &Error{Kind: KindInvalidProof, Detail: detail}
}

// InsufficientShares reports that have validated shares is not enough to
// reconstruct with threshold need.
func InsufficientShares(have, need int) *Error {
	return &Error{Kind: KindInsufficientShares, Have: have, Need: need}
}

// UninitializedValue reports that field was read before it was populated.
func UninitializedValue(field string) *Error {
	return &Error{Kind: KindUninitializedValue, Field: field}
}
