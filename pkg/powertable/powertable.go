// Package powertable implements the precomputed per-index power vectors
// [1, i, i^2, ..., i^t] for i in [1, n] that the batched evaluation hot
// path (polynomial.EvaluateManyRangePrecomp) reuses across many dealings
// against the same (n, t).
//
// Grounded on common/src/precompute.rs of the original Rust crate
// (gen_powers / XPowTable). Unlike the Rust source, this package does not
// hardcode a fixed set of (n, t) pairs behind a JSON file on disk; Generate
// builds the table for any (n, t) directly, and the binary/TOML
// marshaling below exist so a table can still be computed once and shared
// across sessions, per spec's "optional canonical, self-describing
// serialization" note.
package powertable

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/georgio/pi-vss/pkg/curve"
	"github.com/georgio/pi-vss/pkg/pvsserr"
)

// Table holds, for a fixed (N, T), one row per party index i in [1, N]:
// Rows[i-1] = [1, i, i^2, ..., i^T].
type Table struct {
	N, T  int
	Rows  [][]curve.Scalar
	group curve.Group
}

// Row returns the power vector for 1-based index i.
func (tbl *Table) Row(i int) []curve.Scalar {
	return tbl.Rows[i-1]
}

// Generate builds the power table for every index in [1, n], each row
// holding powers [1, i, ..., i^t] (t+1 entries), matching what a degree-t
// polynomial's EvaluateRangePrecomp needs.
func Generate(group curve.Group, n, t int) *Table {
	rows := make([][]curve.Scalar, n)
	for i := 1; i <= n; i++ {
		row := make([]curve.Scalar, t+1)
		row[0] = group.Scalar().One()
		if t >= 1 {
			row[1] = group.Scalar().SetInt64(int64(i))
		}
		for k := 2; k <= t; k++ {
			row[k] = group.Scalar().Mul(row[1], row[k-1])
		}
		rows[i-1] = row
	}
	return &Table{N: n, T: t, Rows: rows, group: group}
}

// MarshalBinary produces a canonical, self-describing encoding: an 8-byte
// N, an 8-byte T, then N*(T+1) fixed-length marshaled scalars in row-major
// order.
func (tbl *Table) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, uint64(tbl.N)); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, uint64(tbl.T)); err != nil {
		return nil, err
	}
	for _, row := range tbl.Rows {
		for _, s := range row {
			b, err := s.MarshalBinary()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a table previously produced by MarshalBinary
// under the given group, validating that the byte length matches the
// declared (N, T) before trusting any row.
func UnmarshalBinary(group curve.Group, data []byte) (*Table, error) {
	if len(data) < 16 {
		return nil, pvsserr.InvalidProof("power table: truncated header")
	}
	n := int(binary.BigEndian.Uint64(data[0:8]))
	t := int(binary.BigEndian.Uint64(data[8:16]))
	scalarLen := group.ScalarLen()
	want := 16 + n*(t+1)*scalarLen
	if len(data) != want {
		return nil, pvsserr.CountMismatch(want, "bytes expected", len(data), "bytes present")
	}
	rows := make([][]curve.Scalar, n)
	off := 16
	for i := 0; i < n; i++ {
		row := make([]curve.Scalar, t+1)
		for k := 0; k <= t; k++ {
			s := group.Scalar()
			if err := s.UnmarshalBinary(data[off : off+scalarLen]); err != nil {
				return nil, fmt.Errorf("power table row %d entry %d: %w", i, k, err)
			}
			row[k] = s
			off += scalarLen
		}
		rows[i] = row
	}
	return &Table{N: n, T: t, Rows: rows, group: group}, nil
}

// tomlShadow is the TOML-marshalable representation: scalars become
// hex-encoded strings, following the same pointToString/scalarToString
// idiom the teacher repo uses to persist kyber values.
type tomlShadow struct {
	N    int        `toml:"n"`
	T    int        `toml:"t"`
	Rows [][]string `toml:"rows"`
}

// TOML renders the table as a TOML-serializable value.
func (tbl *Table) TOML() (interface{}, error) {
	rows := make([][]string, len(tbl.Rows))
	for i, row := range tbl.Rows {
		strs := make([]string, len(row))
		for k, s := range row {
			b, err := s.MarshalBinary()
			if err != nil {
				return nil, err
			}
			strs[k] = hex.EncodeToString(b)
		}
		rows[i] = strs
	}
	return &tomlShadow{N: tbl.N, T: tbl.T, Rows: rows}, nil
}

// FromTOML parses a TOML document previously produced by TOML, under the
// given group.
func FromTOML(group curve.Group, data []byte) (*Table, error) {
	var shadow tomlShadow
	if err := toml.Unmarshal(data, &shadow); err != nil {
		return nil, err
	}
	if len(shadow.Rows) != shadow.N {
		return nil, pvsserr.CountMismatch(shadow.N, "declared rows", len(shadow.Rows), "present rows")
	}
	rows := make([][]curve.Scalar, shadow.N)
	for i, strs := range shadow.Rows {
		if len(strs) != shadow.T+1 {
			return nil, pvsserr.CountMismatch(shadow.T+1, "declared row length", len(strs), "present row length")
		}
		row := make([]curve.Scalar, len(strs))
		for k, hexStr := range strs {
			b, err := hex.DecodeString(hexStr)
			if err != nil {
				return nil, err
			}
			s := group.Scalar()
			if err := s.UnmarshalBinary(b); err != nil {
				return nil, err
			}
			row[k] = s
		}
		rows[i] = row
	}
	return &Table{N: shadow.N, T: shadow.T, Rows: rows, group: group}, nil
}
