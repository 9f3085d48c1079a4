// internal/confidence/record.go
// Package confidence loads and validates AlphaFold3 confidence records.
package confidence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// MarkerKey is the JSON key whose presence identifies a confidence record.
const MarkerKey = "atom_chain_ids"

var (
	// ErrNotConfidenceRecord reports a JSON document that lacks MarkerKey.
	// Callers treat it as "not applicable", not as a failure.
	ErrNotConfidenceRecord = errors.New("not a confidence record")
	// ErrInvalidRecord reports a confidence record with missing, ill-typed or
	// inconsistent fields.
	ErrInvalidRecord = errors.New("invalid confidence record")
)

// Record is the subset of an AlphaFold3 *_confidences.json document needed for plotting.
type Record struct {
	AtomPLDDTs    []float64   `json:"atom_plddts"`
	AtomChainIDs  []string    `json:"atom_chain_ids"`
	PAE           [][]float64 `json:"pae"`
	TokenChainIDs []string    `json:"token_chain_ids"`
}

// Load reads and decodes the record at path from fs.
func Load(fs afero.Fs, path string) (Record, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Record{}, fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := Decode(data)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Decode parses raw JSON into a Record. Documents without MarkerKey return
// ErrNotConfidenceRecord; documents that carry it are checked against the
// record schema and the shape invariants before being returned.
func Decode(data []byte) (Record, error) {
	if !json.Valid(data) {
		var probe any
		return Record{}, fmt.Errorf("decode json: %w", json.Unmarshal(data, &probe))
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		// valid JSON that is not an object
		return Record{}, ErrNotConfidenceRecord
	}
	if _, ok := keys[MarkerKey]; !ok {
		return Record{}, ErrNotConfidenceRecord
	}

	if err := validateSchema(data); err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Validate checks the length and shape invariants between the record's arrays.
func (r Record) Validate() error {
	if len(r.AtomPLDDTs) == 0 {
		return fmt.Errorf("%w: atom_plddts is empty", ErrInvalidRecord)
	}
	if len(r.AtomPLDDTs) != len(r.AtomChainIDs) {
		return fmt.Errorf("%w: atom_plddts has %d values but atom_chain_ids has %d",
			ErrInvalidRecord, len(r.AtomPLDDTs), len(r.AtomChainIDs))
	}
	n := len(r.TokenChainIDs)
	if n == 0 {
		return fmt.Errorf("%w: token_chain_ids is empty", ErrInvalidRecord)
	}
	if len(r.PAE) != n {
		return fmt.Errorf("%w: pae has %d rows but token_chain_ids has %d entries",
			ErrInvalidRecord, len(r.PAE), n)
	}
	for i, row := range r.PAE {
		if len(row) != n {
			return fmt.Errorf("%w: pae row %d has %d columns, want %d",
				ErrInvalidRecord, i, len(row), n)
		}
	}
	return nil
}

// AtomSegments returns the chain segments of the per-atom arrays.
func (r Record) AtomSegments() []Segment {
	return Segments(r.AtomChainIDs)
}

// TokenSegments returns the chain segments of the PAE rows and columns.
func (r Record) TokenSegments() []Segment {
	return Segments(r.TokenChainIDs)
}
