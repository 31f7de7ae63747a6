package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/fiberna/internal/ir"
)

// Log is the durable half of a Store.
type Log interface {
	// Init prepares the backing medium. Must be idempotent.
	Init(ctx context.Context) error

	// ReadAll returns every persisted record, oldest first. On a corrupt row it
	// returns the records read so far together with *ir.CorruptStoreError.
	ReadAll(ctx context.Context) ([]ir.CalculationRecord, error)

	// Append durably writes one record after the existing ones.
	// Failures are reported as *ir.StoreWriteError.
	Append(ctx context.Context, rec ir.CalculationRecord) error

	// Location names the backing medium for logs and error messages.
	Location() string

	Close() error
}

// Store is an append-only record log with an in-memory mirror.
// A Store is not safe for concurrent use.
type Store struct {
	log     Log
	records []ir.CalculationRecord
}

// New wraps log without touching the backing medium.
// Call Initialize and LoadAll (or use Open) before appending.
func New(log Log) *Store {
	return &Store{log: log, records: []ir.CalculationRecord{}}
}

// Open initializes log and loads its records into the mirror.
//
// If loading stops at a corrupt row, Open still returns a usable Store holding
// the records read before it, together with the *ir.CorruptStoreError.
// Any other error returns a nil Store.
func Open(ctx context.Context, log Log) (*Store, error) {
	s := New(log)
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	if _, err := s.LoadAll(ctx); err != nil {
		var corrupt *ir.CorruptStoreError
		if errors.As(err, &corrupt) {
			return s, err
		}
		return nil, err
	}
	return s, nil
}

// Initialize prepares the backing medium. Calling it again is a no-op.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.log.Init(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	return nil
}

// LoadAll reads every persisted record and replaces the mirror with them.
// On *ir.CorruptStoreError the mirror holds the records read before the bad row.
func (s *Store) LoadAll(ctx context.Context) ([]ir.CalculationRecord, error) {
	records, err := s.log.ReadAll(ctx)
	if records == nil {
		records = []ir.CalculationRecord{}
	}
	s.records = records
	if err != nil {
		return s.Snapshot(), fmt.Errorf("load store: %w", err)
	}
	return s.Snapshot(), nil
}

// Append persists rec and then adds it to the mirror.
// The mirror is unchanged if rec is invalid or the durable write fails.
func (s *Store) Append(ctx context.Context, rec ir.CalculationRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	if err := s.log.Append(ctx, rec); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	s.records = append(s.records, rec)
	return nil
}

// Snapshot returns a copy of the mirror in insertion order.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) Snapshot() []ir.CalculationRecord {
	out := make([]ir.CalculationRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the mirror.
func (s *Store) Len() int {
	return len(s.records)
}

// Location names the backing medium.
func (s *Store) Location() string {
	return s.log.Location()
}

// Close releases the backing medium.
func (s *Store) Close() error {
	if s.log == nil {
		return nil
	}
	return s.log.Close()
}
