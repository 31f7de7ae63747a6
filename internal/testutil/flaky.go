package testutil

import (
	"context"
	"errors"

	"github.com/roach88/fiberna/internal/ir"
	"github.com/roach88/fiberna/internal/store"
)

// ErrInjected is the cause carried by writes FlakyLog rejects.
var ErrInjected = errors.New("injected write failure")

// FlakyLog wraps a store.Log and rejects appends while FailWrites is set.
//
// Used to verify that a rejected durable write never reaches the in-memory
// mirror. Reads and Init pass through unchanged.
type FlakyLog struct {
	store.Log

	// FailWrites makes Append return *ir.StoreWriteError without touching the inner log.
	FailWrites bool

	// Rejected counts appends refused so far.
	Rejected int
}

// NewFlakyLog wraps inner.
func NewFlakyLog(inner store.Log) *FlakyLog {
	return &FlakyLog{Log: inner}
}

// Append implements store.Log.
func (f *FlakyLog) Append(ctx context.Context, rec ir.CalculationRecord) error {
	if f.FailWrites {
		f.Rejected++
		return &ir.StoreWriteError{Location: f.Location(), Op: "append", Err: ErrInjected}
	}
	return f.Log.Append(ctx, rec)
}
