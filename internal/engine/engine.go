package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/fiberna/internal/aperture"
	"github.com/roach88/fiberna/internal/catalog"
	"github.com/roach88/fiberna/internal/ir"
	"github.com/roach88/fiberna/internal/store"
)

// Engine runs calculations against a record store.
//
// The engine is synchronous and single-threaded: one calculation is handled
// at a time, and the store it owns must not be shared with another writer.
type Engine struct {
	store   *store.Store
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCatalog sets the catalog used by CalculateSelections. Default: catalog.Default().
func WithCatalog(cat *catalog.Catalog) Option {
	return func(e *Engine) {
		if cat != nil {
			e.catalog = cat
		}
	}
}

// New creates an Engine appending to st.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   st,
		catalog: catalog.Default(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog used by CalculateSelections.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Calculate computes the NA for core over cladding and persists the record.
//
// Returns the record only once it is stored. Errors:
//   - *ir.MissingNameError, *ir.InvalidPhysicsError from the calculator
//   - *NotPersistedError wrapping *ir.StoreWriteError when the append fails
func (e *Engine) Calculate(ctx context.Context, core, cladding ir.MaterialChoice) (ir.CalculationRecord, error) {
	if core == nil {
		return ir.CalculationRecord{}, &ir.MissingNameError{Field: ir.FieldCore}
	}
	if cladding == nil {
		return ir.CalculationRecord{}, &ir.MissingNameError{Field: ir.FieldCladding}
	}

	rec, err := aperture.CalculateMaterials(core.Material(), cladding.Material())
	if err != nil {
		e.logger.Debug("calculation rejected", "kind", ir.KindOf(err), "error", err)
		return ir.CalculationRecord{}, err
	}

	if err := e.store.Append(ctx, rec); err != nil {
		e.logger.Warn("calculation not persisted", "store", e.store.Location(), "error", err)
		return ir.CalculationRecord{}, &NotPersistedError{Record: rec, Err: err}
	}

	e.logger.Info("calculation recorded",
		"core", rec.CoreMaterial,
		"core_ri", rec.CoreRI,
		"custom_core", core.IsCustom(),
		"cladding", rec.CladdingMaterial,
		"cladding_ri", rec.CladdingRI,
		"custom_cladding", cladding.IsCustom(),
		"na", rec.NA,
		"records", e.store.Len(),
	)
	return rec, nil
}

// CalculateSelections resolves raw selections against the engine's catalog
// and then runs Calculate. A malformed custom index fails with *ir.ParseError
// before anything is computed.
func (e *Engine) CalculateSelections(ctx context.Context, core, cladding Selection) (ir.CalculationRecord, error) {
	coreChoice, err := Choose(e.catalog, ir.FieldCore, core)
	if err != nil {
		return ir.CalculationRecord{}, err
	}
	claddingChoice, err := Choose(e.catalog, ir.FieldCladding, cladding)
	if err != nil {
		return ir.CalculationRecord{}, err
	}
	return e.Calculate(ctx, coreChoice, claddingChoice)
}

// Records returns the store snapshot, oldest first.
func (e *Engine) Records() []ir.CalculationRecord {
	return e.store.Snapshot()
}
