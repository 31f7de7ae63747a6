package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/fiberna/internal/catalog"
	"github.com/roach88/fiberna/internal/engine"
	"github.com/roach88/fiberna/internal/ir"
	"github.com/roach88/fiberna/internal/store"
	"github.com/roach88/fiberna/internal/testutil"
)

// naTolerance absorbs float noise when comparing expected and actual NA.
const naTolerance = 1e-9

// Harness is the test execution engine.
// It runs scenarios against the real engine with deterministic row IDs.
type Harness struct {
	engine *engine.Engine
	store  *store.Store
	log    *testutil.FlakyLog
	seq    int64
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Load the scenario catalog (or the built-in one)
// 2. Create fresh in-memory store behind a FlakyLog
// 3. Execute steps with expect validation
// 4. Evaluate assertions against the final store
func Run(scenario *Scenario) (*Result, error) {
	cat, err := catalog.LoadOrDefault(scenario.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	sqlite, err := store.OpenSQLite(":memory:", testutil.NewSequentialIDs("calc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	flaky := testutil.NewFlakyLog(sqlite)

	ctx := context.Background()
	st, err := store.Open(ctx, flaky)
	if err != nil {
		sqlite.Close()
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	h := &Harness{
		engine: engine.New(st, engine.WithCatalog(cat), engine.WithLogger(logger)),
		store:  st,
		log:    flaky,
		logger: logger,
	}

	result := NewResult()
	h.executeSteps(ctx, scenario.Steps, result)

	result.Records = st.Snapshot()
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

func (h *Harness) next() int64 {
	h.seq++
	return h.seq
}

// executeSteps runs every step and validates its expect clause.
// A failed step is recorded on the result and execution continues.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) {
	for i, step := range steps {
		result.AddRequestTrace(i, step, h.next())

		h.log.FailWrites = step.FailWrite
		rec, err := h.engine.CalculateSelections(ctx, step.Core, step.Cladding)
		h.log.FailWrites = false

		result.AddOutcomeTrace(i, rec, err, h.next())

		if msg := checkExpect(i, step.Expect, rec, err); msg != "" {
			result.AddError(msg)
		}

		h.logger.Info("step completed",
			"step", i,
			"core", step.Core.Label,
			"cladding", step.Cladding.Label,
			"kind", ir.KindOf(err),
			"records", h.store.Len(),
		)
	}
}

// checkExpect returns a failure message, or "" when the outcome matches.
func checkExpect(i int, expect *ExpectClause, rec ir.CalculationRecord, err error) string {
	if expect == nil {
		return ""
	}

	if expect.NA != nil {
		if err != nil {
			return fmt.Sprintf("steps[%d]: expected NA %s, got error: %v", i, ir.FormatNumber(*expect.NA), err)
		}
		if math.Abs(rec.NA-*expect.NA) > naTolerance {
			return fmt.Sprintf("steps[%d]: expected NA %s, got %s", i, ir.FormatNumber(*expect.NA), ir.FormatNumber(rec.NA))
		}
		return ""
	}

	if err == nil {
		return fmt.Sprintf("steps[%d]: expected %s error, got NA %s", i, expect.Error, ir.FormatNumber(rec.NA))
	}
	if kind := ir.KindOf(err); kind != expect.Error {
		return fmt.Sprintf("steps[%d]: expected %s error, got %s: %v", i, expect.Error, kind, err)
	}
	return ""
}
