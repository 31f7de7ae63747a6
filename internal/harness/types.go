package harness

import (
	"github.com/roach88/fiberna/internal/engine"
	"github.com/roach88/fiberna/internal/ir"
)

// Trace event types.
const (
	EventRequest = "request"
	EventOutcome = "outcome"
)

// Step outcomes.
const (
	OutcomeRecorded = "recorded"
	OutcomeRejected = "rejected"
)

// TraceEvent is either a calculation request or its outcome.
type TraceEvent struct {
	Type string `json:"type"` // "request" or "outcome"
	Step int    `json:"step"`

	// Request fields
	Core      *engine.Selection `json:"core,omitempty"`
	Cladding  *engine.Selection `json:"cladding,omitempty"`
	FailWrite bool              `json:"fail_write,omitempty"`

	// Outcome fields
	Outcome   string                `json:"outcome,omitempty"`
	Record    *ir.CalculationRecord `json:"record,omitempty"`
	ErrorKind ir.ErrorKind          `json:"error_kind,omitempty"`

	Seq int64 `json:"seq"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions match.
	Pass bool `json:"pass"`

	// Trace contains every request and outcome in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Records is the final store snapshot.
	Records []ir.CalculationRecord `json:"records"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Records: []ir.CalculationRecord{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddRequestTrace adds a calculation request to the trace.
func (r *Result) AddRequestTrace(step int, s Step, seq int64) {
	core, cladding := s.Core, s.Cladding
	r.Trace = append(r.Trace, TraceEvent{
		Type:      EventRequest,
		Step:      step,
		Core:      &core,
		Cladding:  &cladding,
		FailWrite: s.FailWrite,
		Seq:       seq,
	})
}

// AddOutcomeTrace adds the outcome of a step to the trace.
// A nil err records rec; otherwise the error kind is recorded.
func (r *Result) AddOutcomeTrace(step int, rec ir.CalculationRecord, err error, seq int64) {
	event := TraceEvent{Type: EventOutcome, Step: step, Seq: seq}
	if err != nil {
		event.Outcome = OutcomeRejected
		event.ErrorKind = ir.KindOf(err)
	} else {
		event.Outcome = OutcomeRecorded
		event.Record = &rec
	}
	r.Trace = append(r.Trace, event)
}
