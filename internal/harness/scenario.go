package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fiberna/internal/engine"
	"github.com/roach88/fiberna/internal/ir"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is an optional catalog file. Relative paths are resolved
	// against the scenario file's directory. Empty uses the built-in catalog.
	Catalog string `yaml:"catalog,omitempty"`

	// Steps are executed in order, one calculation each.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store and trace.
	// Supported types: record_count, record_contains, scatter_order
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one calculation request.
type Step struct {
	Core     engine.Selection `yaml:"core"`
	Cladding engine.Selection `yaml:"cladding"`

	// FailWrite makes the store reject this step's append.
	FailWrite bool `yaml:"fail_write,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, no validation is performed for this step.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
// Exactly one of NA and Error is set.
type ExpectClause struct {
	// NA is the expected rounded NA of a recorded calculation.
	NA *float64 `yaml:"na,omitempty"`

	// Error is the expected ir.ErrorKind of a rejected calculation.
	Error ir.ErrorKind `yaml:"error,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "record_count": the store holds exactly Count records
	// - "record_contains": some record matches Record
	// - "scatter_order": scatter labels equal Labels
	Type string `yaml:"type"`

	// Count is the expected record count (used by record_count).
	Count *int `yaml:"count,omitempty"`

	// Record is a subset match on record fields (used by record_contains).
	Record *RecordMatch `yaml:"record,omitempty"`

	// Labels are the expected cladding names in scatter order (used by scatter_order).
	Labels []string `yaml:"labels,omitempty"`
}

// RecordMatch matches a record on the fields that are set.
type RecordMatch struct {
	Core       string   `yaml:"core,omitempty"`
	CoreRI     *float64 `yaml:"core_ri,omitempty"`
	Cladding   string   `yaml:"cladding,omitempty"`
	CladdingRI *float64 `yaml:"cladding_ri,omitempty"`
	NA         *float64 `yaml:"na,omitempty"`
}

// Assertion type constants.
const (
	AssertRecordCount    = "record_count"
	AssertRecordContains = "record_contains"
	AssertScatterOrder   = "scatter_order"
)

// knownKinds are the error kinds a step may expect.
var knownKinds = map[ir.ErrorKind]bool{
	ir.KindParse:          true,
	ir.KindMissingName:    true,
	ir.KindInvalidPhysics: true,
	ir.KindStoreWrite:     true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(filepath.Dir(path), scenario.Catalog)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.Catalog != "" {
		if _, err := os.Stat(s.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", s.Catalog)
		}
	}

	for i, step := range s.Steps {
		if step.Core.Label == "" {
			return fmt.Errorf("steps[%d]: core.material is required", i)
		}
		if step.Cladding.Label == "" {
			return fmt.Errorf("steps[%d]: cladding.material is required", i)
		}
		if step.Expect == nil {
			continue
		}
		if (step.Expect.NA == nil) == (step.Expect.Error == "") {
			return fmt.Errorf("steps[%d].expect: exactly one of na or error is required", i)
		}
		if step.Expect.Error != "" && !knownKinds[step.Expect.Error] {
			return fmt.Errorf("steps[%d].expect: unknown error kind %q", i, step.Expect.Error)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRecordCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for record_count", index)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for record_count", index)
		}
	case AssertRecordContains:
		if a.Record == nil {
			return fmt.Errorf("assertions[%d]: record is required for record_contains", index)
		}
	case AssertScatterOrder:
		if a.Labels == nil {
			return fmt.Errorf("assertions[%d]: labels list is required for scatter_order", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
