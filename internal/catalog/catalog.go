package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/roach88/fiberna/internal/ir"
)

// Catalog is an ordered, immutable set of materials with unique names.
type Catalog struct {
	entries []ir.Material
	byName  map[string]int
	byLabel map[string]int
}

// builtin is the default material table.
var builtin = []ir.Material{
	{Name: "Silica", Index: 1.44},
	{Name: "Fluoride Glass", Index: 1.38},
	{Name: "Polymer (PMMA)", Index: 1.40},
	{Name: "Sapphire", Index: 1.76},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		// The built-in table is static; a failure here is a programming error.
		panic(err)
	}
	return c
}

// New builds a catalog from materials, preserving their order.
// Returns a *ValidationError for empty or duplicate names, the reserved
// name "Custom", or an index that is not a positive finite number.
func New(materials []ir.Material) (*Catalog, error) {
	c := &Catalog{
		entries: make([]ir.Material, 0, len(materials)),
		byName:  make(map[string]int, len(materials)),
		byLabel: make(map[string]int, len(materials)),
	}
	for i, m := range materials {
		m = ir.NewMaterial(m.Name, m.Index)
		if err := validateEntry(i, m); err != nil {
			return nil, err
		}
		if _, dup := c.byName[m.Name]; dup {
			return nil, &ValidationError{
				Code:    ErrDuplicateName,
				Field:   fieldPath(i, "name"),
				Message: "duplicate material name " + strconv.Quote(m.Name),
			}
		}
		c.byName[m.Name] = len(c.entries)
		c.byLabel[m.Label()] = len(c.entries)
		c.entries = append(c.entries, m)
	}
	return c, nil
}

func validateEntry(i int, m ir.Material) error {
	if m.Name == "" {
		return &ValidationError{Code: ErrEmptyName, Field: fieldPath(i, "name"), Message: "name is required"}
	}
	if strings.EqualFold(m.Name, ir.CustomLabel) {
		return &ValidationError{Code: ErrReservedName, Field: fieldPath(i, "name"), Message: "\"Custom\" is reserved for caller-supplied materials"}
	}
	if !(m.Index > 0) || math.IsInf(m.Index, 0) {
		return &ValidationError{Code: ErrInvalidIndex, Field: fieldPath(i, "index"), Message: "index must be a positive number"}
	}
	return nil
}

// Materials returns the catalog entries in order.
func (c *Catalog) Materials() []ir.Material {
	out := make([]ir.Material, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Options returns the selectable labels: one per entry followed by "Custom".
func (c *Catalog) Options() []string {
	opts := make([]string, 0, len(c.entries)+1)
	for _, m := range c.entries {
		opts = append(opts, m.Label())
	}
	return append(opts, ir.CustomLabel)
}

// Lookup finds an entry by exact name or exact label ("Silica (1.44)").
// Names are compared after trimming and NFC normalization.
func (c *Catalog) Lookup(selection string) (ir.Material, bool) {
	key := ir.NormalizeName(selection)
	if i, ok := c.byName[key]; ok {
		return c.entries[i], true
	}
	if i, ok := c.byLabel[key]; ok {
		return c.entries[i], true
	}
	return ir.Material{}, false
}

// Choose turns a selection into a MaterialChoice.
//
// A selection matching a catalog entry returns that entry and ignores the
// custom fields. Any other selection, including "Custom", is treated as a
// custom material: customName is used as given and customIndex is parsed.
func (c *Catalog) Choose(selection, customName, customIndex string) (ir.MaterialChoice, error) {
	if m, ok := c.Lookup(selection); ok {
		return ir.NamedMaterial{Name: m.Name, Index: m.Index}, nil
	}
	index, err := ParseIndex(customIndex)
	if err != nil {
		return nil, err
	}
	return ir.CustomMaterial{Name: customName, Index: index}, nil
}

// Resolve is Choose flattened to a name and index.
func (c *Catalog) Resolve(selection, customName, customIndex string) (string, float64, error) {
	choice, err := c.Choose(selection, customName, customIndex)
	if err != nil {
		return "", 0, err
	}
	m := choice.Material()
	return m.Name, m.Index, nil
}

// ParseIndex parses a refractive index typed by the user.
// Returns *ir.ParseError if text is not a finite real number.
func ParseIndex(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &ir.ParseError{Text: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ir.ParseError{Text: text}
	}
	return v, nil
}
