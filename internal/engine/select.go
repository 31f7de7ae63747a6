package engine

import (
	"errors"

	"github.com/roach88/fiberna/internal/catalog"
	"github.com/roach88/fiberna/internal/ir"
)

// Selection is the raw input for one side of the fiber.
type Selection struct {
	// Label is a catalog name or label, or "Custom".
	Label string `json:"label" yaml:"material"`

	// Name and Index are only read when Label does not match a catalog entry.
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Index string `json:"index,omitempty" yaml:"index,omitempty"`
}

// Choose resolves sel against cat. field ("core" or "cladding") is recorded
// on any *ir.ParseError so the caller can point at the bad input.
func Choose(cat *catalog.Catalog, field string, sel Selection) (ir.MaterialChoice, error) {
	choice, err := cat.Choose(sel.Label, sel.Name, sel.Index)
	if err != nil {
		var parseErr *ir.ParseError
		if errors.As(err, &parseErr) && parseErr.Field == "" {
			parseErr.Field = field
		}
		return nil, err
	}
	return choice, nil
}
