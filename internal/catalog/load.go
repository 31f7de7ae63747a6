package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/fiberna/internal/ir"
)

//go:embed schema.cue
var schemaCUE string

// File is the on-disk shape of a catalog.
type File struct {
	Materials []ir.Material `json:"materials" yaml:"materials"`
}

// Load reads a catalog file. The format is chosen by extension:
// .yaml/.yml are decoded with strict field checking, .cue is evaluated.
// Both are validated against schema.cue, then against the catalog rules in New.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		file, err = parseYAML(path, data)
	case ".cue":
		file, err = parseCUE(path, data)
	default:
		return nil, &ValidationError{
			Code:    ErrUnsupportedFormat,
			Message: fmt.Sprintf("unsupported catalog format %q (want .yaml, .yml or .cue)", ext),
		}
	}
	if err != nil {
		return nil, err
	}

	return New(file.Materials)
}

// LoadOrDefault returns the built-in catalog when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func parseYAML(path string, data []byte) (*File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Code: ErrSchemaViolation, Field: "materials", Message: "catalog file is empty"}
		}
		return nil, fmt.Errorf("failed to parse catalog YAML %s: %w", path, err)
	}

	// Validate the decoded structure through the same schema as .cue files.
	ctx := cuecontext.New()
	if err := validateAgainstSchema(ctx, ctx.Encode(file)); err != nil {
		return nil, err
	}
	return &file, nil
}

func parseCUE(path string, data []byte) (*File, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := validateAgainstSchema(ctx, v); err != nil {
		return nil, err
	}

	var file File
	if err := v.Decode(&file); err != nil {
		return nil, formatCUEError(err)
	}
	return &file, nil
}

func validateAgainstSchema(ctx *cue.Context, v cue.Value) error {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError converts the first CUE error to a ValidationError with position info.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Code: ErrSchemaViolation, Message: err.Error()}
	}

	first := errs[0]
	verr := &ValidationError{
		Code:    ErrSchemaViolation,
		Field:   strings.Join(first.Path(), "."),
		Message: first.Error(),
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		verr.Pos = positions[0]
	}
	return verr
}
