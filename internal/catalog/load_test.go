package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fiberna/internal/ir"
)

func TestLoad_YAML(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "lab.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []ir.Material{
		{Name: "Silica", Index: 1.444},
		{Name: "Doped Silica", Index: 1.46},
		{Name: "Air", Index: 1},
	}, c.Materials())
	assert.Equal(t, "Air (1)", c.Options()[2])
}

func TestLoad_CUE(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "lab.cue"))
	require.NoError(t, err)

	m, ok := c.Lookup("Chalcogenide")
	require.True(t, ok)
	assert.Equal(t, 2.4, m.Index)
	assert.Equal(t, 2, c.Len())
}

func TestLoad_SchemaViolation(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "bad_index.yaml"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrSchemaViolation, verr.Code)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "unknown_field.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad_DuplicateInCUE(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "duplicate.cue"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrDuplicateName, verr.Code)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Load(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrSchemaViolation, verr.Code)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := Load(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrUnsupportedFormat, verr.Code)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().Materials(), c.Materials())
}
