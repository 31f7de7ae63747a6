package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fiberna/internal/ir"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: test_scenario
description: "Test scenario for validation"
steps:
  - core: { material: Custom, name: "Doped Silica", index: 1.46 }
    cladding: { material: Silica }
    fail_write: true
    expect: { error: store_write }
assertions:
  - type: record_count
    count: 0
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	require.Len(t, scenario.Steps, 1)
	step := scenario.Steps[0]
	assert.Equal(t, ir.CustomLabel, step.Core.Label)
	assert.Equal(t, "Doped Silica", step.Core.Name)
	assert.Equal(t, "1.46", step.Core.Index)
	assert.True(t, step.FailWrite)
	assert.Equal(t, ir.KindStoreWrite, step.Expect.Error)
	require.NotNil(t, scenario.Assertions[0].Count)
	assert.Equal(t, 0, *scenario.Assertions[0].Count)
}

func TestLoadScenario_ResolvesCatalogRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lab.yaml"),
		[]byte("materials:\n  - name: Silica\n    index: 1.44\n"), 0644))
	path := writeScenario(t, dir, `
name: with_catalog
description: "catalog path"
catalog: lab.yaml
steps:
  - core: { material: Silica }
    cladding: { material: Silica }
assertions:
  - type: record_count
    count: 0
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lab.yaml"), scenario.Catalog)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: typo
description: "typo"
steps:
  - core: { material: Silica }
    cladding: { material: Silica }
assertion:
  - type: record_count
    count: 0
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps: [{core: {material: A}, cladding: {material: B}}]\nassertions: [{type: record_count, count: 1}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps: [{core: {material: A}, cladding: {material: B}}]\nassertions: [{type: record_count, count: 1}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\nsteps: []\nassertions: [{type: record_count, count: 1}]\n",
			wantErr: "steps list is required",
		},
		{
			name:    "no assertions",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}}]\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "step without cladding",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}}]\nassertions: [{type: record_count, count: 1}]\n",
			wantErr: "steps[0]: cladding.material is required",
		},
		{
			name:    "expect both",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}, expect: {na: 1, error: parse}}]\nassertions: [{type: record_count, count: 1}]\n",
			wantErr: "exactly one of na or error",
		},
		{
			name:    "expect neither",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}, expect: {}}]\nassertions: [{type: record_count, count: 1}]\n",
			wantErr: "exactly one of na or error",
		},
		{
			name:    "unknown error kind",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}, expect: {error: boom}}]\nassertions: [{type: record_count, count: 1}]\n",
			wantErr: `unknown error kind "boom"`,
		},
		{
			name:    "record_count without count",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}}]\nassertions: [{type: record_count}]\n",
			wantErr: "count is required",
		},
		{
			name:    "negative count",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}}]\nassertions: [{type: record_count, count: -1}]\n",
			wantErr: "count must be non-negative",
		},
		{
			name:    "record_contains without record",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}}]\nassertions: [{type: record_contains}]\n",
			wantErr: "record is required",
		},
		{
			name:    "scatter_order without labels",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}}]\nassertions: [{type: scatter_order}]\n",
			wantErr: "labels list is required",
		},
		{
			name:    "unknown assertion",
			content: "name: n\ndescription: d\nsteps: [{core: {material: A}, cladding: {material: B}}]\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "catalog not found",
			content: "name: n\ndescription: d\ncatalog: missing.yaml\nsteps: [{core: {material: A}, cladding: {material: B}}]\nassertions: [{type: record_count, count: 1}]\n",
			wantErr: "catalog file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
