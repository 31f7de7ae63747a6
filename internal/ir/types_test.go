package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFieldNaming(t *testing.T) {
	rec := CalculationRecord{
		CoreMaterial:     "Silica",
		CoreRI:           1.44,
		CladdingMaterial: "Fluoride Glass",
		CladdingRI:       1.38,
		NA:               0.411,
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"core_material":"Silica","core_ri":1.44,"cladding_material":"Fluoride Glass","cladding_ri":1.38,"na":0.411}`,
		string(data))
	assert.NotContains(t, string(data), `"coreMaterial"`)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		index float64
		want  string
	}{
		{"Silica", 1.44, "Silica (1.44)"},
		{"Polymer (PMMA)", 1.40, "Polymer (PMMA) (1.4)"},
		{"Air", 1, "Air (1)"},
		{"Sapphire", 1.76, "Sapphire (1.76)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.name, tt.index))
			assert.Equal(t, tt.want, Material{Name: tt.name, Index: tt.index}.Label())
		})
	}
}

func TestMaterialChoice(t *testing.T) {
	var named MaterialChoice = NamedMaterial{Name: "Silica", Index: 1.44}
	var custom MaterialChoice = CustomMaterial{Name: "  Glass ", Index: 1.5}

	assert.False(t, named.IsCustom())
	assert.True(t, custom.IsCustom())
	assert.Equal(t, Material{Name: "Silica", Index: 1.44}, named.Material())
	assert.Equal(t, Material{Name: "Glass", Index: 1.5}, custom.Material(), "custom names are trimmed")
}

func TestNormalizeName(t *testing.T) {
	// "é" as e + combining acute accent vs. precomposed U+00E9
	decomposed := "Verre Fluore\u0301"
	precomposed := "Verre Fluor\u00e9"

	assert.Equal(t, precomposed, NormalizeName(decomposed))
	assert.Equal(t, "Silica", NormalizeName("\tSilica \n"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestRecordValidate(t *testing.T) {
	valid := CalculationRecord{CoreMaterial: "Silica", CoreRI: 1.44, CladdingMaterial: "Fluoride Glass", CladdingRI: 1.38, NA: 0.411}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mut  func(r *CalculationRecord)
		kind ErrorKind
	}{
		{"empty core name", func(r *CalculationRecord) { r.CoreMaterial = "" }, KindMissingName},
		{"empty cladding name", func(r *CalculationRecord) { r.CladdingMaterial = "" }, KindMissingName},
		{"equal indices", func(r *CalculationRecord) { r.CladdingRI = r.CoreRI }, KindInvalidPhysics},
		{"cladding denser", func(r *CalculationRecord) { r.CladdingRI = 1.5 }, KindInvalidPhysics},
		{"NaN NA", func(r *CalculationRecord) { r.NA = math.NaN() }, KindInvalidPhysics},
		{"negative cladding", func(r *CalculationRecord) { r.CladdingRI = -1 }, KindInvalidPhysics},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mut(&r)
			assert.Equal(t, tt.kind, KindOf(r.Validate()))
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, ""},
		{&ParseError{Text: "abc"}, KindParse},
		{fmt.Errorf("resolve core: %w", &ParseError{Text: "abc"}), KindParse},
		{&MissingNameError{Field: FieldCore}, KindMissingName},
		{&InvalidPhysicsError{CoreIndex: 1, CladdingIndex: 2}, KindInvalidPhysics},
		{&CorruptStoreError{Line: 3}, KindCorruptStore},
		{fmt.Errorf("not persisted: %w", &StoreWriteError{Op: "append"}), KindStoreWrite},
		{&EmptyDataError{Chart: "bar"}, KindEmptyData},
		{fmt.Errorf("plain"), KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), "KindOf(%v)", tt.err)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `core refractive index "abc" is not a valid number`,
		(&ParseError{Field: FieldCore, Text: "abc"}).Error())
	assert.Equal(t, "cladding material name must be provided",
		(&MissingNameError{Field: FieldCladding}).Error())
	assert.Equal(t, "core refractive index (1.38) must be greater than cladding refractive index (1.44)",
		(&InvalidPhysicsError{CoreIndex: 1.38, CladdingIndex: 1.44}).Error())
	assert.Equal(t, "corrupt store data.csv: row 3: expected 5 fields, got 4",
		(&CorruptStoreError{Location: "data.csv", Line: 3, Reason: "expected 5 fields, got 4"}).Error())
}

func TestEmptyDataErrorIs(t *testing.T) {
	err := fmt.Errorf("chart: %w", &EmptyDataError{Chart: "scatter"})
	assert.ErrorIs(t, err, ErrNoData)
}
