package aperture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fiberna/internal/ir"
)

func TestCalculate_KnownPairs(t *testing.T) {
	tests := []struct {
		name     string
		core     ir.Material
		cladding ir.Material
		wantNA   float64
	}{
		{"silica over fluoride glass", ir.Material{Name: "Silica", Index: 1.44}, ir.Material{Name: "Fluoride Glass", Index: 1.38}, 0.411},
		{"sapphire over silica", ir.Material{Name: "Sapphire", Index: 1.76}, ir.Material{Name: "Silica", Index: 1.44}, 1.012},
		{"silica over PMMA", ir.Material{Name: "Silica", Index: 1.44}, ir.Material{Name: "Polymer (PMMA)", Index: 1.40}, 0.337},
		{"zero cladding", ir.Material{Name: "Glass", Index: 1.5}, ir.Material{Name: "Vacuum", Index: 0}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := CalculateMaterials(tt.core, tt.cladding)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNA, rec.NA)
			assert.Equal(t, tt.core.Name, rec.CoreMaterial)
			assert.Equal(t, tt.core.Index, rec.CoreRI)
			assert.Equal(t, tt.cladding.Name, rec.CladdingMaterial)
			assert.Equal(t, tt.cladding.Index, rec.CladdingRI)
			assert.NoError(t, rec.Validate())
		})
	}
}

func TestCalculate_MatchesFormula(t *testing.T) {
	for a := 0.05; a < 2.6; a += 0.05 {
		for b := 0.0; b < a; b += 0.07 {
			rec, err := Calculate("core", a, "cladding", b)
			require.NoError(t, err, "a=%v b=%v", a, b)

			want := math.Round(math.Sqrt(a*a-b*b)*1000) / 1000
			assert.Equal(t, want, rec.NA, "a=%v b=%v", a, b)
			assert.GreaterOrEqual(t, rec.NA, 0.0)
			assert.Greater(t, rec.CoreRI, rec.CladdingRI)
		}
	}
}

func TestCalculate_InvalidPhysics(t *testing.T) {
	tests := []struct {
		name          string
		core, cladding float64
	}{
		{"equal", 1.44, 1.44},
		{"cladding denser", 1.38, 1.44},
		{"both zero", 0, 0},
		{"negative cladding", 1.44, -1.5},
		{"NaN core", math.NaN(), 1.38},
		{"infinite core", math.Inf(1), 1.38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate("Silica", tt.core, "Fluoride Glass", tt.cladding)
			require.Error(t, err)

			var physErr *ir.InvalidPhysicsError
			require.ErrorAs(t, err, &physErr)
			assert.Equal(t, ir.KindInvalidPhysics, ir.KindOf(err))
		})
	}
}

func TestCalculate_MissingName(t *testing.T) {
	_, err := Calculate("", 1.44, "Fluoride Glass", 1.38)
	var nameErr *ir.MissingNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, ir.FieldCore, nameErr.Field)

	_, err = Calculate("Silica", 1.44, "   ", 1.38)
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, ir.FieldCladding, nameErr.Field)

	// Names are checked before the physics.
	_, err = Calculate("", 1.0, "", 2.0)
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, ir.FieldCore, nameErr.Field)
}

func TestCalculate_NormalizesNames(t *testing.T) {
	rec, err := Calculate("  Silica ", 1.44, "Fluoride Glass\n", 1.38)
	require.NoError(t, err)
	assert.Equal(t, "Silica", rec.CoreMaterial)
	assert.Equal(t, "Fluoride Glass", rec.CladdingMaterial)
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.41134, 0.411},
		{1.01193, 1.012},
		{0.0625, 0.063},  // exact half rounds away from zero
		{0.1875, 0.188},  // exact half rounds away from zero
		{0.0005, 0.001},
		{0, 0},
		{2, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round3(tt.in), "Round3(%v)", tt.in)
	}
}

func TestCalculate_LargeIndices(t *testing.T) {
	tests := []struct {
		name           string
		core, cladding float64
	}{
		{"squares overflow", 1e200, 1e199},
		{"near max float", 1.7e308, 1e308},
		{"zero cladding", 1e300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Calculate("core", tt.core, "cladding", tt.cladding)
			require.NoError(t, err)

			r := tt.cladding / tt.core
			want := tt.core * math.Sqrt((1-r)*(1+r))
			assert.False(t, math.IsNaN(rec.NA) || math.IsInf(rec.NA, 0), "NA = %v", rec.NA)
			assert.InEpsilon(t, want, rec.NA, 1e-12)
			assert.NoError(t, rec.Validate())
		})
	}
}

func TestRound3_Huge(t *testing.T) {
	assert.Equal(t, 1.7e308, Round3(1.7e308))
	assert.Equal(t, math.Inf(1), Round3(math.Inf(1)))
}
