package store

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/roach88/fiberna/internal/ir"
)

// createCSVStore opens a fresh CSV-backed store in a temp dir.
func createCSVStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fiber_calculations.csv")
	s, err := Open(context.Background(), NewCSVLog(path))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

// createSQLiteStore opens a fresh SQLite-backed store in a temp dir.
func createSQLiteStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fiber.db")
	log, err := OpenSQLite(path, &countingIDs{})
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	s, err := Open(context.Background(), log)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

// countingIDs returns "id-1", "id-2", ...
type countingIDs struct{ n int }

func (c *countingIDs) Generate() string {
	c.n++
	return "id-" + strconv.Itoa(c.n)
}

func silicaFluoride() ir.CalculationRecord {
	return ir.CalculationRecord{CoreMaterial: "Silica", CoreRI: 1.44, CladdingMaterial: "Fluoride Glass", CladdingRI: 1.38, NA: 0.411}
}

func sapphireSilica() ir.CalculationRecord {
	return ir.CalculationRecord{CoreMaterial: "Sapphire", CoreRI: 1.76, CladdingMaterial: "Silica", CladdingRI: 1.44, NA: 1.012}
}

func customPair() ir.CalculationRecord {
	return ir.CalculationRecord{CoreMaterial: "Doped, \"Silica\"", CoreRI: 1.46, CladdingMaterial: "Air", CladdingRI: 1, NA: 1.064}
}
