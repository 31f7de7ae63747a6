package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/roach88/fiberna/internal/ir"
)

func TestOpenSQLite_Pragmas(t *testing.T) {
	log, err := OpenSQLite(filepath.Join(t.TempDir(), "fiber.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer log.Close()

	if err := log.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := log.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
}

func TestOpenSQLite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiber.db")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		log, err := OpenSQLite(path, nil)
		if err != nil {
			t.Fatalf("OpenSQLite() iteration %d failed: %v", i, err)
		}
		if err := log.Init(ctx); err != nil {
			t.Fatalf("Init() iteration %d failed: %v", i, err)
		}
		if err := log.Append(ctx, silicaFluoride()); err != nil {
			t.Fatalf("Append() iteration %d failed: %v", i, err)
		}
		log.Close()
	}

	log, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("final OpenSQLite() failed: %v", err)
	}
	defer log.Close()

	records, err := log.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("ReadAll() returned %d records, want 3", len(records))
	}
}

func TestSQLiteLog_OrderAndIDs(t *testing.T) {
	ctx := context.Background()
	ids := &countingIDs{}
	log, err := OpenSQLite(":memory:", ids)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer log.Close()

	want := []ir.CalculationRecord{sapphireSilica(), silicaFluoride(), customPair()}
	for _, rec := range want {
		if err := log.Append(ctx, rec); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	got, err := log.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadAll() = %v, want %v", got, want)
	}

	var lastID string
	if err := log.DB().QueryRow("SELECT id FROM calculations ORDER BY seq DESC LIMIT 1").Scan(&lastID); err != nil {
		t.Fatalf("query id: %v", err)
	}
	if lastID != "id-3" {
		t.Errorf("last id = %q, want id-3", lastID)
	}
}

func TestSQLiteLog_RejectsInvariantViolation(t *testing.T) {
	log, err := OpenSQLite(":memory:", nil)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer log.Close()

	bad := silicaFluoride()
	bad.CladdingRI = bad.CoreRI

	err = log.Append(context.Background(), bad)
	var writeErr *ir.StoreWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Append() error = %v, want *ir.StoreWriteError", err)
	}
}

func TestSQLiteLog_CorruptRow(t *testing.T) {
	ctx := context.Background()
	log, err := OpenSQLite(":memory:", nil)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer log.Close()

	if err := log.Append(ctx, silicaFluoride()); err != nil {
		t.Fatal(err)
	}
	// A foreign writer stores text where a number belongs.
	if _, err := log.DB().Exec(`INSERT INTO calculations (id, core_material, core_ri, cladding_material, cladding_ri, na)
		VALUES ('x', 'Sapphire', 'high', 'Silica', 1.44, 1.012)`); err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	records, err := log.ReadAll(ctx)
	var corrupt *ir.CorruptStoreError
	if !errors.As(err, &corrupt) {
		t.Fatalf("ReadAll() error = %v, want *ir.CorruptStoreError", err)
	}
	if len(records) != 1 {
		t.Errorf("ReadAll() returned %d records before the bad row, want 1", len(records))
	}
}
