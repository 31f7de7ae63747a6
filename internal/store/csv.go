package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/roach88/fiberna/internal/ir"
)

// DefaultCSVPath is the store file used when no path is configured.
const DefaultCSVPath = "fiber_calculations.csv"

// Header is the fixed first row of a CSV store.
var Header = []string{"Core Material", "Core RI", "Cladding Material", "Cladding RI", "NA"}

// CSVLog stores records in a CSV flat file.
type CSVLog struct {
	path string
}

// NewCSVLog returns a log backed by the CSV file at path.
// The file is not touched until Init.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Location implements Log.
func (l *CSVLog) Location() string { return l.path }

// Close implements Log. The file is only held open during a call.
func (l *CSVLog) Close() error { return nil }

// Init creates the file with only the header row when it is missing or empty.
// An existing non-empty file is left untouched.
func (l *CSVLog) Init(ctx context.Context) error {
	info, err := os.Stat(l.path)
	switch {
	case err == nil && info.Size() > 0:
		return nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return &ir.StoreWriteError{Location: l.path, Op: "initialize", Err: err}
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &ir.StoreWriteError{Location: l.path, Op: "initialize", Err: err}
	}
	if err := writeRows(f, Header); err != nil {
		f.Close()
		return &ir.StoreWriteError{Location: l.path, Op: "initialize", Err: err}
	}
	if err := f.Close(); err != nil {
		return &ir.StoreWriteError{Location: l.path, Op: "initialize", Err: err}
	}
	return nil
}

// ReadAll parses every row after the header.
// A missing or zero-length file holds no records.
func (l *CSVLog) ReadAll(ctx context.Context) ([]ir.CalculationRecord, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return []ir.CalculationRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", l.path, err)
	}
	defer f.Close()

	return l.decode(f)
}

func (l *CSVLog) decode(r io.Reader) ([]ir.CalculationRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // field count is checked per row below

	records := []ir.CalculationRecord{}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return records, nil
	}
	if err != nil {
		return records, l.corrupt(1, "unreadable header", err)
	}
	if !slices.Equal(header, Header) {
		return records, l.corrupt(1, fmt.Sprintf("header %q does not match %q", header, Header), nil)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			return records, l.corrupt(line, "malformed CSV", err)
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row)
		if err != nil {
			return records, l.corrupt(line, err.Error(), nil)
		}
		records = append(records, rec)
	}
}

// Append writes rec as one row at the end of the file.
// The file must already exist (see Init) so that a vanished store is not
// silently recreated without its header.
//
// A last row without a line terminator is closed before the new row, and a
// failed write is truncated away so no partial row is left behind.
func (l *CSVLog) Append(ctx context.Context, rec ir.CalculationRecord) error {
	f, err := os.OpenFile(l.path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return &ir.StoreWriteError{Location: l.path, Op: "append", Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return &ir.StoreWriteError{Location: l.path, Op: "append", Err: err}
	}
	terminated, err := endsWithNewline(f, info.Size())
	if err != nil {
		f.Close()
		return &ir.StoreWriteError{Location: l.path, Op: "append", Err: err}
	}
	if err := appendRow(f, info.Size(), !terminated, formatRow(rec)); err != nil {
		f.Close()
		return &ir.StoreWriteError{Location: l.path, Op: "append", Err: err}
	}
	if err := f.Close(); err != nil {
		return &ir.StoreWriteError{Location: l.path, Op: "append", Err: err}
	}
	return nil
}

// appendTarget is the part of *os.File that appendRow needs.
type appendTarget interface {
	io.Writer
	Sync() error
	Truncate(size int64) error
}

// appendRow writes row after the size bytes already in f, starting a new
// line first when newline is set. On failure f is truncated back to size.
func appendRow(f appendTarget, size int64, newline bool, row []string) error {
	err := func() error {
		if newline {
			if _, err := io.WriteString(f, "\n"); err != nil {
				return err
			}
		}
		if err := writeRows(f, row); err != nil {
			return err
		}
		return f.Sync()
	}()
	if err == nil {
		return nil
	}
	if terr := f.Truncate(size); terr != nil {
		return errors.Join(err, fmt.Errorf("truncate to %d bytes: %w", size, terr))
	}
	return err
}

// endsWithNewline reports whether the size bytes of r end in '\n'.
// An empty file counts as terminated.
func endsWithNewline(r io.ReaderAt, size int64) (bool, error) {
	if size == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := r.ReadAt(last, size-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}

func (l *CSVLog) corrupt(line int, reason string, err error) *ir.CorruptStoreError {
	return &ir.CorruptStoreError{Location: l.path, Line: line, Reason: reason, Err: err}
}

func writeRows(w io.Writer, rows ...[]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// formatRow renders a record in Header order.
func formatRow(rec ir.CalculationRecord) []string {
	return []string{
		rec.CoreMaterial,
		ir.FormatNumber(rec.CoreRI),
		rec.CladdingMaterial,
		ir.FormatNumber(rec.CladdingRI),
		ir.FormatNumber(rec.NA),
	}
}

// parseRow parses one data row in Header order.
func parseRow(row []string) (ir.CalculationRecord, error) {
	if len(row) != len(Header) {
		return ir.CalculationRecord{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(row))
	}

	var nums [3]float64
	for i, col := range []int{1, 3, 4} {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return ir.CalculationRecord{}, fmt.Errorf("column %q: %q is not a number", Header[col], row[col])
		}
		nums[i] = v
	}

	rec := ir.CalculationRecord{
		CoreMaterial:     row[0],
		CoreRI:           nums[0],
		CladdingMaterial: row[2],
		CladdingRI:       nums[1],
		NA:               nums[2],
	}
	if err := rec.Validate(); err != nil {
		return ir.CalculationRecord{}, err
	}
	return rec, nil
}
