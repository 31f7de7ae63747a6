package present

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/roach88/fiberna/internal/ir"
)

// TableHeader is the header row of the history table.
var TableHeader = []string{"Core", "Cladding", "NA"}

// Row is one line of the history table.
type Row struct {
	Core     string  `json:"core"`
	Cladding string  `json:"cladding"`
	NA       float64 `json:"na"`
}

// Rows returns one Row per record, in store order.
// Labels have the form "<name> (<index>)".
func Rows(records []ir.CalculationRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			Core:     rec.Core().Label(),
			Cladding: rec.Cladding().Label(),
			NA:       rec.NA,
		})
	}
	return rows
}

// TableData returns the header followed by one string row per record.
func TableData(records []ir.CalculationRecord) pterm.TableData {
	data := pterm.TableData{TableHeader}
	for _, row := range Rows(records) {
		data = append(data, []string{row.Core, row.Cladding, ir.FormatNumber(row.NA)})
	}
	return data
}

// RenderTable writes the history table to w.
// An empty record list renders the header only.
func RenderTable(w io.Writer, records []ir.CalculationRecord) error {
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(TableData(records)).
		Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
