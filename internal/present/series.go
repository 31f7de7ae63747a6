package present

import (
	"fmt"
	"sort"

	"github.com/roach88/fiberna/internal/ir"
)

// Chart identifies one of the two supported chart types.
type Chart string

const (
	// ChartBar plots NA per record, keyed by cladding material name.
	ChartBar Chart = "bar"

	// ChartScatter plots NA against cladding refractive index.
	ChartScatter Chart = "scatter"
)

// Charts lists the supported chart types.
var Charts = []Chart{ChartBar, ChartScatter}

// ParseChart returns the Chart named by name.
func ParseChart(name string) (Chart, error) {
	for _, c := range Charts {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown chart %q (want bar or scatter)", name)
}

// Bar is one bar of the bar chart.
type Bar struct {
	Label string  `json:"label"`
	NA    float64 `json:"na"`
}

// Point is one annotated point of the scatter chart.
type Point struct {
	CladdingRI float64 `json:"cladding_ri"`
	NA         float64 `json:"na"`
	Label      string  `json:"label"`
}

// BarSeries returns one bar per record in store order, labeled with the
// cladding material name.
func BarSeries(records []ir.CalculationRecord) ([]Bar, error) {
	if len(records) == 0 {
		return nil, &ir.EmptyDataError{Chart: string(ChartBar)}
	}
	bars := make([]Bar, len(records))
	for i, rec := range records {
		bars[i] = Bar{Label: rec.CladdingMaterial, NA: rec.NA}
	}
	return bars, nil
}

// ScatterSeries returns one point per record sorted ascending by cladding
// refractive index. Records with equal indices keep their store order.
func ScatterSeries(records []ir.CalculationRecord) ([]Point, error) {
	if len(records) == 0 {
		return nil, &ir.EmptyDataError{Chart: string(ChartScatter)}
	}
	points := make([]Point, len(records))
	for i, rec := range records {
		points[i] = Point{CladdingRI: rec.CladdingRI, NA: rec.NA, Label: rec.CladdingMaterial}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].CladdingRI < points[j].CladdingRI
	})
	return points, nil
}
