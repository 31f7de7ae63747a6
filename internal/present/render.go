package present

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/roach88/fiberna/internal/ir"
)

const (
	barTitle     = "Effect of Cladding Material on Numerical Aperture (Bar Graph)"
	scatterTitle = "Numerical Aperture vs Cladding Refractive Index"
	naAxis       = "Numerical Aperture (NA)"

	// headroom is added above the tallest bar.
	headroom = 0.1
)

// Size returns the PNG dimensions for a chart.
func Size(kind Chart) (vg.Length, vg.Length) {
	if kind == ChartScatter {
		return 10 * vg.Inch, 6 * vg.Inch
	}
	return 8 * vg.Inch, 5 * vg.Inch
}

// Build returns the plot for kind.
func Build(kind Chart, records []ir.CalculationRecord) (*plot.Plot, error) {
	switch kind {
	case ChartBar:
		return BarChart(records)
	case ChartScatter:
		return ScatterChart(records)
	default:
		return nil, fmt.Errorf("unknown chart %q", kind)
	}
}

// BarChart plots one colored bar per record on a y axis from 0 to the
// largest NA plus headroom, with horizontal dashed grid lines.
func BarChart(records []ir.CalculationRecord) (*plot.Plot, error) {
	bars, err := BarSeries(records)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = barTitle
	p.X.Label.Text = "Cladding Material"
	p.Y.Label.Text = naAxis

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	labels := make([]string, len(bars))
	maxNA := 0.0
	for i, b := range bars {
		chart, err := plotter.NewBarChart(plotter.Values{b.NA}, vg.Points(30))
		if err != nil {
			return nil, fmt.Errorf("bar %d: %w", i, err)
		}
		chart.XMin = float64(i)
		chart.Color = plotutil.Color(i)
		chart.LineStyle.Width = 0
		p.Add(chart)

		labels[i] = b.Label
		maxNA = math.Max(maxNA, b.NA)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	p.Y.Min = 0
	p.Y.Max = maxNA + headroom
	return p, nil
}

// ScatterChart plots NA against cladding RI, annotating each point with its
// cladding material name.
func ScatterChart(records []ir.CalculationRecord) (*plot.Plot, error) {
	points, err := ScatterSeries(records)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = scatterTitle
	p.X.Label.Text = "Cladding Refractive Index"
	p.Y.Label.Text = naAxis

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	xys := make(plotter.XYs, len(points))
	names := make([]string, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.CladdingRI, Y: pt.NA}
		names[i] = pt.Label
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = plotutil.Color(0)
	scatter.GlyphStyle.Radius = vg.Points(4)

	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("scatter labels: %w", err)
	}
	annotations.Offset = vg.Point{Y: vg.Points(10)}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = text.XCenter
	}

	p.Add(scatter, annotations)
	p.Legend.Add("NA values", scatter)
	p.Legend.Top = true
	return p, nil
}

// WritePNG encodes p as a PNG sized for kind.
func WritePNG(w io.Writer, kind Chart, p *plot.Plot) error {
	width, height := Size(kind)
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("encode %s chart: %w", kind, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s chart: %w", kind, err)
	}
	return nil
}

// Save writes p as a PNG file at path.
func Save(kind Chart, p *plot.Plot, path string) error {
	width, height := Size(kind)
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save %s chart: %w", kind, err)
	}
	return nil
}

// DefaultFile returns the default output file name for kind.
func DefaultFile(kind Chart) string {
	return fmt.Sprintf("na_%s.png", kind)
}
