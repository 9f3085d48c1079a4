package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/spf13/afero"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mwiater/afplotter/internal/confidence"
)

const (
	plddtWidth  = 1500
	plddtHeight = 500
	// chainTickEvery is the spacing of per-chain x ticks, in atoms.
	chainTickEvery = 1000
	bandAlpha      = 51
	legendOffset   = 64

	plddtTitle        = "Predicted Local Distance Difference Test (pLDDT)"
	plddtXLabel       = "Atom"
	plddtXLabelChains = "Atom (per chain)"
	plddtYLabel       = "pLDDT"
	legendTitle       = "Confidence Level"
)

// Band is a horizontal confidence band on the pLDDT plot.
type Band struct {
	Name   string
	Lo, Hi float64
	Color  drawing.Color
}

var (
	veryHighBand = Band{Name: "Very High (90-100)", Lo: 90, Hi: 100, Color: drawing.ColorFromHex("008000")}
	highBand     = Band{Name: "High (70-90)", Lo: 70, Hi: 90, Color: drawing.ColorFromHex("ff8c00")}
	lowBand      = Band{Name: "Low (50-70)", Lo: 50, Hi: 70, Color: drawing.ColorFromHex("ff0000")}
	veryLowBand  = Band{Name: "Very Low (<50)", Lo: 0, Hi: 50, Color: drawing.ColorFromHex("808080")}

	separatorColor = drawing.ColorFromHex("808080").WithAlpha(128)
	gridColor      = drawing.ColorFromHex("b0b0b0").WithAlpha(128)
)

// PLDDTLayout holds the data-derived geometry of a pLDDT plot.
type PLDDTLayout struct {
	XMin, XMax float64
	YMin, YMax float64
	Bands      []Band
	// Separators are x positions of the dashed lines between chain segments.
	Separators []float64
	XTicks     []chart.Tick
	YTicks     []chart.Tick
	XLabel     string
}

// LayoutPLDDT computes bands, separators and ticks for the given scores.
// Atoms are placed at 1-based x positions.
func LayoutPLDDT(scores []float64, chainIDs []string) PLDDTLayout {
	minScore := math.Inf(1)
	for _, s := range scores {
		minScore = math.Min(minScore, s)
	}
	if math.IsInf(minScore, 1) {
		minScore = 0
	}

	veryLow := veryLowBand
	veryLow.Lo = math.Min(minScore, veryLow.Hi)

	l := PLDDTLayout{
		XMin:   0,
		XMax:   float64(len(scores) + 1),
		YMin:   veryLow.Lo,
		YMax:   100,
		Bands:  []Band{veryHighBand, highBand, lowBand, veryLow},
		XLabel: plddtXLabel,
	}

	for _, t := range niceTicks(math.Ceil(l.YMin), l.YMax, 10, true) {
		l.YTicks = append(l.YTicks, chart.Tick{Value: t, Label: tickLabel(t, 1)})
	}
	l.YTicks = spanTicks(l.YTicks, l.YMin, l.YMax)

	segs := confidence.Segments(chainIDs)
	if len(segs) <= 1 {
		for _, t := range niceTicks(1, float64(len(scores)), 10, true) {
			l.XTicks = append(l.XTicks, chart.Tick{Value: t, Label: tickLabel(t, 1)})
		}
	} else {
		l.XLabel = plddtXLabelChains
		for _, b := range confidence.Boundaries(segs) {
			l.Separators = append(l.Separators, float64(b)+0.5)
		}
		for _, s := range segs {
			for pos := 0; pos < s.Len; pos += chainTickEvery {
				l.XTicks = append(l.XTicks, chart.Tick{
					Value: float64(s.Start + pos + 1),
					Label: tickLabel(float64(pos), 1),
				})
			}
		}
	}
	l.XTicks = spanTicks(l.XTicks, l.XMin, l.XMax)
	return l
}

// spanTicks pads sorted ticks with unlabelled ticks at min and max.
// go-chart takes an axis range from its tick span when ticks are given.
func spanTicks(ticks []chart.Tick, min, max float64) []chart.Tick {
	if len(ticks) == 0 || ticks[0].Value > min {
		ticks = append([]chart.Tick{{Value: min}}, ticks...)
	}
	if ticks[len(ticks)-1].Value < max {
		ticks = append(ticks, chart.Tick{Value: max})
	}
	return ticks
}

// PLDDT renders the per-atom confidence plot and writes it to the path derived from n.
func PLDDT(fs afero.Fs, scores []float64, chainIDs []string, n Naming) (string, error) {
	if len(scores) == 0 {
		return "", fmt.Errorf("no pLDDT scores to plot")
	}
	if len(scores) != len(chainIDs) {
		return "", fmt.Errorf("got %d pLDDT scores but %d chain ids", len(scores), len(chainIDs))
	}

	graph := newPLDDTChart(scores, LayoutPLDDT(scores, chainIDs))
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("render pLDDT chart: %w", err)
	}

	out := n.Path(PLDDTSuffix)
	if err := afero.WriteFile(fs, out, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write pLDDT plot %s: %w", out, err)
	}
	return out, nil
}

func newPLDDTChart(scores []float64, l PLDDTLayout) chart.Chart {
	xs := make([]float64, len(scores))
	for i := range xs {
		xs[i] = float64(i + 1)
	}

	var series []chart.Series
	for _, b := range l.Bands {
		series = append(series, bandSeries{band: b, xMin: l.XMin, xMax: l.XMax})
	}
	for _, x := range l.Separators {
		series = append(series, separatorSeries{x: x})
	}
	series = append(series, chart.ContinuousSeries{
		Name:    "pLDDT",
		XValues: xs,
		YValues: scores,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    1,
			DotColor:    drawing.ColorBlack,
		},
	})

	grid := chart.Style{StrokeColor: gridColor, StrokeWidth: 1}
	graph := chart.Chart{
		Title:      plddtTitle,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      plddtWidth,
		Height:     plddtHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 220, Bottom: 10}},
		XAxis: chart.XAxis{
			Name:           l.XLabel,
			NameStyle:      chart.Style{FontSize: 12},
			Range:          &chart.ContinuousRange{Min: l.XMin, Max: l.XMax},
			Ticks:          l.XTicks,
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           plddtYLabel,
			NameStyle:      chart.Style{FontSize: 12},
			Range:          &chart.ContinuousRange{Min: l.YMin, Max: l.YMax},
			Ticks:          l.YTicks,
			GridMajorStyle: grid,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{bandLegend(l.Bands)}
	return graph
}

// bandSeries fills a confidence band across the full x range.
type bandSeries struct {
	band       Band
	xMin, xMax float64
}

func (b bandSeries) GetName() string           { return b.band.Name }
func (b bandSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (b bandSeries) Validate() error           { return nil }

func (b bandSeries) GetStyle() chart.Style {
	return chart.Style{FillColor: b.band.Color.WithAlpha(bandAlpha)}
}

func (b bandSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	if b.band.Hi <= b.band.Lo {
		return
	}
	left := cb.Left + xr.Translate(b.xMin)
	right := cb.Left + xr.Translate(b.xMax)
	top := cb.Bottom - yr.Translate(b.band.Hi)
	bottom := cb.Bottom - yr.Translate(b.band.Lo)
	fillRect(r, left, top, right, bottom, b.band.Color.WithAlpha(bandAlpha))
}

// separatorSeries draws a dashed vertical line between two chain segments.
type separatorSeries struct {
	x float64
}

func (s separatorSeries) GetName() string           { return "" }
func (s separatorSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s separatorSeries) GetStyle() chart.Style {
	return chart.Style{StrokeColor: separatorColor, StrokeWidth: 1, StrokeDashArray: []float64{5, 5}}
}
func (s separatorSeries) Validate() error { return nil }

func (s separatorSeries) Render(r chart.Renderer, cb chart.Box, xr, _ chart.Range, _ chart.Style) {
	x := cb.Left + xr.Translate(s.x)
	r.ResetStyle()
	s.GetStyle().WriteDrawingOptionsToRenderer(r)
	r.MoveTo(x, cb.Top)
	r.LineTo(x, cb.Bottom)
	r.Stroke()
	r.ResetStyle()
}

// bandLegend draws the confidence band key to the right of the plot area.
func bandLegend(bands []Band) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		x := cb.Right + legendOffset
		y := cb.Top

		title := chart.Style{FontSize: 10, FontColor: drawing.ColorBlack}.InheritFrom(defaults)
		title.WriteTextOptionsToRenderer(r)
		r.Text(legendTitle, x, y+12)

		label := chart.Style{FontSize: 9, FontColor: drawing.ColorBlack}.InheritFrom(defaults)
		for i, b := range bands {
			row := y + 22 + i*18
			fillRect(r, x, row, x+22, row+11, b.Color.WithAlpha(bandAlpha))
			label.WriteTextOptionsToRenderer(r)
			r.Text(b.Name, x+30, row+10)
		}
	}
}

func fillRect(r chart.Renderer, left, top, right, bottom int, c drawing.Color) {
	r.ResetStyle()
	r.SetFillColor(c)
	r.MoveTo(left, top)
	r.LineTo(right, top)
	r.LineTo(right, bottom)
	r.LineTo(left, bottom)
	r.Close()
	r.Fill()
	r.ResetStyle()
}
