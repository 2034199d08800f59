package services

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// ErrNoChartData is returned when a chart would be degenerate (e.g. a
// pie with a zero total). Callers treat it as "skip this chart".
var ErrNoChartData = errors.New("no chart data")

// RenderError reports a chart that could not be drawn. Chart failures
// are non-fatal to report generation.
type RenderError struct {
	Kind   string
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s chart: %s", e.Kind, e.Reason)
}

// ChartSeries is one named value series over a shared category axis.
type ChartSeries struct {
	Name   string
	Values []float64
}

// TimeSeries is one named year-keyed series for the timeline chart.
type TimeSeries struct {
	Name   string
	Points map[int]float64
}

var chartPalette = []color.NRGBA{
	{R: 135, G: 206, B: 235, A: 255}, // sky blue
	{R: 255, G: 159, B: 64, A: 255},
	{R: 144, G: 238, B: 144, A: 255},
	{R: 255, G: 99, B: 132, A: 255},
	{R: 153, G: 102, B: 255, A: 255},
	{R: 255, G: 205, B: 86, A: 255},
}

// ChartRenderer draws self-contained PNG charts. It has no shared
// state; every call is independent.
type ChartRenderer struct{}

func NewChartRenderer() *ChartRenderer { return &ChartRenderer{} }

func newChartContext(kind string, width, height int, title string) (*gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, &RenderError{Kind: kind, Reason: fmt.Sprintf("bad dimensions %dx%d", width, height)}
	}
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(width)/2, 16, 0.5, 0.5)
	return dc, nil
}

func encodeChart(kind string, dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, &RenderError{Kind: kind, Reason: err.Error()}
	}
	return buf.Bytes(), nil
}

// RenderPie draws a pie chart with per-slice percentage labels.
// Returns ErrNoChartData when the values sum to zero.
func (r *ChartRenderer) RenderPie(labels []string, values []float64, title string) ([]byte, error) {
	if len(labels) != len(values) {
		return nil, &RenderError{Kind: "pie", Reason: "label/value length mismatch"}
	}
	total := 0.0
	for _, v := range values {
		if v < 0 {
			return nil, &RenderError{Kind: "pie", Reason: "negative value"}
		}
		total += v
	}
	if total == 0 {
		return nil, ErrNoChartData
	}

	const width, height = 700, 400
	dc, err := newChartContext("pie", width, height, title)
	if err != nil {
		return nil, err
	}

	cx, cy, radius := 230.0, 215.0, 145.0
	angle := -math.Pi / 2
	for i, v := range values {
		if v == 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi
		dc.SetColor(chartPalette[i%len(chartPalette)])
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, angle+sweep)
		dc.ClosePath()
		dc.Fill()

		mid := angle + sweep/2
		lx := cx + math.Cos(mid)*radius*1.25
		ly := cy + math.Sin(mid)*radius*1.25
		dc.SetRGB(0, 0, 0)
		label := fmt.Sprintf("%s (%.1f%%)", labels[i], v/total*100)
		dc.DrawStringAnchored(label, lx, ly, 0.5, 0.5)

		angle += sweep
	}

	// Legend on the right side.
	legendX, legendY := 470.0, 80.0
	for i, label := range labels {
		dc.SetColor(chartPalette[i%len(chartPalette)])
		dc.DrawRectangle(legendX, legendY+float64(i)*20, 12, 12)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(label, legendX+18, legendY+float64(i)*20+6, 0, 0.5)
	}

	return encodeChart("pie", dc)
}

// RenderGroupedBar draws one group of bars per category, one bar per
// series. Offsets are computed so bars within a group never overlap.
func (r *ChartRenderer) RenderGroupedBar(categories []string, series []ChartSeries, title string) ([]byte, error) {
	if len(categories) == 0 || len(series) == 0 {
		return nil, &RenderError{Kind: "grouped_bar", Reason: "empty categories or series"}
	}
	maxVal := 0.0
	for _, s := range series {
		if len(s.Values) != len(categories) {
			return nil, &RenderError{Kind: "grouped_bar", Reason: fmt.Sprintf("series %q has %d values for %d categories", s.Name, len(s.Values), len(categories))}
		}
		for _, v := range s.Values {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	const width, height = 1000, 600
	dc, err := newChartContext("grouped_bar", width, height, title)
	if err != nil {
		return nil, err
	}

	left, right, top, bottom := 70.0, 40.0, 50.0, 100.0
	plotW := float64(width) - left - right
	plotH := float64(height) - top - bottom
	baseY := float64(height) - bottom

	// Axes.
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(left, top, left, baseY)
	dc.DrawLine(left, baseY, float64(width)-right, baseY)
	dc.Stroke()

	// Y ticks.
	yMax := math.Ceil(maxVal)
	for i := 0; i <= 5; i++ {
		v := yMax * float64(i) / 5
		y := baseY - plotH*float64(i)/5
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), left-8, y, 1, 0.5)
		dc.DrawLine(left-4, y, left, y)
		dc.Stroke()
	}

	groupW := plotW / float64(len(categories))
	barW := groupW / float64(len(series)+1)
	n := float64(len(series))
	for si, s := range series {
		dc.SetColor(chartPalette[si%len(chartPalette)])
		offset := (float64(si) - (n-1)/2) * barW
		for ci, v := range s.Values {
			groupCenter := left + groupW*(float64(ci)+0.5)
			h := v / yMax * plotH
			dc.DrawRectangle(groupCenter+offset-barW/2, baseY-h, barW, h)
			dc.Fill()
		}
	}

	// Rotated category labels.
	dc.SetRGB(0, 0, 0)
	for ci, cat := range categories {
		x := left + groupW*(float64(ci)+0.5)
		y := baseY + 14
		dc.Push()
		dc.RotateAbout(gg.Radians(-45), x, y)
		dc.DrawStringAnchored(cat, x, y, 1, 0.5)
		dc.Pop()
	}

	// Legend.
	legendX := float64(width) - right - 150
	for si, s := range series {
		dc.SetColor(chartPalette[si%len(chartPalette)])
		dc.DrawRectangle(legendX, top+float64(si)*18, 12, 12)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(s.Name, legendX+18, top+float64(si)*18+6, 0, 0.5)
	}

	return encodeChart("grouped_bar", dc)
}

// RenderLine plots each series over the union of years seen across all
// series. A year missing from a series plots as zero, not a gap.
func (r *ChartRenderer) RenderLine(series []TimeSeries, title string) ([]byte, error) {
	if len(series) == 0 {
		return nil, &RenderError{Kind: "line", Reason: "no series"}
	}
	yearSet := map[int]struct{}{}
	maxVal := 0.0
	for _, s := range series {
		for y, v := range s.Points {
			yearSet[y] = struct{}{}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if len(yearSet) == 0 {
		return nil, ErrNoChartData
	}
	if maxVal == 0 {
		maxVal = 1
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	const width, height = 800, 400
	dc, err := newChartContext("line", width, height, title)
	if err != nil {
		return nil, err
	}

	left, right, top, bottom := 60.0, 30.0, 40.0, 50.0
	plotW := float64(width) - left - right
	plotH := float64(height) - top - bottom
	baseY := float64(height) - bottom
	yMax := math.Ceil(maxVal)

	xFor := func(i int) float64 {
		if len(years) == 1 {
			return left + plotW/2
		}
		return left + plotW*float64(i)/float64(len(years)-1)
	}
	yFor := func(v float64) float64 {
		return baseY - v/yMax*plotH
	}

	// Dashed grid.
	dc.SetRGBA(0.5, 0.5, 0.5, 0.7)
	dc.SetDash(4, 4)
	for i := 0; i <= 4; i++ {
		y := baseY - plotH*float64(i)/4
		dc.DrawLine(left, y, float64(width)-right, y)
		dc.Stroke()
	}
	dc.SetDash()

	// Axes and labels.
	dc.SetRGB(0, 0, 0)
	dc.DrawLine(left, top, left, baseY)
	dc.DrawLine(left, baseY, float64(width)-right, baseY)
	dc.Stroke()
	for i := 0; i <= 4; i++ {
		v := yMax * float64(i) / 4
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), left-8, baseY-plotH*float64(i)/4, 1, 0.5)
	}
	for i, y := range years {
		dc.DrawStringAnchored(fmt.Sprintf("%d", y), xFor(i), baseY+14, 0.5, 0.5)
	}

	for si, s := range series {
		dc.SetColor(chartPalette[si%len(chartPalette)])
		dc.SetLineWidth(2)
		for i := 1; i < len(years); i++ {
			dc.DrawLine(xFor(i-1), yFor(s.Points[years[i-1]]), xFor(i), yFor(s.Points[years[i]]))
			dc.Stroke()
		}
		// Explicit markers: circles for even series, squares for odd.
		for i, y := range years {
			px, py := xFor(i), yFor(s.Points[y])
			if si%2 == 0 {
				dc.DrawCircle(px, py, 4)
			} else {
				dc.DrawRectangle(px-4, py-4, 8, 8)
			}
			dc.Fill()
		}
	}

	// Legend.
	legendX := float64(width) - right - 120
	for si, s := range series {
		dc.SetColor(chartPalette[si%len(chartPalette)])
		dc.DrawRectangle(legendX, top+float64(si)*18, 12, 12)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(s.Name, legendX+18, top+float64(si)*18+6, 0, 0.5)
	}

	return encodeChart("line", dc)
}
