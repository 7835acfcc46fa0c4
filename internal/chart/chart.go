// Package chart renders latent trajectories: an image-tensor renderer
// for run results, an SVG export with legend and parameter panel, and
// terminal plots.
package chart

import (
	"errors"
	"sort"

	"github.com/san-kum/latentwalk/internal/latent"
)

var (
	ErrNoSeries    = errors.New("chart: no series to render")
	ErrEmptySeries = errors.New("chart: series has no points")
)

// rgb is a color with components in [0, 1].
type rgb [3]float64

var (
	background = rgb{0.04, 0.04, 0.04}
	gridColor  = rgb{0.16, 0.16, 0.16}

	seriesColors = []rgb{
		{0.00, 1.00, 0.53}, // green
		{0.00, 0.67, 1.00}, // blue
		{1.00, 0.53, 0.00}, // orange
		{1.00, 0.27, 0.47}, // pink
		{0.80, 0.80, 0.00}, // yellow
	}
)

// Chart rasterizes labeled series into an RGB image tensor of shape
// [1, Height, Width, 3] with values in [0, 1].
type Chart struct {
	Width  int
	Height int
	Margin int
}

func New() *Chart {
	return &Chart{Width: 1024, Height: 256, Margin: 8}
}

// Render draws every series over a shared vertical scale, one polyline
// each, onto a fresh image tensor. Labels are sorted so color
// assignment is stable.
func (c *Chart) Render(series map[string][]float64) (latent.Tensor, error) {
	labels, err := sortedLabels(series)
	if err != nil {
		return latent.Tensor{}, err
	}

	lo, hi := seriesBounds(series, labels)
	img := newCanvas(c.Width, c.Height)
	img.fill(background)
	img.grid(c.Margin, gridColor)

	for i, label := range labels {
		color := seriesColors[i%len(seriesColors)]
		img.polyline(series[label], lo, hi, c.Margin, color)
	}

	return img.tensor(), nil
}

func sortedLabels(series map[string][]float64) ([]string, error) {
	if len(series) == 0 {
		return nil, ErrNoSeries
	}
	labels := make([]string, 0, len(series))
	for label, data := range series {
		if len(data) == 0 {
			return nil, ErrEmptySeries
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// seriesBounds computes the shared value range with 10% padding.
func seriesBounds(series map[string][]float64, labels []string) (float64, float64) {
	lo, hi := series[labels[0]][0], series[labels[0]][0]
	for _, label := range labels {
		for _, v := range series[label] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, hi + span*0.1
}

// Normalize rescales a series into [0, 1]. A constant series maps to
// 0.5 so overlays stay visible.
func Normalize(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	lo, hi := xs[0], xs[0]
	for _, v := range xs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, v := range xs {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// canvas is a float RGB pixel buffer backing the tensor renderer.
type canvas struct {
	w, h int
	pix  []float64
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, pix: make([]float64, w*h*3)}
}

func (c *canvas) set(x, y int, col rgb) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	base := (y*c.w + x) * 3
	c.pix[base] = col[0]
	c.pix[base+1] = col[1]
	c.pix[base+2] = col[2]
}

func (c *canvas) fill(col rgb) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			c.set(x, y, col)
		}
	}
}

// grid draws quarter-height horizontal guides inside the margin.
func (c *canvas) grid(margin int, col rgb) {
	for q := 0; q <= 4; q++ {
		y := margin + q*(c.h-2*margin)/4
		for x := margin; x < c.w-margin; x++ {
			c.set(x, y, col)
		}
	}
}

// polyline maps data points into the plot area and connects them.
func (c *canvas) polyline(data []float64, lo, hi float64, margin int, col rgb) {
	plotW := c.w - 2*margin
	plotH := c.h - 2*margin
	span := hi - lo
	if span == 0 {
		span = 1
	}

	px := func(i int) int {
		if len(data) == 1 {
			return margin + plotW/2
		}
		return margin + i*(plotW-1)/(len(data)-1)
	}
	py := func(v float64) int {
		return margin + plotH - 1 - int((v-lo)/span*float64(plotH-1))
	}

	if len(data) == 1 {
		c.set(px(0), py(data[0]), col)
		return
	}
	for i := 1; i < len(data); i++ {
		c.line(px(i-1), py(data[i-1]), px(i), py(data[i]), col)
	}
}

// line draws with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int, col rgb) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *canvas) tensor() latent.Tensor {
	return latent.Tensor{
		Shape: []int{1, c.h, c.w, 3},
		Data:  c.pix,
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
