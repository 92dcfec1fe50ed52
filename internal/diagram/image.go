package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/gobeam/internal/analysis"
)

// Export writes the shear force and bending moment diagrams to image files
// next to filename. A filename of "out/girder.svg" produces
// "out/girder_shear.svg" and "out/girder_moment.svg". Files without a png,
// svg or pdf extension are written as png. It returns the paths written.
func Export(d analysis.Diagram, filename string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	switch ext {
	case ".png", ".svg", ".pdf":
	default:
		base, ext = filename, ".png"
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	diagrams := []struct {
		suffix, title, label string
		values               []float64
		color                color.Color
	}{
		{"_shear", "Shear Force Diagram", "Shear (kN)", d.Shear, color.RGBA{R: 0, G: 0, B: 139, A: 255}},
		{"_moment", "Bending Moment Diagram", "Moment (kN-m)", d.Moment, color.RGBA{R: 178, G: 34, B: 34, A: 255}},
	}

	var written []string
	for _, dg := range diagrams {
		p, err := plotDiagram(d.X, dg.values, dg.title, dg.label, dg.color)
		if err != nil {
			return written, err
		}
		path := base + dg.suffix + ext
		if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
			return written, fmt.Errorf("saving %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func plotDiagram(xs, ys []float64, title, label string, c color.Color) (*plot.Plot, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, fmt.Errorf("diagram needs matching x and y values, got %d and %d", len(xs), len(ys))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance from left end (m)"
	p.Y.Label.Text = label
	p.Add(plotter.NewGrid())

	// Closed outline down to the axis so the diagram reads as an area
	pts := make(plotter.XYs, 0, len(xs)+2)
	pts = append(pts, plotter.XY{X: xs[0], Y: 0})
	for i := range xs {
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	pts = append(pts, plotter.XY{X: xs[len(xs)-1], Y: 0})

	area, err := plotter.NewPolygon(pts)
	if err != nil {
		return nil, err
	}
	r, g, b, _ := c.RGBA()
	area.Color = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 60}
	area.LineStyle.Width = 0
	p.Add(area)

	line, err := plotter.NewLine(pts[1 : len(pts)-1])
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = c
	p.Add(line)

	axis, err := plotter.NewLine(plotter.XYs{{X: xs[0], Y: 0}, {X: xs[len(xs)-1], Y: 0}})
	if err != nil {
		return nil, err
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Black
	p.Add(axis)

	// Label the extreme values
	lo, hi := 0, 0
	for i, y := range ys {
		if y < ys[lo] {
			lo = i
		}
		if y > ys[hi] {
			hi = i
		}
	}
	idx := []int{hi}
	if lo != hi {
		idx = append(idx, lo)
	}
	labels := plotter.XYLabels{}
	for _, i := range idx {
		labels.XYs = append(labels.XYs, plotter.XY{X: xs[i], Y: ys[i]})
		labels.Labels = append(labels.Labels, fmt.Sprintf("%.2f", ys[i]))
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	p.Add(l)

	return p, nil
}
