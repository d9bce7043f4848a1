package plotting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Fixed output filenames for generators that take a directory.
const (
	FitDiagnosticsFile      = "fit_diagnostics.png"
	ForecastFile            = "forecast.png"
	ResidualDiagnosticsFile = "residual_diagnostics.png"
	SimulationPathsFile     = "simulation_paths.png"
)

// Palette shared by the chart generators.
var (
	colorSeries   = color.RGBA{R: 31, G: 119, B: 180, A: 255}  // muted blue
	colorMean     = color.RGBA{R: 0, G: 0, B: 255, A: 255}     // blue
	colorBand     = color.RGBA{R: 173, G: 216, B: 230, A: 128} // light blue
	colorBandAlt  = color.RGBA{R: 255, G: 255, B: 224, A: 96}  // light yellow
	colorPathGray = color.RGBA{R: 128, G: 128, B: 128, A: 77}
	colorRefRed   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorRefAmber = color.RGBA{R: 255, G: 165, B: 0, A: 128}
	colorGuide    = color.RGBA{R: 0, G: 0, B: 255, A: 128}
	colorHist     = color.RGBA{R: 70, G: 130, B: 180, A: 180} // steel blue
)

// ensureOutputDir creates the directory (and parents) when absent.
func ensureOutputDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}

// subCanvas returns the sub-region of dc given by fractional coordinates,
// inset by pad on every side so neighbouring panels do not touch.
func subCanvas(dc draw.Canvas, x0, y0, x1, y1 float64, pad vg.Length) draw.Canvas {
	r := dc.Rectangle
	w := r.Max.X - r.Min.X
	h := r.Max.Y - r.Min.Y
	sub := draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: r.Min.X + vg.Length(x0)*w, Y: r.Min.Y + vg.Length(y0)*h},
			Max: vg.Point{X: r.Min.X + vg.Length(x1)*w, Y: r.Min.Y + vg.Length(y1)*h},
		},
	}
	return draw.Crop(sub, pad, -pad, pad, -pad)
}

// dirOf returns the parent directory of an output path; "." for bare
// filenames, which ensureOutputDir treats as a no-op.
func dirOf(path string) string {
	return filepath.Dir(path)
}

// writePNG saves a composed raster canvas to path, replacing any existing
// file.
func writePNG(img *vgimg.Canvas, path string) error {
	if err := ensureOutputDir(filepath.Dir(path)); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// xyPairs zips the given x and y values into a plotter series.
func xyPairs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// indexedXYs pairs each value with its index.
func indexedXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

// bandXYs builds the outline of a shaded band: the upper bound walked
// left to right, then the lower bound walked back.
func bandXYs(xs, upper, lower []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		pts = append(pts, plotter.XY{X: xs[i], Y: upper[i]})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: xs[i], Y: lower[i]})
	}
	return pts
}

// horizontalLine builds a constant-y segment spanning [x0, x1].
func horizontalLine(x0, x1, y float64, c color.Color, dashed bool) *plotter.Line {
	line, _ := plotter.NewLine(plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}})
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1)
	if dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}
	return line
}
