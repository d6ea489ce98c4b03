package histogram

import (
	"fmt"
	"image/color"
	"os"

	"image-binarizer/internal/channels"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	chartWidth  = 15 * vg.Inch
	chartHeight = 4 * vg.Inch
	chartDPI    = 150
)

var gridColor = color.NRGBA{A: 77}

// PanelColor is the line color of a component's panel.
func PanelColor(c channels.Component) colorful.Color {
	switch c {
	case channels.Red:
		return colorful.Hsv(0, 1, 1)
	case channels.Green:
		return colorful.Hsv(120, 1, 0.5)
	default:
		return colorful.Hsv(240, 1, 1)
	}
}

// Panel builds the line plot of one component's histogram.
func Panel(c channels.Component, h Histogram) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Histogram - Channel %s (%s)", c.Letter(), c.Name())
	p.X.Label.Text = "Intensity"
	p.Y.Label.Text = "Frequency"
	p.X.Min = 0
	p.X.Max = Bins - 1
	p.Y.Min = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	points := make(plotter.XYs, Bins)
	for i, v := range h {
		points[i].X = float64(i)
		points[i].Y = float64(v)
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s line: %w", c.Letter(), err)
	}
	line.Color = PanelColor(c)
	line.Width = vg.Points(1.5)
	p.Add(line)

	return p, nil
}

// Render draws the three histograms side by side and writes a PNG to path.
func Render(path string, hists [3]Histogram) error {
	row := make([]*plot.Plot, 0, len(channels.Components))
	for _, c := range channels.Components {
		p, err := Panel(c, hists[c])
		if err != nil {
			return err
		}
		row = append(row, p)
	}

	canvas := vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight), vgimg.UseDPI(chartDPI))
	dc := draw.New(canvas)

	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(row),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 2,

		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	plots := [][]*plot.Plot{row}
	canvases := plot.Align(plots, tiles, dc)
	for j := range row {
		row[j].Draw(canvases[0][j])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create histogram chart: %w", err)
	}

	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode histogram chart: %w", err)
	}

	return f.Close()
}
