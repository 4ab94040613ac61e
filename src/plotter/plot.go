// plot.go
package plotter

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/phyyl673/FED/src/processor"
	"github.com/phyyl673/FED/src/storage"
)

// chartDPI matches the raster resolution of the saved PNG.
const chartDPI = 300

// palette holds one line colour per country, cycling when the allow-list
// is longer.
var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
}

type Plotter struct {
	logger *storage.Logger
}

func New(logger *storage.Logger) *Plotter {
	return &Plotter{logger: logger}
}

// PlotGDPTrends renders one line-with-markers series per country from a
// cleaned table, saves it as a 300 DPI PNG when savePath is given, and
// then attempts to open it with the platform image viewer. Rendering to
// a temp file keeps the display attempt possible without a save path.
func (p *Plotter) PlotGDPTrends(df dataframe.DataFrame, savePath string) error {
	names := df.Names()
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, req := range []string{processor.ColCountry, processor.ColYear, processor.ColGDPBillion} {
		if !have[req] {
			return fmt.Errorf("cannot plot: column %q missing", req)
		}
	}

	plt := plot.New()
	plt.Title.Text = "GDP Trends (2000–2022)"
	plt.Title.TextStyle.Font.Size = vg.Points(14)
	plt.X.Label.Text = "Year"
	plt.Y.Label.Text = "GDP (billion USD)"

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.NRGBA{A: 76} // ~0.3 alpha
	grid.Horizontal.Color = color.NRGBA{A: 76}
	plt.Add(grid)

	plt.Legend.Top = true
	plt.Legend.Left = true

	countrySer := df.Col(processor.ColCountry)
	yearSer := df.Col(processor.ColYear)
	valueSer := df.Col(processor.ColGDPBillion)

	seriesByCountry := make(map[string]plotter.XYs)
	var order []string
	for i := 0; i < df.Nrow(); i++ {
		name := countrySer.Elem(i).String()
		if _, ok := seriesByCountry[name]; !ok {
			order = append(order, name)
		}
		seriesByCountry[name] = append(seriesByCountry[name], plotter.XY{
			X: yearSer.Elem(i).Float(),
			Y: valueSer.Elem(i).Float(),
		})
	}

	for i, name := range order {
		// a table cleaned with fill method "none" may still hold gaps;
		// those rows get no marker and split the line, they must not
		// abort the render
		segments, valid := splitAtGaps(seriesByCountry[name])
		if len(valid) == 0 {
			continue
		}

		c := palette[i%len(palette)]

		points, err := plotter.NewScatter(valid)
		if err != nil {
			return fmt.Errorf("failed to build series for %s: %w", name, err)
		}
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Color = c
		points.GlyphStyle.Radius = vg.Points(2.5)

		var firstLine *plotter.Line
		for _, seg := range segments {
			if len(seg) < 2 {
				continue
			}
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("failed to build series for %s: %w", name, err)
			}
			line.Color = c
			line.Width = vg.Points(1.5)
			plt.Add(line)
			if firstLine == nil {
				firstLine = line
			}
		}

		plt.Add(points)
		if firstLine != nil {
			plt.Legend.Add(name, firstLine, points)
		} else {
			plt.Legend.Add(name, points)
		}
	}

	target := savePath
	if target == "" {
		target = filepath.Join(os.TempDir(), "gdp_trends.png")
	}
	if err := savePNG(plt, target); err != nil {
		return err
	}
	if savePath != "" && p.logger != nil {
		p.logger.Info("Plot saved to " + savePath)
	}

	show(target)
	return nil
}

// splitAtGaps breaks a country series into runs of consecutive known
// values and also returns the known points flattened for the markers.
func splitAtGaps(xys plotter.XYs) ([]plotter.XYs, plotter.XYs) {
	var (
		segments []plotter.XYs
		current  plotter.XYs
		valid    plotter.XYs
	)
	for _, xy := range xys {
		if math.IsNaN(xy.Y) {
			if len(current) > 0 {
				segments = append(segments, current)
				current = nil
			}
			continue
		}
		current = append(current, xy)
		valid = append(valid, xy)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments, valid
}

// savePNG renders the plot onto a 300 DPI raster canvas and writes it
// out, creating parent directories as needed.
func savePNG(plt *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	c := vgimg.NewWith(
		vgimg.UseWH(10*vg.Inch, 6*vg.Inch),
		vgimg.UseDPI(chartDPI),
	)
	plt.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// show opens the rendered image with the platform viewer. A headless
// environment has no viewer, so failure to launch is ignored.
func show(path string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	_ = cmd.Start()
}
