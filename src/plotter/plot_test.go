package plotter

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/plot/plotter"

	"github.com/phyyl673/FED/src/processor"
)

func cleanedFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"A", "A", "A", "B", "B", "B"}, series.String, processor.ColCountry),
		series.New([]int{2000, 2001, 2002, 2000, 2001, 2002}, series.Int, processor.ColYear),
		series.New([]float64{1, 2, 3, 2, 2, 2}, series.Float, processor.ColGDPBillion),
		series.New([]string{
			processor.UnitLabel, processor.UnitLabel, processor.UnitLabel,
			processor.UnitLabel, processor.UnitLabel, processor.UnitLabel,
		}, series.String, processor.ColGDPUnit),
	)
}

func TestPlotGDPTrendsWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "gdp_trends.png")

	if err := New(nil).PlotGDPTrends(cleanedFrame(), path); err != nil {
		t.Fatalf("PlotGDPTrends failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestPlotGDPTrendsWithGaps(t *testing.T) {
	// fill method "none" leaves missing values in the cleaned table;
	// the series must render with a gap, not fail
	df := dataframe.New(
		series.New([]string{"A", "A", "A", "B", "B", "B"}, series.String, processor.ColCountry),
		series.New([]int{2000, 2001, 2002, 2000, 2001, 2002}, series.Int, processor.ColYear),
		series.New([]float64{1, math.NaN(), 3, math.NaN(), math.NaN(), math.NaN()}, series.Float, processor.ColGDPBillion),
		series.New([]string{
			processor.UnitLabel, processor.UnitLabel, processor.UnitLabel,
			processor.UnitLabel, processor.UnitLabel, processor.UnitLabel,
		}, series.String, processor.ColGDPUnit),
	)
	path := filepath.Join(t.TempDir(), "gapped.png")

	if err := New(nil).PlotGDPTrends(df, path); err != nil {
		t.Fatalf("PlotGDPTrends failed on a gapped series: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestSplitAtGaps(t *testing.T) {
	nan := math.NaN()
	xys := plotter.XYs{
		{X: 2000, Y: 1}, {X: 2001, Y: nan}, {X: 2002, Y: 3}, {X: 2003, Y: 4},
	}

	segments, valid := splitAtGaps(xys)
	if len(segments) != 2 {
		t.Fatalf("segment count = %d, want 2", len(segments))
	}
	if len(segments[0]) != 1 || len(segments[1]) != 2 {
		t.Errorf("segment lengths = %d,%d, want 1,2", len(segments[0]), len(segments[1]))
	}
	if len(valid) != 3 {
		t.Errorf("valid point count = %d, want 3", len(valid))
	}
}

func TestPlotGDPTrendsMissingColumn(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"A"}, series.String, processor.ColCountry),
		series.New([]int{2000}, series.Int, processor.ColYear),
	)

	if err := New(nil).PlotGDPTrends(df, ""); err == nil {
		t.Fatal("plotting without a value column should fail")
	}
}
