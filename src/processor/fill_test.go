package processor

import (
	"math"
	"testing"
)

func sameSeries(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				return false
			}
			continue
		}
		if math.Abs(got[i]-want[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestFillSeries(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name   string
		method FillMethod
		in     []float64
		want   []float64
	}{
		{"interpolate middle gap", FillInterpolate, []float64{10, nan, 30}, []float64{10, 20, 30}},
		{"interpolate long gap", FillInterpolate, []float64{0, nan, nan, nan, 40}, []float64{0, 10, 20, 30, 40}},
		{"interpolate extends boundaries", FillInterpolate, []float64{nan, 5, nan}, []float64{5, 5, 5}},
		{"interpolate all missing", FillInterpolate, []float64{nan, nan}, []float64{nan, nan}},
		{"ffill keeps leading gap", FillForward, []float64{nan, 5, nan}, []float64{nan, 5, 5}},
		{"bfill keeps trailing gap", FillBackward, []float64{nan, 5, nan}, []float64{5, 5, nan}},
		{"none passes through", FillNone, []float64{1, nan, 3}, []float64{1, nan, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fillSeries(tt.in, tt.method)
			if !sameSeries(got, tt.want) {
				t.Errorf("fillSeries(%v, %v) = %v, want %v", tt.in, tt.method, got, tt.want)
			}
		})
	}
}

func TestFillSeriesDoesNotMutateInput(t *testing.T) {
	in := []float64{10, math.NaN(), 30}
	fillSeries(in, FillInterpolate)
	if !math.IsNaN(in[1]) {
		t.Errorf("input slice was mutated: %v", in)
	}
}

func TestParseFillMethod(t *testing.T) {
	tests := []struct {
		in   string
		want FillMethod
	}{
		{"", FillInterpolate},
		{"interpolate", FillInterpolate},
		{"Interpolate", FillInterpolate},
		{"ffill", FillForward},
		{"forward-fill", FillForward},
		{"bfill", FillBackward},
		{"backward-fill", FillBackward},
		{"none", FillNone},
	}
	for _, tt := range tests {
		got, err := ParseFillMethod(tt.in)
		if err != nil {
			t.Errorf("ParseFillMethod(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFillMethod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFillMethod("bogus"); err == nil {
		t.Error("ParseFillMethod(\"bogus\") should fail")
	}
}
