package processor

import (
	"fmt"
	"math"
	"strings"
)

// FillMethod selects how gaps inside a per-country series are treated.
type FillMethod int

const (
	FillInterpolate FillMethod = iota
	FillForward
	FillBackward
	FillNone
)

// ParseFillMethod maps the config spelling to a FillMethod. The pandas
// names ffill/bfill and the longhand forward-fill/backward-fill are both
// accepted; empty means the default.
func ParseFillMethod(s string) (FillMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "interpolate":
		return FillInterpolate, nil
	case "ffill", "forward-fill":
		return FillForward, nil
	case "bfill", "backward-fill":
		return FillBackward, nil
	case "none":
		return FillNone, nil
	}
	return FillNone, fmt.Errorf("unknown fill method %q", s)
}

func (m FillMethod) String() string {
	switch m {
	case FillInterpolate:
		return "interpolate"
	case FillForward:
		return "ffill"
	case FillBackward:
		return "bfill"
	case FillNone:
		return "none"
	default:
		return "unknown"
	}
}

// fillSeries returns a copy of vals with NaN gaps handled per method.
// vals must already be in ascending year order.
func fillSeries(vals []float64, method FillMethod) []float64 {
	out := make([]float64, len(vals))
	copy(out, vals)

	switch method {
	case FillForward:
		last := math.NaN()
		for i, v := range out {
			if math.IsNaN(v) {
				out[i] = last
			} else {
				last = v
			}
		}
	case FillBackward:
		next := math.NaN()
		for i := len(out) - 1; i >= 0; i-- {
			if math.IsNaN(out[i]) {
				out[i] = next
			} else {
				next = out[i]
			}
		}
	case FillInterpolate:
		interpolate(out)
	}
	return out
}

// interpolate fills gaps linearly between known neighbours and extends
// boundary gaps with the nearest known value in both directions. An
// all-NaN series stays all-NaN.
func interpolate(vals []float64) {
	var known []int
	for i, v := range vals {
		if !math.IsNaN(v) {
			known = append(known, i)
		}
	}
	if len(known) == 0 {
		return
	}

	for i := 0; i < known[0]; i++ {
		vals[i] = vals[known[0]]
	}
	for i := known[len(known)-1] + 1; i < len(vals); i++ {
		vals[i] = vals[known[len(known)-1]]
	}

	for k := 0; k+1 < len(known); k++ {
		lo, hi := known[k], known[k+1]
		for i := lo + 1; i < hi; i++ {
			frac := float64(i-lo) / float64(hi-lo)
			vals[i] = vals[lo] + frac*(vals[hi]-vals[lo])
		}
	}
}
