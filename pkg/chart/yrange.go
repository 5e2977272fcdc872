package chart

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/raykavin/chartsync/pkg/config"
	"github.com/raykavin/chartsync/pkg/core"
)

const (
	// rangePadRatio pads both ends by 10% of the scanned span
	rangePadRatio = 0.10

	// degeneratePadRatio expands a single-value range by 1% of |value|
	degeneratePadRatio = 0.01

	// degenerateEpsilon is the absolute expansion when the single
	// value is zero
	degenerateEpsilon = 1e-8
)

// Range is a Y-axis bound pair
type Range struct {
	Lower float64
	Upper float64
}

// Contains reports whether a value lies inside the range
func (r Range) Contains(v float64) bool {
	return v >= r.Lower && v <= r.Upper
}

// ComputeYRange computes Y-axis bounds covering every visible candle
// extremum and every visible, enabled overlay value, with symmetric
// padding. Extra series cover overlays living outside the merged
// configuration record; callers gate them on visibility and pass nil
// for hidden ones. ComputeYRange is only active for the normal axis
// type; logarithmic and percentage scaling are delegated to the
// widget (ok=false).
func ComputeYRange(visible []core.Candle, eff config.Effective, extras ...*core.OverlaySeries) (Range, bool) {
	if eff.AxisType != core.AxisNormal || len(visible) == 0 {
		return Range{}, false
	}

	samples := make([]float64, 0, len(visible)*4)
	for _, c := range visible {
		samples = append(samples, c.Low, c.High)

		if eff.ShowFloor {
			if v, ok := eff.FloorData.At(c.Timestamp); ok {
				samples = append(samples, v)
			}
		}
		if eff.ShowGTWAP {
			if v, ok := eff.GTWAPData.At(c.Timestamp); ok {
				samples = append(samples, v)
			}
		}
		for _, extra := range extras {
			if v, ok := extra.At(c.Timestamp); ok {
				samples = append(samples, v)
			}
		}
	}

	lower := floats.Min(samples)
	upper := floats.Max(samples)

	if lower == upper {
		pad := math.Abs(lower) * degeneratePadRatio
		if pad == 0 {
			pad = degenerateEpsilon
		}
		return Range{Lower: lower - pad, Upper: upper + pad}, true
	}

	pad := (upper - lower) * rangePadRatio
	return Range{Lower: lower - pad, Upper: upper + pad}, true
}
