// Package indicator provides supplemental overlay series computed from
// candle data, consumable by the chart lifecycle under the MA overlay
// kind.
package indicator

import (
	"github.com/raykavin/chartsync/pkg/core"
)

// Overlay computes a derived line series from candle data
type Overlay interface {
	Name() string
	Kind() core.OverlayKind
	Warmup() int
	Load(candles []core.Candle) *core.OverlaySeries
}

// closes extracts the close series from a candle slice
func closes(candles []core.Candle) core.Series[float64] {
	values := make(core.Series[float64], len(candles))
	for i, c := range candles {
		values[i] = c.Close
	}
	return values
}

// seriesFromValues pairs computed values with candle timestamps,
// skipping the warmup prefix where the indicator has no value yet
func seriesFromValues(candles []core.Candle, values []float64, warmup int) *core.OverlaySeries {
	out := core.NewOverlaySeries()
	for i := warmup; i < len(candles) && i < len(values); i++ {
		out.Put(candles[i].Timestamp, values[i])
	}
	return out
}
