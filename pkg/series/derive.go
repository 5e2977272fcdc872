package series

import (
	"math"

	"github.com/raykavin/chartsync/pkg/core"
)

const (
	// floorSeedRatio seeds the floor at 85% of the first candle's low
	floorSeedRatio = 0.85

	// floorDailyRate is the appreciation applied per elapsed day
	floorDailyRate = 0.002

	// gtwapBase is the tick base of the log-space average
	gtwapBase = 1.0001

	dayMillis    = 24 * 60 * 60 * 1000
	minuteMillis = 60 * 1000
)

// DeriveFloor produces the monotonically non-decreasing floor overlay
// for a candle sequence. Each step ratchets the previous floor up by
// the daily rate scaled to the elapsed fraction of a day; the emitted
// series never decreases regardless of candle price movement.
func DeriveFloor(candles []core.Candle) *core.OverlaySeries {
	out := core.NewOverlaySeries()
	if len(candles) == 0 {
		return out
	}

	floor := candles[0].Low * floorSeedRatio
	out.Put(candles[0].Timestamp, floor)

	for i := 1; i < len(candles); i++ {
		elapsed := float64(candles[i].Timestamp-candles[i-1].Timestamp) / dayMillis
		next := floor * (1 + floorDailyRate*elapsed)
		floor = math.Max(floor, next)
		out.Put(candles[i].Timestamp, floor)
	}

	return out
}

// ClampNonDecreasing enforces the floor invariant on an arbitrary point
// sequence: any point below its predecessor is raised to the
// predecessor's value.
func ClampNonDecreasing(points []core.OverlayPoint) []core.OverlayPoint {
	out := make([]core.OverlayPoint, len(points))
	copy(out, points)
	for i := 1; i < len(out); i++ {
		if out[i].Value < out[i-1].Value {
			out[i].Value = out[i-1].Value
		}
	}
	return out
}

// DeriveGTWAP produces the geometric time-weighted average price
// overlay. Each candle contributes its close in log space, weighted by
// its elapsed minutes; the reported value is the accumulator averaged
// over total elapsed time and converted back to price space. The
// computation is streaming and append-only: recomputing from scratch
// reproduces the incremental sequence.
func DeriveGTWAP(candles []core.Candle) *core.OverlaySeries {
	out := core.NewOverlaySeries()
	if len(candles) == 0 {
		return out
	}

	logBase := math.Log(gtwapBase)

	var acc, elapsed float64
	for i, c := range candles {
		weight := candleWeightMinutes(candles, i)
		acc += math.Log(c.Close) / logBase * weight
		elapsed += weight
		out.Put(c.Timestamp, math.Pow(gtwapBase, acc/elapsed))
	}

	return out
}

// candleWeightMinutes returns the time weight of candle i in minutes.
// The first candle assumes the spacing of its successor, or one minute
// for a single-candle series.
func candleWeightMinutes(candles []core.Candle, i int) float64 {
	switch {
	case i > 0:
		return float64(candles[i].Timestamp-candles[i-1].Timestamp) / minuteMillis
	case len(candles) > 1:
		return float64(candles[1].Timestamp-candles[0].Timestamp) / minuteMillis
	default:
		return 1
	}
}
