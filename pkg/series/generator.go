package series

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/raykavin/chartsync/pkg/core"
)

// Result bundles the generated candle sequence with the two derived
// overlay series and their latest scalar values.
type Result struct {
	Candles     []core.Candle
	FloorSeries *core.OverlaySeries
	GTWAPSeries *core.OverlaySeries
	FloorPrice  float64
	GTWAPPrice  float64
}

// Summary is the scalar snapshot read by toolbar and metrics panels.
type Summary struct {
	LastClose  float64
	FloorPrice float64
	GTWAPPrice float64
}

// Closes returns the candle close values as an ordered series.
func (r *Result) Closes() core.Series[float64] {
	closes := make(core.Series[float64], len(r.Candles))
	for i, c := range r.Candles {
		closes[i] = c.Close
	}
	return closes
}

// Summary returns the latest scalar values of the result.
func (r *Result) Summary() Summary {
	s := Summary{FloorPrice: r.FloorPrice, GTWAPPrice: r.GTWAPPrice}
	if n := len(r.Candles); n > 0 {
		s.LastClose = r.Candles[n-1].Close
	}
	return s
}

// Generate produces a deterministic candle scenario for a token plus
// the floor and GTWAP overlays derived from it. The token identifier
// only seeds the pseudo-random scenario; an unrecognized time range
// falls back to the default pattern and never errors.
func Generate(tokenID, timeRange string) *Result {
	pattern := LookupPattern(timeRange)
	candles := generateCandles(tokenID, pattern, time.Now())

	floor := DeriveFloor(candles)
	gtwap := DeriveGTWAP(candles)

	result := &Result{
		Candles:     candles,
		FloorSeries: floor,
		GTWAPSeries: gtwap,
	}
	if p, ok := floor.Last(); ok {
		result.FloorPrice = p.Value
	}
	if p, ok := gtwap.Last(); ok {
		result.GTWAPPrice = p.Value
	}
	return result
}

// generateCandles walks backward from now in fixed intervals, applying
// a long-period cyclical term, short-period noise, a bounded random
// walk and a linear trend to a running price seeded by the token hash.
func generateCandles(tokenID string, pattern Pattern, now time.Time) []core.Candle {
	rng := rand.New(rand.NewSource(int64(seedFromToken(tokenID))))

	// Base price scenario in [0.5, 100.5), stable per token
	base := 0.5 + rng.Float64()*100

	n := pattern.Points
	interval := pattern.Interval.Milliseconds()
	start := now.Truncate(pattern.Interval).UnixMilli() - int64(n-1)*interval

	candles := make([]core.Candle, 0, n)
	closes := make(core.Series[float64], 0, n)
	walk := 0.0

	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)

		cycle := math.Sin(2*math.Pi*progress*3) * pattern.Volatility * 4 * base
		noise := (rng.Float64() - 0.5) * pattern.Volatility * base
		walk += (rng.Float64() - 0.5) * 2 * pattern.Volatility * base
		trend := pattern.Trend * base * progress

		price := base + cycle + walk + trend + noise

		// The walk floor is clamped to 10% of the base price to avoid
		// runaway decay on long bearish runs
		if price < base*0.1 {
			price = base * 0.1
			walk = price - base - cycle - trend - noise
		}

		open := base
		if closes.Length() > 0 {
			open = closes.Last(0)
		}
		close := price

		spread := rng.Float64() * pattern.Volatility * base
		high := math.Max(open, close) + spread*rng.Float64()
		low := math.Min(open, close) - spread*rng.Float64()

		// Widen once more so the candle invariant holds even when the
		// random spread collapsed to zero
		high = math.Max(high, math.Max(open, close))
		low = math.Min(low, math.Min(open, close))
		if low < 0 {
			low = math.Min(open, close) * 0.99
		}

		candles = append(candles, core.Candle{
			Timestamp: start + int64(i)*interval,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    rng.Float64() * base * 1000,
		})

		closes = append(closes, close)
	}

	return candles
}

func seedFromToken(tokenID string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tokenID))
	return h.Sum32()
}
