package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/chartsync/pkg/core"
)

func testCandles(n int, startPrice float64) []core.Candle {
	candles := make([]core.Candle, 0, n)
	price := startPrice
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	for i := 0; i < n; i++ {
		open := price
		// Alternate up and down moves so closes wander both directions
		if i%2 == 0 {
			price *= 1.02
		} else {
			price *= 0.99
		}
		candles = append(candles, core.Candle{
			Timestamp: start + int64(i)*60_000,
			Open:      open,
			High:      maxf(open, price) * 1.001,
			Low:       minf(open, price) * 0.999,
			Close:     price,
			Volume:    100,
		})
	}
	return candles
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func TestGenerateCandleInvariants(t *testing.T) {
	for _, timeRange := range []string{"1H", "1D", "1W", "1M", "1Y"} {
		result := Generate("SOL-TEST", timeRange)
		require.NotEmpty(t, result.Candles, timeRange)
		assert.NoError(t, core.ValidateCandles(result.Candles), timeRange)

		for _, c := range result.Candles {
			assert.Greater(t, c.Close, 0.0)
			assert.GreaterOrEqual(t, c.High, maxf(c.Open, c.Close))
			assert.LessOrEqual(t, c.Low, minf(c.Open, c.Close))
		}
	}
}

func TestGenerateUnknownRangeFallsBack(t *testing.T) {
	result := Generate("SOL-TEST", "definitely-not-a-range")
	assert.Len(t, result.Candles, defaultPattern.Points)
}

func TestLookupPatternDurationFallback(t *testing.T) {
	p := LookupPattern("48h")
	assert.Equal(t, 96, p.Points)
	assert.Equal(t, 30*time.Minute, p.Interval)

	assert.Equal(t, defaultPattern, LookupPattern(""))
	assert.Equal(t, defaultPattern, LookupPattern("garbage"))
}

func TestFloorMonotonicity(t *testing.T) {
	for _, token := range []string{"AAA", "BBB", "CCC"} {
		for _, timeRange := range []string{"1H", "1D", "1Y", "unknown"} {
			result := Generate(token, timeRange)
			points := result.FloorSeries.Points()
			require.NotEmpty(t, points)

			for i := 1; i < len(points); i++ {
				assert.GreaterOrEqual(t, points[i].Value, points[i-1].Value,
					"floor decreased at index %d for %s/%s", i, token, timeRange)
			}
		}
	}
}

func TestFloorSeedsAtFirstLow(t *testing.T) {
	candles := testCandles(10, 50)
	floor := DeriveFloor(candles)

	first, ok := floor.At(candles[0].Timestamp)
	require.True(t, ok)
	assert.InDelta(t, candles[0].Low*floorSeedRatio, first, 1e-12)
}

func TestClampNonDecreasing(t *testing.T) {
	points := []core.OverlayPoint{
		{Timestamp: 0, Value: 0.85},
		{Timestamp: 1, Value: 0.86},
		{Timestamp: 2, Value: 0.84},
	}

	clamped := ClampNonDecreasing(points)

	assert.Equal(t, []core.OverlayPoint{
		{Timestamp: 0, Value: 0.85},
		{Timestamp: 1, Value: 0.86},
		{Timestamp: 2, Value: 0.86},
	}, clamped)

	// Input is not mutated
	assert.Equal(t, 0.84, points[2].Value)
}

func TestGTWAPBounds(t *testing.T) {
	candles := testCandles(200, 25)
	gtwap := DeriveGTWAP(candles)

	minClose, maxClose := candles[0].Close, candles[0].Close
	for i, c := range candles {
		minClose = minf(minClose, c.Close)
		maxClose = maxf(maxClose, c.Close)

		v, ok := gtwap.At(c.Timestamp)
		require.True(t, ok, "missing gtwap at index %d", i)
		assert.Greater(t, v, 0.0)
		assert.GreaterOrEqual(t, v, minClose*(1-1e-9))
		assert.LessOrEqual(t, v, maxClose*(1+1e-9))
	}
}

func TestGTWAPStreamingMatchesRecompute(t *testing.T) {
	candles := testCandles(50, 10)

	// Derivation over the full slice must agree with derivation over
	// every prefix at the prefix end, since the accumulator is
	// append-only
	full := DeriveGTWAP(candles)
	for i := 1; i <= len(candles); i++ {
		prefix := DeriveGTWAP(candles[:i])
		last := candles[i-1].Timestamp

		want, _ := full.At(last)
		got, _ := prefix.At(last)
		assert.InDelta(t, want, got, 1e-9, "prefix length %d", i)
	}
}

func TestDerivationDeterminism(t *testing.T) {
	candles := testCandles(120, 42)

	assert.True(t, DeriveFloor(candles).Equal(DeriveFloor(candles)))
	assert.True(t, DeriveGTWAP(candles).Equal(DeriveGTWAP(candles)))
}

func TestDeriveEmptyInput(t *testing.T) {
	assert.True(t, DeriveFloor(nil).IsEmpty())
	assert.True(t, DeriveGTWAP(nil).IsEmpty())
}

func TestResultSummary(t *testing.T) {
	result := Generate("SOL-TEST", "1D")
	summary := result.Summary()

	assert.Equal(t, result.Candles[len(result.Candles)-1].Close, summary.LastClose)
	assert.Equal(t, result.FloorPrice, summary.FloorPrice)
	assert.Equal(t, result.GTWAPPrice, summary.GTWAPPrice)
	assert.Greater(t, summary.FloorPrice, 0.0)
	assert.Greater(t, summary.GTWAPPrice, 0.0)
}
