package chart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/chartsync/pkg/config"
	"github.com/raykavin/chartsync/pkg/core"
)

func TestComputeYRangeConcreteScenario(t *testing.T) {
	candles := []core.Candle{
		{Timestamp: 0, Open: 10, High: 12, Low: 9, Close: 11},
		{Timestamp: 60_000, Open: 11, High: 11.5, Low: 10, Close: 10.5},
	}
	eff := config.Effective{AxisType: core.AxisNormal, Data: candles}

	r, ok := ComputeYRange(candles, eff)
	require.True(t, ok)
	assert.InDelta(t, 8.7, r.Lower, 1e-9)
	assert.InDelta(t, 12.3, r.Upper, 1e-9)
}

func TestComputeYRangeInactiveOutsideNormalAxis(t *testing.T) {
	candles := []core.Candle{{Timestamp: 0, Open: 1, High: 2, Low: 0.5, Close: 1.5}}

	for _, axis := range []core.AxisType{core.AxisLogarithm, core.AxisPercentage} {
		_, ok := ComputeYRange(candles, config.Effective{AxisType: axis})
		assert.False(t, ok, string(axis))
	}
}

func TestComputeYRangeEmptyWindow(t *testing.T) {
	_, ok := ComputeYRange(nil, config.Effective{AxisType: core.AxisNormal})
	assert.False(t, ok)
}

func TestComputeYRangeIncludesEnabledOverlays(t *testing.T) {
	candles := []core.Candle{
		{Timestamp: 0, Open: 10, High: 12, Low: 9, Close: 11},
	}
	floor := core.OverlaySeriesFromPoints([]core.OverlayPoint{{Timestamp: 0, Value: 5}})
	gtwap := core.OverlaySeriesFromPoints([]core.OverlayPoint{{Timestamp: 0, Value: 20}})

	eff := config.Effective{
		AxisType:  core.AxisNormal,
		ShowFloor: true,
		ShowGTWAP: true,
		FloorData: floor,
		GTWAPData: gtwap,
	}

	r, ok := ComputeYRange(candles, eff)
	require.True(t, ok)

	// 5..20 padded by 10% of the span
	assert.InDelta(t, 5-1.5, r.Lower, 1e-9)
	assert.InDelta(t, 20+1.5, r.Upper, 1e-9)
}

func TestComputeYRangeIncludesExtraSeries(t *testing.T) {
	candles := []core.Candle{
		{Timestamp: 0, Open: 10, High: 12, Low: 9, Close: 11},
	}
	ma := core.OverlaySeriesFromPoints([]core.OverlayPoint{{Timestamp: 0, Value: 30}})
	eff := config.Effective{AxisType: core.AxisNormal, Data: candles}

	r, ok := ComputeYRange(candles, eff, ma)
	require.True(t, ok)

	// 9..30 padded by 10% of the span
	assert.InDelta(t, 9-2.1, r.Lower, 1e-9)
	assert.InDelta(t, 30+2.1, r.Upper, 1e-9)

	// A nil extra contributes nothing
	r, ok = ComputeYRange(candles, eff, nil)
	require.True(t, ok)
	assert.InDelta(t, 12.3, r.Upper, 1e-9)
}

func TestComputeYRangeIgnoresDisabledOverlays(t *testing.T) {
	candles := []core.Candle{
		{Timestamp: 0, Open: 10, High: 12, Low: 9, Close: 11},
	}
	gtwap := core.OverlaySeriesFromPoints([]core.OverlayPoint{{Timestamp: 0, Value: 100}})

	eff := config.Effective{AxisType: core.AxisNormal, GTWAPData: gtwap}

	r, ok := ComputeYRange(candles, eff)
	require.True(t, ok)
	assert.Less(t, r.Upper, 100.0)
}

func TestComputeYRangeDegenerateSingleValue(t *testing.T) {
	candles := []core.Candle{{Timestamp: 0, Open: 50, High: 50, Low: 50, Close: 50}}

	r, ok := ComputeYRange(candles, config.Effective{AxisType: core.AxisNormal})
	require.True(t, ok)
	assert.InDelta(t, 49.5, r.Lower, 1e-9)
	assert.InDelta(t, 50.5, r.Upper, 1e-9)
}

func TestComputeYRangeDegenerateZero(t *testing.T) {
	candles := []core.Candle{{Timestamp: 0}}

	r, ok := ComputeYRange(candles, config.Effective{AxisType: core.AxisNormal})
	require.True(t, ok)
	assert.Less(t, r.Lower, 0.0)
	assert.Greater(t, r.Upper, 0.0)
}

func TestComputeYRangeContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(40)
		candles := make([]core.Candle, 0, n)
		floor := core.NewOverlaySeries()
		gtwap := core.NewOverlaySeries()

		for i := 0; i < n; i++ {
			open := 1 + rng.Float64()*100
			clos := 1 + rng.Float64()*100
			high := open + rng.Float64()*10
			if clos > high {
				high = clos
			}
			low := open - rng.Float64()*10
			if clos < low {
				low = clos
			}

			ts := int64(i) * 60_000
			candles = append(candles, core.Candle{Timestamp: ts, Open: open, High: high, Low: low, Close: clos})
			floor.Put(ts, rng.Float64()*50)
			gtwap.Put(ts, rng.Float64()*150)
		}

		eff := config.Effective{
			AxisType:  core.AxisNormal,
			ShowFloor: rng.Intn(2) == 0,
			ShowGTWAP: rng.Intn(2) == 0,
			FloorData: floor,
			GTWAPData: gtwap,
		}

		r, ok := ComputeYRange(candles, eff)
		require.True(t, ok)

		for _, c := range candles {
			assert.True(t, r.Contains(c.High), "trial %d: high outside range", trial)
			assert.True(t, r.Contains(c.Low), "trial %d: low outside range", trial)

			if eff.ShowFloor {
				v, _ := floor.At(c.Timestamp)
				assert.True(t, r.Contains(v), "trial %d: floor outside range", trial)
			}
			if eff.ShowGTWAP {
				v, _ := gtwap.At(c.Timestamp)
				assert.True(t, r.Contains(v), "trial %d: gtwap outside range", trial)
			}
		}
	}
}
