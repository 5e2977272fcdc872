package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"github.com/raykavin/chartsync/pkg/core"
)

// SMA creates a simple moving average overlay
// period: the number of candles to average over
func SMA(period int) Overlay {
	return &movingAverage{period: period, name: fmt.Sprintf("SMA(%d)", period), calc: talib.Sma}
}

// EMA creates an exponential moving average overlay
// period: the number of candles to use for calculations
func EMA(period int) Overlay {
	return &movingAverage{period: period, name: fmt.Sprintf("EMA(%d)", period), calc: talib.Ema}
}

type movingAverage struct {
	period int
	name   string
	calc   func([]float64, int) []float64
}

// Name returns the formatted name of the overlay
func (m *movingAverage) Name() string { return m.name }

// Kind returns the overlay kind the lifecycle tracks this series under
func (m *movingAverage) Kind() core.OverlayKind { return core.OverlayMA }

// Warmup returns the number of candles needed before values exist
func (m *movingAverage) Warmup() int { return m.period }

// Load calculates the overlay values from the provided candles
func (m *movingAverage) Load(candles []core.Candle) *core.OverlaySeries {
	closes := closes(candles)
	if closes.Length() < m.period {
		return core.NewOverlaySeries()
	}

	values := m.calc(closes.Values(), m.period)
	return seriesFromValues(candles, values, m.period)
}
