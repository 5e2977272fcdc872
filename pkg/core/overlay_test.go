package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaySeriesOrderAndLookup(t *testing.T) {
	s := NewOverlaySeries()
	s.Put(30, 3)
	s.Put(10, 1)
	s.Put(20, 2)

	v, ok := s.At(10)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	// Insertion order is preserved, not timestamp order
	points := s.Points()
	assert.Equal(t, []OverlayPoint{
		{Timestamp: 30, Value: 3},
		{Timestamp: 10, Value: 1},
		{Timestamp: 20, Value: 2},
	}, points)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, int64(20), last.Timestamp)
}

func TestOverlaySeriesPutOverwrites(t *testing.T) {
	s := NewOverlaySeries()
	s.Put(10, 1)
	s.Put(10, 5)

	assert.Equal(t, 1, s.Length())
	v, _ := s.At(10)
	assert.Equal(t, 5.0, v)
}

func TestOverlaySeriesEqual(t *testing.T) {
	a := OverlaySeriesFromPoints([]OverlayPoint{{Timestamp: 1, Value: 2}, {Timestamp: 3, Value: 4}})
	b := OverlaySeriesFromPoints([]OverlayPoint{{Timestamp: 3, Value: 4}, {Timestamp: 1, Value: 2}})
	c := OverlaySeriesFromPoints([]OverlayPoint{{Timestamp: 1, Value: 2}, {Timestamp: 3, Value: 9}})

	// Equality compares pairs, not insertion order
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(NewOverlaySeries()))

	var nilSeries *OverlaySeries
	assert.True(t, nilSeries.Equal(NewOverlaySeries()))
	assert.False(t, nilSeries.Equal(a))
}

func TestOverlaySeriesClone(t *testing.T) {
	a := OverlaySeriesFromPoints([]OverlayPoint{{Timestamp: 1, Value: 2}})
	b := a.Clone()
	b.Put(1, 9)

	v, _ := a.At(1)
	assert.Equal(t, 2.0, v)
	assert.False(t, a.Equal(b))
}

func TestValidateCandles(t *testing.T) {
	good := []Candle{
		{Timestamp: 1, Open: 10, High: 12, Low: 9, Close: 11},
		{Timestamp: 2, Open: 11, High: 11.5, Low: 10, Close: 10.5},
	}
	assert.NoError(t, ValidateCandles(good))

	badShape := []Candle{{Timestamp: 1, Open: 10, High: 9, Low: 9, Close: 10}}
	assert.ErrorIs(t, ValidateCandles(badShape), ErrInvalidCandle)

	badOrder := []Candle{
		{Timestamp: 2, Open: 10, High: 12, Low: 9, Close: 11},
		{Timestamp: 2, Open: 11, High: 12, Low: 10, Close: 10.5},
	}
	assert.ErrorIs(t, ValidateCandles(badOrder), ErrUnorderedSeries)
}

func TestParseAxisType(t *testing.T) {
	assert.Equal(t, AxisLogarithm, ParseAxisType("Logarithm"))
	assert.Equal(t, AxisLogarithm, ParseAxisType("log"))
	assert.Equal(t, AxisPercentage, ParseAxisType(" percentage "))
	assert.Equal(t, AxisNormal, ParseAxisType("whatever"))
	assert.Equal(t, AxisNormal, ParseAxisType(""))
}
