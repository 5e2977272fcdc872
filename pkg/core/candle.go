package core

import (
	"strconv"
	"time"
)

// Candle represents one time-bucketed OHLCV price sample.
// Timestamp is in milliseconds since epoch and must be unique and
// strictly increasing within a series.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// GetTimestamp returns the candle timestamp in milliseconds
func (c Candle) GetTimestamp() int64 { return c.Timestamp }

// GetOpen returns the opening price of the candle
func (c Candle) GetOpen() float64 { return c.Open }

// GetHigh returns the highest price during the candle period
func (c Candle) GetHigh() float64 { return c.High }

// GetLow returns the lowest price during the candle period
func (c Candle) GetLow() float64 { return c.Low }

// GetClose returns the closing price of the candle
func (c Candle) GetClose() float64 { return c.Close }

// GetVolume returns the trading volume during the candle period
func (c Candle) GetVolume() float64 { return c.Volume }

// Time returns the candle timestamp as a time.Time
func (c Candle) Time() time.Time { return time.UnixMilli(c.Timestamp) }

// IsEmpty checks if the candle contains no significant data
func (c Candle) IsEmpty() bool { return c.Open == 0 && c.Close == 0 && c.Volume == 0 }

// Validate checks the OHLCV shape invariants of a single candle
func (c Candle) Validate() error {
	if c.High < c.Open || c.High < c.Close {
		return ErrInvalidCandle
	}
	if c.Low > c.Open || c.Low > c.Close {
		return ErrInvalidCandle
	}
	if c.Volume < 0 {
		return ErrNegativeValue
	}
	return nil
}

// ToSlice converts a candle to a string slice for serialization
// with the specified decimal precision
func (c Candle) ToSlice(precision int) []string {
	return []string{
		strconv.FormatInt(c.Timestamp, 10),
		strconv.FormatFloat(c.Open, 'f', precision, 64),
		strconv.FormatFloat(c.High, 'f', precision, 64),
		strconv.FormatFloat(c.Low, 'f', precision, 64),
		strconv.FormatFloat(c.Close, 'f', precision, 64),
		strconv.FormatFloat(c.Volume, 'f', precision, 64),
	}
}

// ValidateCandles checks every candle's shape plus the strictly
// increasing timestamp requirement across the slice
func ValidateCandles(candles []Candle) error {
	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return err
		}
		if i > 0 && c.Timestamp <= candles[i-1].Timestamp {
			return ErrUnorderedSeries
		}
	}
	return nil
}
