package core

import "errors"

var (
	ErrInvalidCandle   = errors.New("invalid candle shape")
	ErrNegativeValue   = errors.New("negative value")
	ErrUnorderedSeries = errors.New("candle timestamps not strictly increasing")
	ErrDisposed        = errors.New("chart adapter disposed")
	ErrNotReady        = errors.New("chart widget not ready")
	ErrUnknownOverlay  = errors.New("unknown overlay kind")
	ErrEmptySeries     = errors.New("empty series")
)
