package core

import (
	"github.com/StudioSol/set"
)

// OverlayKind identifies a named overlay series drawn on top of the
// candle plot
type OverlayKind string

const (
	OverlayFloor OverlayKind = "floor"
	OverlayGTWAP OverlayKind = "gtwap"
	OverlayMA    OverlayKind = "ma"
)

// Valid reports whether the kind is one of the known overlays
func (k OverlayKind) Valid() bool {
	switch k {
	case OverlayFloor, OverlayGTWAP, OverlayMA:
		return true
	}
	return false
}

// OverlayPoint is a single timestamped value of an overlay series
type OverlayPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// OverlaySeries is an ordered sequence of overlay points. Values are
// kept in a timestamp-keyed map for O(1) lookup during range and
// indicator calculation, with a linked hash set preserving insertion
// order for iteration.
type OverlaySeries struct {
	values     map[int64]float64
	timestamps *set.LinkedHashSetINT64
}

// NewOverlaySeries creates an empty overlay series
func NewOverlaySeries() *OverlaySeries {
	return &OverlaySeries{
		values:     make(map[int64]float64),
		timestamps: set.NewLinkedHashSetINT64(),
	}
}

// OverlaySeriesFromPoints creates a series from an ordered point slice.
// A duplicated timestamp overwrites the previous value without
// extending the order.
func OverlaySeriesFromPoints(points []OverlayPoint) *OverlaySeries {
	s := NewOverlaySeries()
	for _, p := range points {
		s.Put(p.Timestamp, p.Value)
	}
	return s
}

// Put inserts or replaces the value at the given timestamp
func (s *OverlaySeries) Put(timestamp int64, value float64) {
	s.values[timestamp] = value
	s.timestamps.Add(timestamp)
}

// At returns the value at the given timestamp
func (s *OverlaySeries) At(timestamp int64) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.values[timestamp]
	return v, ok
}

// Length returns the number of points in the series
func (s *OverlaySeries) Length() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// IsEmpty reports whether the series holds no points
func (s *OverlaySeries) IsEmpty() bool { return s.Length() == 0 }

// Points returns the series as an ordered point slice
func (s *OverlaySeries) Points() []OverlayPoint {
	if s == nil {
		return nil
	}
	points := make([]OverlayPoint, 0, len(s.values))
	for ts := range s.timestamps.Iter() {
		points = append(points, OverlayPoint{Timestamp: ts, Value: s.values[ts]})
	}
	return points
}

// Last returns the most recently inserted point
func (s *OverlaySeries) Last() (OverlayPoint, bool) {
	points := s.Points()
	if len(points) == 0 {
		return OverlayPoint{}, false
	}
	return points[len(points)-1], true
}

// Clone returns an independent copy preserving insertion order
func (s *OverlaySeries) Clone() *OverlaySeries {
	if s == nil {
		return nil
	}
	return OverlaySeriesFromPoints(s.Points())
}

// Equal compares series size and every timestamp-value pair. Order of
// insertion is not significant for equality.
func (s *OverlaySeries) Equal(other *OverlaySeries) bool {
	if s.Length() != other.Length() {
		return false
	}
	if s == nil || other == nil {
		return true
	}
	for ts, v := range s.values {
		ov, ok := other.values[ts]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
