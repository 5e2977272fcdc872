package config

import "github.com/raykavin/chartsync/pkg/core"

// Default setters write directly to the long-lived record.

func (s *Store) SetDefaultAxisType(t core.AxisType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults.AxisType = t
}

func (s *Store) SetDefaultLastPriceVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults.LastPriceVisible = v
}

func (s *Store) SetDefaultCrosshairVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults.CrosshairVisible = v
}

func (s *Store) SetDefaultData(candles []core.Candle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults.Data = candles
}

func (s *Store) SetDefaultShowFloor(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults.ShowFloor = v
}

func (s *Store) SetDefaultShowGTWAP(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults.ShowGTWAP = v
}

// SetDefaultFloorData replaces the floor overlay wholesale
func (s *Store) SetDefaultFloorData(series *core.OverlaySeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults.FloorData = series
}

// SetDefaultGTWAPData replaces the GTWAP overlay wholesale
func (s *Store) SetDefaultGTWAPData(series *core.OverlaySeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults.GTWAPData = series
}

// Override setters write to the transient record; a later commit folds
// them into the defaults.

func (s *Store) SetOverrideAxisType(t core.AxisType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.AxisType = &t
}

func (s *Store) SetOverrideLastPriceVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.LastPriceVisible = &v
}

func (s *Store) SetOverrideCrosshairVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.CrosshairVisible = &v
}

func (s *Store) SetOverrideData(candles []core.Candle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.Data = candles
}

func (s *Store) SetOverrideShowFloor(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.ShowFloor = &v
}

func (s *Store) SetOverrideShowGTWAP(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.ShowGTWAP = &v
}

func (s *Store) SetOverrideFloorData(series *core.OverlaySeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.FloorData = series
}

func (s *Store) SetOverrideGTWAPData(series *core.OverlaySeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.GTWAPData = series
}
