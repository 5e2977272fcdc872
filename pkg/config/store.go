// Package config holds the chart configuration store: a long-lived
// defaults record plus a transient overrides record, merged field by
// field into one effective snapshot per reconciliation pass.
package config

import (
	"sync"

	"github.com/raykavin/chartsync/pkg/core"
)

// Defaults is the long-lived configuration record. Every field always
// has a value.
type Defaults struct {
	AxisType         core.AxisType
	LastPriceVisible bool
	CrosshairVisible bool
	Data             []core.Candle
	ShowFloor        bool
	ShowGTWAP        bool
	FloorData        *core.OverlaySeries
	GTWAPData        *core.OverlaySeries
}

// Overrides is the short-lived record layered on top of the defaults.
// A nil field means "no override"; overlay series are whole-value
// overrides, never merged entry by entry.
type Overrides struct {
	AxisType         *core.AxisType
	LastPriceVisible *bool
	CrosshairVisible *bool
	Data             []core.Candle
	ShowFloor        *bool
	ShowGTWAP        *bool
	FloorData        *core.OverlaySeries
	GTWAPData        *core.OverlaySeries
}

// IsZero reports whether no override is set
func (o Overrides) IsZero() bool {
	return o.AxisType == nil &&
		o.LastPriceVisible == nil &&
		o.CrosshairVisible == nil &&
		o.Data == nil &&
		o.ShowFloor == nil &&
		o.ShowGTWAP == nil &&
		o.FloorData == nil &&
		o.GTWAPData == nil
}

// Store owns the defaults and overrides for one chart adapter. It is
// safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	defaults  Defaults
	overrides Overrides
}

// NewStore creates a store with the stock chart defaults: normal axis,
// last-price and crosshair visible, overlays hidden.
func NewStore() *Store {
	return &Store{
		defaults: Defaults{
			AxisType:         core.AxisNormal,
			LastPriceVisible: true,
			CrosshairVisible: true,
		},
	}
}

// Merge produces the effective configuration snapshot: override wins
// field by field, absent override falls back to the default. Merge is
// pure and total; merging unchanged inputs yields structurally equal
// snapshots.
func (s *Store) Merge() Effective {
	s.mu.Lock()
	defer s.mu.Unlock()
	return merge(s.defaults, s.overrides)
}

// CommitOverrides folds the current overrides into the defaults and
// clears them. Overrides are not a permanent second source of truth.
func (s *Store) CommitOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()

	eff := merge(s.defaults, s.overrides)
	s.defaults = Defaults{
		AxisType:         eff.AxisType,
		LastPriceVisible: eff.LastPriceVisible,
		CrosshairVisible: eff.CrosshairVisible,
		Data:             eff.Data,
		ShowFloor:        eff.ShowFloor,
		ShowGTWAP:        eff.ShowGTWAP,
		FloorData:        eff.FloorData,
		GTWAPData:        eff.GTWAPData,
	}
	s.overrides = Overrides{}
}

// ClearOverrides drops all overrides without folding them in
func (s *Store) ClearOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = Overrides{}
}

func merge(d Defaults, o Overrides) Effective {
	eff := Effective{
		AxisType:         d.AxisType,
		LastPriceVisible: d.LastPriceVisible,
		CrosshairVisible: d.CrosshairVisible,
		Data:             d.Data,
		ShowFloor:        d.ShowFloor,
		ShowGTWAP:        d.ShowGTWAP,
		FloorData:        d.FloorData,
		GTWAPData:        d.GTWAPData,
	}

	if o.AxisType != nil {
		eff.AxisType = *o.AxisType
	}
	if o.LastPriceVisible != nil {
		eff.LastPriceVisible = *o.LastPriceVisible
	}
	if o.CrosshairVisible != nil {
		eff.CrosshairVisible = *o.CrosshairVisible
	}
	if o.Data != nil {
		eff.Data = o.Data
	}
	if o.ShowFloor != nil {
		eff.ShowFloor = *o.ShowFloor
	}
	if o.ShowGTWAP != nil {
		eff.ShowGTWAP = *o.ShowGTWAP
	}
	if o.FloorData != nil {
		eff.FloorData = o.FloorData
	}
	if o.GTWAPData != nil {
		eff.GTWAPData = o.GTWAPData
	}

	return eff
}
