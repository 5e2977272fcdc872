package chart

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/raykavin/chartsync/pkg/config"
	"github.com/raykavin/chartsync/pkg/core"
	"github.com/raykavin/chartsync/pkg/logger"
)

// adapterState is the adapter initialization state machine. Transitions
// outside their valid source state are rejected, which structurally
// prevents double construction and mutation after dispose.
type adapterState int32

const (
	stateUninitialized adapterState = iota
	stateInitializing
	stateReady
	stateDisposed
)

func (s adapterState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateInitializing:
		return "initializing"
	case stateReady:
		return "ready"
	case stateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Adapter owns the widget instance lifecycle and is the only component
// that touches the widget directly. Every public mutator follows the
// same protocol: write to the configuration store, reconcile overlay
// indicators, and push recalculated Y bounds when the axis is normal.
// Mutators are idempotent: repeating one with the same argument causes
// no further widget calls. Widget errors are logged and swallowed; the
// worst outcome of any failure is a missing overlay or default axis
// scaling, never a crash of the hosting view.
type Adapter struct {
	mu      sync.Mutex
	log     logger.Logger
	factory Factory

	state      adapterState
	generation uint64

	widget    Widget
	store     *config.Store
	lifecycle *Lifecycle

	timezone  string
	lastStyle *StyleTree
	lastRange *Range

	// supplemental moving-average overlay, outside the merged
	// configuration record
	maVisible bool
	maSeries  *core.OverlaySeries
}

// AdapterOption configures an Adapter
type AdapterOption func(*Adapter)

// WithLogger sets the adapter logger
func WithLogger(log logger.Logger) AdapterOption {
	return func(a *Adapter) {
		a.log = log
	}
}

// NewAdapter creates an adapter in the uninitialized state. The widget
// is not constructed until Init.
func NewAdapter(factory Factory, options ...AdapterOption) *Adapter {
	a := &Adapter{
		log:     logger.Nop(),
		factory: factory,
		store:   config.NewStore(),
	}

	for _, option := range options {
		option(a)
	}

	return a
}

// IsReady reports whether the widget is constructed and accepting calls
func (a *Adapter) IsReady() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == stateReady
}

// Store exposes the adapter's configuration store
func (a *Adapter) Store() *config.Store { return a.store }

// Init constructs the widget. Only the uninitialized state may enter
// initialization, so rapid remounts and re-entrant calls collapse into
// one construction attempt. Disposal during construction is tolerated:
// the continuation checks that its generation is still current before
// storing the widget, and disposes the orphan instance otherwise.
func (a *Adapter) Init(ctx context.Context) error {
	a.mu.Lock()
	if a.state != stateUninitialized {
		a.log.WithField("state", a.state.String()).Debug("init skipped")
		a.mu.Unlock()
		return nil
	}
	a.state = stateInitializing
	gen := a.generation
	a.mu.Unlock()

	widget, err := a.factory.Construct(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.generation != gen || a.state != stateInitializing {
		// Disposed while constructing: the continuation is stale
		if widget != nil {
			if derr := widget.Dispose(); derr != nil {
				a.log.WithError(derr).Warn("failed to dispose orphan widget")
			}
		}
		return nil
	}

	if err != nil {
		a.state = stateUninitialized
		a.log.WithError(err).Error("widget construction failed")
		return err
	}

	a.widget = widget
	a.lifecycle = NewLifecycle(widget, a.log)
	a.state = stateReady
	a.log.Info("chart widget ready")

	// Push any data staged before the widget came up
	if eff := a.store.Merge(); len(eff.Data) > 0 {
		if aerr := a.widget.ApplyNewData(eff.Data, false); aerr != nil {
			a.log.WithError(aerr).Error("failed to apply staged chart data")
		}
	}
	if a.timezone != "" {
		if terr := a.widget.SetTimezone(a.timezone); terr != nil {
			a.log.WithError(terr).WithField("timezone", a.timezone).Warn("failed to set timezone")
		}
	}

	a.syncLocked()
	return nil
}

// ApplyChartData replaces the candle data and both overlay series
// wholesale. Overlay series may be nil to clear them.
func (a *Adapter) ApplyChartData(candles []core.Candle, floorSeries, gtwapSeries *core.OverlaySeries) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed {
		return
	}

	// The override layer reads nil as "no override", so a clear must be
	// written as a non-nil empty series
	if floorSeries == nil {
		floorSeries = core.NewOverlaySeries()
	}
	if gtwapSeries == nil {
		gtwapSeries = core.NewOverlaySeries()
	}

	prev := a.store.Merge()
	a.store.SetOverrideData(candles)
	a.store.SetOverrideFloorData(floorSeries)
	a.store.SetOverrideGTWAPData(gtwapSeries)
	eff := a.store.Merge()
	a.store.CommitOverrides()

	if eff.Equal(prev) {
		return
	}

	if a.state == stateReady {
		if err := a.widget.ApplyNewData(eff.Data, false); err != nil {
			a.log.WithError(err).Error("failed to apply chart data")
		}
	}
	a.syncLocked()
}

// SetAxisType switches the Y-axis scaling mode
func (a *Adapter) SetAxisType(t core.AxisType) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed {
		return
	}
	a.store.SetDefaultAxisType(t)
	a.syncLocked()
}

// SetLastPriceVisible toggles the last-price marker
func (a *Adapter) SetLastPriceVisible(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed {
		return
	}
	a.store.SetDefaultLastPriceVisible(visible)
	a.syncLocked()
}

// SetCrosshairVisible toggles the crosshair
func (a *Adapter) SetCrosshairVisible(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed {
		return
	}
	a.store.SetDefaultCrosshairVisible(visible)
	a.syncLocked()
}

// SetFloorVisible toggles the floor overlay
func (a *Adapter) SetFloorVisible(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed {
		return
	}
	a.store.SetDefaultShowFloor(visible)
	a.syncLocked()
}

// SetGTWAPVisible toggles the GTWAP overlay
func (a *Adapter) SetGTWAPVisible(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed {
		return
	}
	a.store.SetDefaultShowGTWAP(visible)
	a.syncLocked()
}

// SetMAOverlay sets the supplemental moving-average overlay. The
// series replaces the previous one wholesale; nil clears it.
func (a *Adapter) SetMAOverlay(visible bool, series *core.OverlaySeries) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed {
		return
	}
	a.maVisible = visible
	a.maSeries = series
	a.syncLocked()
}

// SetTimezone sets the widget display timezone
func (a *Adapter) SetTimezone(tz string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed || a.timezone == tz {
		return
	}
	a.timezone = tz
	if a.state != stateReady {
		return
	}
	if err := a.widget.SetTimezone(tz); err != nil {
		a.log.WithError(err).WithField("timezone", tz).Error("failed to set timezone")
	}
}

// ResetVisibleRange restores the default zoom and offset and re-pushes
// the Y bounds
func (a *Adapter) ResetVisibleRange() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != stateReady {
		return
	}

	if err := a.widget.SetBarSpace(defaultBarSpace); err != nil {
		a.log.WithError(err).Warn("failed to reset bar space")
	}
	if err := a.widget.SetOffsetRightDistance(defaultRightOffset); err != nil {
		a.log.WithError(err).Warn("failed to reset right offset")
	}

	a.lastRange = nil
	a.pushYRangeLocked(a.store.Merge())
}

// RefreshYRange recalculates and pushes the Y bounds for the current
// visible window. Call after a user-driven pan or zoom.
func (a *Adapter) RefreshYRange() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != stateReady {
		return
	}
	a.pushYRangeLocked(a.store.Merge())
}

// Dispose releases every indicator handle, disposes the widget exactly
// once and rejects all further mutation. Safe to call at any state,
// including mid-construction.
func (a *Adapter) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateDisposed {
		return
	}

	// Invalidate any in-flight construction continuation
	a.generation++

	if a.lifecycle != nil {
		a.lifecycle.ReleaseAll()
		a.lifecycle = nil
	}
	if a.widget != nil {
		if err := a.widget.Dispose(); err != nil {
			a.log.WithError(err).Warn("failed to dispose widget")
		}
		a.widget = nil
	}

	a.state = stateDisposed
	a.lastStyle = nil
	a.lastRange = nil
	a.log.Info("chart adapter disposed")
}

const (
	defaultBarSpace    = 8.0
	defaultRightOffset = 80.0
)

// syncLocked runs the second and third protocol steps against the
// current effective configuration: style push, overlay reconciliation
// and the Y-range update. Caller holds the mutex.
func (a *Adapter) syncLocked() {
	if a.state != stateReady {
		return
	}

	eff := a.store.Merge()

	a.pushStylesLocked(eff)

	for _, kind := range []core.OverlayKind{core.OverlayFloor, core.OverlayGTWAP} {
		visible, data, err := eff.Overlay(kind)
		if err != nil {
			continue
		}
		if _, err := a.lifecycle.Reconcile(kind, visible, data); err != nil {
			a.log.WithError(err).WithField("overlay", string(kind)).
				Error("overlay reconciliation failed")
		}
	}

	if _, err := a.lifecycle.Reconcile(core.OverlayMA, a.maVisible, a.maSeries); err != nil {
		a.log.WithError(err).Error("moving average reconciliation failed")
	}

	a.pushYRangeLocked(eff)
}

func (a *Adapter) pushStylesLocked(eff config.Effective) {
	style := StyleTree{
		AxisType:         eff.AxisType,
		LastPriceVisible: eff.LastPriceVisible,
		CrosshairVisible: eff.CrosshairVisible,
	}
	if a.lastStyle != nil && *a.lastStyle == style {
		return
	}
	if err := a.widget.SetStyles(style); err != nil {
		a.log.WithError(err).Error("failed to set widget styles")
		return
	}
	a.lastStyle = &style
}

// pushYRangeLocked computes bounds over the widget-reported visible
// window and pushes them. Only the normal axis is driven explicitly;
// other axis types fall back to the widget's own scaling.
func (a *Adapter) pushYRangeLocked(eff config.Effective) {
	if eff.AxisType != core.AxisNormal {
		a.lastRange = nil
		return
	}

	window, err := a.widget.GetVisibleRange()
	if err != nil {
		a.log.WithError(err).Debug("visible range unavailable, keeping widget scaling")
		return
	}

	visible := lo.Filter(eff.Data, func(c core.Candle, _ int) bool {
		return window.Contains(c.Timestamp)
	})

	var ma *core.OverlaySeries
	if a.maVisible {
		ma = a.maSeries
	}
	r, ok := ComputeYRange(visible, eff, ma)
	if !ok {
		return
	}
	if a.lastRange != nil && *a.lastRange == r {
		return
	}

	if err := a.widget.SetYRange(r.Lower, r.Upper); err != nil {
		a.log.WithError(err).Error("failed to push y-axis range")
		return
	}
	a.lastRange = &r
}
