// Package chart reconciles a declarative chart configuration against an
// imperative, stateful charting widget: it owns the widget lifecycle,
// the overlay indicator state machine and the Y-axis range calculation.
package chart

import (
	"context"

	"github.com/raykavin/chartsync/pkg/core"
)

// Handle is the opaque identifier returned by the widget when an
// overlay indicator is registered on it. It is invalid after the widget
// reports removal or is disposed.
type Handle string

// TimeRange is the widget-reported visible timestamp window in
// milliseconds.
type TimeRange struct {
	From int64
	To   int64
}

// Contains reports whether a timestamp falls inside the window
func (r TimeRange) Contains(ts int64) bool {
	return ts >= r.From && ts <= r.To
}

// IndicatorDescriptor describes one overlay indicator for the widget.
// The series rides inside the descriptor so the widget's calculation
// callback reads per-adapter data, never shared global state.
type IndicatorDescriptor struct {
	Name   string
	Kind   core.OverlayKind
	Color  string
	Style  string
	Series *core.OverlaySeries
}

// StyleTree is the widget style configuration subtree
type StyleTree struct {
	AxisType         core.AxisType
	LastPriceVisible bool
	CrosshairVisible bool
}

// Widget is the external charting widget boundary. Implementations are
// side-effect heavy and are consumed as a black box; all errors they
// return are caught and logged by the adapter, never propagated.
type Widget interface {
	ApplyNewData(candles []core.Candle, keepRange bool) error
	SetStyles(styles StyleTree) error
	CreateIndicator(desc IndicatorDescriptor, stack bool, paneRef string) (Handle, error)
	RemoveIndicator(handle Handle) error
	GetVisibleRange() (TimeRange, error)
	SetYRange(lower, upper float64) error
	SetTimezone(tz string) error
	Resize() error
	SetZoomEnabled(enabled bool) error
	SetScrollEnabled(enabled bool) error
	SetBarSpace(space float64) error
	SetOffsetRightDistance(distance float64) error
	Dispose() error
}

// Factory constructs a widget instance. Construction is asynchronous
// (the real widget loads remotely) and must honor context cancellation.
type Factory interface {
	Construct(ctx context.Context) (Widget, error)
}

// FactoryFunc adapts a function to the Factory interface
type FactoryFunc func(ctx context.Context) (Widget, error)

func (f FactoryFunc) Construct(ctx context.Context) (Widget, error) { return f(ctx) }
