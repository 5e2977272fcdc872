package remote

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jpillora/backoff"

	"github.com/raykavin/chartsync/pkg/chart"
	"github.com/raykavin/chartsync/pkg/core"
	"github.com/raykavin/chartsync/pkg/logger"
)

// overlayTemplateName identifies the custom overlay indicator template
// registered with the charting library once per process
const overlayTemplateName = "chartsync_overlay"

// Widget implements chart.Widget by relaying every call as a command to
// the connected browser chart
type Widget struct {
	server     *Server
	log        logger.Logger
	disposed   atomic.Bool
	nextHandle atomic.Int64
}

var _ chart.Widget = (*Widget)(nil)

// NewFactory returns a factory whose Construct waits for a chart client
// to connect before handing out the widget. The wait backs off
// exponentially and honors context cancellation, so disposing the
// adapter mid-construction abandons the attempt cleanly.
func NewFactory(server *Server, log logger.Logger) chart.Factory {
	return chart.FactoryFunc(func(ctx context.Context) (chart.Widget, error) {
		b := &backoff.Backoff{
			Min:    50 * time.Millisecond,
			Max:    2 * time.Second,
			Factor: 2,
			Jitter: true,
		}

		for server.ClientCount() == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(b.Duration()):
			}
		}

		if err := chart.EnsureIndicatorRegistered(overlayTemplateName, func() error {
			server.broadcast(command{Type: "register_indicator", Payload: map[string]any{
				"name": overlayTemplateName,
			}})
			return nil
		}); err != nil {
			return nil, err
		}

		return &Widget{server: server, log: log}, nil
	})
}

func (w *Widget) send(cmdType string, payload any) error {
	if w.disposed.Load() {
		return core.ErrDisposed
	}
	if w.server.ClientCount() == 0 {
		return core.ErrNotReady
	}
	w.server.broadcast(command{Type: cmdType, Payload: payload})
	return nil
}

// ApplyNewData replaces the candle data on the client chart
func (w *Widget) ApplyNewData(candles []core.Candle, keepRange bool) error {
	return w.send("apply_data", map[string]any{
		"candles":   candles,
		"keepRange": keepRange,
	})
}

// SetStyles pushes the style subtree
func (w *Widget) SetStyles(styles chart.StyleTree) error {
	return w.send("set_styles", map[string]any{
		"axisType":         string(styles.AxisType),
		"lastPriceVisible": styles.LastPriceVisible,
		"crosshairVisible": styles.CrosshairVisible,
	})
}

// CreateIndicator registers an overlay on the client chart. The handle
// is allocated server-side and echoed in the command so the client can
// map it to its own pane object.
func (w *Widget) CreateIndicator(desc chart.IndicatorDescriptor, stack bool, paneRef string) (chart.Handle, error) {
	handle := chart.Handle(fmt.Sprintf("%s-%d", desc.Kind, w.nextHandle.Add(1)))

	err := w.send("create_indicator", map[string]any{
		"handle":   string(handle),
		"template": overlayTemplateName,
		"name":     desc.Name,
		"kind":     string(desc.Kind),
		"color":    desc.Color,
		"style":    desc.Style,
		"points":   desc.Series.Points(),
		"stack":    stack,
		"paneRef":  paneRef,
	})
	if err != nil {
		return "", err
	}
	return handle, nil
}

// RemoveIndicator removes a previously created overlay
func (w *Widget) RemoveIndicator(handle chart.Handle) error {
	return w.send("remove_indicator", map[string]any{"handle": string(handle)})
}

// GetVisibleRange returns the last visible window reported by a client
func (w *Widget) GetVisibleRange() (chart.TimeRange, error) {
	if w.disposed.Load() {
		return chart.TimeRange{}, core.ErrDisposed
	}
	from, to, ok := w.server.VisibleRange()
	if !ok {
		return chart.TimeRange{}, fmt.Errorf("visible range: %w", core.ErrNotReady)
	}
	return chart.TimeRange{From: from, To: to}, nil
}

// SetYRange pushes explicit Y-axis bounds
func (w *Widget) SetYRange(lower, upper float64) error {
	return w.send("set_y_range", map[string]any{"lower": lower, "upper": upper})
}

// SetTimezone sets the display timezone
func (w *Widget) SetTimezone(tz string) error {
	return w.send("set_timezone", map[string]any{"timezone": tz})
}

// Resize asks the client chart to re-measure its container
func (w *Widget) Resize() error {
	return w.send("resize", nil)
}

// SetZoomEnabled toggles wheel zoom
func (w *Widget) SetZoomEnabled(enabled bool) error {
	return w.send("set_zoom_enabled", map[string]any{"enabled": enabled})
}

// SetScrollEnabled toggles drag scroll
func (w *Widget) SetScrollEnabled(enabled bool) error {
	return w.send("set_scroll_enabled", map[string]any{"enabled": enabled})
}

// SetBarSpace sets the candle bar spacing in pixels
func (w *Widget) SetBarSpace(space float64) error {
	return w.send("set_bar_space", map[string]any{"space": space})
}

// SetOffsetRightDistance sets the right-side chart offset in pixels
func (w *Widget) SetOffsetRightDistance(distance float64) error {
	return w.send("set_offset_right_distance", map[string]any{"distance": distance})
}

// Dispose tells clients to tear the chart down and rejects further
// commands. Idempotent.
func (w *Widget) Dispose() error {
	if w.disposed.Swap(true) {
		return nil
	}
	w.server.broadcast(command{Type: "dispose", Payload: nil})
	return nil
}
