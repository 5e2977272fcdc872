package chart

import (
	"fmt"

	"github.com/raykavin/chartsync/pkg/core"
	"github.com/raykavin/chartsync/pkg/logger"
)

// overlayColors maps each overlay kind to its line color
var overlayColors = map[core.OverlayKind]string{
	core.OverlayFloor: "#F0B90B",
	core.OverlayGTWAP: "#8A2BE2",
	core.OverlayMA:    "#1E90FF",
}

// overlayState is the "present" record of one registered overlay: the
// live widget handle and the data snapshot it was registered with.
type overlayState struct {
	handle     Handle
	registered *core.OverlaySeries
}

// Lifecycle decides whether overlay indicators must be created,
// refreshed or torn down on the widget, and tracks the opaque handles
// it receives. Each overlay kind is either absent or present; at most
// one live handle per kind exists at any time.
//
// Lifecycle is not safe for concurrent use; the owning adapter
// serializes access.
type Lifecycle struct {
	widget Widget
	log    logger.Logger
	states map[core.OverlayKind]*overlayState
}

// NewLifecycle creates a manager bound to one widget instance
func NewLifecycle(widget Widget, log logger.Logger) *Lifecycle {
	if log == nil {
		log = logger.Nop()
	}
	return &Lifecycle{
		widget: widget,
		log:    log,
		states: make(map[core.OverlayKind]*overlayState),
	}
}

// Present reports whether the overlay currently holds a live handle
func (l *Lifecycle) Present(kind core.OverlayKind) bool {
	_, ok := l.states[kind]
	return ok
}

// Handle returns the live handle of a present overlay
func (l *Lifecycle) Handle(kind core.OverlayKind) (Handle, bool) {
	s, ok := l.states[kind]
	if !ok {
		return "", false
	}
	return s.handle, true
}

// Reconcile drives one overlay toward the desired state. It returns
// whether any widget call was made. An overlay should be present when
// it is visible and has at least one data point; a present overlay is
// recreated only when its data actually differs from what is already
// registered, so repeated passes with unchanged configuration touch
// the widget zero times.
func (l *Lifecycle) Reconcile(kind core.OverlayKind, visible bool, series *core.OverlaySeries) (bool, error) {
	if !kind.Valid() {
		return false, core.ErrUnknownOverlay
	}

	state, present := l.states[kind]
	want := visible && !series.IsEmpty()

	switch {
	case !present && want:
		return true, l.create(kind, series)

	case present && !want:
		return true, l.remove(kind)

	case present && want:
		if state.registered.Equal(series) {
			return false, nil
		}
		// Data changed under a visible overlay: replace it in one pass
		if err := l.remove(kind); err != nil {
			return true, err
		}
		return true, l.create(kind, series)
	}

	return false, nil
}

// ReleaseAll removes every live overlay. Used at adapter teardown.
func (l *Lifecycle) ReleaseAll() {
	for kind := range l.states {
		if err := l.remove(kind); err != nil {
			l.log.WithError(err).WithField("overlay", string(kind)).
				Warn("failed to remove overlay during release")
		}
	}
}

func (l *Lifecycle) create(kind core.OverlayKind, series *core.OverlaySeries) error {
	desc := IndicatorDescriptor{
		Name:   fmt.Sprintf("chartsync_%s", kind),
		Kind:   kind,
		Color:  overlayColors[kind],
		Style:  "line",
		Series: series.Clone(),
	}

	handle, err := l.widget.CreateIndicator(desc, false, "candle_pane")
	if err != nil {
		return fmt.Errorf("create %s indicator: %w", kind, err)
	}

	l.states[kind] = &overlayState{handle: handle, registered: desc.Series}
	l.log.WithField("overlay", string(kind)).Debug("overlay indicator created")
	return nil
}

// remove is guarded by the presence check above; the widget is never
// asked to remove a handle it does not recognize. The state entry
// outlives a failed removal so the widget-side indicator is never
// orphaned behind a later duplicate create.
func (l *Lifecycle) remove(kind core.OverlayKind) error {
	state, ok := l.states[kind]
	if !ok {
		return nil
	}

	if err := l.widget.RemoveIndicator(state.handle); err != nil {
		return fmt.Errorf("remove %s indicator: %w", kind, err)
	}
	delete(l.states, kind)

	l.log.WithField("overlay", string(kind)).Debug("overlay indicator removed")
	return nil
}
