package chart

import (
	"errors"
	"fmt"

	"github.com/raykavin/chartsync/pkg/core"
)

// mockWidget records every call for assertions. The visible window
// defaults to all of time so every candle counts as visible.
type mockWidget struct {
	applyCalls    int
	styleCalls    int
	createCalls   int
	removeCalls   int
	yRangeCalls   int
	timezoneCalls int
	disposeCalls  int

	lastData   []core.Candle
	lastStyles StyleTree
	lastYRange Range
	visible    TimeRange

	handles    map[Handle]IndicatorDescriptor
	nextHandle int

	failCreate       bool
	failRemove       bool
	failVisibleRange bool
}

func newMockWidget() *mockWidget {
	return &mockWidget{
		visible: TimeRange{From: 0, To: 1 << 62},
		handles: make(map[Handle]IndicatorDescriptor),
	}
}

func (m *mockWidget) ApplyNewData(candles []core.Candle, _ bool) error {
	m.applyCalls++
	m.lastData = candles
	return nil
}

func (m *mockWidget) SetStyles(styles StyleTree) error {
	m.styleCalls++
	m.lastStyles = styles
	return nil
}

func (m *mockWidget) CreateIndicator(desc IndicatorDescriptor, _ bool, _ string) (Handle, error) {
	m.createCalls++
	if m.failCreate {
		return "", errors.New("widget not ready")
	}
	m.nextHandle++
	handle := Handle(fmt.Sprintf("h%d", m.nextHandle))
	m.handles[handle] = desc
	return handle, nil
}

func (m *mockWidget) RemoveIndicator(handle Handle) error {
	m.removeCalls++
	if m.failRemove {
		return errors.New("widget not ready")
	}
	if _, ok := m.handles[handle]; !ok {
		return fmt.Errorf("unknown handle %q", handle)
	}
	delete(m.handles, handle)
	return nil
}

func (m *mockWidget) GetVisibleRange() (TimeRange, error) {
	if m.failVisibleRange {
		return TimeRange{}, errors.New("visible range unavailable")
	}
	return m.visible, nil
}

func (m *mockWidget) SetYRange(lower, upper float64) error {
	m.yRangeCalls++
	m.lastYRange = Range{Lower: lower, Upper: upper}
	return nil
}

func (m *mockWidget) SetTimezone(string) error {
	m.timezoneCalls++
	return nil
}

func (m *mockWidget) Resize() error                      { return nil }
func (m *mockWidget) SetZoomEnabled(bool) error          { return nil }
func (m *mockWidget) SetScrollEnabled(bool) error        { return nil }
func (m *mockWidget) SetBarSpace(float64) error          { return nil }
func (m *mockWidget) SetOffsetRightDistance(float64) error { return nil }

func (m *mockWidget) Dispose() error {
	m.disposeCalls++
	return nil
}
