package config

import (
	"github.com/raykavin/chartsync/pkg/core"
)

// Effective is the merged configuration snapshot driving one
// reconciliation pass. It is derived, never persisted.
type Effective struct {
	AxisType         core.AxisType
	LastPriceVisible bool
	CrosshairVisible bool
	Data             []core.Candle
	ShowFloor        bool
	ShowGTWAP        bool
	FloorData        *core.OverlaySeries
	GTWAPData        *core.OverlaySeries
}

// Overlay returns the visibility flag and series for a named overlay
func (e Effective) Overlay(kind core.OverlayKind) (visible bool, data *core.OverlaySeries, err error) {
	switch kind {
	case core.OverlayFloor:
		return e.ShowFloor, e.FloorData, nil
	case core.OverlayGTWAP:
		return e.ShowGTWAP, e.GTWAPData, nil
	default:
		return false, nil, core.ErrUnknownOverlay
	}
}

// Equal reports structural equality of two snapshots. Candle slices
// compare element-wise, overlay series by size and every pair.
func (e Effective) Equal(other Effective) bool {
	if e.AxisType != other.AxisType ||
		e.LastPriceVisible != other.LastPriceVisible ||
		e.CrosshairVisible != other.CrosshairVisible ||
		e.ShowFloor != other.ShowFloor ||
		e.ShowGTWAP != other.ShowGTWAP {
		return false
	}
	if len(e.Data) != len(other.Data) {
		return false
	}
	for i := range e.Data {
		if e.Data[i] != other.Data[i] {
			return false
		}
	}
	return e.FloorData.Equal(other.FloorData) && e.GTWAPData.Equal(other.GTWAPData)
}
