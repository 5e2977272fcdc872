// Package storage persists per-token chart preferences so a remounted
// view restores its axis and overlay configuration.
package storage

import (
	"context"

	"github.com/raykavin/chartsync/pkg/core"
)

// Preferences is the persisted chart configuration of one token
type Preferences struct {
	TokenID   string        `json:"token_id" gorm:"primaryKey"`
	AxisType  core.AxisType `json:"axis_type"`
	ShowFloor bool          `json:"show_floor"`
	ShowGTWAP bool          `json:"show_gtwap"`
	Timezone  string        `json:"timezone"`
	UpdatedAt int64         `json:"updated_at" gorm:"autoUpdateTime:milli"`
}

// DefaultPreferences returns the stock preferences for a token
func DefaultPreferences(tokenID string) Preferences {
	return Preferences{
		TokenID:  tokenID,
		AxisType: core.AxisNormal,
	}
}

// Storage reads and writes chart preferences
type Storage interface {
	SavePreferences(ctx context.Context, prefs Preferences) error
	Preferences(ctx context.Context, tokenID string) (Preferences, error)
	AllPreferences(ctx context.Context) ([]Preferences, error)
}
