package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/chartsync/pkg/core"
)

func TestBuntPreferencesRoundTrip(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)
	ctx := context.Background()

	prefs := Preferences{
		TokenID:   "SOL-DEMO",
		AxisType:  core.AxisLogarithm,
		ShowFloor: true,
		ShowGTWAP: false,
		Timezone:  "UTC",
		UpdatedAt: 42,
	}
	require.NoError(t, store.SavePreferences(ctx, prefs))

	got, err := store.Preferences(ctx, "SOL-DEMO")
	require.NoError(t, err)
	assert.Equal(t, prefs, got)
}

func TestBuntPreferencesDefaultFallback(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)

	got, err := store.Preferences(context.Background(), "unseen-token")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences("unseen-token"), got)
	assert.Equal(t, core.AxisNormal, got.AxisType)
}

func TestBuntPreferencesOverwrite(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)
	ctx := context.Background()

	first := Preferences{TokenID: "X", ShowFloor: true, UpdatedAt: 1}
	second := Preferences{TokenID: "X", ShowFloor: false, UpdatedAt: 2}
	require.NoError(t, store.SavePreferences(ctx, first))
	require.NoError(t, store.SavePreferences(ctx, second))

	got, err := store.Preferences(ctx, "X")
	require.NoError(t, err)
	assert.False(t, got.ShowFloor)

	all, err := store.AllPreferences(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
