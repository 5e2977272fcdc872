package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

const (
	// UpdateIndexName orders preference records by update timestamp
	UpdateIndexName = "update_index"
)

// BuntStorage implements the Storage interface using BuntDB
type BuntStorage struct {
	db *buntdb.DB
}

// NewFromMemory creates an in-memory preference store
func NewFromMemory() (Storage, error) {
	return NewBuntStorage(":memory:")
}

// NewFromFile creates a file-backed preference store
func NewFromFile(file string) (Storage, error) {
	return NewBuntStorage(file)
}

// NewBuntStorage opens a BuntDB preference store at the given source
func NewBuntStorage(sourceFile string) (Storage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	if err := db.SetConfig(buntdb.Config{SyncPolicy: buntdb.Never}); err != nil {
		return nil, fmt.Errorf("failed to configure buntdb: %w", err)
	}

	if err := db.CreateIndex(UpdateIndexName, "*", buntdb.IndexJSON("updated_at")); err != nil {
		return nil, fmt.Errorf("failed to create default index: %w", err)
	}

	return &BuntStorage{db: db}, nil
}

// SavePreferences stores the preferences of one token
func (b *BuntStorage) SavePreferences(_ context.Context, prefs Preferences) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		content, err := json.Marshal(prefs)
		if err != nil {
			return fmt.Errorf("failed to marshal preferences: %w", err)
		}

		if _, _, err := tx.Set(prefs.TokenID, string(content), nil); err != nil {
			return fmt.Errorf("failed to store preferences: %w", err)
		}

		return nil
	})
}

// Preferences retrieves the preferences of one token, falling back to
// the defaults when none are stored yet
func (b *BuntStorage) Preferences(_ context.Context, tokenID string) (Preferences, error) {
	prefs := DefaultPreferences(tokenID)

	err := b.db.View(func(tx *buntdb.Tx) error {
		content, err := tx.Get(tokenID)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(content), &prefs)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return DefaultPreferences(tokenID), nil
	}
	if err != nil {
		return prefs, fmt.Errorf("failed to load preferences: %w", err)
	}

	return prefs, nil
}

// AllPreferences returns every stored preference record ordered by
// update time
func (b *BuntStorage) AllPreferences(_ context.Context) ([]Preferences, error) {
	out := make([]Preferences, 0)

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(UpdateIndexName, func(_, value string) bool {
			var prefs Preferences
			if err := json.Unmarshal([]byte(value), &prefs); err == nil {
				out = append(out, prefs)
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan preferences: %w", err)
	}

	return out, nil
}
