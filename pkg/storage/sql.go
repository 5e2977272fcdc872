package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SQLStorage implements the Storage interface using a SQL database via
// GORM
type SQLStorage struct {
	db *gorm.DB
}

// FromSQL creates a SQL-backed preference store
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (Storage, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Preferences{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStorage{db: db}, nil
}

// SavePreferences creates or updates the preferences of one token
func (s *SQLStorage) SavePreferences(ctx context.Context, prefs Preferences) error {
	result := s.db.WithContext(ctx).Save(&prefs)
	if result.Error != nil {
		return fmt.Errorf("failed to save preferences: %w", result.Error)
	}
	return nil
}

// Preferences retrieves the preferences of one token, falling back to
// the defaults when none are stored yet
func (s *SQLStorage) Preferences(ctx context.Context, tokenID string) (Preferences, error) {
	var prefs Preferences
	result := s.db.WithContext(ctx).First(&prefs, "token_id = ?", tokenID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DefaultPreferences(tokenID), nil
	}
	if result.Error != nil {
		return prefs, fmt.Errorf("failed to load preferences: %w", result.Error)
	}
	return prefs, nil
}

// AllPreferences returns every stored preference record
func (s *SQLStorage) AllPreferences(ctx context.Context) ([]Preferences, error) {
	out := make([]Preferences, 0)
	result := s.db.WithContext(ctx).Order("updated_at").Find(&out)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to scan preferences: %w", result.Error)
	}
	return out, nil
}
