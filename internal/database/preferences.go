package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/degenpilot404/realyieldagent/internal/models"
)

// SavePreference upserts the user's saved search and appends one audit
// row for the attempt. On update only the fields present in criteria
// are written; absent fields keep their stored values. The audit row is
// appended even when the upsert fails, so every attempt is recorded.
func (d *Database) SavePreference(userID string, criteria models.SearchCriteria) error {
	upsertErr := d.upsertPreference(userID, criteria)
	logErr := d.appendSearchLog(userID, criteria)

	if upsertErr != nil {
		return upsertErr
	}
	return logErr
}

func (d *Database) upsertPreference(userID string, criteria models.SearchCriteria) error {
	now := time.Now().UTC()

	var stored models.StoredPreference
	err := d.db.Where("user_id = ?", userID).First(&stored).Error

	switch {
	case err == nil:
		updates := preferenceUpdates(criteria)
		updates["last_updated"] = now
		if err := d.db.Model(&models.StoredPreference{}).
			Where("user_id = ?", userID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update preference for user %s: %v", userID, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.StoredPreference{
			UserID:       userID,
			Area:         criteria.Area,
			PropertyType: criteria.PropertyType,
			Bedrooms:     criteria.Bedrooms,
			MaxPrice:     criteria.MaxPrice,
			MinPrice:     criteria.MinPrice,
			LastUpdated:  now,
		}
		if err := d.db.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert preference for user %s: %v", userID, err)
		}
	default:
		return fmt.Errorf("failed to look up preference for user %s: %v", userID, err)
	}

	return nil
}

func preferenceUpdates(criteria models.SearchCriteria) map[string]interface{} {
	updates := map[string]interface{}{}
	if criteria.Area != "" {
		updates["area"] = criteria.Area
	}
	if criteria.PropertyType != "" {
		updates["property_type"] = criteria.PropertyType
	}
	if criteria.Bedrooms != "" {
		updates["bedrooms"] = criteria.Bedrooms
	}
	if criteria.MaxPrice != nil {
		updates["max_price"] = *criteria.MaxPrice
	}
	if criteria.MinPrice != nil {
		updates["min_price"] = *criteria.MinPrice
	}
	return updates
}

func (d *Database) appendSearchLog(userID string, criteria models.SearchCriteria) error {
	serialized, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("failed to serialize criteria: %v", err)
	}

	entry := models.SearchLogEntry{
		SearchID:         uuid.NewString(),
		UserID:           userID,
		Criteria:         string(serialized),
		ListingsReturned: 0,
		CreatedAt:        time.Now().UTC(),
	}
	if err := d.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append search log: %v", err)
	}

	d.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"search_id": entry.SearchID,
	}).Debug("Recorded search attempt")
	return nil
}

// GetPreference returns the user's saved search, or nil when the user
// has never saved one. Absence is an ordinary result, not an error.
func (d *Database) GetPreference(userID string) (*models.StoredPreference, error) {
	var stored models.StoredPreference
	err := d.db.Where("user_id = ?", userID).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preference for user %s: %v", userID, err)
	}
	return &stored, nil
}

// GetAllPreferences returns every saved search, oldest update first.
// The alert sweep walks this list.
func (d *Database) GetAllPreferences() ([]models.StoredPreference, error) {
	var prefs []models.StoredPreference
	if err := d.db.Order("last_updated ASC").Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("failed to load preferences: %v", err)
	}
	return prefs, nil
}

// UpdateSearchListingCount sets the listing count on the user's most
// recent audit row. The row is matched by recency, not by search id,
// which can misattribute the count when one user searches concurrently;
// callers treat the update as best-effort.
func (d *Database) UpdateSearchListingCount(userID string, count int) error {
	var entry models.SearchLogEntry
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find search log for user %s: %v", userID, err)
	}

	if err := d.db.Model(&models.SearchLogEntry{}).
		Where("search_id = ?", entry.SearchID).
		Update("listings_returned", count).Error; err != nil {
		return fmt.Errorf("failed to update search log %s: %v", entry.SearchID, err)
	}
	return nil
}

// GetRecentSearches returns the newest audit rows for a user.
func (d *Database) GetRecentSearches(userID string, limit int) ([]models.SearchLogEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []models.SearchLogEntry
	err := d.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load search logs for user %s: %v", userID, err)
	}
	return entries, nil
}
