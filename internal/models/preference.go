package models

import "time"

// StoredPreference is the single saved-search row kept per user. Saves are
// upserts keyed by UserID; fields absent from the incoming criteria keep
// their stored value.
type StoredPreference struct {
	UserID       string    `json:"user_id" gorm:"primaryKey;column:user_id"`
	Area         string    `json:"area"`
	PropertyType string    `json:"property_type"`
	Bedrooms     string    `json:"bedrooms"`
	MaxPrice     *int64    `json:"max_price"`
	MinPrice     *int64    `json:"min_price"`
	LastUpdated  time.Time `json:"last_updated"`
}

func (StoredPreference) TableName() string {
	return "user_preferences"
}

// Criteria converts the stored row back into search criteria so a saved
// search can be replayed against the listing provider.
func (p *StoredPreference) Criteria() SearchCriteria {
	return SearchCriteria{
		Area:         p.Area,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		MaxPrice:     p.MaxPrice,
		MinPrice:     p.MinPrice,
	}
}

// SearchLogEntry is one append-only audit row per search attempt.
// ListingsReturned starts at zero and is updated once the matching fetch
// completes.
type SearchLogEntry struct {
	SearchID         string    `json:"search_id" gorm:"primaryKey;column:search_id"`
	UserID           string    `json:"user_id" gorm:"index"`
	Criteria         string    `json:"criteria"`
	ListingsReturned int       `json:"listings_returned"`
	CreatedAt        time.Time `json:"created_at"`
}

func (SearchLogEntry) TableName() string {
	return "search_logs"
}
