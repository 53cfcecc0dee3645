package database

import "github.com/degenpilot404/realyieldagent/internal/models"

// RunMigrations bootstraps the preference and search log tables. Called
// once at startup, before the first message is accepted.
func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.StoredPreference{},
		&models.SearchLogEntry{},
	)
}
