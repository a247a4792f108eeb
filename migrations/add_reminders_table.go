package migrations

import (
	"database/sql"
	"fmt"
)

// AddRemindersTable creates the reminders table.
func AddRemindersTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			due_date TEXT NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create reminders table: %w", err)
	}
	return nil
}
