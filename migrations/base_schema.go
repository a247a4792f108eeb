package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

// FinanceBaseSchema creates the finance tables that depend on
// accounts and categories (created in database.InitDB).
func FinanceBaseSchema(db *sql.DB) error {
	log.Println("Creating finance tables...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			amount REAL NOT NULL,
			date TEXT NOT NULL,
			account_id TEXT NOT NULL,
			to_account_id TEXT,
			category_id TEXT,
			description TEXT,
			notes TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_tags (
			transaction_id TEXT NOT NULL,
			tag_id TEXT NOT NULL,
			PRIMARY KEY (transaction_id, tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			name TEXT NOT NULL,
			amount REAL NOT NULL,
			period TEXT NOT NULL DEFAULT 'monthly',
			start_date TEXT NOT NULL,
			end_date TEXT,
			alert_threshold REAL NOT NULL DEFAULT 80,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS financial_goals (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			target_amount REAL NOT NULL,
			current_amount REAL NOT NULL DEFAULT 0,
			deadline TEXT,
			account_id TEXT,
			is_achieved BOOLEAN NOT NULL DEFAULT 0,
			achieved_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create finance schema: %w", err)
		}
	}

	log.Println("Finance tables created successfully")
	return nil
}
