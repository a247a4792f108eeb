package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"lifeledger/backend/migrations"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDB opens the sqlite store at dbPath and bootstraps the schema.
// An empty dbPath falls back to the deployment defaults.
func InitDB(dbPath string) error {
	if dbPath == "" {
		if os.Getenv("FLY_APP_NAME") != "" {
			// We're running on Fly.io, use the mounted volume
			dbPath = filepath.Join("/data", "lifeledger.db")
		} else if os.Getenv("TEST_DB") == "1" {
			// We're running tests, use in-memory database
			dbPath = ":memory:"
		} else {
			// Local development
			dbPath = "./database.db"
		}
	}

	var err error
	// Add connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	_, err = DB.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return err
	}

	_, err = DB.Exec("PRAGMA busy_timeout=5000;")
	if err != nil {
		return err
	}

	err = DB.Ping()
	if err != nil {
		return err
	}

	// Create users table
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL
	);
	`
	_, err = DB.Exec(createUsersTable)
	if err != nil {
		return err
	}

	// Create accounts table
	createAccountsTable := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		balance REAL NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'USD',
		color TEXT,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err = DB.Exec(createAccountsTable)
	if err != nil {
		return err
	}

	// Create categories table. No unique constraint on (name, user_id):
	// duplicates must stay observable so the reconciler can collapse them.
	createCategoriesTable := `
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'expense',
		color TEXT,
		icon TEXT,
		is_system BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err = DB.Exec(createCategoriesTable)
	if err != nil {
		return err
	}

	// Run migrations
	if err := migrations.RunMigrations(DB); err != nil {
		return err
	}

	return nil
}

// NullString boxes s for a nullable TEXT column; empty means NULL.
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func SeedDefaultUsers() error {
	// Check if users exist
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		// Insert the dev-mode user so local sessions have a scope to write into
		_, err := DB.Exec("INSERT INTO users (id, username, name) VALUES (?, ?, ?)",
			"dev-user-1", "dev", "Dev User")
		if err != nil {
			return err
		}
	}

	return nil
}
