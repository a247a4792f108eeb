package database

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMain(m *testing.M) {
	// Directly create an in-memory database for tests
	var err error
	DB, err = sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(err)
	}

	createTables()

	code := m.Run()

	DB.Close()
	os.Exit(code)
}

// createTables creates the base tables InitDB would normally set up.
func createTables() {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
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
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'expense',
			color TEXT,
			icon TEXT,
			is_system BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

func TestBaseTablesExist(t *testing.T) {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('users', 'accounts', 'categories')").Scan(&count)
	if err != nil {
		t.Fatalf("Error checking tables: %v", err)
	}

	if count != 3 {
		t.Errorf("Expected 3 tables, got %d", count)
	}
}

func TestCategoriesAllowDuplicateNames(t *testing.T) {
	// The reconciler depends on duplicate names being storable.
	_, err := DB.Exec(`INSERT INTO categories (id, user_id, name, type) VALUES ('dup-1', 'user-x', 'Salario', 'income')`)
	if err != nil {
		t.Fatalf("Error inserting first category: %v", err)
	}
	_, err = DB.Exec(`INSERT INTO categories (id, user_id, name, type) VALUES ('dup-2', 'user-x', 'Salario', 'income')`)
	if err != nil {
		t.Errorf("Duplicate category names within a user must be allowed: %v", err)
	}
}

func TestInitDBUsesProvidedPath(t *testing.T) {
	old := DB
	defer func() {
		DB.Close()
		DB = old
	}()

	dbPath := t.TempDir() + "/lifeledger-test.db"
	if err := InitDB(dbPath); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("Expected database file at the configured path: %v", err)
	}

	// Migrations must have run against the configured store.
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'transactions'").Scan(&count)
	if err != nil {
		t.Fatalf("Error checking tables: %v", err)
	}
	if count != 1 {
		t.Error("Expected the transactions table in the configured store")
	}
}

func TestSeedDefaultUsers(t *testing.T) {
	err := SeedDefaultUsers()
	if err != nil {
		t.Fatalf("Error seeding users: %v", err)
	}

	var exists bool
	err = DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = 'dev-user-1')").Scan(&exists)
	if err != nil {
		t.Fatalf("Error checking dev user: %v", err)
	}
	if !exists {
		t.Error("User 'dev-user-1' not found")
	}

	// Seeding again must not duplicate or error.
	if err := SeedDefaultUsers(); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}
}
