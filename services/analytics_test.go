package services

import (
	"database/sql"
	"testing"
	"time"

	"lifeledger/backend/database"

	_ "github.com/mattn/go-sqlite3"
)

func setupAnalyticsTestDB(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.DB = db

	statements := []string{
		`CREATE TABLE transactions (
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
		`CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			color TEXT,
			icon TEXT,
			is_system BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE financial_goals (
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
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}
}

func TestGetMonthlyTrendFillsEmptyMonths(t *testing.T) {
	setupAnalyticsTestDB(t)
	defer database.DB.Close()

	thisMonth := time.Now().Format("2006-01") + "-05"
	if _, err := database.DB.Exec(`
		INSERT INTO transactions (id, user_id, type, amount, date, account_id)
		VALUES ('tx-1', 'user-1', 'income', 2000, ?, 'acc-1')
	`, thisMonth); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	trend, err := GetMonthlyTrend("user-1", 3)
	if err != nil {
		t.Fatalf("trend failed: %v", err)
	}
	if len(trend) != 3 {
		t.Fatalf("expected 3 months, got %d", len(trend))
	}

	// Oldest first, months without data present with zeros.
	if trend[0].Income != 0 || trend[0].Expenses != 0 {
		t.Errorf("expected an empty first month, got %+v", trend[0])
	}
	last := trend[2]
	if last.Month != time.Now().Format("2006-01") {
		t.Errorf("expected last month to be the current one, got %s", last.Month)
	}
	if last.Income != 2000 || last.Net != 2000 {
		t.Errorf("unexpected current month: %+v", last)
	}
}

func TestGetKPIs(t *testing.T) {
	setupAnalyticsTestDB(t)
	defer database.DB.Close()

	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id) VALUES ('tx-1', 'user-1', 'income', 2000, '2025-08-01', 'acc-1')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id) VALUES ('tx-2', 'user-1', 'expense', 500, '2025-08-05', 'acc-1')`)
	exec(`INSERT INTO financial_goals (id, user_id, name, target_amount, is_achieved) VALUES ('g-1', 'user-1', 'A', 100, 1)`)
	exec(`INSERT INTO financial_goals (id, user_id, name, target_amount, is_achieved) VALUES ('g-2', 'user-1', 'B', 100, 0)`)

	kpis, err := GetKPIs("user-1", "2025-08-01", "2025-08-31")
	if err != nil {
		t.Fatalf("kpis failed: %v", err)
	}

	if kpis.TotalIncome != 2000 || kpis.TotalExpenses != 500 || kpis.NetIncome != 1500 {
		t.Errorf("unexpected totals: %+v", kpis)
	}
	if kpis.SavingsRate != 75 {
		t.Errorf("expected savings rate 75, got %f", kpis.SavingsRate)
	}
	if kpis.GoalsAchievedRate != 50 {
		t.Errorf("expected goals achieved rate 50, got %f", kpis.GoalsAchievedRate)
	}
}

func TestGetExpensesByCategory(t *testing.T) {
	setupAnalyticsTestDB(t)
	defer database.DB.Close()

	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	exec(`INSERT INTO categories (id, user_id, name, type, color) VALUES ('cat-1', 'user-1', 'Alimentación', 'expense', '#f97316')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id, category_id) VALUES ('tx-1', 'user-1', 'expense', 100, '2025-08-01', 'acc-1', 'cat-1')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id, category_id) VALUES ('tx-2', 'user-1', 'expense', 50, '2025-08-02', 'acc-1', 'cat-1')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id) VALUES ('tx-3', 'user-1', 'expense', 25, '2025-08-03', 'acc-1')`)

	expenses, err := GetExpensesByCategory("user-1", "", "")
	if err != nil {
		t.Fatalf("expenses failed: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(expenses))
	}
	if expenses[0].Category != "Alimentación" || expenses[0].Total != 150 {
		t.Errorf("unexpected first bucket: %+v", expenses[0])
	}
	if expenses[1].Category != "Otros" || expenses[1].Total != 25 {
		t.Errorf("uncategorized spending should land in Otros: %+v", expenses[1])
	}
}
