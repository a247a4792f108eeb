package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/models"

	"github.com/gorilla/mux"
)

func TestGetBudgetProgress(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()

	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	exec(`INSERT INTO categories (id, user_id, name, type) VALUES ('cat-1', 'test-user', 'Alimentación', 'expense')`)
	exec(`INSERT INTO accounts (id, user_id, name, type) VALUES ('acc-1', 'test-user', 'Cuenta', 'checking')`)
	exec(`INSERT INTO budgets (id, user_id, category_id, name, amount, period, start_date, alert_threshold) VALUES ('bud-1', 'test-user', 'cat-1', 'Comida', 400, 'monthly', '2025-01-01', 80)`)

	today := time.Now().Format("2006-01-02")
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id, category_id) VALUES ('tx-1', 'test-user', 'expense', 350, ?, 'acc-1', 'cat-1')`, today)
	// Income in the same category must not count as spending.
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id, category_id) VALUES ('tx-2', 'test-user', 'income', 100, ?, 'acc-1', 'cat-1')`, today)

	req := authedRequest("GET", "/budgets/bud-1/progress", "test-user", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "bud-1"})
	w := httptest.NewRecorder()
	GetBudgetProgress(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var p models.BudgetProgress
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if p.Spent != 350 {
		t.Errorf("Expected spent 350, got %f", p.Spent)
	}
	if p.Remaining != 50 {
		t.Errorf("Expected remaining 50, got %f", p.Remaining)
	}
	if p.IsOverBudget {
		t.Error("350 of 400 is not over budget")
	}
	if !p.IsNearLimit {
		t.Error("87.5% of 400 should trip the 80% alert threshold")
	}
}

func TestDeleteBudgetIsSoft(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()

	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	exec(`INSERT INTO categories (id, user_id, name, type) VALUES ('cat-1', 'test-user', 'Ropa', 'expense')`)
	exec(`INSERT INTO budgets (id, user_id, category_id, name, amount, start_date) VALUES ('bud-1', 'test-user', 'cat-1', 'Ropa', 100, '2025-01-01')`)

	req := authedRequest("DELETE", "/budgets/bud-1", "test-user", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "bud-1"})
	w := httptest.NewRecorder()
	DeleteBudget(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	var isActive bool
	if err := database.DB.QueryRow("SELECT is_active FROM budgets WHERE id = 'bud-1'").Scan(&isActive); err != nil {
		t.Fatalf("Budget row should still exist: %v", err)
	}
	if isActive {
		t.Error("Budget should be inactive after delete")
	}
}
