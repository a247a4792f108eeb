package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lifeledger/backend/database"
	"lifeledger/backend/models"

	"github.com/gorilla/mux"
)

func seedTransactionFixtures(t *testing.T) {
	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	exec(`INSERT INTO accounts (id, user_id, name, type) VALUES ('acc-1', 'test-user', 'Cuenta Corriente', 'checking')`)
	exec(`INSERT INTO accounts (id, user_id, name, type) VALUES ('acc-2', 'test-user', 'Ahorros', 'savings')`)
	exec(`INSERT INTO categories (id, user_id, name, type) VALUES ('cat-1', 'test-user', 'Alimentación', 'expense')`)
	exec(`INSERT INTO tags (id, user_id, name) VALUES ('tag-1', 'test-user', 'hogar')`)
}

func TestAddTransaction(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()
	seedTransactionFixtures(t)

	body := models.Transaction{
		Type:       "expense",
		Amount:     42.50,
		Date:       "2025-08-15",
		AccountID:  "acc-1",
		CategoryID: "cat-1",
		TagIDs:     []string{"tag-1"},
	}
	jsonBody, _ := json.Marshal(body)

	req := authedRequest("POST", "/transactions", "test-user", bytes.NewBuffer(jsonBody))
	w := httptest.NewRecorder()
	AddTransaction(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created models.Transaction
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected a generated transaction id")
	}

	var tagCount int
	err := database.DB.QueryRow("SELECT COUNT(*) FROM transaction_tags WHERE transaction_id = ?", created.ID).Scan(&tagCount)
	if err != nil {
		t.Fatalf("Error counting tag links: %v", err)
	}
	if tagCount != 1 {
		t.Errorf("Expected 1 tag link, got %d", tagCount)
	}
}

func TestAddTransactionValidation(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()
	seedTransactionFixtures(t)

	cases := []struct {
		name string
		body models.Transaction
	}{
		{"unknown type", models.Transaction{Type: "loan", Amount: 10, AccountID: "acc-1"}},
		{"missing account", models.Transaction{Type: "expense", Amount: 10}},
		{"transfer without destination", models.Transaction{Type: "transfer", Amount: 10, AccountID: "acc-1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tc.body)
			req := authedRequest("POST", "/transactions", "test-user", bytes.NewBuffer(jsonBody))
			w := httptest.NewRecorder()
			AddTransaction(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestGetTransactionsFilters(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()
	seedTransactionFixtures(t)

	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id, category_id) VALUES ('tx-1', 'test-user', 'expense', 30, '2025-08-10', 'acc-1', 'cat-1')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id) VALUES ('tx-2', 'test-user', 'income', 2500, '2025-08-01', 'acc-1')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id, to_account_id) VALUES ('tx-3', 'test-user', 'transfer', 500, '2025-07-15', 'acc-1', 'acc-2')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id) VALUES ('tx-other', 'other-user', 'expense', 99, '2025-08-10', 'acc-1')`)

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"no filter", "", 3},
		{"by type", "?type=expense", 1},
		{"by category", "?categoryId=cat-1", 1},
		{"by destination account", "?accountId=acc-2", 1},
		{"by date range", "?startDate=2025-08-01&endDate=2025-08-31", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest("GET", "/transactions"+tc.query, "test-user", nil)
			w := httptest.NewRecorder()
			GetTransactions(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}

			var transactions []models.Transaction
			if err := json.NewDecoder(w.Body).Decode(&transactions); err != nil {
				t.Fatalf("Error decoding response: %v", err)
			}
			if len(transactions) != tc.want {
				t.Errorf("Expected %d transactions, got %d", tc.want, len(transactions))
			}
			for _, tx := range transactions {
				if tx.UserID != "test-user" {
					t.Errorf("Transaction %s belongs to %s, scoping is broken", tx.ID, tx.UserID)
				}
			}
		})
	}
}

func TestGetTransactionSummary(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()
	seedTransactionFixtures(t)

	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id) VALUES ('tx-1', 'test-user', 'income', 2000, '2025-08-01', 'acc-1')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id) VALUES ('tx-2', 'test-user', 'expense', 800, '2025-08-05', 'acc-1')`)
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id, to_account_id) VALUES ('tx-3', 'test-user', 'transfer', 300, '2025-08-06', 'acc-1', 'acc-2')`)

	req := authedRequest("GET", "/transactions/summary", "test-user", nil)
	w := httptest.NewRecorder()
	GetTransactionSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var s models.TransactionSummary
	if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if s.Income != 2000 || s.Expenses != 800 || s.Transfers != 300 || s.Net != 1200 {
		t.Errorf("Unexpected summary: %+v", s)
	}
}

func TestDeleteTransactionRemovesTagLinks(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()
	seedTransactionFixtures(t)

	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	exec(`INSERT INTO transactions (id, user_id, type, amount, date, account_id) VALUES ('tx-1', 'test-user', 'expense', 30, '2025-08-10', 'acc-1')`)
	exec(`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ('tx-1', 'tag-1')`)

	req := authedRequest("DELETE", "/transactions/tx-1", "test-user", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "tx-1"})
	w := httptest.NewRecorder()
	DeleteTransaction(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	var links int
	if err := database.DB.QueryRow("SELECT COUNT(*) FROM transaction_tags WHERE transaction_id = 'tx-1'").Scan(&links); err != nil {
		t.Fatalf("Error counting links: %v", err)
	}
	if links != 0 {
		t.Errorf("Expected tag links to be removed, found %d", links)
	}
}
