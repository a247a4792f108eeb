package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lifeledger/backend/database"
	"lifeledger/backend/models"
)

func TestSyncUserSeedsCategories(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()

	body := models.User{Username: "maria", Name: "María"}
	jsonBody, _ := json.Marshal(body)

	req := authedRequest("POST", "/users/sync", "firebase-uid-1", bytes.NewBuffer(jsonBody))
	w := httptest.NewRecorder()
	SyncUser(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var exists bool
	err := database.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = 'firebase-uid-1')").Scan(&exists)
	if err != nil {
		t.Fatalf("Error checking user: %v", err)
	}
	if !exists {
		t.Error("User row should be created on sync")
	}

	var categories int
	err = database.DB.QueryRow("SELECT COUNT(*) FROM categories WHERE user_id = 'firebase-uid-1' AND is_system = 1").Scan(&categories)
	if err != nil {
		t.Fatalf("Error counting categories: %v", err)
	}
	if categories != len(models.DefaultCategories) {
		t.Errorf("Expected %d seeded categories, got %d", len(models.DefaultCategories), categories)
	}
}

func TestSyncUserCollapsesDuplicates(t *testing.T) {
	setupHandlerTestDB(t)
	defer database.DB.Close()

	exec := func(query string, args ...interface{}) {
		if _, err := database.DB.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	// Two copies of the same system category, as a buggy older client
	// could have left behind.
	exec(`INSERT INTO categories (id, user_id, name, type, is_system, created_at) VALUES ('dup-1', 'firebase-uid-1', 'Salario', 'income', 1, '2025-01-01')`)
	exec(`INSERT INTO categories (id, user_id, name, type, is_system, created_at) VALUES ('dup-2', 'firebase-uid-1', 'Salario', 'income', 1, '2025-01-02')`)

	jsonBody, _ := json.Marshal(models.User{Username: "maria"})
	req := authedRequest("POST", "/users/sync", "firebase-uid-1", bytes.NewBuffer(jsonBody))
	w := httptest.NewRecorder()
	SyncUser(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var salarios int
	err := database.DB.QueryRow("SELECT COUNT(*) FROM categories WHERE user_id = 'firebase-uid-1' AND name = 'Salario'").Scan(&salarios)
	if err != nil {
		t.Fatalf("Error counting: %v", err)
	}
	if salarios != 1 {
		t.Errorf("Expected duplicates collapsed to 1, got %d", salarios)
	}

	var total int
	err = database.DB.QueryRow("SELECT COUNT(*) FROM categories WHERE user_id = 'firebase-uid-1'").Scan(&total)
	if err != nil {
		t.Fatalf("Error counting: %v", err)
	}
	if total != len(models.DefaultCategories) {
		t.Errorf("Expected the full default catalog (%d), got %d", len(models.DefaultCategories), total)
	}
}
