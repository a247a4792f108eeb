package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/middleware"
	"lifeledger/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	rows, err := database.DB.Query(`
		SELECT id, user_id, name, type, balance, currency, COALESCE(color, ''), COALESCE(description, ''), is_active, created_at, updated_at
		FROM accounts
		WHERE user_id = ? AND is_active = 1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.Color, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		accounts = append(accounts, a)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accounts)
}

func AddAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var a models.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if a.Name == "" || a.Type == "" {
		http.Error(w, "name and type are required", http.StatusBadRequest)
		return
	}
	if a.Currency == "" {
		a.Currency = "USD"
	}

	a.ID = uuid.NewString()
	a.UserID = userID
	a.IsActive = true
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := database.DB.Exec(`
		INSERT INTO accounts (id, user_id, name, type, balance, currency, color, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, a.ID, a.UserID, a.Name, a.Type, a.Balance, a.Currency, a.Color, a.Description, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(a)
}

func UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var a models.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE accounts
		SET name = ?, type = ?, balance = ?, currency = ?, color = ?, description = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND is_active = 1
	`, a.Name, a.Type, a.Balance, a.Currency, a.Color, a.Description, time.Now(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	a.ID = id
	a.UserID = userID
	a.IsActive = true
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

// DeleteAccount deactivates an account. Rows are never removed so
// historical transactions keep resolving.
func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec(`
		UPDATE accounts SET is_active = 0, updated_at = ? WHERE id = ? AND user_id = ?
	`, time.Now(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func GetTotalBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var total float64
	err := database.DB.QueryRow(`
		SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE user_id = ? AND is_active = 1
	`, userID).Scan(&total)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]float64{"total": total})
}
