package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/middleware"
	"lifeledger/backend/models"
	"lifeledger/backend/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func GetBudgets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	rows, err := database.DB.Query(`
		SELECT b.id, b.user_id, b.category_id, b.name, b.amount, b.period,
		       b.start_date, COALESCE(b.end_date, ''), b.alert_threshold, b.is_active,
		       b.created_at, b.updated_at, COALESCE(c.name, '')
		FROM budgets b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = ? AND b.is_active = 1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Name, &b.Amount, &b.Period,
			&b.StartDate, &b.EndDate, &b.AlertThreshold, &b.IsActive,
			&b.CreatedAt, &b.UpdatedAt, &b.CategoryName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		budgets = append(budgets, b)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(budgets)
}

func AddBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.Name == "" || b.CategoryID == "" {
		http.Error(w, "name and categoryId are required", http.StatusBadRequest)
		return
	}
	if b.Period == "" {
		b.Period = "monthly"
	}
	if b.AlertThreshold == 0 {
		b.AlertThreshold = 80
	}
	if b.StartDate == "" {
		b.StartDate = time.Now().Format("2006-01-02")
	}

	b.ID = uuid.NewString()
	b.UserID = userID
	b.IsActive = true
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := database.DB.Exec(`
		INSERT INTO budgets (id, user_id, category_id, name, amount, period, start_date, end_date, alert_threshold, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, b.ID, b.UserID, b.CategoryID, b.Name, b.Amount, b.Period, b.StartDate,
		database.NullString(b.EndDate), b.AlertThreshold, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

func UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE budgets
		SET category_id = ?, name = ?, amount = ?, period = ?, start_date = ?,
		    end_date = ?, alert_threshold = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND is_active = 1
	`, b.CategoryID, b.Name, b.Amount, b.Period, b.StartDate,
		database.NullString(b.EndDate), b.AlertThreshold, time.Now(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}

	b.ID = id
	b.UserID = userID
	b.IsActive = true
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec(`
		UPDATE budgets SET is_active = 0, updated_at = ? WHERE id = ? AND user_id = ?
	`, time.Now(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func GetBudgetProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	progress, err := services.GetBudgetProgress(userID, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progress)
}
