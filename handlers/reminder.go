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

// GetReminders lists incomplete reminders ordered by due date.
func GetReminders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	rows, err := database.DB.Query(`
		SELECT id, user_id, title, due_date, is_completed, completed_at, created_at
		FROM reminders
		WHERE user_id = ? AND is_completed = 0
		ORDER BY due_date ASC
	`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	reminders := []models.Reminder{}
	for rows.Next() {
		var rem models.Reminder
		err := rows.Scan(&rem.ID, &rem.UserID, &rem.Title, &rem.DueDate, &rem.IsCompleted, &rem.CompletedAt, &rem.CreatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		reminders = append(reminders, rem)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}

func AddReminder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var rem models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&rem); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if rem.Title == "" || rem.DueDate == "" {
		http.Error(w, "title and dueDate are required", http.StatusBadRequest)
		return
	}

	rem.ID = uuid.NewString()
	rem.UserID = userID
	rem.IsCompleted = false
	rem.CreatedAt = time.Now()

	_, err := database.DB.Exec(`
		INSERT INTO reminders (id, user_id, title, due_date, is_completed, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, rem.ID, rem.UserID, rem.Title, rem.DueDate, rem.CreatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rem)
}

func CompleteReminder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	now := time.Now()
	result, err := database.DB.Exec(`
		UPDATE reminders SET is_completed = 1, completed_at = ? WHERE id = ? AND user_id = ?
	`, now, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "reminder not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func DeleteReminder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM reminders WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "reminder not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
