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

func GetFinancialGoals(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	rows, err := database.DB.Query(`
		SELECT g.id, g.user_id, g.name, g.target_amount, g.current_amount,
		       COALESCE(g.deadline, ''), COALESCE(g.account_id, ''), g.is_achieved,
		       g.achieved_at, g.created_at, g.updated_at, COALESCE(a.name, '')
		FROM financial_goals g
		LEFT JOIN accounts a ON a.id = g.account_id
		WHERE g.user_id = ?
		ORDER BY g.created_at DESC
	`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	goals := []models.FinancialGoal{}
	for rows.Next() {
		var g models.FinancialGoal
		err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.Deadline, &g.AccountID, &g.IsAchieved,
			&g.AchievedAt, &g.CreatedAt, &g.UpdatedAt, &g.AccountName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		goals = append(goals, g)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goals)
}

func AddFinancialGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var g models.FinancialGoal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if g.Name == "" || g.TargetAmount <= 0 {
		http.Error(w, "name and a positive targetAmount are required", http.StatusBadRequest)
		return
	}

	g.ID = uuid.NewString()
	g.UserID = userID
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := database.DB.Exec(`
		INSERT INTO financial_goals (id, user_id, name, target_amount, current_amount, deadline, account_id, is_achieved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
	`, g.ID, g.UserID, g.Name, g.TargetAmount, g.CurrentAmount,
		database.NullString(g.Deadline), database.NullString(g.AccountID), g.CreatedAt, g.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(g)
}

func UpdateFinancialGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var g models.FinancialGoal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE financial_goals
		SET name = ?, target_amount = ?, current_amount = ?, deadline = ?, account_id = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, g.Name, g.TargetAmount, g.CurrentAmount, database.NullString(g.Deadline), database.NullString(g.AccountID), time.Now(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}

	g.ID = id
	g.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g)
}

func DeleteFinancialGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM financial_goals WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateGoalProgress adds the posted amount to a goal's progress.
func UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := services.UpdateGoalProgress(userID, id, body.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goal)
}

func GetGoalsAtRisk(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	goals, err := services.GetGoalsAtRisk(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goals)
}
