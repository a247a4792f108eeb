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

// GetTasks lists a user's tasks. With ?date=YYYY-MM-DD it returns the
// tasks occurring on that day, counting weekly recurrences.
func GetTasks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	dateFilter := r.URL.Query().Get("date")

	rows, err := database.DB.Query(`
		SELECT id, user_id, title, date, recurrent, completed, created_at
		FROM tasks
		WHERE user_id = ?
		ORDER BY date ASC
	`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var day time.Time
	if dateFilter != "" {
		day, err = time.Parse("2006-01-02", dateFilter)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Date, &t.Recurrent, &t.Completed, &t.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if dateFilter != "" && !services.TaskOccursOn(t.Date, t.Recurrent, day) {
			continue
		}
		tasks = append(tasks, t)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

func AddTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var t models.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if t.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if t.Date == "" {
		t.Date = time.Now().Format("2006-01-02")
	}

	t.ID = uuid.NewString()
	t.UserID = userID
	t.Completed = false
	t.CreatedAt = time.Now()

	_, err := database.DB.Exec(`
		INSERT INTO tasks (id, user_id, title, date, recurrent, completed, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`, t.ID, t.UserID, t.Title, t.Date, t.Recurrent, t.CreatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

func UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var t models.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE tasks SET title = ?, date = ?, recurrent = ?, completed = ?
		WHERE id = ? AND user_id = ?
	`, t.Title, t.Date, t.Recurrent, t.Completed, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	t.ID = id
	t.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func ToggleTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec(`
		UPDATE tasks SET completed = NOT completed WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func GetWeeklyTaskStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	stats, err := services.GetWeeklyTaskStats(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func GetIdeas(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	rows, err := database.DB.Query(`
		SELECT id, user_id, title, COALESCE(category, ''), COALESCE(description, ''), created_at
		FROM ideas
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	ideas := []models.Idea{}
	for rows.Next() {
		var i models.Idea
		if err := rows.Scan(&i.ID, &i.UserID, &i.Title, &i.Category, &i.Description, &i.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ideas = append(ideas, i)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ideas)
}

func AddIdea(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var i models.Idea
	if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if i.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	i.ID = uuid.NewString()
	i.UserID = userID
	i.CreatedAt = time.Now()

	_, err := database.DB.Exec(`
		INSERT INTO ideas (id, user_id, title, category, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, i.ID, i.UserID, i.Title, i.Category, i.Description, i.CreatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(i)
}

func DeleteIdea(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM ideas WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "idea not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func GetAgendaGoals(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	rows, err := database.DB.Query(`
		SELECT id, user_id, title, COALESCE(description, ''), COALESCE(deadline, ''), achieved, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	goals := []models.AgendaGoal{}
	for rows.Next() {
		var g models.AgendaGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Deadline, &g.Achieved, &g.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		goals = append(goals, g)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goals)
}

func AddAgendaGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var g models.AgendaGoal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if g.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	g.ID = uuid.NewString()
	g.UserID = userID
	g.Achieved = false
	g.CreatedAt = time.Now()

	_, err := database.DB.Exec(`
		INSERT INTO goals (id, user_id, title, description, deadline, achieved, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`, g.ID, g.UserID, g.Title, g.Description, g.Deadline, g.CreatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(g)
}

func ToggleAgendaGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec(`
		UPDATE goals SET achieved = NOT achieved WHERE id = ? AND user_id = ?
	`, id, userID)
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

func DeleteAgendaGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM goals WHERE id = ? AND user_id = ?", id, userID)
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
