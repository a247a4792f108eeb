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

func GetCategories(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	query := `
		SELECT id, user_id, name, type, COALESCE(color, ''), COALESCE(icon, ''), is_system, created_at
		FROM categories
		WHERE user_id = ?
	`
	args := []interface{}{userID}
	if v := r.URL.Query().Get("type"); v != "" {
		query += " AND (type = ? OR type = 'both')"
		args = append(args, v)
	}
	query += " ORDER BY name ASC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.Icon, &c.IsSystem, &c.CreatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		categories = append(categories, c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func AddCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if c.Type != "income" && c.Type != "expense" && c.Type != "both" {
		http.Error(w, "type must be income, expense or both", http.StatusBadRequest)
		return
	}

	c.ID = uuid.NewString()
	c.UserID = userID
	c.IsSystem = false
	c.CreatedAt = time.Now()

	_, err := database.DB.Exec(`
		INSERT INTO categories (id, user_id, name, type, color, icon, is_system, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)
	`, c.ID, c.UserID, c.Name, c.Type, c.Color, c.Icon, c.CreatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE categories SET name = ?, type = ?, color = ?, icon = ?
		WHERE id = ? AND user_id = ?
	`, c.Name, c.Type, c.Color, c.Icon, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	c.ID = id
	c.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec(`
		DELETE FROM categories WHERE id = ? AND user_id = ? AND is_system = 0
	`, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "category not found or is a system category", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CleanupCategories collapses duplicate category names for the
// authenticated user and reports how many rows were removed.
func CleanupCategories(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	removed, err := services.CleanupDuplicateCategories(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"removed": removed})
}

// InitializeCategories seeds the default category catalog for the
// authenticated user.
func InitializeCategories(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	if err := services.InitializeDefaultCategories(userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
