package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"lifeledger/backend/database"
	"lifeledger/backend/middleware"
	"lifeledger/backend/models"
	"lifeledger/backend/services"
)

// SyncUser upserts the authenticated user's profile row and runs the
// sign-in reconcile pass: duplicate categories are collapsed and the
// default catalog is seeded.
func SyncUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u.ID = userID
	if u.Username == "" {
		u.Username = userID
	}
	if u.Name == "" {
		u.Name = u.Username
	}

	_, err := database.DB.Exec(`
		INSERT INTO users (id, username, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username, name = excluded.name
	`, u.ID, u.Username, u.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := services.InitializeDefaultCategories(userID); err != nil {
		// The profile row is saved; category seeding can be retried on
		// the next sign-in.
		log.Printf("Warning: failed to initialize categories for user %s: %v", userID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}
