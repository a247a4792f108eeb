package handlers

import (
	"encoding/json"
	"net/http"

	"lifeledger/backend/database"
)

// HealthCheck reports service and database status.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	if err := database.DB.Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(status)
		return
	}

	status["database"] = "ok"
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
