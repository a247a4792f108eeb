package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lifeledger/backend/middleware"
	"lifeledger/backend/services"
)

func GetExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	expenses, err := services.GetExpensesByCategory(userID,
		r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

func GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	months := 6
	if v := r.URL.Query().Get("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 60 {
			http.Error(w, "months must be between 1 and 60", http.StatusBadRequest)
			return
		}
		months = parsed
	}

	trend, err := services.GetMonthlyTrend(userID, months)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trend)
}

func GetKPIs(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	kpis, err := services.GetKPIs(userID,
		r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(kpis)
}
