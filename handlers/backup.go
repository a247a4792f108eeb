package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/middleware"
	"lifeledger/backend/models"
	"lifeledger/backend/services"
)

// DownloadBackup streams the full backup document as a JSON file
// attachment.
func DownloadBackup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	doc, err := services.CreateFullBackup(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("lifeledger-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(doc)
}

// RestoreBackup replays a previously downloaded backup document into
// the authenticated user's scope and reports per-entity counts.
func RestoreBackup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var doc models.BackupDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid backup document: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := services.RestoreFromBackup(r.Context(), userID, &doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ExportTransactionsCSV downloads the user's transactions as a CSV
// attachment, honoring the same date-range filters as the list
// endpoint.
func ExportTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	query := `
		SELECT t.date, t.type, t.amount, COALESCE(a.name, ''), COALESCE(c.name, ''),
		       COALESCE(t.description, ''), COALESCE(t.notes, '')
		FROM transactions t
		LEFT JOIN accounts a ON a.id = t.account_id
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
	`
	args := []interface{}{userID}
	if v := r.URL.Query().Get("startDate"); v != "" {
		query += " AND t.date >= ?"
		args = append(args, v)
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		query += " AND t.date <= ?"
		args = append(args, v)
	}
	query += " ORDER BY t.date DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	filename := fmt.Sprintf("lifeledger-transactions-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"date", "type", "amount", "account", "category", "description", "notes"})
	for rows.Next() {
		var (
			date, txType, account, category, description, notes string
			amount                                              float64
		)
		if err := rows.Scan(&date, &txType, &amount, &account, &category, &description, &notes); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writer.Write([]string{date, txType, strconv.FormatFloat(amount, 'f', 2, 64), account, category, description, notes})
	}
}
