package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/middleware"
	"lifeledger/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	query := `
		SELECT t.id, t.user_id, t.type, t.amount, t.date, t.account_id,
		       COALESCE(t.to_account_id, ''), COALESCE(t.category_id, ''),
		       COALESCE(t.description, ''), COALESCE(t.notes, ''),
		       t.created_at, t.updated_at,
		       COALESCE(a.name, ''), COALESCE(c.name, '')
		FROM transactions t
		LEFT JOIN accounts a ON a.id = t.account_id
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
	`
	args := []interface{}{userID}

	if v := r.URL.Query().Get("type"); v != "" {
		query += " AND t.type = ?"
		args = append(args, v)
	}
	if v := r.URL.Query().Get("accountId"); v != "" {
		query += " AND (t.account_id = ? OR t.to_account_id = ?)"
		args = append(args, v, v)
	}
	if v := r.URL.Query().Get("categoryId"); v != "" {
		query += " AND t.category_id = ?"
		args = append(args, v)
	}
	if v := r.URL.Query().Get("startDate"); v != "" {
		query += " AND t.date >= ?"
		args = append(args, v)
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		query += " AND t.date <= ?"
		args = append(args, v)
	}

	query += " ORDER BY t.date DESC, t.created_at DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Date, &t.AccountID,
			&t.ToAccountID, &t.CategoryID, &t.Description, &t.Notes,
			&t.CreatedAt, &t.UpdatedAt, &t.AccountName, &t.CategoryName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := attachTags(transactions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

// attachTags fills the Tags slice of each transaction in one query.
func attachTags(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	index := make(map[string]int, len(transactions))
	ids := make([]string, len(transactions))
	args := make([]interface{}, len(transactions))
	for i, t := range transactions {
		index[t.ID] = i
		ids[i] = t.ID
		args[i] = t.ID
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	rows, err := database.DB.Query(`
		SELECT tt.transaction_id, tg.id, tg.user_id, tg.name, COALESCE(tg.color, '')
		FROM transaction_tags tt
		JOIN tags tg ON tg.id = tt.tag_id
		WHERE tt.transaction_id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			txID string
			tag  models.Tag
		)
		if err := rows.Scan(&txID, &tag.ID, &tag.UserID, &tag.Name, &tag.Color); err != nil {
			return err
		}
		if i, ok := index[txID]; ok {
			transactions[i].Tags = append(transactions[i].Tags, tag)
		}
	}
	return rows.Err()
}

func AddTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if t.Type != "income" && t.Type != "expense" && t.Type != "transfer" {
		http.Error(w, "type must be income, expense or transfer", http.StatusBadRequest)
		return
	}
	if t.AccountID == "" {
		http.Error(w, "accountId is required", http.StatusBadRequest)
		return
	}
	if t.Type == "transfer" && t.ToAccountID == "" {
		http.Error(w, "toAccountId is required for transfers", http.StatusBadRequest)
		return
	}
	if t.Date == "" {
		t.Date = time.Now().Format("2006-01-02")
	}

	t.ID = uuid.NewString()
	t.UserID = userID
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := database.DB.Exec(`
		INSERT INTO transactions (id, user_id, type, amount, date, account_id, to_account_id, category_id, description, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.Type, t.Amount, t.Date, t.AccountID,
		database.NullString(t.ToAccountID), database.NullString(t.CategoryID), t.Description, t.Notes, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, tagID := range t.TagIDs {
		_, err := database.DB.Exec(`
			INSERT OR IGNORE INTO transaction_tags (transaction_id, tag_id) VALUES (?, ?)
		`, t.ID, tagID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

func UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE transactions
		SET type = ?, amount = ?, date = ?, account_id = ?, to_account_id = ?,
		    category_id = ?, description = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, t.Type, t.Amount, t.Date, t.AccountID, database.NullString(t.ToAccountID),
		database.NullString(t.CategoryID), t.Description, t.Notes, time.Now(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	// Replace the tag set when the client sends one.
	if t.TagIDs != nil {
		if _, err := database.DB.Exec("DELETE FROM transaction_tags WHERE transaction_id = ?", id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, tagID := range t.TagIDs {
			_, err := database.DB.Exec(`
				INSERT OR IGNORE INTO transaction_tags (transaction_id, tag_id) VALUES (?, ?)
			`, id, tagID)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
	}

	t.ID = id
	t.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	// Join rows have no meaning without the transaction.
	if _, err := database.DB.Exec("DELETE FROM transaction_tags WHERE transaction_id = ?", id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func GetTransactionSummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'transfer' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ?
	`
	args := []interface{}{userID}
	if v := r.URL.Query().Get("startDate"); v != "" {
		query += " AND date >= ?"
		args = append(args, v)
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		query += " AND date <= ?"
		args = append(args, v)
	}

	var s models.TransactionSummary
	if err := database.DB.QueryRow(query, args...).Scan(&s.Income, &s.Expenses, &s.Transfers); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.Net = s.Income - s.Expenses

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}
