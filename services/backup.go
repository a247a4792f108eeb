package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const BackupVersion = "1.0"

// CreateFullBackup exports every financial record owned by a user into
// a portable document. The per-entity fetches run concurrently; any
// fetch failure aborts the whole export.
//
// Exported records never contain the store's id, user_id or timestamp
// columns. Entities that other records reference keep their pre-export
// id in backup_id, which restore uses purely as a correlation key when
// rebuilding foreign keys.
func CreateFullBackup(ctx context.Context, userID string) (*models.BackupDocument, error) {
	var (
		accounts     []models.BackupAccount
		transactions []models.BackupTransaction
		categories   []models.BackupCategory
		tags         []models.BackupTag
		budgets      []models.BackupBudget
		goals        []models.BackupGoal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = exportAccounts(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = exportTransactions(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = exportCategories(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = exportTags(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = exportBudgets(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = exportGoals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to export user data: %w", err)
	}

	transactionIDs := make([]string, len(transactions))
	for i, t := range transactions {
		transactionIDs[i] = t.BackupID
	}
	transactionTags, err := exportTransactionTags(ctx, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to export transaction tags: %w", err)
	}

	return &models.BackupDocument{
		Version:    BackupVersion,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		UserID:     userID,
		Data: &models.BackupData{
			Accounts:        accounts,
			Transactions:    transactions,
			Categories:      categories,
			Tags:            tags,
			Budgets:         budgets,
			Goals:           goals,
			TransactionTags: transactionTags,
		},
	}, nil
}

// RestoreFromBackup replays a backup document into a user's scope.
// Stages run in dependency order: categories, tags and accounts first,
// then transactions, then the join rows, budgets and goals. Every
// record gets a freshly minted id; foreign keys are rewritten through
// per-stage backup_id maps before insert.
//
// Individual record failures (insert errors, unresolvable foreign
// keys) are logged and counted out, never fatal. Only a structurally
// invalid document aborts the restore.
func RestoreFromBackup(ctx context.Context, userID string, doc *models.BackupDocument) (models.RestoreResult, error) {
	var result models.RestoreResult

	if doc == nil || doc.Version == "" {
		return result, errors.New("invalid backup document: missing version")
	}
	if doc.Data == nil {
		return result, errors.New("invalid backup document: missing data")
	}

	log.Printf("Restoring backup (version %s, exported %s) for user %s", doc.Version, doc.ExportDate, userID)

	now := time.Now()

	// 1. Categories (referenced by transactions and budgets)
	categoryIDs := make(map[string]string)
	for _, c := range doc.Data.Categories {
		newID := uuid.NewString()
		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO categories (id, user_id, name, type, color, icon, is_system, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, newID, userID, c.Name, c.Type, c.Color, c.Icon, c.IsSystem, now)
		if err != nil {
			log.Printf("Warning: skipping category %q from backup: %v", c.Name, err)
			continue
		}
		if c.BackupID != "" {
			categoryIDs[c.BackupID] = newID
		}
		result.Categories++
	}

	// 2. Tags (referenced by transaction_tags)
	tagIDs := make(map[string]string)
	for _, t := range doc.Data.Tags {
		newID := uuid.NewString()
		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO tags (id, user_id, name, color)
			VALUES (?, ?, ?, ?)
		`, newID, userID, t.Name, t.Color)
		if err != nil {
			log.Printf("Warning: skipping tag %q from backup: %v", t.Name, err)
			continue
		}
		if t.BackupID != "" {
			tagIDs[t.BackupID] = newID
		}
		result.Tags++
	}

	// 3. Accounts (referenced by transactions and goals)
	accountIDs := make(map[string]string)
	for _, a := range doc.Data.Accounts {
		newID := uuid.NewString()
		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO accounts (id, user_id, name, type, balance, currency, color, description, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, newID, userID, a.Name, a.Type, a.Balance, a.Currency, a.Color, a.Description, a.IsActive, now, now)
		if err != nil {
			log.Printf("Warning: skipping account %q from backup: %v", a.Name, err)
			continue
		}
		if a.BackupID != "" {
			accountIDs[a.BackupID] = newID
		}
		result.Accounts++
	}

	// 4. Transactions
	transactionIDs := make(map[string]string)
	for _, t := range doc.Data.Transactions {
		accountID, ok := accountIDs[t.AccountID]
		if !ok {
			log.Printf("Warning: skipping transaction from backup: unknown account %q", t.AccountID)
			continue
		}

		toAccountID := sql.NullString{}
		if t.ToAccountID != "" {
			mapped, ok := accountIDs[t.ToAccountID]
			if !ok {
				log.Printf("Warning: skipping transfer from backup: unknown destination account %q", t.ToAccountID)
				continue
			}
			toAccountID = sql.NullString{String: mapped, Valid: true}
		}

		// A transaction without its category is still worth restoring;
		// only the label is lost.
		categoryID := sql.NullString{}
		if t.CategoryID != "" {
			if mapped, ok := categoryIDs[t.CategoryID]; ok {
				categoryID = sql.NullString{String: mapped, Valid: true}
			} else {
				log.Printf("Warning: dropping unknown category %q from restored transaction", t.CategoryID)
			}
		}

		newID := uuid.NewString()
		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO transactions (id, user_id, type, amount, date, account_id, to_account_id, category_id, description, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, newID, userID, t.Type, t.Amount, t.Date, accountID, toAccountID, categoryID, t.Description, t.Notes, now, now)
		if err != nil {
			log.Printf("Warning: skipping transaction from backup: %v", err)
			continue
		}
		if t.BackupID != "" {
			transactionIDs[t.BackupID] = newID
		}
		result.Transactions++
	}

	// 5. Transaction-tag relations
	for _, rel := range doc.Data.TransactionTags {
		transactionID, ok := transactionIDs[rel.TransactionID]
		if !ok {
			log.Printf("Warning: skipping tag relation from backup: unknown transaction %q", rel.TransactionID)
			continue
		}
		tagID, ok := tagIDs[rel.TagID]
		if !ok {
			log.Printf("Warning: skipping tag relation from backup: unknown tag %q", rel.TagID)
			continue
		}

		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO transaction_tags (transaction_id, tag_id)
			VALUES (?, ?)
		`, transactionID, tagID)
		if err != nil {
			log.Printf("Warning: skipping tag relation from backup: %v", err)
			continue
		}
		result.TransactionTags++
	}

	// 6. Budgets
	for _, b := range doc.Data.Budgets {
		categoryID, ok := categoryIDs[b.CategoryID]
		if !ok {
			log.Printf("Warning: skipping budget %q from backup: unknown category %q", b.Name, b.CategoryID)
			continue
		}

		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO budgets (id, user_id, category_id, name, amount, period, start_date, end_date, alert_threshold, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), userID, categoryID, b.Name, b.Amount, b.Period, b.StartDate, database.NullString(b.EndDate), b.AlertThreshold, b.IsActive, now, now)
		if err != nil {
			log.Printf("Warning: skipping budget %q from backup: %v", b.Name, err)
			continue
		}
		result.Budgets++
	}

	// 7. Financial goals
	for _, gl := range doc.Data.Goals {
		accountID := sql.NullString{}
		if gl.AccountID != "" {
			if mapped, ok := accountIDs[gl.AccountID]; ok {
				accountID = sql.NullString{String: mapped, Valid: true}
			} else {
				log.Printf("Warning: dropping unknown account %q from restored goal %q", gl.AccountID, gl.Name)
			}
		}

		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO financial_goals (id, user_id, name, target_amount, current_amount, deadline, account_id, is_achieved, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), userID, gl.Name, gl.TargetAmount, gl.CurrentAmount, database.NullString(gl.Deadline), accountID, gl.IsAchieved, now, now)
		if err != nil {
			log.Printf("Warning: skipping goal %q from backup: %v", gl.Name, err)
			continue
		}
		result.Goals++
	}

	log.Printf("Restore completed for user %s: %+v", userID, result)
	return result, nil
}

func exportAccounts(ctx context.Context, userID string) ([]models.BackupAccount, error) {
	rows, err := database.DB.QueryContext(ctx, `
		SELECT id, name, type, balance, currency, COALESCE(color, ''), COALESCE(description, ''), is_active
		FROM accounts
		WHERE user_id = ? AND is_active = 1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.BackupAccount{}
	for rows.Next() {
		var a models.BackupAccount
		if err := rows.Scan(&a.BackupID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.Color, &a.Description, &a.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func exportTransactions(ctx context.Context, userID string) ([]models.BackupTransaction, error) {
	rows, err := database.DB.QueryContext(ctx, `
		SELECT id, type, amount, date, account_id, COALESCE(to_account_id, ''), COALESCE(category_id, ''), COALESCE(description, ''), COALESCE(notes, '')
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.BackupTransaction{}
	for rows.Next() {
		var t models.BackupTransaction
		if err := rows.Scan(&t.BackupID, &t.Type, &t.Amount, &t.Date, &t.AccountID, &t.ToAccountID, &t.CategoryID, &t.Description, &t.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func exportCategories(ctx context.Context, userID string) ([]models.BackupCategory, error) {
	rows, err := database.DB.QueryContext(ctx, `
		SELECT id, name, type, COALESCE(color, ''), COALESCE(icon, ''), is_system
		FROM categories
		WHERE user_id = ?
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer rows.Close()

	categories := []models.BackupCategory{}
	for rows.Next() {
		var c models.BackupCategory
		if err := rows.Scan(&c.BackupID, &c.Name, &c.Type, &c.Color, &c.Icon, &c.IsSystem); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func exportTags(ctx context.Context, userID string) ([]models.BackupTag, error) {
	rows, err := database.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(color, '')
		FROM tags
		WHERE user_id = ?
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	defer rows.Close()

	tags := []models.BackupTag{}
	for rows.Next() {
		var t models.BackupTag
		if err := rows.Scan(&t.BackupID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func exportBudgets(ctx context.Context, userID string) ([]models.BackupBudget, error) {
	rows, err := database.DB.QueryContext(ctx, `
		SELECT name, category_id, amount, period, start_date, COALESCE(end_date, ''), alert_threshold, is_active
		FROM budgets
		WHERE user_id = ? AND is_active = 1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.BackupBudget{}
	for rows.Next() {
		var b models.BackupBudget
		if err := rows.Scan(&b.Name, &b.CategoryID, &b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.AlertThreshold, &b.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func exportGoals(ctx context.Context, userID string) ([]models.BackupGoal, error) {
	rows, err := database.DB.QueryContext(ctx, `
		SELECT name, target_amount, current_amount, COALESCE(deadline, ''), COALESCE(account_id, ''), is_achieved
		FROM financial_goals
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer rows.Close()

	goals := []models.BackupGoal{}
	for rows.Next() {
		var g models.BackupGoal
		if err := rows.Scan(&g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.AccountID, &g.IsAchieved); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func exportTransactionTags(ctx context.Context, transactionIDs []string) ([]models.BackupTransactionTag, error) {
	relations := []models.BackupTransactionTag{}
	if len(transactionIDs) == 0 {
		return relations, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(transactionIDs)), ",")
	args := make([]interface{}, len(transactionIDs))
	for i, id := range transactionIDs {
		args[i] = id
	}

	rows, err := database.DB.QueryContext(ctx,
		"SELECT transaction_id, tag_id FROM transaction_tags WHERE transaction_id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rel models.BackupTransactionTag
		if err := rows.Scan(&rel.TransactionID, &rel.TagID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction tag: %w", err)
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}
