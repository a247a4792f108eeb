package services

import (
	"fmt"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/models"
)

// GetBudgetProgress computes how much of a budget the user has spent.
// Spent is the sum of expense transactions in the budget's category
// inside the current period window (week, month or year containing
// today).
func GetBudgetProgress(userID, budgetID string) (*models.BudgetProgress, error) {
	var (
		categoryID     string
		amount         float64
		period         string
		alertThreshold float64
	)
	err := database.DB.QueryRow(`
		SELECT category_id, amount, period, alert_threshold
		FROM budgets
		WHERE id = ? AND user_id = ? AND is_active = 1
	`, budgetID, userID).Scan(&categoryID, &amount, &period, &alertThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budget: %w", err)
	}

	start, end := periodWindow(period, time.Now())

	var spent float64
	err = database.DB.QueryRow(`
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND category_id = ? AND type = 'expense'
		  AND date >= ? AND date <= ?
	`, userID, categoryID, start, end).Scan(&spent)
	if err != nil {
		return nil, fmt.Errorf("failed to compute spent amount: %w", err)
	}

	percentage := 0.0
	if amount > 0 {
		percentage = spent / amount * 100
	}

	return &models.BudgetProgress{
		Budget:       amount,
		Spent:        spent,
		Remaining:    amount - spent,
		Percentage:   percentage,
		IsOverBudget: spent > amount,
		IsNearLimit:  percentage >= alertThreshold,
	}, nil
}

// periodWindow returns the inclusive YYYY-MM-DD bounds of the period
// containing ref. Weeks start on Monday.
func periodWindow(period string, ref time.Time) (string, string) {
	const layout = "2006-01-02"

	switch period {
	case "weekly":
		offset := (int(ref.Weekday()) + 6) % 7
		start := ref.AddDate(0, 0, -offset)
		return start.Format(layout), start.AddDate(0, 0, 6).Format(layout)
	case "yearly":
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, ref.Location())
		return start.Format(layout), start.AddDate(1, 0, -1).Format(layout)
	default: // monthly
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return start.Format(layout), start.AddDate(0, 1, -1).Format(layout)
	}
}
