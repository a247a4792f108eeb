package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/models"
)

// UpdateGoalProgress adds an amount to a goal's current progress.
// Reaching the target flips is_achieved and stamps achieved_at; the
// flags are never cleared here, even if a negative adjustment drops
// the amount back under the target.
func UpdateGoalProgress(userID, goalID string, amount float64) (*models.FinancialGoal, error) {
	var (
		current float64
		target  float64
	)
	err := database.DB.QueryRow(`
		SELECT current_amount, target_amount
		FROM financial_goals
		WHERE id = ? AND user_id = ?
	`, goalID, userID).Scan(&current, &target)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goal: %w", err)
	}

	current += amount
	now := time.Now()

	if current >= target {
		_, err = database.DB.Exec(`
			UPDATE financial_goals
			SET current_amount = ?, is_achieved = 1,
			    achieved_at = COALESCE(achieved_at, ?), updated_at = ?
			WHERE id = ? AND user_id = ?
		`, current, now, now, goalID, userID)
	} else {
		_, err = database.DB.Exec(`
			UPDATE financial_goals
			SET current_amount = ?, updated_at = ?
			WHERE id = ? AND user_id = ?
		`, current, now, goalID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	if current >= target {
		log.Printf("Goal %s achieved by user %s", goalID, userID)
	}

	return GetFinancialGoal(userID, goalID)
}

// GetGoalsAtRisk lists unachieved goals whose deadline falls within
// the next 30 days while progress sits under half the target.
func GetGoalsAtRisk(userID string) ([]models.FinancialGoal, error) {
	const layout = "2006-01-02"
	today := time.Now().Format(layout)
	horizon := time.Now().AddDate(0, 0, 30).Format(layout)

	rows, err := database.DB.Query(`
		SELECT g.id, g.user_id, g.name, g.target_amount, g.current_amount,
		       COALESCE(g.deadline, ''), COALESCE(g.account_id, ''), g.is_achieved,
		       g.achieved_at, g.created_at, g.updated_at, COALESCE(a.name, '')
		FROM financial_goals g
		LEFT JOIN accounts a ON a.id = g.account_id
		WHERE g.user_id = ? AND g.is_achieved = 0
		  AND g.deadline IS NOT NULL AND g.deadline != ''
		  AND g.deadline >= ? AND g.deadline <= ?
		  AND g.current_amount < g.target_amount * 0.5
		ORDER BY g.deadline ASC
	`, userID, today, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch at-risk goals: %w", err)
	}
	defer rows.Close()

	return scanFinancialGoals(rows)
}

// GetFinancialGoal fetches one goal with its linked account name.
func GetFinancialGoal(userID, goalID string) (*models.FinancialGoal, error) {
	rows, err := database.DB.Query(`
		SELECT g.id, g.user_id, g.name, g.target_amount, g.current_amount,
		       COALESCE(g.deadline, ''), COALESCE(g.account_id, ''), g.is_achieved,
		       g.achieved_at, g.created_at, g.updated_at, COALESCE(a.name, '')
		FROM financial_goals g
		LEFT JOIN accounts a ON a.id = g.account_id
		WHERE g.id = ? AND g.user_id = ?
	`, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goal: %w", err)
	}
	defer rows.Close()

	goals, err := scanFinancialGoals(rows)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("goal %s not found", goalID)
	}
	return &goals[0], nil
}

func scanFinancialGoals(rows *sql.Rows) ([]models.FinancialGoal, error) {
	goals := []models.FinancialGoal{}
	for rows.Next() {
		var g models.FinancialGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.Deadline, &g.AccountID, &g.IsAchieved,
			&g.AchievedAt, &g.CreatedAt, &g.UpdatedAt, &g.AccountName); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
