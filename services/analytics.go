package services

import (
	"fmt"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/models"
)

// GetExpensesByCategory sums expense transactions per category over an
// optional date range. Transactions without a category land in an
// "Otros" bucket.
func GetExpensesByCategory(userID, startDate, endDate string) ([]models.CategoryExpense, error) {
	query := `
		SELECT COALESCE(t.category_id, ''), COALESCE(c.name, 'Otros'), COALESCE(c.color, ''), SUM(t.amount)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND t.type = 'expense'
	`
	args := []interface{}{userID}
	if startDate != "" {
		query += " AND t.date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND t.date <= ?"
		args = append(args, endDate)
	}
	query += " GROUP BY t.category_id ORDER BY SUM(t.amount) DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses by category: %w", err)
	}
	defer rows.Close()

	expenses := []models.CategoryExpense{}
	for rows.Next() {
		var e models.CategoryExpense
		if err := rows.Scan(&e.CategoryID, &e.Category, &e.Color, &e.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// GetMonthlyTrend returns income, expenses and net per month for the
// last `months` months, oldest first. Months with no transactions
// still appear with zeros.
func GetMonthlyTrend(userID string, months int) ([]models.MonthlyTrendPoint, error) {
	if months <= 0 {
		months = 6
	}

	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)

	rows, err := database.DB.Query(`
		SELECT substr(date, 1, 7) AS month, type, SUM(amount)
		FROM transactions
		WHERE user_id = ? AND date >= ? AND type IN ('income', 'expense')
		GROUP BY month, type
	`, userID, first.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly trend: %w", err)
	}
	defer rows.Close()

	byMonth := make(map[string]*models.MonthlyTrendPoint)
	for rows.Next() {
		var (
			month  string
			txType string
			total  float64
		)
		if err := rows.Scan(&month, &txType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		point, ok := byMonth[month]
		if !ok {
			point = &models.MonthlyTrendPoint{Month: month}
			byMonth[month] = point
		}
		if txType == "income" {
			point.Income = total
		} else {
			point.Expenses = total
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trend rows: %w", err)
	}

	trend := make([]models.MonthlyTrendPoint, 0, months)
	for i := 0; i < months; i++ {
		month := first.AddDate(0, i, 0).Format("2006-01")
		point := models.MonthlyTrendPoint{Month: month}
		if p, ok := byMonth[month]; ok {
			point = *p
		}
		point.Net = point.Income - point.Expenses
		trend = append(trend, point)
	}
	return trend, nil
}

// GetKPIs computes the headline numbers over a date range: totals, net
// income, savings rate and the share of financial goals achieved.
func GetKPIs(userID, startDate, endDate string) (*models.KPIs, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ?
	`
	args := []interface{}{userID}
	if startDate != "" {
		query += " AND date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND date <= ?"
		args = append(args, endDate)
	}

	kpis := &models.KPIs{}
	if err := database.DB.QueryRow(query, args...).Scan(&kpis.TotalIncome, &kpis.TotalExpenses); err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	kpis.NetIncome = kpis.TotalIncome - kpis.TotalExpenses
	if kpis.TotalIncome > 0 {
		kpis.SavingsRate = kpis.NetIncome / kpis.TotalIncome * 100
	}

	var total, achieved int
	err := database.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_achieved = 1 THEN 1 ELSE 0 END), 0)
		FROM financial_goals
		WHERE user_id = ?
	`, userID).Scan(&total, &achieved)
	if err != nil {
		return nil, fmt.Errorf("failed to count goals: %w", err)
	}
	if total > 0 {
		kpis.GoalsAchievedRate = float64(achieved) / float64(total) * 100
	}

	return kpis, nil
}

var spanishDays = [7]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

// GetWeeklyTaskStats reports completed/pending task counts for the
// last seven days, today last. A recurrent task counts on every day
// sharing its weekday.
func GetWeeklyTaskStats(userID string) ([]models.DayTaskStats, error) {
	rows, err := database.DB.Query(`
		SELECT date, recurrent, completed
		FROM tasks
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer rows.Close()

	type taskRow struct {
		date      string
		recurrent bool
		completed bool
	}
	var tasks []taskRow
	for rows.Next() {
		var t taskRow
		if err := rows.Scan(&t.date, &t.recurrent, &t.completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	const layout = "2006-01-02"
	today := time.Now()
	stats := make([]models.DayTaskStats, 0, 7)

	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		dayStr := day.Format(layout)
		stat := models.DayTaskStats{
			Day:  spanishDays[int(day.Weekday())],
			Date: dayStr,
		}

		for _, t := range tasks {
			if !TaskOccursOn(t.date, t.recurrent, day) {
				continue
			}
			stat.Total++
			if t.completed {
				stat.Completed++
			} else {
				stat.Pending++
			}
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// TaskOccursOn reports whether a task scheduled for taskDate shows up
// on day: exact date match, or same weekday on a later date when the
// task repeats weekly.
func TaskOccursOn(taskDate string, recurrent bool, day time.Time) bool {
	scheduled, err := time.Parse("2006-01-02", taskDate)
	if err != nil {
		return false
	}
	dayStr := day.Format("2006-01-02")
	if taskDate == dayStr {
		return true
	}
	return recurrent && scheduled.Weekday() == day.Weekday() && dayStr > taskDate
}
