package models

// CategoryExpense is one slice of the expenses-by-category chart.
type CategoryExpense struct {
	CategoryID string  `json:"categoryId"`
	Category   string  `json:"category"`
	Color      string  `json:"color,omitempty"`
	Total      float64 `json:"total"`
}

// MonthlyTrendPoint aggregates income and expenses for one month.
type MonthlyTrendPoint struct {
	Month    string  `json:"month"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

type KPIs struct {
	SavingsRate       float64 `json:"savingsRate"`
	TotalIncome       float64 `json:"totalIncome"`
	TotalExpenses     float64 `json:"totalExpenses"`
	NetIncome         float64 `json:"netIncome"`
	GoalsAchievedRate float64 `json:"goalsAchievedRate"`
}
