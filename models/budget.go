package models

import "time"

type Budget struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	CategoryID     string    `json:"categoryId"`
	Name           string    `json:"name"`
	Amount         float64   `json:"amount"`
	Period         string    `json:"period"` // weekly, monthly, yearly
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate,omitempty"`
	AlertThreshold float64   `json:"alertThreshold"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	CategoryName string `json:"categoryName,omitempty"`
}

// BudgetProgress reports how much of a budget has been consumed by
// expense transactions in its category and period.
type BudgetProgress struct {
	Budget       float64 `json:"budget"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	IsOverBudget bool    `json:"isOverBudget"`
	IsNearLimit  bool    `json:"isNearLimit"`
}
