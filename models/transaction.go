package models

import "time"

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"` // income, expense, transfer
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"` // YYYY-MM-DD
	AccountID   string    `json:"accountId"`
	ToAccountID string    `json:"toAccountId,omitempty"` // transfers only
	CategoryID  string    `json:"categoryId,omitempty"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Joined display fields, populated on reads only.
	AccountName  string   `json:"accountName,omitempty"`
	CategoryName string   `json:"categoryName,omitempty"`
	Tags         []Tag    `json:"tags,omitempty"`
	TagIDs       []string `json:"tagIds,omitempty"` // accepted on create
}

// TransactionFilter narrows GetTransactions results. Zero values mean
// "no filter".
type TransactionFilter struct {
	Type       string
	AccountID  string
	CategoryID string
	StartDate  string
	EndDate    string
}

// TransactionSummary aggregates amounts by type over a date range.
type TransactionSummary struct {
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	Transfers float64 `json:"transfers"`
	Net       float64 `json:"net"`
}
