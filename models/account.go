package models

import "time"

type Account struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"` // checking, savings, cash, credit, investment
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
