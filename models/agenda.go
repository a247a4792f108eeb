package models

import "time"

type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Recurrent bool      `json:"recurrent"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type Idea struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AgendaGoal is a free-form personal goal, distinct from the finance
// module's FinancialGoal.
type AgendaGoal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Deadline    string    `json:"deadline,omitempty"`
	Achieved    bool      `json:"achieved"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DayTaskStats is one day's slice of the weekly progress chart.
type DayTaskStats struct {
	Day       string `json:"day"`  // Dom, Lun, ...
	Date      string `json:"date"` // YYYY-MM-DD
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Total     int    `json:"total"`
}
