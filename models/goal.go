package models

import "time"

type FinancialGoal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Deadline      string     `json:"deadline,omitempty"`
	AccountID     string     `json:"accountId,omitempty"`
	IsAchieved    bool       `json:"isAchieved"`
	AchievedAt    *time.Time `json:"achievedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	AccountName string `json:"accountName,omitempty"`
}
