package models

// BackupDocument is the portable snapshot of one user's financial
// data. Nested records carry store column names and never include the
// row's own id, user_id, created_at or updated_at; entities that other
// records point at keep their pre-export id in backup_id so restore
// can rebuild foreign keys against freshly assigned ids.
type BackupDocument struct {
	Version    string      `json:"version"`
	ExportDate string      `json:"exportDate"`
	UserID     string      `json:"userId"`
	Data       *BackupData `json:"data"`
}

type BackupData struct {
	Accounts        []BackupAccount        `json:"accounts"`
	Transactions    []BackupTransaction    `json:"transactions"`
	Categories      []BackupCategory       `json:"categories"`
	Tags            []BackupTag            `json:"tags"`
	Budgets         []BackupBudget         `json:"budgets"`
	Goals           []BackupGoal           `json:"goals"`
	TransactionTags []BackupTransactionTag `json:"transactionTags"`
}

type BackupAccount struct {
	BackupID    string  `json:"backup_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Balance     float64 `json:"balance"`
	Currency    string  `json:"currency"`
	Color       string  `json:"color,omitempty"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type BackupCategory struct {
	BackupID string `json:"backup_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
	IsSystem bool   `json:"is_system"`
}

type BackupTag struct {
	BackupID string `json:"backup_id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
}

type BackupTransaction struct {
	BackupID    string  `json:"backup_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	AccountID   string  `json:"account_id"`
	ToAccountID string  `json:"to_account_id,omitempty"`
	CategoryID  string  `json:"category_id,omitempty"`
	Description string  `json:"description,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

type BackupBudget struct {
	Name           string  `json:"name"`
	CategoryID     string  `json:"category_id"`
	Amount         float64 `json:"amount"`
	Period         string  `json:"period"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date,omitempty"`
	AlertThreshold float64 `json:"alert_threshold"`
	IsActive       bool    `json:"is_active"`
}

type BackupGoal struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline,omitempty"`
	AccountID     string  `json:"account_id,omitempty"`
	IsAchieved    bool    `json:"is_achieved"`
}

type BackupTransactionTag struct {
	TransactionID string `json:"transaction_id"`
	TagID         string `json:"tag_id"`
}

// RestoreResult counts how many records of each type were recreated.
// Comparing against the document's collection sizes reveals skips.
type RestoreResult struct {
	Accounts        int `json:"accounts"`
	Categories      int `json:"categories"`
	Tags            int `json:"tags"`
	Transactions    int `json:"transactions"`
	Budgets         int `json:"budgets"`
	Goals           int `json:"goals"`
	TransactionTags int `json:"transactionTags"`
}
