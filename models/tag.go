package models

type Tag struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
}

// TransactionTag is the many-to-many join between transactions and tags.
type TransactionTag struct {
	TransactionID string `json:"transactionId"`
	TagID         string `json:"tagId"`
}
