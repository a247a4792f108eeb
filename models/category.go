package models

import "time"

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // income, expense, both
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	IsSystem  bool      `json:"isSystem"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultCategory is one entry of the seed catalog inserted for every
// new user. Seeded rows are marked is_system so deduplication prefers
// them over user-created copies.
type DefaultCategory struct {
	Name  string
	Type  string
	Color string
	Icon  string
}

// DefaultCategories is the fixed catalog used by
// services.InitializeDefaultCategories. Order is not significant.
var DefaultCategories = []DefaultCategory{
	// Income
	{Name: "Salario", Type: "income", Color: "#10b981", Icon: "briefcase"},
	{Name: "Freelance", Type: "income", Color: "#3b82f6", Icon: "code"},
	{Name: "Inversiones", Type: "income", Color: "#8b5cf6", Icon: "trending-up"},
	{Name: "Otros Ingresos", Type: "income", Color: "#6366f1", Icon: "plus-circle"},

	// Expenses
	{Name: "Alimentación", Type: "expense", Color: "#ef4444", Icon: "utensils"},
	{Name: "Transporte", Type: "expense", Color: "#f59e0b", Icon: "car"},
	{Name: "Vivienda", Type: "expense", Color: "#84cc16", Icon: "home"},
	{Name: "Servicios", Type: "expense", Color: "#06b6d4", Icon: "zap"},
	{Name: "Entretenimiento", Type: "expense", Color: "#ec4899", Icon: "film"},
	{Name: "Salud", Type: "expense", Color: "#14b8a6", Icon: "heart"},
	{Name: "Educación", Type: "expense", Color: "#8b5cf6", Icon: "book"},
	{Name: "Ropa", Type: "expense", Color: "#f43f5e", Icon: "shopping-bag"},
	{Name: "Otros Gastos", Type: "expense", Color: "#64748b", Icon: "more-horizontal"},
}
