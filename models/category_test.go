package models

import "testing"

func TestDefaultCategoriesUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, cat := range DefaultCategories {
		if seen[cat.Name] {
			t.Errorf("Duplicate default category name: %s", cat.Name)
		}
		seen[cat.Name] = true
	}
}

func TestDefaultCategoriesValidTypes(t *testing.T) {
	for _, cat := range DefaultCategories {
		if cat.Type != "income" && cat.Type != "expense" {
			t.Errorf("Category %s has invalid type %s", cat.Name, cat.Type)
		}
		if cat.Color == "" {
			t.Errorf("Category %s has no color", cat.Name)
		}
	}
}
