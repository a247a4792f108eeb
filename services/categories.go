package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"lifeledger/backend/database"
	"lifeledger/backend/models"

	"github.com/google/uuid"
)

// CleanupDuplicateCategories collapses categories that share a name
// within a user's scope. Survivor selection is deterministic: a system
// category wins if the group contains one, otherwise the oldest record
// survives. Returns the number of rows removed.
//
// The whole pass is one fetch, one in-memory grouping and one batched
// delete, so running it twice in a row removes nothing on the second
// run.
func CleanupDuplicateCategories(userID string) (int, error) {
	rows, err := database.DB.Query(`
		SELECT id, name, is_system
		FROM categories
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer rows.Close()

	type categoryRow struct {
		id       string
		name     string
		isSystem bool
	}

	groups := make(map[string][]categoryRow)
	for rows.Next() {
		var c categoryRow
		if err := rows.Scan(&c.id, &c.name, &c.isSystem); err != nil {
			return 0, fmt.Errorf("failed to scan category: %w", err)
		}
		groups[c.name] = append(groups[c.name], c)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate categories: %w", err)
	}

	var idsToDelete []string
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}

		// Rows arrive oldest first, so the fallback survivor is index 0.
		survivor := 0
		for i, c := range group {
			if c.isSystem {
				survivor = i
				break
			}
		}

		for i, c := range group {
			if i != survivor {
				idsToDelete = append(idsToDelete, c.id)
			}
		}
	}

	if len(idsToDelete) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(idsToDelete)), ",")
	args := make([]interface{}, len(idsToDelete))
	for i, id := range idsToDelete {
		args[i] = id
	}

	_, err = database.DB.Exec("DELETE FROM categories WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete duplicate categories: %w", err)
	}

	log.Printf("Removed %d duplicate categories for user %s", len(idsToDelete), userID)
	return len(idsToDelete), nil
}

// InitializeDefaultCategories seeds the default catalog for a user,
// inserting only entries whose names are not already present as system
// categories. Duplicates are cleaned up first so the existence check
// sees a consistent set.
func InitializeDefaultCategories(userID string) error {
	if _, err := CleanupDuplicateCategories(userID); err != nil {
		return err
	}

	rows, err := database.DB.Query(`
		SELECT name FROM categories WHERE user_id = ? AND is_system = 1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch system categories: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan category name: %w", err)
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate system categories: %w", err)
	}

	now := time.Now()
	inserted := 0
	for _, cat := range models.DefaultCategories {
		if existing[cat.Name] {
			continue
		}

		_, err := database.DB.Exec(`
			INSERT INTO categories (id, user_id, name, type, color, icon, is_system, created_at)
			VALUES (?, ?, ?, ?, ?, ?, 1, ?)
		`, uuid.NewString(), userID, cat.Name, cat.Type, cat.Color, cat.Icon, now)
		if err != nil {
			return fmt.Errorf("failed to insert default category %s: %w", cat.Name, err)
		}
		inserted++
	}

	if inserted > 0 {
		log.Printf("Seeded %d default categories for user %s", inserted, userID)
	}
	return nil
}
