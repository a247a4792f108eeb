package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"
)

// SeedTestData seeds test data for development and PR environments
// This should only be called in non-production environments
func SeedTestData(db *sql.DB) error {
	// Check if we're in production - we should NEVER run this in production
	if os.Getenv("APP_ENV") == "production" || os.Getenv("ENV") == "production" {
		log.Println("Refusing to seed test data in production environment")
		return nil
	}

	// Only seed if explicitly requested or in dev/PR environment
	if os.Getenv("RESET_DB") != "true" &&
		os.Getenv("APP_ENV") != "development" &&
		os.Getenv("PR_DEPLOYMENT") != "true" {
		log.Println("Skipping test data seeding - not explicitly requested and not in dev/PR environment")
		return nil
	}

	log.Println("Seeding test data for development/PR environment...")

	devUser := "dev-user-1"

	// Make sure the dev user exists
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users WHERE id = ?", devUser).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check if dev user exists: %w", err)
	}
	if count == 0 {
		_, err = db.Exec("INSERT INTO users (id, username, name) VALUES (?, ?, ?)",
			devUser, "dev", "Dev User")
		if err != nil {
			return fmt.Errorf("failed to insert dev user: %w", err)
		}
	}

	// Sample accounts
	sampleAccounts := []struct {
		id       string
		name     string
		accType  string
		balance  float64
		currency string
		color    string
	}{
		{id: "acc_checking", name: "Cuenta Corriente", accType: "checking", balance: 1850.75, currency: "USD", color: "#3b82f6"},
		{id: "acc_savings", name: "Ahorros", accType: "savings", balance: 5200.00, currency: "USD", color: "#10b981"},
		{id: "acc_cash", name: "Efectivo", accType: "cash", balance: 120.00, currency: "USD", color: "#f59e0b"},
	}

	for _, acc := range sampleAccounts {
		var exists int
		err = db.QueryRow("SELECT COUNT(*) FROM accounts WHERE id = ?", acc.id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check account %s: %w", acc.id, err)
		}
		if exists > 0 {
			continue
		}
		_, err = db.Exec(`
			INSERT INTO accounts (id, user_id, name, type, balance, currency, color, is_active)
			VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		`, acc.id, devUser, acc.name, acc.accType, acc.balance, acc.currency, acc.color)
		if err != nil {
			return fmt.Errorf("failed to insert account %s: %w", acc.name, err)
		}
	}

	// Sample transactions against the seeded accounts
	sampleTransactions := []struct {
		id          string
		txType      string
		amount      float64
		date        string
		accountID   string
		description string
	}{
		{id: "tx_1", txType: "expense", amount: 42.50, date: "2025-08-15", accountID: "acc_checking", description: "Groceries"},
		{id: "tx_2", txType: "expense", amount: 1200.00, date: "2025-08-01", accountID: "acc_checking", description: "Rent"},
		{id: "tx_3", txType: "income", amount: 2500.00, date: "2025-08-25", accountID: "acc_checking", description: "Salary"},
		{id: "tx_4", txType: "transfer", amount: 500.00, date: "2025-08-26", accountID: "acc_checking", description: "To savings"},
	}

	for _, tx := range sampleTransactions {
		var exists int
		err = db.QueryRow("SELECT COUNT(*) FROM transactions WHERE id = ?", tx.id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check transaction %s: %w", tx.id, err)
		}
		if exists > 0 {
			continue
		}
		toAccount := sql.NullString{}
		if tx.txType == "transfer" {
			toAccount = sql.NullString{String: "acc_savings", Valid: true}
		}
		_, err = db.Exec(`
			INSERT INTO transactions (id, user_id, type, amount, date, account_id, to_account_id, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, tx.id, devUser, tx.txType, tx.amount, tx.date, tx.accountID, toAccount, tx.description)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", tx.id, err)
		}
	}

	// Sample agenda tasks
	sampleTasks := []struct {
		id        string
		title     string
		date      string
		recurrent bool
	}{
		{id: "task_1", title: "Pagar alquiler", date: "2025-08-01", recurrent: false},
		{id: "task_2", title: "Gimnasio", date: "2025-08-04", recurrent: true},
	}

	for _, task := range sampleTasks {
		var exists int
		err = db.QueryRow("SELECT COUNT(*) FROM tasks WHERE id = ?", task.id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check task %s: %w", task.id, err)
		}
		if exists > 0 {
			continue
		}
		_, err = db.Exec(`
			INSERT INTO tasks (id, user_id, title, date, recurrent, completed)
			VALUES (?, ?, ?, ?, ?, 0)
		`, task.id, devUser, task.title, task.date, task.recurrent)
		if err != nil {
			return fmt.Errorf("failed to insert task %s: %w", task.title, err)
		}
	}

	log.Println("Test data seeded successfully")
	return nil
}
