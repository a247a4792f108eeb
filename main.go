package main

import (
	"flag"
	"log"
	"net/http"
	"strings"
	"time"

	"lifeledger/backend/config"
	"lifeledger/backend/database"
	"lifeledger/backend/handlers"
	"lifeledger/backend/middleware"

	"github.com/gorilla/mux"
)

func main() {
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the database")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	isResetDB := cfg.ResetDB || *resetDB
	if isResetDB {
		log.Println("Running in database reset mode")
	}
	if cfg.PRDeployment {
		log.Println("Running in PR deployment mode")
	}
	if !cfg.IsProduction() {
		log.Println("Running in development environment")
	}

	// InitDB creates the base tables and runs all pending migrations.
	if err := database.InitDB(cfg.DBPath); err != nil {
		log.Fatal(err)
	}

	if err := database.SeedDefaultUsers(); err != nil {
		log.Printf("Warning: failed to seed default users: %v", err)
	}

	// In reset mode, exit once the schema is in place unless --no-exit
	// is provided.
	if isResetDB && !*noExit {
		log.Println("Database reset completed successfully. Exiting.")
		return
	}

	log.Println("Initializing Firebase Admin SDK...")
	if err := middleware.InitializeFirebase(cfg.FirebaseProjectID); err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and the /api prefix so
	// proxied and direct clients hit the same handlers.
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Serve the SPA from the static directory.
	fs := http.FileServer(http.Dir(cfg.StaticDir))
	r.PathPrefix("/assets/").Handler(fs)
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, cfg.StaticDir+"/index.html")
	}).Methods("GET")

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + cfg.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Starting server on port %s...", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes.
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	// Users
	protected.HandleFunc("/users/sync", handlers.SyncUser).Methods("POST")

	// Accounts
	protected.HandleFunc("/accounts", handlers.GetAccounts).Methods("GET")
	protected.HandleFunc("/accounts", handlers.AddAccount).Methods("POST")
	protected.HandleFunc("/accounts/balance", handlers.GetTotalBalance).Methods("GET")
	protected.HandleFunc("/accounts/{id}", handlers.UpdateAccount).Methods("PUT")
	protected.HandleFunc("/accounts/{id}", handlers.DeleteAccount).Methods("DELETE")

	// Transactions
	protected.HandleFunc("/transactions", handlers.GetTransactions).Methods("GET")
	protected.HandleFunc("/transactions", handlers.AddTransaction).Methods("POST")
	protected.HandleFunc("/transactions/summary", handlers.GetTransactionSummary).Methods("GET")
	protected.HandleFunc("/transactions/export", handlers.ExportTransactionsCSV).Methods("GET")
	protected.HandleFunc("/transactions/{id}", handlers.UpdateTransaction).Methods("PUT")
	protected.HandleFunc("/transactions/{id}", handlers.DeleteTransaction).Methods("DELETE")

	// Categories
	protected.HandleFunc("/categories", handlers.GetCategories).Methods("GET")
	protected.HandleFunc("/categories", handlers.AddCategory).Methods("POST")
	protected.HandleFunc("/categories/cleanup", handlers.CleanupCategories).Methods("POST")
	protected.HandleFunc("/categories/initialize", handlers.InitializeCategories).Methods("POST")
	protected.HandleFunc("/categories/{id}", handlers.UpdateCategory).Methods("PUT")
	protected.HandleFunc("/categories/{id}", handlers.DeleteCategory).Methods("DELETE")

	// Tags
	protected.HandleFunc("/tags", handlers.GetTags).Methods("GET")
	protected.HandleFunc("/tags", handlers.AddTag).Methods("POST")
	protected.HandleFunc("/tags/{id}", handlers.UpdateTag).Methods("PUT")
	protected.HandleFunc("/tags/{id}", handlers.DeleteTag).Methods("DELETE")

	// Budgets
	protected.HandleFunc("/budgets", handlers.GetBudgets).Methods("GET")
	protected.HandleFunc("/budgets", handlers.AddBudget).Methods("POST")
	protected.HandleFunc("/budgets/{id}", handlers.UpdateBudget).Methods("PUT")
	protected.HandleFunc("/budgets/{id}", handlers.DeleteBudget).Methods("DELETE")
	protected.HandleFunc("/budgets/{id}/progress", handlers.GetBudgetProgress).Methods("GET")

	// Financial goals
	protected.HandleFunc("/goals", handlers.GetFinancialGoals).Methods("GET")
	protected.HandleFunc("/goals", handlers.AddFinancialGoal).Methods("POST")
	protected.HandleFunc("/goals/at-risk", handlers.GetGoalsAtRisk).Methods("GET")
	protected.HandleFunc("/goals/{id}", handlers.UpdateFinancialGoal).Methods("PUT")
	protected.HandleFunc("/goals/{id}", handlers.DeleteFinancialGoal).Methods("DELETE")
	protected.HandleFunc("/goals/{id}/progress", handlers.UpdateGoalProgress).Methods("POST")

	// Reminders
	protected.HandleFunc("/reminders", handlers.GetReminders).Methods("GET")
	protected.HandleFunc("/reminders", handlers.AddReminder).Methods("POST")
	protected.HandleFunc("/reminders/{id}/complete", handlers.CompleteReminder).Methods("POST")
	protected.HandleFunc("/reminders/{id}", handlers.DeleteReminder).Methods("DELETE")

	// Agenda: tasks, ideas, personal goals
	protected.HandleFunc("/tasks", handlers.GetTasks).Methods("GET")
	protected.HandleFunc("/tasks", handlers.AddTask).Methods("POST")
	protected.HandleFunc("/tasks/stats/weekly", handlers.GetWeeklyTaskStats).Methods("GET")
	protected.HandleFunc("/tasks/{id}", handlers.UpdateTask).Methods("PUT")
	protected.HandleFunc("/tasks/{id}", handlers.DeleteTask).Methods("DELETE")
	protected.HandleFunc("/tasks/{id}/toggle", handlers.ToggleTask).Methods("POST")
	protected.HandleFunc("/ideas", handlers.GetIdeas).Methods("GET")
	protected.HandleFunc("/ideas", handlers.AddIdea).Methods("POST")
	protected.HandleFunc("/ideas/{id}", handlers.DeleteIdea).Methods("DELETE")
	protected.HandleFunc("/agenda/goals", handlers.GetAgendaGoals).Methods("GET")
	protected.HandleFunc("/agenda/goals", handlers.AddAgendaGoal).Methods("POST")
	protected.HandleFunc("/agenda/goals/{id}", handlers.DeleteAgendaGoal).Methods("DELETE")
	protected.HandleFunc("/agenda/goals/{id}/toggle", handlers.ToggleAgendaGoal).Methods("POST")

	// Analytics
	protected.HandleFunc("/analytics/expenses-by-category", handlers.GetExpensesByCategory).Methods("GET")
	protected.HandleFunc("/analytics/monthly-trend", handlers.GetMonthlyTrend).Methods("GET")
	protected.HandleFunc("/analytics/kpis", handlers.GetKPIs).Methods("GET")

	// Backup / restore
	protected.HandleFunc("/backup", handlers.DownloadBackup).Methods("GET")
	protected.HandleFunc("/backup/restore", handlers.RestoreBackup).Methods("POST")
}
