package main

import (
	"fmt"
	"log"
	"os"

	"lifeledger/backend/config"
	"lifeledger/backend/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// InitDB creates the base tables and runs all pending migrations.
	err = database.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	fmt.Println("Migrations completed successfully!")
	os.Exit(0)
}
