// Command dbcheck probes database connectivity and prints the public
// tables, a console replacement for poking at the database by hand.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	appconfig "github.com/bencare/bencare/internal/config"
	"github.com/bencare/bencare/internal/diagnostics"
	"github.com/bencare/bencare/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	checker := diagnostics.NewChecker(pool, logger)

	report := checker.CheckConnection(context.Background())
	if !report.Connected {
		fmt.Println("database connection: FAILED")
		os.Exit(1)
	}
	fmt.Printf("database connection: OK (%d users)\n", report.UserCount)

	tables, err := checker.ListTables(context.Background())
	if err != nil {
		logger.Error("failed to list tables", "error", err)
		os.Exit(1)
	}
	fmt.Println("tables:")
	for _, table := range tables {
		fmt.Printf("  - %s\n", table)
	}
}
