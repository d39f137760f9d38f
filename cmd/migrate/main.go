package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/drivestack/drivestack/internal/config"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	schemaPath := flag.String("schema", "migrations/schema.sql", "Path to the schema file")
	dryRun := flag.Bool("dry-run", false, "Print the schema SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		logger.Fatalf("Failed to read schema file: %v", err)
	}

	if *dryRun {
		fmt.Println(string(schema))
		return
	}

	logger.Infow("connecting to database", "host", cfg.Postgres.Host, "db", cfg.Postgres.DBName)
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(string(schema)); err != nil {
		logger.Fatalf("Failed to apply schema: %v", err)
	}

	logger.Infow("schema applied", "schema", *schemaPath)
}
