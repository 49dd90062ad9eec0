package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/sitecraft/estimate-api/internal/config"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the migration files")
	flag.Parse()

	if err := run(*dir, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate [-dir migrations] <up|down|status|version|create NAME>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command := args[0]; command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("failed to run up migrations: %w", err)
		}
		fmt.Println("Migrations applied")

	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		fmt.Println("Migration rolled back")

	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}

	case "version":
		if err := goose.Version(db, dir); err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}

	case "create":
		if len(args) < 2 {
			return fmt.Errorf("create requires a migration name")
		}
		if err := goose.Create(db, dir, args[1], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		fmt.Printf("Migration created: %s\n", args[1])

	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	return nil
}
