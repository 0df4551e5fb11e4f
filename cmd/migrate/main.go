package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pratik-mahalle/spendlens/internal/config"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/repository/postgres"
	"github.com/pratik-mahalle/spendlens/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     "console",
		OutputPath: "stderr",
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	applied, err := postgres.RunMigrations(context.Background(), db, migrations.GetFS(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed after %d applied: %v\n", applied, err)
		db.Close()
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Database is up to date")
		return
	}
	fmt.Printf("Applied %d migration(s)\n", applied)
}
