package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/migrations"
)

func TestRunMigrations(t *testing.T) {
	raw, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	raw.SetMaxOpenConns(1)
	defer raw.Close()
	db := Wrap(raw, "sqlite")
	ctx := context.Background()

	applied, err := RunMigrations(ctx, db, migrations.GetFS(), logger.Nop())
	if err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	if applied == 0 {
		t.Fatal("RunMigrations() applied nothing on a fresh database")
	}

	again, err := RunMigrations(ctx, db, migrations.GetFS(), logger.Nop())
	if err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}
	if again != 0 {
		t.Errorf("second RunMigrations() applied %d, want 0", again)
	}

	for _, table := range []string{"provider_accounts", "cost_records", "resources", "budgets"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Errorf("table %s is missing: %v", table, err)
		}
	}
}
