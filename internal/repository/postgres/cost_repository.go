package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
)

// CostRepository implements cost.Repository
type CostRepository struct {
	db *DB
}

// NewCostRepository creates a new cost repository
func NewCostRepository(db *DB) *CostRepository {
	return &CostRepository{db: db}
}

// ReplaceCosts replaces the cost records of one provider
func (r *CostRepository) ReplaceCosts(ctx context.Context, userID int64, id provider.ID, records []cost.Record) error {
	defer observe("replace", "cost_records", time.Now())

	return replaceRows(ctx, r.db, "cost_records", userID, id, len(records), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, r.db.Rebind(`
			INSERT INTO cost_records (user_id, provider, usage_date, service, region, amount, currency)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, rec := range records {
			_, err := stmt.ExecContext(ctx,
				userID, string(id), rec.Date.UTC().Format(cost.DateLayout),
				rec.Service, rec.Region, rec.Amount, rec.Currency,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListCosts returns a user's cost records keyed by provider
func (r *CostRepository) ListCosts(ctx context.Context, userID int64) (map[provider.ID][]cost.Record, error) {
	defer observe("list", "cost_records", time.Now())

	query := `
		SELECT provider, usage_date, service, region, amount, currency
		FROM cost_records
		WHERE user_id = ?
		ORDER BY provider, usage_date, service, region
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list costs", err)
	}
	defer rows.Close()

	out := make(map[provider.ID][]cost.Record)
	for rows.Next() {
		var (
			p    string
			date string
			rec  cost.Record
		)
		if err := rows.Scan(&p, &date, &rec.Service, &rec.Region, &rec.Amount, &rec.Currency); err != nil {
			return nil, errors.DatabaseError("Failed to scan cost record", err)
		}
		rec.Date, err = time.Parse(cost.DateLayout, date)
		if err != nil {
			return nil, errors.DatabaseError("Failed to parse cost date", err)
		}
		out[provider.ID(p)] = append(out[provider.ID(p)], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate costs", err)
	}

	return out, nil
}

// ReplaceBudgets replaces the budgets of one provider
func (r *CostRepository) ReplaceBudgets(ctx context.Context, userID int64, id provider.ID, budgets []cost.Budget) error {
	defer observe("replace", "budgets", time.Now())

	return replaceRows(ctx, r.db, "budgets", userID, id, len(budgets), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, r.db.Rebind(`
			INSERT INTO budgets (user_id, provider, budget_id, name, amount, spent, period)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, b := range budgets {
			if _, err := stmt.ExecContext(ctx, userID, string(id), b.ID, b.Name, b.Amount, b.Spent, b.Period); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListBudgets returns all of a user's budgets
func (r *CostRepository) ListBudgets(ctx context.Context, userID int64) ([]cost.Budget, error) {
	defer observe("list", "budgets", time.Now())

	query := `
		SELECT provider, budget_id, name, amount, spent, period
		FROM budgets
		WHERE user_id = ?
		ORDER BY provider, budget_id
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list budgets", err)
	}
	defer rows.Close()

	budgets := []cost.Budget{}
	for rows.Next() {
		var (
			b cost.Budget
			p string
		)
		if err := rows.Scan(&p, &b.ID, &b.Name, &b.Amount, &b.Spent, &b.Period); err != nil {
			return nil, errors.DatabaseError("Failed to scan budget", err)
		}
		b.Provider = provider.ID(p)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate budgets", err)
	}

	return budgets, nil
}

// DeleteByProvider removes cost records and budgets for a provider
func (r *CostRepository) DeleteByProvider(ctx context.Context, userID int64, id provider.ID) error {
	defer observe("delete", "cost_records", time.Now())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"cost_records", "budgets"} {
		query := r.db.Rebind(`DELETE FROM ` + table + ` WHERE user_id = ? AND provider = ?`)
		if _, err := tx.ExecContext(ctx, query, userID, string(id)); err != nil {
			return errors.DatabaseError("Failed to delete "+table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit delete", err)
	}
	return nil
}

// replaceRows deletes every row of table owned by (userID, id) and runs insert
// in the same transaction.
func replaceRows(ctx context.Context, db *DB, table string, userID int64, id provider.ID, n int, insert func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	query := db.Rebind(`DELETE FROM ` + table + ` WHERE user_id = ? AND provider = ?`)
	if _, err := tx.ExecContext(ctx, query, userID, string(id)); err != nil {
		return errors.DatabaseError("Failed to clear "+table, err)
	}
	if n > 0 {
		if err := insert(tx); err != nil {
			return errors.DatabaseError("Failed to insert into "+table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit "+table, err)
	}
	return nil
}
