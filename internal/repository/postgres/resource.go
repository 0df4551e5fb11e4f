package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
)

// ResourceRepository implements resource.Repository
type ResourceRepository struct {
	db *DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// ReplaceResources deletes a provider's resources and inserts the given set.
// A resource ID listed twice violates the unique key and rolls the whole
// replacement back.
func (r *ResourceRepository) ReplaceResources(ctx context.Context, userID int64, id provider.ID, resources []resource.Resource) error {
	defer observe("replace", "resources", time.Now())

	syncedAt := time.Now().Unix()
	return replaceRows(ctx, r.db, "resources", userID, id, len(resources), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, r.db.Rebind(`
			INSERT INTO resources (id, user_id, provider, resource_id, name, type, region, status, utilization, cost, tags, synced_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, res := range resources {
			tags, err := json.Marshal(res.Tags)
			if err != nil {
				return err
			}
			var util interface{}
			if res.Utilization != nil {
				util = *res.Utilization
			}
			_, err = stmt.ExecContext(ctx,
				uuid.NewString(), userID, string(id), res.ID, res.Name, res.Type,
				res.Region, res.Status, util, res.Cost, string(tags), syncedAt,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListResources returns all of a user's resources
func (r *ResourceRepository) ListResources(ctx context.Context, userID int64) ([]resource.Resource, error) {
	defer observe("list", "resources", time.Now())

	query := `
		SELECT provider, resource_id, name, type, region, status, utilization, cost, tags
		FROM resources
		WHERE user_id = ?
		ORDER BY provider, resource_id
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list resources", err)
	}
	defer rows.Close()

	resources := []resource.Resource{}
	for rows.Next() {
		var (
			res  resource.Resource
			p    string
			util sql.NullFloat64
			tags string
		)
		if err := rows.Scan(&p, &res.ID, &res.Name, &res.Type, &res.Region, &res.Status, &util, &res.Cost, &tags); err != nil {
			return nil, errors.DatabaseError("Failed to scan resource", err)
		}
		res.Provider = provider.ID(p)
		if util.Valid {
			v := util.Float64
			res.Utilization = &v
		}
		if tags != "" && tags != "null" {
			if err := json.Unmarshal([]byte(tags), &res.Tags); err != nil {
				return nil, errors.DatabaseError("Failed to decode resource tags", err)
			}
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate resources", err)
	}

	return resources, nil
}

// DeleteByProvider deletes all resources for a provider
func (r *ResourceRepository) DeleteByProvider(ctx context.Context, userID int64, id provider.ID) error {
	defer observe("delete", "resources", time.Now())

	query := `DELETE FROM resources WHERE user_id = ? AND provider = ?`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), userID, string(id)); err != nil {
		return errors.DatabaseError("Failed to delete resources", err)
	}
	return nil
}
