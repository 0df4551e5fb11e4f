package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/metrics"
)

// Sealer encrypts credentials before they reach the database.
type Sealer interface {
	Seal(plaintext []byte) (string, error)
	Open(sealed string) ([]byte, error)
}

// ProviderRepository implements provider.Repository. Credentials are stored
// as one sealed JSON document per account.
type ProviderRepository struct {
	db     *DB
	sealer Sealer
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *DB, sealer Sealer) *ProviderRepository {
	return &ProviderRepository{db: db, sealer: sealer}
}

const providerColumns = `id, user_id, provider, is_connected, credentials, last_synced, created_at, updated_at`

// Upsert creates or updates a provider account
func (r *ProviderRepository) Upsert(ctx context.Context, a *provider.Account) error {
	defer observe("upsert", "provider_accounts", time.Now())

	plain, err := json.Marshal(a.Credentials)
	if err != nil {
		return errors.Internal("Failed to encode credentials", err)
	}
	sealed, err := r.sealer.Seal(plain)
	if err != nil {
		return errors.Internal("Failed to seal credentials", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	query := `
		INSERT INTO provider_accounts (` + providerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			is_connected = excluded.is_connected,
			credentials = excluded.credentials,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`

	var createdAt int64
	err = r.db.QueryRowContext(ctx, r.db.Rebind(query),
		a.ID, a.UserID, string(a.Provider), a.IsConnected, sealed,
		unixOrNil(a.LastSynced), a.CreatedAt.Unix(), a.UpdatedAt.Unix(),
	).Scan(&a.ID, &createdAt)
	if err != nil {
		return errors.DatabaseError("Failed to upsert provider", err)
	}
	a.CreatedAt = time.Unix(createdAt, 0).UTC()

	return nil
}

// Get retrieves a provider account by provider
func (r *ProviderRepository) Get(ctx context.Context, userID int64, id provider.ID) (*provider.Account, error) {
	defer observe("get", "provider_accounts", time.Now())

	query := `SELECT ` + providerColumns + ` FROM provider_accounts WHERE user_id = ? AND provider = ?`

	a, err := r.scan(r.db.QueryRowContext(ctx, r.db.Rebind(query), userID, string(id)))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("Provider")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List retrieves all provider accounts for a user
func (r *ProviderRepository) List(ctx context.Context, userID int64) ([]*provider.Account, error) {
	defer observe("list", "provider_accounts", time.Now())

	query := `SELECT ` + providerColumns + ` FROM provider_accounts WHERE user_id = ? ORDER BY provider`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list providers", err)
	}
	defer rows.Close()

	accounts := []*provider.Account{}
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate providers", err)
	}

	return accounts, nil
}

// ListUsers returns every user with at least one connected account
func (r *ProviderRepository) ListUsers(ctx context.Context) ([]int64, error) {
	defer observe("list_users", "provider_accounts", time.Now())

	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM provider_accounts WHERE is_connected = TRUE ORDER BY user_id`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate users", err)
	}
	return users, nil
}

// Delete deletes a provider account
func (r *ProviderRepository) Delete(ctx context.Context, userID int64, id provider.ID) error {
	defer observe("delete", "provider_accounts", time.Now())

	query := `DELETE FROM provider_accounts WHERE user_id = ? AND provider = ?`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), userID, string(id))
	if err != nil {
		return errors.DatabaseError("Failed to delete provider", err)
	}
	return requireRow(result, "Provider")
}

// UpdateSyncStatus records the time of the last successful sync
func (r *ProviderRepository) UpdateSyncStatus(ctx context.Context, userID int64, id provider.ID, lastSynced time.Time) error {
	defer observe("update", "provider_accounts", time.Now())

	query := `UPDATE provider_accounts SET last_synced = ?, updated_at = ? WHERE user_id = ? AND provider = ?`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), lastSynced.Unix(), time.Now().Unix(), userID, string(id))
	if err != nil {
		return errors.DatabaseError("Failed to update sync status", err)
	}
	return requireRow(result, "Provider")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ProviderRepository) scan(row rowScanner) (*provider.Account, error) {
	var (
		a          provider.Account
		providerID string
		sealed     string
		lastSynced sql.NullInt64
		createdAt  int64
		updatedAt  int64
	)
	err := row.Scan(&a.ID, &a.UserID, &providerID, &a.IsConnected, &sealed, &lastSynced, &createdAt, &updatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to scan provider", err)
	}

	plain, err := r.sealer.Open(sealed)
	if err != nil {
		return nil, errors.Internal("Failed to open stored credentials", err)
	}
	if err := json.Unmarshal(plain, &a.Credentials); err != nil {
		return nil, errors.Internal("Failed to decode stored credentials", err)
	}

	a.Provider = provider.ID(providerID)
	a.LastSynced = fromUnix(lastSynced)
	a.CreatedAt = time.Unix(createdAt, 0).UTC()
	a.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &a, nil
}

func requireRow(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound(resource)
	}
	return nil
}

func observe(operation, table string, start time.Time) {
	metrics.RecordDBQuery(operation, table, time.Since(start))
}
