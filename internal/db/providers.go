package db

import (
	"context"
	"fmt"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// ListProviders returns the provider lookup table ordered by priority.
func (db *Database) ListProviders(ctx context.Context) ([]models.Provider, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	query := `
        SELECT id, name, COALESCE(code, ''), kind, priority, created_at, updated_at
        FROM providers
        ORDER BY priority, name
    `
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	var providers []models.Provider
	for rows.Next() {
		var p models.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Kind, &p.Priority, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating providers: %w", err)
	}
	return providers, nil
}

// GetProviderByName resolves one provider row, matching case-insensitively.
func (db *Database) GetProviderByName(ctx context.Context, name string) (*models.Provider, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	query := `
        SELECT id, name, COALESCE(code, ''), kind, priority, created_at, updated_at
        FROM providers
        WHERE LOWER(name) = LOWER($1)
    `
	var p models.Provider
	err := db.Pool.QueryRow(ctx, query, name).Scan(&p.ID, &p.Name, &p.Code, &p.Kind, &p.Priority, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider %q: %w", name, err)
	}
	return &p, nil
}

// ProviderCodes returns the provider id to source-letter mapping for
// gift-card providers. Offers never consult this mapping.
func (db *Database) ProviderCodes(ctx context.Context) (map[int64]string, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	query := `SELECT id, code FROM providers WHERE kind = 'giftcard' AND code IS NOT NULL`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider codes: %w", err)
	}
	defer rows.Close()

	codes := make(map[int64]string)
	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("failed to scan provider code: %w", err)
		}
		codes[id] = code
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provider codes: %w", err)
	}
	return codes, nil
}

// CreateProvider inserts a provider row and returns its id.
func (db *Database) CreateProvider(ctx context.Context, p models.Provider) (int64, error) {
	if err := db.ready(); err != nil {
		return 0, err
	}
	var id int64
	err := db.Pool.QueryRow(ctx, `
        INSERT INTO providers (name, code, kind, priority)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, p.Name, p.Code, p.Kind, p.Priority).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert provider: %w", err)
	}
	return id, nil
}

// UpdateProvider updates a provider row.
func (db *Database) UpdateProvider(ctx context.Context, id int64, p models.Provider) error {
	if err := db.ready(); err != nil {
		return err
	}
	tag, err := db.Pool.Exec(ctx, `
        UPDATE providers
        SET name = $2, code = $3, kind = $4, priority = $5, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
    `, id, p.Name, p.Code, p.Kind, p.Priority)
	if err != nil {
		return fmt.Errorf("failed to update provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("provider with ID %d not found", id)
	}
	return nil
}

// DeleteProvider removes a provider row.
func (db *Database) DeleteProvider(ctx context.Context, id int64) error {
	if err := db.ready(); err != nil {
		return err
	}
	tag, err := db.Pool.Exec(ctx, "DELETE FROM providers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("provider with ID %d not found", id)
	}
	return nil
}
