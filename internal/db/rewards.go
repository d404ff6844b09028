package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// itemColumns is the select list shared by every redemption item query.
// Nullable text columns are coalesced so rows scan into plain strings.
const itemColumns = `
        i.item_id, i.reward_id, COALESCE(i.title, ''), COALESCE(i.brand_name, ''),
        i.value, i.poynts, i.inventory_remaining,
        i.reward_status, COALESCE(i.reward_availability, ''), COALESCE(i.language, ''),
        COALESCE(i.cpid, ''), COALESCE(i.utid, ''), COALESCE(i.image, ''),
        i.provider_id, p.kind, i.priority, COALESCE(i.tags, '')`

// ListProviderItems returns the provider's redemption rows with a positive
// face value, the input to the enrichment join's membership set.
func (db *Database) ListProviderItems(ctx context.Context, providerID int64) ([]models.RedemptionItem, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	query := `
        SELECT ` + itemColumns + `, NULL::bigint AS registry_id
        FROM redemption_items i
        JOIN providers p ON p.id = i.provider_id
        WHERE i.provider_id = $1 AND i.value > 0
        ORDER BY i.priority, i.item_id
    `
	rows, err := db.Pool.Query(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListSiblingItems returns every denomination of the given parent rewards,
// regardless of issuing provider.
func (db *Database) ListSiblingItems(ctx context.Context, rewardIDs []int64) ([]models.RedemptionItem, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	query := `
        SELECT ` + itemColumns + `, NULL::bigint AS registry_id
        FROM redemption_items i
        JOIN providers p ON p.id = i.provider_id
        WHERE i.reward_id = ANY($1) AND i.value > 0
        ORDER BY i.priority, i.item_id
    `
	rows, err := db.Pool.Query(ctx, query, rewardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query sibling items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListRedemptionItems returns all non-deleted redemption rows. When
// tenantID is non-empty, each row carries the id of the tenant's enablement
// registry entry if one exists.
func (db *Database) ListRedemptionItems(ctx context.Context, tenantID string) ([]models.RedemptionItem, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	query := `
        SELECT ` + itemColumns + `, r.id AS registry_id
        FROM redemption_items i
        JOIN providers p ON p.id = i.provider_id
        LEFT JOIN reward_registry r
            ON r.redemption_id = i.item_id AND r.tenant_id = $1
        WHERE i.reward_status != 'deleted'
        ORDER BY i.priority, i.item_id
    `
	rows, err := db.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemption items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]models.RedemptionItem, error) {
	var items []models.RedemptionItem
	for rows.Next() {
		var item models.RedemptionItem
		err := rows.Scan(
			&item.ItemID,
			&item.RewardID,
			&item.Title,
			&item.BrandName,
			&item.Value,
			&item.Poynts,
			&item.InventoryRemaining,
			&item.RewardStatus,
			&item.RewardAvailability,
			&item.Language,
			&item.Cpid,
			&item.Utid,
			&item.Image,
			&item.ProviderID,
			&item.RewardType,
			&item.Priority,
			&item.Tags,
			&item.RegistryID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan redemption item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating redemption items: %w", err)
	}
	return items, nil
}

// EnableRewards inserts enablement registry rows for the tenant. The insert
// is an atomic upsert keyed on (tenant_id, redemption_id, redemption_type),
// so re-enabling an already-enabled item is a no-op rather than a duplicate.
// Returns how many rows were actually inserted.
func (db *Database) EnableRewards(ctx context.Context, tenantID string, entries []models.RegistryEntry) (int64, error) {
	if err := db.ready(); err != nil {
		return 0, err
	}
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for _, e := range entries {
		tag, err := tx.Exec(ctx, `
            INSERT INTO reward_registry (tenant_id, redemption_id, redemption_type)
            VALUES ($1, $2, $3)
            ON CONFLICT (tenant_id, redemption_id, redemption_type) DO NOTHING
        `, tenantID, e.RedemptionID, e.RedemptionType)
		if err != nil {
			return 0, fmt.Errorf("failed to insert registry row: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

// DisableRewards removes the tenant's registry rows for the given entries.
// Returns how many rows were deleted.
func (db *Database) DisableRewards(ctx context.Context, tenantID string, entries []models.RegistryEntry) (int64, error) {
	if err := db.ready(); err != nil {
		return 0, err
	}
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var deleted int64
	for _, e := range entries {
		tag, err := tx.Exec(ctx, `
            DELETE FROM reward_registry
            WHERE tenant_id = $1 AND redemption_id = $2 AND redemption_type = $3
        `, tenantID, e.RedemptionID, e.RedemptionType)
		if err != nil {
			return 0, fmt.Errorf("failed to delete registry row: %w", err)
		}
		deleted += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deleted, nil
}

// ReplaceRewardImage replaces the stored image for a reward (deletes
// existing, inserts the new one).
func (db *Database) ReplaceRewardImage(ctx context.Context, rewardID int64, imageURL string) error {
	if err := db.ready(); err != nil {
		return err
	}
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "DELETE FROM reward_images WHERE reward_id = $1", rewardID)
	if err != nil {
		return fmt.Errorf("failed to delete existing images: %w", err)
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO reward_images (reward_id, image_url, display_order) VALUES ($1, $2, 1)",
		rewardID, imageURL)
	if err != nil {
		return fmt.Errorf("failed to insert new image: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
