package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/repository"
)

// InventoryStore implements repository.Inventory. Entry order is
// significant, so updates rewrite the entry rows and loads read them back in
// insertion order.
type InventoryStore struct {
	db *pgxpool.Pool
}

// NewInventoryStore creates an inventory store backed by the pool.
func NewInventoryStore(db *pgxpool.Pool) *InventoryStore {
	return &InventoryStore{db: db}
}

func (s *InventoryStore) Create(ctx context.Context, inv *domain.Inventory) (*domain.Inventory, error) {
	var stored *domain.Inventory
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		stored, err = createInventoryTx(ctx, tx, inv)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *InventoryStore) Load(ctx context.Context, id int64) (*domain.Inventory, error) {
	var loaded *domain.Inventory
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		loaded, err = loadInventoryTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func (s *InventoryStore) Update(ctx context.Context, inv *domain.Inventory) (*domain.Inventory, error) {
	var updated *domain.Inventory
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		updated, err = updateInventoryTx(ctx, tx, inv)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *InventoryStore) Save(ctx context.Context, inv *domain.Inventory) (*domain.Inventory, error) {
	if inv.ID == 0 {
		return s.Create(ctx, inv)
	}
	return s.Update(ctx, inv)
}

func (s *InventoryStore) Destroy(ctx context.Context, id int64) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		return destroyInventoryTx(ctx, tx, id)
	})
}

// Search lists inventories by ID. Inventories carry no searchable text, so
// the query is ignored and every row matches.
func (s *InventoryStore) Search(ctx context.Context, query string, page, perPage int64) ([]*domain.Inventory, int64, error) {
	page, perPage = repository.ClampPage(page, perPage)
	limit, offset := searchPage(page, perPage)

	var (
		inventories []*domain.Inventory
		total       int64
	)
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM inventories`).Scan(&total); err != nil {
			return fmt.Errorf("failed to count inventories: %w", translateError(err))
		}

		ids, err := collectIDsQuery(ctx, tx,
			`SELECT id FROM inventories ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		for _, id := range ids {
			inv, err := loadInventoryTx(ctx, tx, id)
			if err != nil {
				return err
			}
			inventories = append(inventories, inv)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return inventories, total, nil
}

func (s *InventoryStore) LoadByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Inventory, error) {
	kind, ownerID, ok := owner.Kind()
	if !ok {
		return nil, domain.ErrOwnerNotSet
	}

	var inventories []*domain.Inventory
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`
			SELECT inventory_id FROM inventory_owners
			WHERE %s = $1
			ORDER BY inventory_id`, ownerColumn(kind))
		ids, err := collectIDsQuery(ctx, tx, query, ownerID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			inv, err := loadInventoryTx(ctx, tx, id)
			if err != nil {
				return err
			}
			inventories = append(inventories, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inventories, nil
}

func (s *InventoryStore) SavePair(ctx context.Context, a, b *domain.Inventory) (*domain.Inventory, *domain.Inventory, error) {
	var savedA, savedB *domain.Inventory
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		savedA, err = saveInventoryTx(ctx, tx, a)
		if err != nil {
			return err
		}
		savedB, err = saveInventoryTx(ctx, tx, b)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return savedA, savedB, nil
}

// ---- Transaction-scoped helpers ----

func saveInventoryTx(ctx context.Context, tx pgx.Tx, inv *domain.Inventory) (*domain.Inventory, error) {
	if inv.ID == 0 {
		return createInventoryTx(ctx, tx, inv)
	}
	return updateInventoryTx(ctx, tx, inv)
}

func createInventoryTx(ctx context.Context, tx pgx.Tx, inv *domain.Inventory) (*domain.Inventory, error) {
	if err := inv.Owner.Validate(); err != nil {
		return nil, err
	}

	stored := inv.Clone()
	err := tx.QueryRow(ctx, `
		INSERT INTO inventories (max_entries, max_volume, last_calculated_volume)
		VALUES ($1, $2, $3)
		RETURNING id`,
		inv.MaxEntries, inv.MaxVolume, inv.LastCalculatedVolume).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert inventory: %w", translateError(err))
	}

	if err := writeInventoryOwnerTx(ctx, tx, stored.ID, stored.Owner); err != nil {
		return nil, err
	}
	if err := writeInventoryEntriesTx(ctx, tx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func updateInventoryTx(ctx context.Context, tx pgx.Tx, inv *domain.Inventory) (*domain.Inventory, error) {
	if err := inv.Owner.Validate(); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE inventories
		SET max_entries = $2, max_volume = $3, last_calculated_volume = $4
		WHERE id = $1`,
		inv.ID, inv.MaxEntries, inv.MaxVolume, inv.LastCalculatedVolume)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory %d: %w", inv.ID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrRecordNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM inventory_owners WHERE inventory_id = $1`, inv.ID); err != nil {
		return nil, fmt.Errorf("failed to clear inventory owner: %w", translateError(err))
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM inventory_entries WHERE inventory_id = $1`, inv.ID); err != nil {
		return nil, fmt.Errorf("failed to clear inventory entries: %w", translateError(err))
	}

	stored := inv.Clone()
	if err := writeInventoryOwnerTx(ctx, tx, stored.ID, stored.Owner); err != nil {
		return nil, err
	}
	if err := writeInventoryEntriesTx(ctx, tx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func destroyInventoryTx(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory %d: %w", id, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// deleteInventoriesByOwnerTx removes every inventory an owner holds, for
// cascading entity deletion.
func deleteInventoriesByOwnerTx(ctx context.Context, tx pgx.Tx, owner domain.Owner) error {
	kind, ownerID, ok := owner.Kind()
	if !ok {
		return domain.ErrOwnerNotSet
	}
	query := fmt.Sprintf(`
		DELETE FROM inventories
		WHERE id IN (SELECT inventory_id FROM inventory_owners WHERE %s = $1)`,
		ownerColumn(kind))
	if _, err := tx.Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("failed to delete inventories by owner: %w", translateError(err))
	}
	return nil
}

func writeInventoryOwnerTx(ctx context.Context, tx pgx.Tx, inventoryID int64, owner domain.Owner) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO inventory_owners (inventory_id, player_id, mobile_id, item_id, asset_id)
		VALUES ($1, $2, $3, $4, $5)`,
		inventoryID,
		ownerField(&owner, domain.OwnerKindPlayer),
		ownerField(&owner, domain.OwnerKindMobile),
		ownerField(&owner, domain.OwnerKindItem),
		ownerField(&owner, domain.OwnerKindAsset))
	if err != nil {
		return fmt.Errorf("failed to insert inventory owner: %w", translateError(err))
	}
	return nil
}

// writeInventoryEntriesTx inserts entries one by one so their row IDs
// preserve slice order, then reads the assigned IDs back into the entries.
func writeInventoryEntriesTx(ctx context.Context, tx pgx.Tx, inv *domain.Inventory) error {
	for i := range inv.Entries {
		entry := &inv.Entries[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO inventory_entries (inventory_id, item_id, quantity, is_max_stacked)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			inv.ID, entry.ItemID, entry.Quantity, entry.IsMaxStacked).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("failed to insert inventory entry: %w", translateError(err))
		}
	}
	return nil
}

func loadInventoryTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := tx.QueryRow(ctx, `
		SELECT id, max_entries, max_volume, last_calculated_volume
		FROM inventories WHERE id = $1`,
		id).Scan(&inv.ID, &inv.MaxEntries, &inv.MaxVolume, &inv.LastCalculatedVolume)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory %d: %w", id, translateError(err))
	}

	var playerID, mobileID, itemID, assetID *int64
	err = tx.QueryRow(ctx, `
		SELECT player_id, mobile_id, item_id, asset_id
		FROM inventory_owners
		WHERE inventory_id = $1
		ORDER BY id LIMIT 1`,
		id).Scan(&playerID, &mobileID, &itemID, &assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory owner: %w", translateError(err))
	}
	if owner := ownerFromColumns(playerID, mobileID, itemID, assetID); owner != nil {
		inv.Owner = *owner
	}

	rows, err := tx.Query(ctx, `
		SELECT id, item_id, quantity, is_max_stacked
		FROM inventory_entries
		WHERE inventory_id = $1
		ORDER BY id`,
		id)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory entries: %w", translateError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.InventoryEntry
		if err := rows.Scan(&entry.ID, &entry.ItemID, &entry.Quantity, &entry.IsMaxStacked); err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		inv.Entries = append(inv.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory entries: %w", err)
	}
	return &inv, nil
}
