package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/repository"
)

// ItemStore implements repository.Item. Blueprints are written before the
// items that reference them and removed when the last referencing item goes
// away.
type ItemStore struct {
	db *pgxpool.Pool
}

// NewItemStore creates an item store backed by the pool.
func NewItemStore(db *pgxpool.Pool) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	stored := item.Clone()
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		blueprintID, err := saveBlueprintTx(ctx, tx, stored.Blueprint)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO items (internal_name, max_stack_size, item_type, blueprint_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			stored.InternalName, stored.MaxStackSize, stored.Type.String(), blueprintID,
		).Scan(&stored.ID)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", translateError(err))
		}

		return replaceAttributes(ctx, tx, ownerColItem, stored.ID, stored.Attributes)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *ItemStore) Load(ctx context.Context, id int64) (*domain.Item, error) {
	var loaded *domain.Item
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		loaded, err = loadItemTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func (s *ItemStore) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	updated := item.Clone()
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		blueprintID, err := saveBlueprintTx(ctx, tx, updated.Blueprint)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE items
			SET internal_name = $2, max_stack_size = $3, item_type = $4, blueprint_id = $5
			WHERE id = $1`,
			updated.ID, updated.InternalName, updated.MaxStackSize,
			updated.Type.String(), blueprintID)
		if err != nil {
			return fmt.Errorf("failed to update item %d: %w", updated.ID, translateError(err))
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return replaceAttributes(ctx, tx, ownerColItem, updated.ID, updated.Attributes)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ItemStore) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item.ID == 0 {
		return s.Create(ctx, item)
	}
	return s.Update(ctx, item)
}

func (s *ItemStore) Destroy(ctx context.Context, id int64) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		var blueprintID *int64
		err := tx.QueryRow(ctx, `SELECT blueprint_id FROM items WHERE id = $1`, id).Scan(&blueprintID)
		if err != nil {
			return fmt.Errorf("failed to load item %d: %w", id, translateError(err))
		}

		if err := replaceAttributes(ctx, tx, ownerColItem, id, nil); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete item %d: %w", id, translateError(err))
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		if blueprintID != nil {
			_, err = tx.Exec(ctx, `
				DELETE FROM item_blueprints
				WHERE id = $1
				  AND NOT EXISTS (SELECT 1 FROM items WHERE blueprint_id = $1)`,
				*blueprintID)
			if err != nil {
				return fmt.Errorf("failed to delete orphaned blueprint: %w", translateError(err))
			}
		}
		return nil
	})
}

func (s *ItemStore) Search(ctx context.Context, query string, page, perPage int64) ([]*domain.Item, int64, error) {
	page, perPage = repository.ClampPage(page, perPage)
	limit, offset := searchPage(page, perPage)

	var (
		items []*domain.Item
		total int64
	)
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM items WHERE internal_name ILIKE $1`,
			likePattern(query)).Scan(&total)
		if err != nil {
			return fmt.Errorf("failed to count items: %w", translateError(err))
		}

		ids, err := collectIDsQuery(ctx, tx, `
			SELECT id FROM items
			WHERE internal_name ILIKE $1
			ORDER BY id
			LIMIT $2 OFFSET $3`,
			likePattern(query), limit, offset)
		if err != nil {
			return err
		}

		for _, id := range ids {
			item, err := loadItemTx(ctx, tx, id)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ItemStore) LoadByName(ctx context.Context, internalName string) (*domain.Item, error) {
	var loaded *domain.Item
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM items WHERE internal_name = $1 ORDER BY id LIMIT 1`,
			internalName).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to find item %q: %w", internalName, translateError(err))
		}
		loaded, err = loadItemTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func (s *ItemStore) LoadBlueprint(ctx context.Context, id int64) (*domain.ItemBlueprint, error) {
	var loaded *domain.ItemBlueprint
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		loaded, err = loadBlueprintTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func loadItemTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Item, error) {
	var (
		item        domain.Item
		typeLabel   string
		blueprintID *int64
	)
	err := tx.QueryRow(ctx, `
		SELECT id, internal_name, max_stack_size, item_type, blueprint_id
		FROM items WHERE id = $1`,
		id).Scan(&item.ID, &item.InternalName, &item.MaxStackSize, &typeLabel, &blueprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item %d: %w", id, translateError(err))
	}

	itemType, ok := domain.ParseItemType(typeLabel)
	if !ok {
		return nil, fmt.Errorf("%w: unknown item type %q", domain.ErrInvalidData, typeLabel)
	}
	item.Type = itemType

	if blueprintID != nil {
		item.Blueprint, err = loadBlueprintTx(ctx, tx, *blueprintID)
		if err != nil {
			return nil, err
		}
	}

	item.Attributes, err = loadAttributes(ctx, tx, ownerColItem, item.ID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func loadBlueprintTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.ItemBlueprint, error) {
	blueprint := domain.ItemBlueprint{ID: id}
	err := tx.QueryRow(ctx,
		`SELECT bake_time_ms FROM item_blueprints WHERE id = $1`,
		id).Scan(&blueprint.BakeTimeMS)
	if err != nil {
		return nil, fmt.Errorf("failed to load blueprint %d: %w", id, translateError(err))
	}

	rows, err := tx.Query(ctx, `
		SELECT id, component_item_id, ratio
		FROM item_blueprint_components
		WHERE item_blueprint_id = $1
		ORDER BY id`,
		id)
	if err != nil {
		return nil, fmt.Errorf("failed to query blueprint components: %w", translateError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var comp domain.ItemBlueprintComponent
		if err := rows.Scan(&comp.ID, &comp.ItemID, &comp.Ratio); err != nil {
			return nil, fmt.Errorf("failed to scan blueprint component: %w", err)
		}
		if blueprint.Components == nil {
			blueprint.Components = make(map[int64]domain.ItemBlueprintComponent)
		}
		blueprint.Components[comp.ItemID] = comp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blueprint components: %w", err)
	}
	return &blueprint, nil
}

// saveBlueprintTx inserts or rewrites a blueprint and returns its ID, nil
// when the item has none.
func saveBlueprintTx(ctx context.Context, tx pgx.Tx, blueprint *domain.ItemBlueprint) (*int64, error) {
	if blueprint == nil {
		return nil, nil
	}

	if blueprint.ID == 0 {
		err := tx.QueryRow(ctx,
			`INSERT INTO item_blueprints (bake_time_ms) VALUES ($1) RETURNING id`,
			blueprint.BakeTimeMS).Scan(&blueprint.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert blueprint: %w", translateError(err))
		}
	} else {
		tag, err := tx.Exec(ctx,
			`UPDATE item_blueprints SET bake_time_ms = $2 WHERE id = $1`,
			blueprint.ID, blueprint.BakeTimeMS)
		if err != nil {
			return nil, fmt.Errorf("failed to update blueprint %d: %w", blueprint.ID, translateError(err))
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.ErrRecordNotFound
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM item_blueprint_components WHERE item_blueprint_id = $1`,
			blueprint.ID); err != nil {
			return nil, fmt.Errorf("failed to clear blueprint components: %w", translateError(err))
		}
	}

	for _, comp := range blueprint.Components {
		if _, err := tx.Exec(ctx, `
			INSERT INTO item_blueprint_components (item_blueprint_id, component_item_id, ratio)
			VALUES ($1, $2, $3)`,
			blueprint.ID, comp.ItemID, comp.Ratio); err != nil {
			return nil, fmt.Errorf("failed to insert blueprint component: %w", translateError(err))
		}
	}
	return &blueprint.ID, nil
}
