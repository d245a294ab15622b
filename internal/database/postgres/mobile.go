package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/repository"
)

// MobileStore implements repository.Mobile.
type MobileStore struct {
	db *pgxpool.Pool
}

// NewMobileStore creates a mobile store backed by the pool.
func NewMobileStore(db *pgxpool.Pool) *MobileStore {
	return &MobileStore{db: db}
}

func (s *MobileStore) Create(ctx context.Context, mobile *domain.Mobile) (*domain.Mobile, error) {
	var created *domain.Mobile
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		created, err = createMobileTx(ctx, tx, mobile)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *MobileStore) Load(ctx context.Context, id int64) (*domain.Mobile, error) {
	var loaded *domain.Mobile
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		loaded, err = loadMobileTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func (s *MobileStore) Update(ctx context.Context, mobile *domain.Mobile) (*domain.Mobile, error) {
	var updated *domain.Mobile
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		updated, err = updateMobileTx(ctx, tx, mobile)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *MobileStore) Save(ctx context.Context, mobile *domain.Mobile) (*domain.Mobile, error) {
	if mobile.ID == 0 {
		return s.Create(ctx, mobile)
	}
	return s.Update(ctx, mobile)
}

func (s *MobileStore) Destroy(ctx context.Context, id int64) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		return destroyMobileTx(ctx, tx, id)
	})
}

func (s *MobileStore) Search(ctx context.Context, query string, page, perPage int64) ([]*domain.Mobile, int64, error) {
	page, perPage = repository.ClampPage(page, perPage)
	limit, offset := searchPage(page, perPage)

	var (
		mobiles []*domain.Mobile
		total   int64
	)
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM mobiles WHERE what_we_call_you ILIKE $1`,
			likePattern(query)).Scan(&total)
		if err != nil {
			return fmt.Errorf("failed to count mobiles: %w", translateError(err))
		}

		rows, err := tx.Query(ctx, `
			SELECT id FROM mobiles
			WHERE what_we_call_you ILIKE $1
			ORDER BY id
			LIMIT $2 OFFSET $3`,
			likePattern(query), limit, offset)
		if err != nil {
			return fmt.Errorf("failed to search mobiles: %w", translateError(err))
		}
		ids, err := collectIDs(rows)
		if err != nil {
			return err
		}

		for _, id := range ids {
			mobile, err := loadMobileTx(ctx, tx, id)
			if err != nil {
				return err
			}
			mobiles = append(mobiles, mobile)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return mobiles, total, nil
}

func (s *MobileStore) LoadByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Mobile, error) {
	kind, ownerID, ok := owner.Kind()
	if !ok {
		return nil, domain.ErrOwnerNotSet
	}

	var mobiles []*domain.Mobile
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`SELECT id FROM mobiles WHERE owner_%s = $1 ORDER BY id`, ownerColumn(kind))
		rows, err := tx.Query(ctx, query, ownerID)
		if err != nil {
			return fmt.Errorf("failed to query mobiles by owner: %w", translateError(err))
		}
		ids, err := collectIDs(rows)
		if err != nil {
			return err
		}
		for _, id := range ids {
			mobile, err := loadMobileTx(ctx, tx, id)
			if err != nil {
				return err
			}
			mobiles = append(mobiles, mobile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mobiles, nil
}

// ---- Transaction-scoped helpers shared with the player store ----

func createMobileTx(ctx context.Context, tx pgx.Tx, mobile *domain.Mobile) (*domain.Mobile, error) {
	if err := mobile.ValidateOwner(); err != nil {
		return nil, err
	}

	stored := mobile.Clone()
	err := tx.QueryRow(ctx, `
		INSERT INTO mobiles (mobile_type, owner_player_id, owner_mobile_id,
		                     owner_item_id, owner_asset_id, what_we_call_you)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		mobile.Type.String(), ownerField(mobile.Owner, domain.OwnerKindPlayer),
		ownerField(mobile.Owner, domain.OwnerKindMobile),
		ownerField(mobile.Owner, domain.OwnerKindItem),
		ownerField(mobile.Owner, domain.OwnerKindAsset),
		mobile.WhatWeCallYou,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert mobile: %w", translateError(err))
	}

	if err := replaceAttributes(ctx, tx, ownerColMobile, stored.ID, mobile.Attributes); err != nil {
		return nil, err
	}
	return stored, nil
}

func loadMobileTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Mobile, error) {
	var (
		mobile    domain.Mobile
		typeLabel string
		playerID  *int64
		mobileID  *int64
		itemID    *int64
		assetID   *int64
	)
	err := tx.QueryRow(ctx, `
		SELECT id, mobile_type, owner_player_id, owner_mobile_id,
		       owner_item_id, owner_asset_id, what_we_call_you
		FROM mobiles WHERE id = $1`,
		id).Scan(&mobile.ID, &typeLabel, &playerID, &mobileID, &itemID, &assetID, &mobile.WhatWeCallYou)
	if err != nil {
		return nil, fmt.Errorf("failed to load mobile %d: %w", id, translateError(err))
	}

	mobileType, ok := domain.ParseMobileType(typeLabel)
	if !ok {
		return nil, fmt.Errorf("%w: unknown mobile type %q", domain.ErrInvalidData, typeLabel)
	}
	mobile.Type = mobileType
	mobile.Owner = ownerFromColumns(playerID, mobileID, itemID, assetID)

	mobile.Attributes, err = loadAttributes(ctx, tx, ownerColMobile, mobile.ID)
	if err != nil {
		return nil, err
	}
	return &mobile, nil
}

func updateMobileTx(ctx context.Context, tx pgx.Tx, mobile *domain.Mobile) (*domain.Mobile, error) {
	if err := mobile.ValidateOwner(); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE mobiles
		SET mobile_type = $2, owner_player_id = $3, owner_mobile_id = $4,
		    owner_item_id = $5, owner_asset_id = $6, what_we_call_you = $7
		WHERE id = $1`,
		mobile.ID, mobile.Type.String(),
		ownerField(mobile.Owner, domain.OwnerKindPlayer),
		ownerField(mobile.Owner, domain.OwnerKindMobile),
		ownerField(mobile.Owner, domain.OwnerKindItem),
		ownerField(mobile.Owner, domain.OwnerKindAsset),
		mobile.WhatWeCallYou)
	if err != nil {
		return nil, fmt.Errorf("failed to update mobile %d: %w", mobile.ID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrRecordNotFound
	}

	if err := replaceAttributes(ctx, tx, ownerColMobile, mobile.ID, mobile.Attributes); err != nil {
		return nil, err
	}
	return mobile.Clone(), nil
}

func destroyMobileTx(ctx context.Context, tx pgx.Tx, id int64) error {
	if err := replaceAttributes(ctx, tx, ownerColMobile, id, nil); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM mobiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mobile %d: %w", id, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// ---- Shared row helpers ----

// ownerField extracts the ID for one owner column, nil when the owner is a
// different kind.
func ownerField(owner *domain.Owner, kind domain.OwnerKind) *int64 {
	if owner == nil {
		return nil
	}
	ownerKind, id, ok := owner.Kind()
	if !ok || ownerKind != kind {
		return nil
	}
	return &id
}

// ownerFromColumns rebuilds a tagged owner from the four nullable columns.
func ownerFromColumns(playerID, mobileID, itemID, assetID *int64) *domain.Owner {
	switch {
	case playerID != nil:
		o := domain.PlayerOwner(*playerID)
		return &o
	case mobileID != nil:
		o := domain.MobileOwner(*mobileID)
		return &o
	case itemID != nil:
		o := domain.ItemOwner(*itemID)
		return &o
	case assetID != nil:
		o := domain.AssetOwner(*assetID)
		return &o
	default:
		return nil
	}
}

// collectIDs drains an id-only result set.
func collectIDs(rows pgx.Rows) ([]int64, error) {
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return ids, nil
}
