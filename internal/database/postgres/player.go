package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/repository"
)

// PlayerStore implements repository.Player. A player row always travels with
// its companion mobile: Create inserts both in one transaction, Load joins
// the companion back in, and Destroy removes the player, its mobiles and
// their inventories together.
type PlayerStore struct {
	db *pgxpool.Pool
}

// NewPlayerStore creates a player store backed by the pool.
func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	stored := player.Clone()
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO players (full_name, what_we_call_you, security_token,
			                     over_13, year_of_birth, email)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			player.FullName, player.WhatWeCallYou, player.SecurityToken,
			player.Over13, player.YearOfBirth, player.Email,
		).Scan(&stored.ID)
		if err != nil {
			return fmt.Errorf("failed to insert player: %w", translateError(err))
		}

		companion := player.Mobile
		if companion == nil {
			companion = &domain.Mobile{
				Type:          domain.MobileTypePlayer,
				WhatWeCallYou: player.WhatWeCallYou,
			}
		} else {
			companion = companion.Clone()
		}
		owner := domain.PlayerOwner(stored.ID)
		companion.Owner = &owner

		storedMobile, err := createMobileTx(ctx, tx, companion)
		if err != nil {
			return fmt.Errorf("failed to create companion mobile: %w", err)
		}
		stored.Mobile = storedMobile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *PlayerStore) Load(ctx context.Context, id int64) (*domain.Player, error) {
	var loaded *domain.Player
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		loaded, err = loadPlayerTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func (s *PlayerStore) Update(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	updated := player.Clone()
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE players
			SET full_name = $2, what_we_call_you = $3, security_token = $4,
			    over_13 = $5, year_of_birth = $6, email = $7
			WHERE id = $1`,
			player.ID, player.FullName, player.WhatWeCallYou, player.SecurityToken,
			player.Over13, player.YearOfBirth, player.Email)
		if err != nil {
			return fmt.Errorf("failed to update player %d: %w", player.ID, translateError(err))
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		if player.Mobile != nil && player.Mobile.ID != 0 {
			if _, err := updateMobileTx(ctx, tx, player.Mobile); err != nil {
				return fmt.Errorf("failed to update companion mobile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PlayerStore) Save(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	if player.ID == 0 {
		return s.Create(ctx, player)
	}
	return s.Update(ctx, player)
}

func (s *PlayerStore) Destroy(ctx context.Context, id int64) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		mobileIDs, err := collectIDsQuery(ctx, tx,
			`SELECT id FROM mobiles WHERE owner_player_id = $1 ORDER BY id`, id)
		if err != nil {
			return err
		}
		for _, mobileID := range mobileIDs {
			if err := deleteInventoriesByOwnerTx(ctx, tx, domain.MobileOwner(mobileID)); err != nil {
				return err
			}
			if err := destroyMobileTx(ctx, tx, mobileID); err != nil {
				return err
			}
		}
		if err := deleteInventoriesByOwnerTx(ctx, tx, domain.PlayerOwner(id)); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete player %d: %w", id, translateError(err))
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}
		return nil
	})
}

func (s *PlayerStore) Search(ctx context.Context, query string, page, perPage int64) ([]*domain.Player, int64, error) {
	page, perPage = repository.ClampPage(page, perPage)
	limit, offset := searchPage(page, perPage)

	var (
		players []*domain.Player
		total   int64
	)
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM players
			WHERE full_name ILIKE $1 OR what_we_call_you ILIKE $1 OR email ILIKE $1`,
			likePattern(query)).Scan(&total)
		if err != nil {
			return fmt.Errorf("failed to count players: %w", translateError(err))
		}

		ids, err := collectIDsQuery(ctx, tx, `
			SELECT id FROM players
			WHERE full_name ILIKE $1 OR what_we_call_you ILIKE $1 OR email ILIKE $1
			ORDER BY id
			LIMIT $2 OFFSET $3`,
			likePattern(query), limit, offset)
		if err != nil {
			return err
		}

		for _, id := range ids {
			player, err := loadPlayerTx(ctx, tx, id)
			if err != nil {
				return err
			}
			players = append(players, player)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

func (s *PlayerStore) LoadByName(ctx context.Context, fullName string) (*domain.Player, error) {
	var loaded *domain.Player
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM players WHERE full_name = $1 ORDER BY id LIMIT 1`,
			fullName).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to find player %q: %w", fullName, translateError(err))
		}
		loaded, err = loadPlayerTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func loadPlayerTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Player, error) {
	var player domain.Player
	err := tx.QueryRow(ctx, `
		SELECT id, full_name, what_we_call_you, security_token,
		       over_13, year_of_birth, email
		FROM players WHERE id = $1`,
		id).Scan(&player.ID, &player.FullName, &player.WhatWeCallYou,
		&player.SecurityToken, &player.Over13, &player.YearOfBirth, &player.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load player %d: %w", id, translateError(err))
	}

	// Companion mobile: the oldest PLAYER-typed mobile owned by this player.
	var mobileID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM mobiles
		WHERE owner_player_id = $1 AND mobile_type = $2
		ORDER BY id LIMIT 1`,
		id, domain.MobileTypePlayer.String()).Scan(&mobileID)
	if err == nil {
		player.Mobile, err = loadMobileTx(ctx, tx, mobileID)
		if err != nil {
			return nil, err
		}
	} else if translated := translateError(err); !errors.Is(translated, domain.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find companion mobile: %w", translated)
	}

	return &player, nil
}

// collectIDsQuery runs an id-only query and drains it.
func collectIDsQuery(ctx context.Context, tx pgx.Tx, sql string, args ...any) ([]int64, error) {
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ids: %w", translateError(err))
	}
	return collectIDs(rows)
}
