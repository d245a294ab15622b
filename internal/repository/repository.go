// Package repository defines the persistence interfaces implemented by
// internal/database/postgres and faked in service tests.
package repository

import (
	"context"

	"github.com/osse101/GameDB_Go/internal/domain"
)

// Pagination bounds shared by the postgres adapters and the fakes.
const (
	DefaultPerPage int64 = 25
	MaxPerPage     int64 = 100
)

// ClampPage normalizes pagination inputs: negative pages become 0 and
// perPage is forced into [1, MaxPerPage], defaulting when unset.
func ClampPage(page, perPage int64) (int64, int64) {
	if page < 0 {
		page = 0
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// Store is the generic persistence contract shared by all entity adapters.
// Save dispatches on ID: zero creates, non-zero updates.
type Store[T any] interface {
	// Create inserts the entity and returns it with its assigned ID.
	Create(ctx context.Context, entity T) (T, error)
	// Load fetches an entity by ID. Missing rows return
	// domain.ErrRecordNotFound.
	Load(ctx context.Context, id int64) (T, error)
	// Update overwrites an existing entity in place.
	Update(ctx context.Context, entity T) (T, error)
	// Save creates when the entity has no ID yet, updates otherwise.
	Save(ctx context.Context, entity T) (T, error)
	// Destroy deletes an entity by ID. Missing rows return
	// domain.ErrRecordNotFound.
	Destroy(ctx context.Context, id int64) error
	// Search returns a page of entities matching query ordered by ascending
	// ID, plus the total match count. Page numbering starts at 0; an empty
	// query matches everything.
	Search(ctx context.Context, query string, page, perPage int64) ([]T, int64, error)
}

// Player persists players together with their companion mobile.
type Player interface {
	Store[*domain.Player]
	// LoadByName fetches a player by full name.
	LoadByName(ctx context.Context, fullName string) (*domain.Player, error)
}

// Mobile persists mobiles and their attributes.
type Mobile interface {
	Store[*domain.Mobile]
	// LoadByOwner fetches the mobiles held by an owner.
	LoadByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Mobile, error)
}

// Item persists items, their attributes and their blueprints.
type Item interface {
	Store[*domain.Item]
	// LoadByName fetches an item by internal name.
	LoadByName(ctx context.Context, internalName string) (*domain.Item, error)
	// LoadBlueprint fetches a blueprint by ID.
	LoadBlueprint(ctx context.Context, id int64) (*domain.ItemBlueprint, error)
}

// Inventory persists inventories and their entries.
type Inventory interface {
	Store[*domain.Inventory]
	// LoadByOwner fetches the inventories held by an owner.
	LoadByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Inventory, error)
	// SavePair writes two inventories in one transaction, for transfers.
	// Either both are persisted or neither is.
	SavePair(ctx context.Context, a, b *domain.Inventory) (*domain.Inventory, *domain.Inventory, error)
}
