package repository

import (
	"context"
	"strings"

	"github.com/osse101/GameDB_Go/internal/domain"
)

// FakePlayer implements Player in memory.
type FakePlayer struct {
	*FakeStore[*domain.Player]
}

func NewFakePlayer() *FakePlayer {
	return &FakePlayer{
		FakeStore: NewFakeStore(
			func(p *domain.Player) int64 { return p.ID },
			func(p *domain.Player, id int64) { p.ID = id },
			func(p *domain.Player, q string) bool {
				return containsFold(p.FullName, q) || containsFold(p.WhatWeCallYou, q) || containsFold(p.Email, q)
			},
		),
	}
}

func (f *FakePlayer) LoadByName(ctx context.Context, fullName string) (*domain.Player, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var found *domain.Player
	f.ForEach(func(p *domain.Player) bool {
		if p.FullName == fullName {
			found = p
			return false
		}
		return true
	})
	if found == nil {
		return nil, domain.ErrRecordNotFound
	}
	return found, nil
}

// FakeMobile implements Mobile in memory.
type FakeMobile struct {
	*FakeStore[*domain.Mobile]
}

func NewFakeMobile() *FakeMobile {
	return &FakeMobile{
		FakeStore: NewFakeStore(
			func(m *domain.Mobile) int64 { return m.ID },
			func(m *domain.Mobile, id int64) { m.ID = id },
			func(m *domain.Mobile, q string) bool { return containsFold(m.WhatWeCallYou, q) },
		),
	}
}

func (f *FakeMobile) LoadByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Mobile, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var out []*domain.Mobile
	f.ForEach(func(m *domain.Mobile) bool {
		if m.Owner != nil && sameOwner(*m.Owner, owner) {
			out = append(out, m)
		}
		return true
	})
	return out, nil
}

// FakeItem implements Item in memory.
type FakeItem struct {
	*FakeStore[*domain.Item]
}

func NewFakeItem() *FakeItem {
	return &FakeItem{
		FakeStore: NewFakeStore(
			func(i *domain.Item) int64 { return i.ID },
			func(i *domain.Item, id int64) { i.ID = id },
			func(i *domain.Item, q string) bool { return containsFold(i.InternalName, q) },
		),
	}
}

func (f *FakeItem) LoadByName(ctx context.Context, internalName string) (*domain.Item, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var found *domain.Item
	f.ForEach(func(i *domain.Item) bool {
		if i.InternalName == internalName {
			found = i
			return false
		}
		return true
	})
	if found == nil {
		return nil, domain.ErrRecordNotFound
	}
	return found, nil
}

func (f *FakeItem) LoadBlueprint(ctx context.Context, id int64) (*domain.ItemBlueprint, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var found *domain.ItemBlueprint
	f.ForEach(func(i *domain.Item) bool {
		if i.Blueprint != nil && i.Blueprint.ID == id {
			bp := i.Blueprint.Clone()
			found = &bp
			return false
		}
		return true
	})
	if found == nil {
		return nil, domain.ErrRecordNotFound
	}
	return found, nil
}

// FakeInventory implements Inventory in memory.
type FakeInventory struct {
	*FakeStore[*domain.Inventory]

	// SavePairFailWith fails only SavePair, for transfer rollback tests.
	SavePairFailWith error
}

func NewFakeInventory() *FakeInventory {
	return &FakeInventory{
		FakeStore: NewFakeStore(
			func(i *domain.Inventory) int64 { return i.ID },
			func(i *domain.Inventory, id int64) { i.ID = id },
			// Inventories carry no searchable text; the query is ignored.
			func(i *domain.Inventory, q string) bool { return true },
		),
	}
}

func (f *FakeInventory) LoadByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Inventory, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var out []*domain.Inventory
	f.ForEach(func(inv *domain.Inventory) bool {
		if sameOwner(inv.Owner, owner) {
			out = append(out, inv)
		}
		return true
	})
	return out, nil
}

func (f *FakeInventory) SavePair(ctx context.Context, a, b *domain.Inventory) (*domain.Inventory, *domain.Inventory, error) {
	if f.SavePairFailWith != nil {
		return nil, nil, f.SavePairFailWith
	}
	savedA, err := f.Save(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	savedB, err := f.Save(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	return savedA, savedB, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sameOwner(a, b domain.Owner) bool {
	aKind, aID, aOK := a.Kind()
	bKind, bID, bOK := b.Kind()
	return aOK && bOK && aKind == bKind && aID == bID
}
