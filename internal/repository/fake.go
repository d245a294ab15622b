package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/GameDB_Go/internal/domain"
)

// FakeStore is a stateful in-memory Store used by service tests. It clones
// on the way in and out so tests can detect aliasing bugs, the same way the
// real adapters materialize fresh rows.
type FakeStore[T interface{ Clone() T }] struct {
	mu     sync.Mutex
	rows   map[int64]T
	nextID int64

	getID   func(T) int64
	setID   func(T, int64)
	matches func(T, string) bool

	// FailWith, when set, makes every operation fail with this error.
	FailWith error
}

// NewFakeStore builds a fake around the entity's ID accessors and search
// predicate.
func NewFakeStore[T interface{ Clone() T }](
	getID func(T) int64,
	setID func(T, int64),
	matches func(T, string) bool,
) *FakeStore[T] {
	return &FakeStore[T]{
		rows:    make(map[int64]T),
		getID:   getID,
		setID:   setID,
		matches: matches,
	}
}

func (f *FakeStore[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	if f.FailWith != nil {
		return zero, f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := entity.Clone()
	f.nextID++
	f.setID(stored, f.nextID)
	f.rows[f.nextID] = stored
	return stored.Clone(), nil
}

func (f *FakeStore[T]) Load(ctx context.Context, id int64) (T, error) {
	var zero T
	if f.FailWith != nil {
		return zero, f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return zero, domain.ErrRecordNotFound
	}
	return row.Clone(), nil
}

func (f *FakeStore[T]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	if f.FailWith != nil {
		return zero, f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.getID(entity)
	if _, ok := f.rows[id]; !ok {
		return zero, domain.ErrRecordNotFound
	}
	f.rows[id] = entity.Clone()
	return f.rows[id].Clone(), nil
}

func (f *FakeStore[T]) Save(ctx context.Context, entity T) (T, error) {
	if f.getID(entity) == 0 {
		return f.Create(ctx, entity)
	}
	return f.Update(ctx, entity)
}

func (f *FakeStore[T]) Destroy(ctx context.Context, id int64) error {
	if f.FailWith != nil {
		return f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *FakeStore[T]) Search(ctx context.Context, query string, page, perPage int64) ([]T, int64, error) {
	if f.FailWith != nil {
		return nil, 0, f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	page, perPage = ClampPage(page, perPage)

	var matched []T
	for _, row := range f.rows {
		if query == "" || f.matches(row, query) {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return f.getID(matched[i]) < f.getID(matched[j])
	})

	total := int64(len(matched))
	start := page * perPage
	if start >= total {
		return []T{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}

	out := make([]T, 0, end-start)
	for _, row := range matched[start:end] {
		out = append(out, row.Clone())
	}
	return out, total, nil
}

// Len reports how many rows the fake holds.
func (f *FakeStore[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// ForEach visits a clone of every row until fn returns false.
func (f *FakeStore[T]) ForEach(fn func(T) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if !fn(row.Clone()) {
			return
		}
	}
}
