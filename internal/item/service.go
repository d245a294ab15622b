// Package item implements the item service: CRUD over items with their
// attributes and blueprints, backed by the object cache.
package item

import (
	"context"
	"fmt"

	"github.com/osse101/GameDB_Go/internal/cache"
	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/logger"
	"github.com/osse101/GameDB_Go/internal/metrics"
	"github.com/osse101/GameDB_Go/internal/repository"
)

// Service defines the interface for item operations
type Service interface {
	Create(ctx context.Context, item *domain.Item) ([]domain.Result, *domain.Item)
	Load(ctx context.Context, itemID int64) ([]domain.Result, *domain.Item)
	Save(ctx context.Context, item *domain.Item) ([]domain.Result, *domain.Item)
	Destroy(ctx context.Context, itemID int64) []domain.Result
	ListRecords(ctx context.Context, query string, page, perPage int64) ([]domain.Result, []*domain.Item, int64)
	Describe(ctx context.Context) *domain.ServiceMetadata
}

type service struct {
	store repository.Item
	cache *cache.Cache[*domain.Item]
}

// NewService creates a new item service
func NewService(store repository.Item, objectCache *cache.Cache[*domain.Item]) Service {
	return &service{store: store, cache: objectCache}
}

func (s *service) Create(ctx context.Context, item *domain.Item) ([]domain.Result, *domain.Item) {
	log := logger.FromContext(ctx)
	log.Info("Create item", "internal_name", item.InternalName)

	if err := validateItem(item); err != nil {
		s.count("create", domain.StatusFailure)
		return []domain.Result{domain.Failure(domain.ErrCodeDBInvalidData,
			fmt.Sprintf("invalid item: %v", err))}, nil
	}

	created, err := s.store.Create(ctx, item)
	if err != nil {
		log.Error("Failed to create item", "error", err)
		s.count("create", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBInsertFailed),
			fmt.Sprintf("failed to create item: %v", err))}, nil
	}

	s.cache.Put(created.ID, created)
	s.count("create", domain.StatusSuccess)
	return []domain.Result{domain.Success(fmt.Sprintf("created item %d", created.ID))}, created
}

func (s *service) Load(ctx context.Context, itemID int64) ([]domain.Result, *domain.Item) {
	log := logger.FromContext(ctx)
	log.Info("Load item", "item_id", itemID)

	if item, ok := s.cache.Get(itemID); ok {
		metrics.CacheHits.WithLabelValues("item").Inc()
		s.count("load", domain.StatusSuccess)
		return []domain.Result{domain.Success("loaded item from cache")}, item
	}
	metrics.CacheMisses.WithLabelValues("item").Inc()

	item, err := s.store.Load(ctx, itemID)
	if err != nil {
		log.Warn("Failed to load item", "item_id", itemID, "error", err)
		s.count("load", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("failed to load item %d: %v", itemID, err))}, nil
	}

	s.cache.Put(item.ID, item)
	s.count("load", domain.StatusSuccess)
	return []domain.Result{domain.Success("loaded item")}, item
}

func (s *service) Save(ctx context.Context, item *domain.Item) ([]domain.Result, *domain.Item) {
	log := logger.FromContext(ctx)
	log.Info("Save item", "item_id", item.ID, "internal_name", item.InternalName)

	if err := validateItem(item); err != nil {
		s.count("save", domain.StatusFailure)
		return []domain.Result{domain.Failure(domain.ErrCodeDBInvalidData,
			fmt.Sprintf("invalid item: %v", err))}, nil
	}

	saved, err := s.store.Save(ctx, item)
	if err != nil {
		log.Error("Failed to save item", "item_id", item.ID, "error", err)
		s.count("save", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBInsertFailed),
			fmt.Sprintf("failed to save item: %v", err))}, nil
	}

	s.cache.Put(saved.ID, saved)
	s.count("save", domain.StatusSuccess)
	return []domain.Result{domain.Success(fmt.Sprintf("saved item %d", saved.ID))}, saved
}

func (s *service) Destroy(ctx context.Context, itemID int64) []domain.Result {
	log := logger.FromContext(ctx)
	log.Info("Destroy item", "item_id", itemID)

	if err := s.store.Destroy(ctx, itemID); err != nil {
		log.Warn("Failed to destroy item", "item_id", itemID, "error", err)
		s.count("destroy", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBDeleteFailed),
			fmt.Sprintf("failed to destroy item %d: %v", itemID, err))}
	}

	s.cache.Invalidate(itemID)
	s.count("destroy", domain.StatusSuccess)
	return []domain.Result{domain.Success(fmt.Sprintf("destroyed item %d", itemID))}
}

func (s *service) ListRecords(ctx context.Context, query string, page, perPage int64) ([]domain.Result, []*domain.Item, int64) {
	log := logger.FromContext(ctx)
	log.Info("List items", "query", query, "page", page, "per_page", perPage)

	items, total, err := s.store.Search(ctx, query, page, perPage)
	if err != nil {
		log.Error("Failed to list items", "error", err)
		s.count("list_records", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("failed to list items: %v", err))}, nil, 0
	}

	s.count("list_records", domain.StatusSuccess)
	return []domain.Result{domain.Success(
		fmt.Sprintf("listed %d of %d items", len(items), total))}, items, total
}

func (s *service) count(method string, status domain.Status) {
	metrics.OperationsTotal.WithLabelValues("item", method, status.String()).Inc()
}

// validateItem checks the invariants storage relies on: a non-empty name,
// a known type label and well-formed attribute values.
func validateItem(item *domain.Item) error {
	if item.InternalName == "" {
		return fmt.Errorf("%w: internal_name is required", domain.ErrInvalidData)
	}
	if item.Type.String() == "UNKNOWN" {
		return fmt.Errorf("%w: unknown item type %d", domain.ErrInvalidData, item.Type)
	}
	for _, attr := range item.Attributes {
		if err := attr.Validate(); err != nil {
			return fmt.Errorf("attribute %q: %w", attr.InternalName, err)
		}
	}
	return nil
}
