package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/GameDB_Go/internal/cache"
	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/logger"
	"github.com/osse101/GameDB_Go/internal/metrics"
	"github.com/osse101/GameDB_Go/internal/repository"
)

// Service defines the interface for inventory operations
type Service interface {
	Load(ctx context.Context, inventoryID int64) ([]domain.Result, *domain.Inventory)
	Create(ctx context.Context, inv *domain.Inventory) ([]domain.Result, *domain.Inventory)
	Save(ctx context.Context, inv *domain.Inventory) ([]domain.Result, *domain.Inventory)
	SplitStack(ctx context.Context, inventoryID, itemID int64, quantityToSplit float64) ([]domain.Result, *domain.Inventory)
	TransferItem(ctx context.Context, sourceID, destinationID, itemID int64, quantity float64) ([]domain.Result, *domain.Inventory, *domain.Inventory)
	ListRecords(ctx context.Context, query string, page, perPage int64) ([]domain.Result, []*domain.Inventory, int64)
	Describe(ctx context.Context) *domain.ServiceMetadata
}

type service struct {
	store     repository.Inventory
	itemStore repository.Item
	cache     *cache.Cache[*domain.Inventory]
}

// NewService creates a new inventory service
func NewService(store repository.Inventory, itemStore repository.Item, objectCache *cache.Cache[*domain.Inventory]) Service {
	return &service{
		store:     store,
		itemStore: itemStore,
		cache:     objectCache,
	}
}

// fetch reads an inventory cache-first, falling back to the store and
// refreshing the cache on a miss.
func (s *service) fetch(ctx context.Context, inventoryID int64) (*domain.Inventory, error) {
	if inv, ok := s.cache.Get(inventoryID); ok {
		metrics.CacheHits.WithLabelValues("inventory").Inc()
		return inv, nil
	}
	metrics.CacheMisses.WithLabelValues("inventory").Inc()

	inv, err := s.store.Load(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(inv.ID, inv)
	return inv, nil
}

func (s *service) Load(ctx context.Context, inventoryID int64) ([]domain.Result, *domain.Inventory) {
	log := logger.FromContext(ctx)
	log.Info("Load inventory", "inventory_id", inventoryID)

	if inv, ok := s.cache.Get(inventoryID); ok {
		metrics.CacheHits.WithLabelValues("inventory").Inc()
		s.count("load", domain.StatusSuccess)
		return []domain.Result{domain.Success("loaded inventory from cache")}, inv
	}
	metrics.CacheMisses.WithLabelValues("inventory").Inc()

	inv, err := s.store.Load(ctx, inventoryID)
	if err != nil {
		log.Warn("Failed to load inventory", "inventory_id", inventoryID, "error", err)
		s.count("load", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("failed to load inventory %d: %v", inventoryID, err))}, nil
	}

	s.cache.Put(inv.ID, inv)
	s.count("load", domain.StatusSuccess)
	return []domain.Result{domain.Success("loaded inventory")}, inv
}

func (s *service) Create(ctx context.Context, inv *domain.Inventory) ([]domain.Result, *domain.Inventory) {
	log := logger.FromContext(ctx)
	log.Info("Create inventory", "max_entries", inv.MaxEntries, "max_volume", inv.MaxVolume)

	created, err := s.store.Create(ctx, inv)
	if err != nil {
		log.Error("Failed to create inventory", "error", err)
		s.count("create", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBInsertFailed),
			fmt.Sprintf("failed to create inventory: %v", err))}, nil
	}

	s.cache.Put(created.ID, created)
	s.count("create", domain.StatusSuccess)
	return []domain.Result{domain.Success(fmt.Sprintf("created inventory %d", created.ID))}, created
}

func (s *service) Save(ctx context.Context, inv *domain.Inventory) ([]domain.Result, *domain.Inventory) {
	log := logger.FromContext(ctx)
	log.Info("Save inventory", "inventory_id", inv.ID)

	saved, err := s.store.Save(ctx, inv)
	if err != nil {
		log.Error("Failed to save inventory", "inventory_id", inv.ID, "error", err)
		s.count("save", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBInsertFailed),
			fmt.Sprintf("failed to save inventory: %v", err))}, nil
	}

	s.cache.Put(saved.ID, saved)
	s.count("save", domain.StatusSuccess)
	return []domain.Result{domain.Success(fmt.Sprintf("saved inventory %d", saved.ID))}, saved
}

func (s *service) SplitStack(ctx context.Context, inventoryID, itemID int64, quantityToSplit float64) ([]domain.Result, *domain.Inventory) {
	log := logger.FromContext(ctx)
	log.Info("Split stack", "inventory_id", inventoryID, "item_id", itemID, "quantity", quantityToSplit)

	inv, err := s.fetch(ctx, inventoryID)
	if err != nil {
		s.count("split_stack", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("inventory %d not found: %v", inventoryID, err))}, nil
	}

	entryIndex := inv.FindEntry(itemID)
	if entryIndex == -1 {
		log.Warn("Item not found in inventory", "inventory_id", inventoryID, "item_id", itemID)
		s.count("split_stack", domain.StatusFailure)
		return []domain.Result{domain.Failure(domain.ErrCodeInvItemNotFound,
			fmt.Sprintf("item %d not found in inventory %d", itemID, inventoryID))}, nil
	}

	splitResults := SplitStack(inv, entryIndex, quantityToSplit)
	if !domain.OK(splitResults) {
		s.count("split_stack", domain.StatusFailure)
		return splitResults, nil
	}

	saved, err := s.store.Update(ctx, inv)
	if err != nil {
		log.Error("Failed to save split inventory", "inventory_id", inventoryID, "error", err)
		s.count("split_stack", domain.StatusFailure)
		return append(splitResults, domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBUpdateFailed),
			fmt.Sprintf("failed to save inventory: %v", err))), nil
	}

	s.cache.Put(saved.ID, saved)
	s.count("split_stack", domain.StatusSuccess)
	return append(splitResults, domain.Success("saved inventory")), saved
}

func (s *service) TransferItem(ctx context.Context, sourceID, destinationID, itemID int64, quantity float64) ([]domain.Result, *domain.Inventory, *domain.Inventory) {
	log := logger.FromContext(ctx)
	log.Info("Transfer item", "source_id", sourceID, "destination_id", destinationID,
		"item_id", itemID, "quantity", quantity)

	item, err := s.itemStore.Load(ctx, itemID)
	if err != nil {
		s.count("transfer_item", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("item %d not found: %v", itemID, err))}, nil, nil
	}

	source, err := s.fetch(ctx, sourceID)
	if err != nil {
		s.count("transfer_item", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("source inventory %d not found: %v", sourceID, err))}, nil, nil
	}

	destination, err := s.fetch(ctx, destinationID)
	if err != nil {
		s.count("transfer_item", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("destination inventory %d not found: %v", destinationID, err))}, nil, nil
	}

	transferResults := TransferItem(source, destination, item, quantity)
	if !domain.OK(transferResults) {
		s.count("transfer_item", domain.StatusFailure)
		return transferResults, nil, nil
	}

	// Both inventories persist in one transaction; the cache only sees the
	// new state after the commit succeeded.
	savedSource, savedDestination, err := s.store.SavePair(ctx, source, destination)
	if err != nil {
		log.Error("Failed to persist transfer", "source_id", sourceID,
			"destination_id", destinationID, "error", err)
		s.count("transfer_item", domain.StatusFailure)
		return append(transferResults, domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBTransactionFailed),
			fmt.Sprintf("failed to persist transfer: %v", err))), nil, nil
	}

	s.cache.Put(savedSource.ID, savedSource)
	s.cache.Put(savedDestination.ID, savedDestination)
	s.count("transfer_item", domain.StatusSuccess)
	return append(transferResults, domain.Success("persisted both inventories")), savedSource, savedDestination
}

func (s *service) ListRecords(ctx context.Context, query string, page, perPage int64) ([]domain.Result, []*domain.Inventory, int64) {
	log := logger.FromContext(ctx)
	log.Info("List inventories", "query", query, "page", page, "per_page", perPage)

	inventories, total, err := s.store.Search(ctx, query, page, perPage)
	if err != nil {
		log.Error("Failed to list inventories", "error", err)
		s.count("list_records", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("failed to list inventories: %v", err))}, nil, 0
	}

	s.count("list_records", domain.StatusSuccess)
	return []domain.Result{domain.Success(
		fmt.Sprintf("listed %d of %d inventories", len(inventories), total))}, inventories, total
}

func (s *service) count(method string, status domain.Status) {
	metrics.OperationsTotal.WithLabelValues("inventory", method, status.String()).Inc()
}
