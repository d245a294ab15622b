// Package player implements the player service. Every player travels with a
// companion mobile of type PLAYER; the storage layer creates and cascades it
// together with the player row.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/GameDB_Go/internal/cache"
	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/logger"
	"github.com/osse101/GameDB_Go/internal/metrics"
	"github.com/osse101/GameDB_Go/internal/repository"
)

// Service defines the interface for player operations
type Service interface {
	Create(ctx context.Context, player *domain.Player) ([]domain.Result, *domain.Player)
	Load(ctx context.Context, playerID int64) ([]domain.Result, *domain.Player)
	Save(ctx context.Context, player *domain.Player) ([]domain.Result, *domain.Player)
	Delete(ctx context.Context, playerID int64) []domain.Result
	ListRecords(ctx context.Context, query string, page, perPage int64) ([]domain.Result, []*domain.Player, int64)
	Describe(ctx context.Context) *domain.ServiceMetadata
}

type service struct {
	store repository.Player
	cache *cache.Cache[*domain.Player]
	now   func() time.Time
}

// NewService creates a new player service
func NewService(store repository.Player, objectCache *cache.Cache[*domain.Player]) Service {
	return &service{
		store: store,
		cache: objectCache,
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, player *domain.Player) ([]domain.Result, *domain.Player) {
	log := logger.FromContext(ctx)
	log.Info("Create player", "full_name", player.FullName)

	if err := validatePlayer(player); err != nil {
		s.count("create", domain.StatusFailure)
		return []domain.Result{domain.Failure(domain.ErrCodeDBInvalidData,
			fmt.Sprintf("invalid player: %v", err))}, nil
	}

	// over_13 is derived server side, never trusted from the request.
	stored := player.Clone()
	stored.RecomputeOver13(s.now())

	created, err := s.store.Create(ctx, stored)
	if err != nil {
		log.Error("Failed to create player", "error", err)
		s.count("create", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBInsertFailed),
			fmt.Sprintf("failed to create player: %v", err))}, nil
	}

	s.cache.Put(created.ID, created)
	s.count("create", domain.StatusSuccess)
	return []domain.Result{domain.Success(fmt.Sprintf("created player %d", created.ID))}, created
}

func (s *service) Load(ctx context.Context, playerID int64) ([]domain.Result, *domain.Player) {
	log := logger.FromContext(ctx)
	log.Info("Load player", "player_id", playerID)

	if player, ok := s.cache.Get(playerID); ok {
		metrics.CacheHits.WithLabelValues("player").Inc()
		s.count("load", domain.StatusSuccess)
		return []domain.Result{domain.Success("loaded player from cache")}, player
	}
	metrics.CacheMisses.WithLabelValues("player").Inc()

	player, err := s.store.Load(ctx, playerID)
	if err != nil {
		log.Warn("Failed to load player", "player_id", playerID, "error", err)
		s.count("load", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("failed to load player %d: %v", playerID, err))}, nil
	}

	s.cache.Put(player.ID, player)
	s.count("load", domain.StatusSuccess)
	return []domain.Result{domain.Success("loaded player")}, player
}

func (s *service) Save(ctx context.Context, player *domain.Player) ([]domain.Result, *domain.Player) {
	log := logger.FromContext(ctx)
	log.Info("Save player", "player_id", player.ID)

	if err := validatePlayer(player); err != nil {
		s.count("save", domain.StatusFailure)
		return []domain.Result{domain.Failure(domain.ErrCodeDBInvalidData,
			fmt.Sprintf("invalid player: %v", err))}, nil
	}

	stored := player.Clone()
	stored.RecomputeOver13(s.now())

	saved, err := s.store.Save(ctx, stored)
	if err != nil {
		log.Error("Failed to save player", "player_id", player.ID, "error", err)
		s.count("save", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBInsertFailed),
			fmt.Sprintf("failed to save player: %v", err))}, nil
	}

	s.cache.Put(saved.ID, saved)
	s.count("save", domain.StatusSuccess)
	return []domain.Result{domain.Success(fmt.Sprintf("saved player %d", saved.ID))}, saved
}

func (s *service) Delete(ctx context.Context, playerID int64) []domain.Result {
	log := logger.FromContext(ctx)
	log.Info("Delete player", "player_id", playerID)

	if err := s.store.Destroy(ctx, playerID); err != nil {
		log.Warn("Failed to delete player", "player_id", playerID, "error", err)
		s.count("delete", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBDeleteFailed),
			fmt.Sprintf("failed to delete player %d: %v", playerID, err))}
	}

	s.cache.Invalidate(playerID)
	s.count("delete", domain.StatusSuccess)
	return []domain.Result{domain.Success(fmt.Sprintf("deleted player %d", playerID))}
}

func (s *service) ListRecords(ctx context.Context, query string, page, perPage int64) ([]domain.Result, []*domain.Player, int64) {
	log := logger.FromContext(ctx)
	log.Info("List players", "query", query, "page", page, "per_page", perPage)

	players, total, err := s.store.Search(ctx, query, page, perPage)
	if err != nil {
		log.Error("Failed to list players", "error", err)
		s.count("list_records", domain.StatusFailure)
		return []domain.Result{domain.Failure(
			domain.ErrorCodeFor(err, domain.ErrCodeDBQueryFailed),
			fmt.Sprintf("failed to list players: %v", err))}, nil, 0
	}

	s.count("list_records", domain.StatusSuccess)
	return []domain.Result{domain.Success(
		fmt.Sprintf("listed %d of %d players", len(players), total))}, players, total
}

func (s *service) count(method string, status domain.Status) {
	metrics.OperationsTotal.WithLabelValues("player", method, status.String()).Inc()
}

func validatePlayer(player *domain.Player) error {
	if player.FullName == "" {
		return fmt.Errorf("%w: full_name is required", domain.ErrInvalidData)
	}
	if player.YearOfBirth <= 0 {
		return fmt.Errorf("%w: year_of_birth is required", domain.ErrInvalidData)
	}
	if player.Mobile != nil {
		if err := player.Mobile.ValidateOwner(); err != nil {
			return fmt.Errorf("companion mobile: %w", err)
		}
	}
	return nil
}
