package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameDB_Go/internal/cache"
	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/inventory"
	"github.com/osse101/GameDB_Go/internal/item"
	"github.com/osse101/GameDB_Go/internal/player"
	"github.com/osse101/GameDB_Go/internal/repository"
)

type stubPool struct {
	pingErr error
}

func (p *stubPool) Ping(ctx context.Context) error { return p.pingErr }
func (p *stubPool) Close()                         {}

func newTestServer(t *testing.T, pool *stubPool) *Server {
	t.Helper()

	invCache, err := cache.New[*domain.Inventory](16)
	require.NoError(t, err)
	itemCache, err := cache.New[*domain.Item](16)
	require.NoError(t, err)
	playerCache, err := cache.New[*domain.Player](16)
	require.NoError(t, err)

	itemStore := repository.NewFakeItem()
	invSvc := inventory.NewService(repository.NewFakeInventory(), itemStore, invCache)
	itemSvc := item.NewService(itemStore, itemCache)
	playerSvc := player.NewService(repository.NewFakePlayer(), playerCache)

	return NewServer("", 0, pool, invSvc, itemSvc, playerSvc)
}

func TestHealthzRoute(t *testing.T) {
	srv := newTestServer(t, &stubPool{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestReadyzRouteDatabaseDown(t *testing.T) {
	srv := newTestServer(t, &stubPool{pingErr: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOperationRouteWired(t *testing.T) {
	srv := newTestServer(t, &stubPool{})

	body := `{"data":{"list_item":{"query":""}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/item/list", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"results"`)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, &stubPool{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/unknown", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDescribeRoute(t *testing.T) {
	srv := newTestServer(t, &stubPool{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/player/describe", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PlayerService")
}
