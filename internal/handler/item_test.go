package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameDB_Go/internal/cache"
	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/item"
	"github.com/osse101/GameDB_Go/internal/repository"
)

type itemFixture struct {
	handler *ItemHandler
	store   *repository.FakeItem
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	itemCache, err := cache.New[*domain.Item](16)
	require.NoError(t, err)

	store := repository.NewFakeItem()
	return &itemFixture{
		handler: NewItemHandler(item.NewService(store, itemCache)),
		store:   store,
	}
}

func TestItemHandlerCreate(t *testing.T) {
	f := newItemFixture(t)

	w := postJSON(t, f.handler.HandleCreate, "/api/v1/item/create", ItemRequest{
		Data: &ItemRequestData{CreateItem: &CreateItemData{
			Item: &domain.Item{InternalName: "iron_ore", Type: domain.ItemTypeRawMaterial},
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.StatusSuccess, results[0].Status)

	var payload ItemPayload
	require.NoError(t, json.Unmarshal(data["create_item"], &payload))
	require.NotNil(t, payload.Item)
	assert.NotZero(t, payload.Item.ID)
}

func TestItemHandlerCreateInvalid(t *testing.T) {
	f := newItemFixture(t)

	w := postJSON(t, f.handler.HandleCreate, "/api/v1/item/create", ItemRequest{
		Data: &ItemRequestData{CreateItem: &CreateItemData{
			Item: &domain.Item{Type: domain.ItemTypeRawMaterial},
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, _ := decodeEnvelope(t, w)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.StatusFailure, results[0].Status)
	assert.Equal(t, domain.ErrCodeDBInvalidData, results[0].ErrorCode)
	assert.Zero(t, f.store.Len())
}

func TestItemHandlerDestroy(t *testing.T) {
	f := newItemFixture(t)
	stored, err := f.store.Create(context.Background(), &domain.Item{
		InternalName: "scrap", Type: domain.ItemTypeRawMaterial,
	})
	require.NoError(t, err)

	w := postJSON(t, f.handler.HandleDestroy, "/api/v1/item/destroy", ItemRequest{
		Data: &ItemRequestData{DestroyItem: &DestroyItemData{ItemID: stored.ID}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	assert.True(t, domain.OK(results))

	var payload DestroyPayload
	require.NoError(t, json.Unmarshal(data["destroy_item"], &payload))
	assert.True(t, payload.Destroyed)
	assert.Zero(t, f.store.Len())
}

func TestItemHandlerValidationFailure(t *testing.T) {
	f := newItemFixture(t)

	// item_id zero fails the required tag before the service runs.
	w := postJSON(t, f.handler.HandleLoad, "/api/v1/item/load", ItemRequest{
		Data: &ItemRequestData{LoadItem: &LoadItemData{ItemID: 0}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	results, _ := decodeEnvelope(t, w)
	require.Len(t, results, 1)
	assert.Equal(t, domain.ErrCodeDBInvalidData, results[0].ErrorCode)
}
