package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameDB_Go/internal/cache"
	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/inventory"
	"github.com/osse101/GameDB_Go/internal/repository"
)

type inventoryFixture struct {
	handler *InventoryHandler
	store   *repository.FakeInventory
	items   *repository.FakeItem
}

func newInventoryFixture(t *testing.T) *inventoryFixture {
	t.Helper()
	invCache, err := cache.New[*domain.Inventory](16)
	require.NoError(t, err)

	store := repository.NewFakeInventory()
	items := repository.NewFakeItem()
	svc := inventory.NewService(store, items, invCache)
	return &inventoryFixture{
		handler: NewInventoryHandler(svc),
		store:   store,
		items:   items,
	}
}

func (f *inventoryFixture) seedInventory(t *testing.T, inv *domain.Inventory) *domain.Inventory {
	t.Helper()
	stored, err := f.store.Create(context.Background(), inv)
	require.NoError(t, err)
	return stored
}

func (f *inventoryFixture) seedItem(t *testing.T, it *domain.Item) *domain.Item {
	t.Helper()
	stored, err := f.items.Create(context.Background(), it)
	require.NoError(t, err)
	return stored
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (results []domain.Result, data map[string]json.RawMessage) {
	t.Helper()
	var env struct {
		Results      []domain.Result            `json:"results"`
		ResponseData map[string]json.RawMessage `json:"response_data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Results, env.ResponseData
}

func TestInventoryHandlerLoad(t *testing.T) {
	f := newInventoryFixture(t)
	stored := f.seedInventory(t, &domain.Inventory{
		Owner:      domain.PlayerOwner(1),
		MaxEntries: 4,
		MaxVolume:  100,
		Entries:    []domain.InventoryEntry{{ItemID: 7, Quantity: 3}},
	})

	w := postJSON(t, f.handler.HandleLoad, "/api/v1/inventory/load", InventoryRequest{
		Data: &InventoryRequestData{LoadInventory: &LoadInventoryData{InventoryID: stored.ID}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.StatusSuccess, results[0].Status)

	var payload InventoryPayload
	require.NoError(t, json.Unmarshal(data["load_inventory"], &payload))
	require.NotNil(t, payload.Inventory)
	assert.Equal(t, stored.ID, payload.Inventory.ID)
	assert.Equal(t, int64(7), payload.Inventory.Entries[0].ItemID)
}

func TestInventoryHandlerLoadNotFound(t *testing.T) {
	f := newInventoryFixture(t)

	w := postJSON(t, f.handler.HandleLoad, "/api/v1/inventory/load", InventoryRequest{
		Data: &InventoryRequestData{LoadInventory: &LoadInventoryData{InventoryID: 404}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.StatusFailure, results[0].Status)
	assert.Equal(t, domain.ErrCodeDBRecordNotFound, results[0].ErrorCode)
	assert.Nil(t, data)
}

func TestInventoryHandlerMissingVariant(t *testing.T) {
	f := newInventoryFixture(t)

	// Well-formed envelope carrying the wrong operation.
	w := postJSON(t, f.handler.HandleLoad, "/api/v1/inventory/load", InventoryRequest{
		Data: &InventoryRequestData{SplitStack: &SplitStackData{InventoryID: 1, ItemID: 1, QuantityToSplit: 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	results, _ := decodeEnvelope(t, w)
	require.Len(t, results, 1)
	assert.Equal(t, domain.StatusFailure, results[0].Status)
	assert.Equal(t, domain.ErrCodeDBInvalidData, results[0].ErrorCode)
	assert.Contains(t, results[0].Message, "load_inventory")
	assert.Zero(t, f.store.Len())
}

func TestInventoryHandlerMalformedBody(t *testing.T) {
	f := newInventoryFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/load", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	f.handler.HandleLoad(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestInventoryHandlerCreate(t *testing.T) {
	f := newInventoryFixture(t)

	w := postJSON(t, f.handler.HandleCreate, "/api/v1/inventory/create", InventoryRequest{
		Data: &InventoryRequestData{CreateInventory: &CreateInventoryData{
			Inventory: &domain.Inventory{Owner: domain.PlayerOwner(1), MaxEntries: 4, MaxVolume: 50},
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.StatusSuccess, results[0].Status)

	var payload InventoryPayload
	require.NoError(t, json.Unmarshal(data["create_inventory"], &payload))
	require.NotNil(t, payload.Inventory)
	assert.NotZero(t, payload.Inventory.ID)
	assert.Equal(t, 1, f.store.Len())
}

func TestInventoryHandlerSplitStack(t *testing.T) {
	f := newInventoryFixture(t)
	maxStack := int64(10)
	it := f.seedItem(t, &domain.Item{
		InternalName: "iron_ore",
		Type:         domain.ItemTypeRawMaterial,
		MaxStackSize: &maxStack,
	})
	stored := f.seedInventory(t, &domain.Inventory{
		Owner:      domain.PlayerOwner(1),
		MaxEntries: 4,
		MaxVolume:  100,
		Entries:    []domain.InventoryEntry{{ItemID: it.ID, Quantity: 6}},
	})

	w := postJSON(t, f.handler.HandleSplitStack, "/api/v1/inventory/split-stack", InventoryRequest{
		Data: &InventoryRequestData{SplitStack: &SplitStackData{
			InventoryID:     stored.ID,
			ItemID:          it.ID,
			QuantityToSplit: 2,
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	assert.True(t, domain.OK(results))

	var payload InventoryPayload
	require.NoError(t, json.Unmarshal(data["split_stack"], &payload))
	require.NotNil(t, payload.Inventory)
	require.Len(t, payload.Inventory.Entries, 2)
	assert.Equal(t, float64(4), payload.Inventory.Entries[0].Quantity)
	assert.Equal(t, float64(2), payload.Inventory.Entries[1].Quantity)
}

func TestInventoryHandlerSplitStackZeroQuantity(t *testing.T) {
	f := newInventoryFixture(t)
	it := f.seedItem(t, &domain.Item{InternalName: "iron_ore", Type: domain.ItemTypeRawMaterial})
	stored := f.seedInventory(t, &domain.Inventory{
		Owner:      domain.PlayerOwner(1),
		MaxEntries: 4,
		MaxVolume:  100,
		Entries:    []domain.InventoryEntry{{ItemID: it.ID, Quantity: 6}},
	})

	// A zero quantity is a business failure classified by the inventory
	// core, not a malformed request.
	w := postJSON(t, f.handler.HandleSplitStack, "/api/v1/inventory/split-stack", InventoryRequest{
		Data: &InventoryRequestData{SplitStack: &SplitStackData{
			InventoryID:     stored.ID,
			ItemID:          it.ID,
			QuantityToSplit: 0,
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, _ := decodeEnvelope(t, w)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.StatusFailure, results[len(results)-1].Status)
	assert.Equal(t, domain.ErrCodeInvNewQuantityInvalid, results[len(results)-1].ErrorCode)
}

func TestInventoryHandlerTransfer(t *testing.T) {
	f := newInventoryFixture(t)
	it := f.seedItem(t, &domain.Item{InternalName: "gear", Type: domain.ItemTypeRawMaterial})
	src := f.seedInventory(t, &domain.Inventory{
		Owner:      domain.PlayerOwner(1),
		MaxEntries: 4,
		MaxVolume:  100,
		Entries:    []domain.InventoryEntry{{ItemID: it.ID, Quantity: 5}},
	})
	dst := f.seedInventory(t, &domain.Inventory{
		Owner:      domain.PlayerOwner(2),
		MaxEntries: 4,
		MaxVolume:  100,
	})

	w := postJSON(t, f.handler.HandleTransferItem, "/api/v1/inventory/transfer", InventoryRequest{
		Data: &InventoryRequestData{TransferItem: &TransferItemData{
			SourceInventoryID:      src.ID,
			DestinationInventoryID: dst.ID,
			ItemID:                 it.ID,
			Quantity:               2,
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	assert.True(t, domain.OK(results))

	var payload TransferPayload
	require.NoError(t, json.Unmarshal(data["transfer_item"], &payload))
	require.NotNil(t, payload.SourceInventory)
	require.NotNil(t, payload.DestinationInventory)
	assert.Equal(t, float64(3), payload.SourceInventory.Entries[0].Quantity)
	assert.Equal(t, float64(2), payload.DestinationInventory.Entries[0].Quantity)
}

func TestInventoryHandlerList(t *testing.T) {
	f := newInventoryFixture(t)
	for i := 0; i < 3; i++ {
		f.seedInventory(t, &domain.Inventory{Owner: domain.PlayerOwner(int64(i + 1)), MaxEntries: 4, MaxVolume: 10})
	}

	w := postJSON(t, f.handler.HandleList, "/api/v1/inventory/list", InventoryRequest{
		Data: &InventoryRequestData{ListInventory: &ListRecordsData{Page: 0, PerPage: 2}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	assert.True(t, domain.OK(results))

	var payload InventoryListPayload
	require.NoError(t, json.Unmarshal(data["list_inventory"], &payload))
	assert.Len(t, payload.Inventories, 2)
	assert.Equal(t, int64(3), payload.PageData.TotalCount)
	assert.Equal(t, int64(2), payload.PageData.PerPage)
}

func TestInventoryHandlerListNegativePage(t *testing.T) {
	f := newInventoryFixture(t)
	f.seedInventory(t, &domain.Inventory{Owner: domain.PlayerOwner(1), MaxEntries: 4, MaxVolume: 10})

	// Out-of-range pagination is clamped rather than rejected.
	w := postJSON(t, f.handler.HandleList, "/api/v1/inventory/list", InventoryRequest{
		Data: &InventoryRequestData{ListInventory: &ListRecordsData{Page: -1, PerPage: 25}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	assert.True(t, domain.OK(results))

	var payload InventoryListPayload
	require.NoError(t, json.Unmarshal(data["list_inventory"], &payload))
	assert.Len(t, payload.Inventories, 1)
	assert.Equal(t, int64(0), payload.PageData.Page)
}

func TestInventoryHandlerDescribe(t *testing.T) {
	f := newInventoryFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/describe", nil)
	w := httptest.NewRecorder()
	f.handler.HandleDescribe(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var meta domain.ServiceMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))
	assert.Equal(t, "InventoryService", meta.ServiceName)
	assert.NotEmpty(t, meta.Methods)
	assert.NotEmpty(t, meta.Enums)
}
