package handler

import (
	"net/http"

	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/inventory"
	"github.com/osse101/GameDB_Go/internal/repository"
)

// Operation names carried by the inventory request data union
const (
	opLoadInventory   = "load_inventory"
	opCreateInventory = "create_inventory"
	opSaveInventory   = "save_inventory"
	opSplitStack      = "split_stack"
	opTransferItem    = "transfer_item"
	opListInventory   = "list_inventory"
)

// InventoryHandler serves the inventory operation routes. It owns its own
// validator instead of sharing package state.
type InventoryHandler struct {
	service  inventory.Service
	validate *Validator
}

func NewInventoryHandler(service inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: NewValidator(),
	}
}

// InventoryRequest is the envelope for every inventory operation. Exactly one
// member of Data must be set; the route decides which one it expects.
type InventoryRequest struct {
	Data *InventoryRequestData `json:"data"`
}

type InventoryRequestData struct {
	LoadInventory   *LoadInventoryData   `json:"load_inventory,omitempty"`
	CreateInventory *CreateInventoryData `json:"create_inventory,omitempty"`
	SaveInventory   *SaveInventoryData   `json:"save_inventory,omitempty"`
	SplitStack      *SplitStackData      `json:"split_stack,omitempty"`
	TransferItem    *TransferItemData    `json:"transfer_item,omitempty"`
	ListInventory   *ListRecordsData     `json:"list_inventory,omitempty"`
}

type LoadInventoryData struct {
	InventoryID int64 `json:"inventory_id" validate:"required"`
}

type CreateInventoryData struct {
	Inventory *domain.Inventory `json:"inventory" validate:"required"`
}

type SaveInventoryData struct {
	Inventory *domain.Inventory `json:"inventory" validate:"required"`
}

// Quantities carry no validate tags: the inventory core classifies
// non-positive values as INV_NEW_QUANTITY_INVALID itself.
type SplitStackData struct {
	InventoryID     int64   `json:"inventory_id" validate:"required"`
	ItemID          int64   `json:"item_id" validate:"required"`
	QuantityToSplit float64 `json:"quantity_to_split"`
}

type TransferItemData struct {
	SourceInventoryID      int64   `json:"source_inventory_id" validate:"required"`
	DestinationInventoryID int64   `json:"destination_inventory_id" validate:"required"`
	ItemID                 int64   `json:"item_id" validate:"required"`
	Quantity               float64 `json:"quantity"`
}

// ListRecordsData is shared by the list operations of every service.
// Out-of-range pagination values are clamped downstream, not rejected.
type ListRecordsData struct {
	Query   string `json:"query"`
	Page    int64  `json:"page"`
	PerPage int64  `json:"per_page"`
}

// InventoryResponseData mirrors the request union: the member matching the
// requested operation carries the payload.
type InventoryResponseData struct {
	LoadInventory   *InventoryPayload     `json:"load_inventory,omitempty"`
	CreateInventory *InventoryPayload     `json:"create_inventory,omitempty"`
	SaveInventory   *InventoryPayload     `json:"save_inventory,omitempty"`
	SplitStack      *InventoryPayload     `json:"split_stack,omitempty"`
	TransferItem    *TransferPayload      `json:"transfer_item,omitempty"`
	ListInventory   *InventoryListPayload `json:"list_inventory,omitempty"`
}

type InventoryPayload struct {
	Inventory *domain.Inventory `json:"inventory"`
}

type TransferPayload struct {
	SourceInventory      *domain.Inventory `json:"source_inventory"`
	DestinationInventory *domain.Inventory `json:"destination_inventory"`
}

type InventoryListPayload struct {
	Inventories []*domain.Inventory `json:"inventories"`
	PageData    PageData            `json:"page_data"`
}

func (h *InventoryHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	var req InventoryRequest
	if !decodeRequest(w, r, &req, opLoadInventory) {
		return
	}
	if req.Data == nil || req.Data.LoadInventory == nil {
		respondMissingVariant(w, opLoadInventory)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.LoadInventory); err != nil {
		respondValidation(w, err)
		return
	}

	results, inv := h.service.Load(r.Context(), req.Data.LoadInventory.InventoryID)
	respondEnvelope(w, results, &InventoryResponseData{
		LoadInventory: &InventoryPayload{Inventory: inv},
	})
}

func (h *InventoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req InventoryRequest
	if !decodeRequest(w, r, &req, opCreateInventory) {
		return
	}
	if req.Data == nil || req.Data.CreateInventory == nil {
		respondMissingVariant(w, opCreateInventory)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.CreateInventory); err != nil {
		respondValidation(w, err)
		return
	}

	results, inv := h.service.Create(r.Context(), req.Data.CreateInventory.Inventory)
	respondEnvelope(w, results, &InventoryResponseData{
		CreateInventory: &InventoryPayload{Inventory: inv},
	})
}

func (h *InventoryHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req InventoryRequest
	if !decodeRequest(w, r, &req, opSaveInventory) {
		return
	}
	if req.Data == nil || req.Data.SaveInventory == nil {
		respondMissingVariant(w, opSaveInventory)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.SaveInventory); err != nil {
		respondValidation(w, err)
		return
	}

	results, inv := h.service.Save(r.Context(), req.Data.SaveInventory.Inventory)
	respondEnvelope(w, results, &InventoryResponseData{
		SaveInventory: &InventoryPayload{Inventory: inv},
	})
}

func (h *InventoryHandler) HandleSplitStack(w http.ResponseWriter, r *http.Request) {
	var req InventoryRequest
	if !decodeRequest(w, r, &req, opSplitStack) {
		return
	}
	if req.Data == nil || req.Data.SplitStack == nil {
		respondMissingVariant(w, opSplitStack)
		return
	}
	data := req.Data.SplitStack
	if err := h.validate.ValidateStruct(data); err != nil {
		respondValidation(w, err)
		return
	}

	results, inv := h.service.SplitStack(r.Context(), data.InventoryID, data.ItemID, data.QuantityToSplit)
	respondEnvelope(w, results, &InventoryResponseData{
		SplitStack: &InventoryPayload{Inventory: inv},
	})
}

func (h *InventoryHandler) HandleTransferItem(w http.ResponseWriter, r *http.Request) {
	var req InventoryRequest
	if !decodeRequest(w, r, &req, opTransferItem) {
		return
	}
	if req.Data == nil || req.Data.TransferItem == nil {
		respondMissingVariant(w, opTransferItem)
		return
	}
	data := req.Data.TransferItem
	if err := h.validate.ValidateStruct(data); err != nil {
		respondValidation(w, err)
		return
	}

	results, src, dst := h.service.TransferItem(r.Context(), data.SourceInventoryID, data.DestinationInventoryID, data.ItemID, data.Quantity)
	respondEnvelope(w, results, &InventoryResponseData{
		TransferItem: &TransferPayload{SourceInventory: src, DestinationInventory: dst},
	})
}

func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var req InventoryRequest
	if !decodeRequest(w, r, &req, opListInventory) {
		return
	}
	if req.Data == nil || req.Data.ListInventory == nil {
		respondMissingVariant(w, opListInventory)
		return
	}
	data := req.Data.ListInventory
	if err := h.validate.ValidateStruct(data); err != nil {
		respondValidation(w, err)
		return
	}

	results, inventories, total := h.service.ListRecords(r.Context(), data.Query, data.Page, data.PerPage)
	page, perPage := repository.ClampPage(data.Page, data.PerPage)
	respondEnvelope(w, results, &InventoryResponseData{
		ListInventory: &InventoryListPayload{
			Inventories: inventories,
			PageData:    PageData{Page: page, PerPage: perPage, TotalCount: total},
		},
	})
}

func (h *InventoryHandler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Describe(r.Context()))
}
