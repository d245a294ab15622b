package handler

import (
	"net/http"

	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/item"
	"github.com/osse101/GameDB_Go/internal/repository"
)

const (
	opLoadItem    = "load_item"
	opCreateItem  = "create_item"
	opSaveItem    = "save_item"
	opDestroyItem = "destroy_item"
	opListItem    = "list_item"
)

type ItemHandler struct {
	service  item.Service
	validate *Validator
}

func NewItemHandler(service item.Service) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: NewValidator(),
	}
}

type ItemRequest struct {
	Data *ItemRequestData `json:"data"`
}

type ItemRequestData struct {
	LoadItem    *LoadItemData    `json:"load_item,omitempty"`
	CreateItem  *CreateItemData  `json:"create_item,omitempty"`
	SaveItem    *SaveItemData    `json:"save_item,omitempty"`
	DestroyItem *DestroyItemData `json:"destroy_item,omitempty"`
	ListItem    *ListRecordsData `json:"list_item,omitempty"`
}

type LoadItemData struct {
	ItemID int64 `json:"item_id" validate:"required"`
}

type CreateItemData struct {
	Item *domain.Item `json:"item" validate:"required"`
}

type SaveItemData struct {
	Item *domain.Item `json:"item" validate:"required"`
}

type DestroyItemData struct {
	ItemID int64 `json:"item_id" validate:"required"`
}

type ItemResponseData struct {
	LoadItem    *ItemPayload     `json:"load_item,omitempty"`
	CreateItem  *ItemPayload     `json:"create_item,omitempty"`
	SaveItem    *ItemPayload     `json:"save_item,omitempty"`
	DestroyItem *DestroyPayload  `json:"destroy_item,omitempty"`
	ListItem    *ItemListPayload `json:"list_item,omitempty"`
}

type ItemPayload struct {
	Item *domain.Item `json:"item"`
}

// DestroyPayload acknowledges a destructive operation; there is no record to
// echo back.
type DestroyPayload struct {
	Destroyed bool `json:"destroyed"`
}

type ItemListPayload struct {
	Items    []*domain.Item `json:"items"`
	PageData PageData       `json:"page_data"`
}

func (h *ItemHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeRequest(w, r, &req, opLoadItem) {
		return
	}
	if req.Data == nil || req.Data.LoadItem == nil {
		respondMissingVariant(w, opLoadItem)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.LoadItem); err != nil {
		respondValidation(w, err)
		return
	}

	results, it := h.service.Load(r.Context(), req.Data.LoadItem.ItemID)
	respondEnvelope(w, results, &ItemResponseData{
		LoadItem: &ItemPayload{Item: it},
	})
}

func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeRequest(w, r, &req, opCreateItem) {
		return
	}
	if req.Data == nil || req.Data.CreateItem == nil {
		respondMissingVariant(w, opCreateItem)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.CreateItem); err != nil {
		respondValidation(w, err)
		return
	}

	results, it := h.service.Create(r.Context(), req.Data.CreateItem.Item)
	respondEnvelope(w, results, &ItemResponseData{
		CreateItem: &ItemPayload{Item: it},
	})
}

func (h *ItemHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeRequest(w, r, &req, opSaveItem) {
		return
	}
	if req.Data == nil || req.Data.SaveItem == nil {
		respondMissingVariant(w, opSaveItem)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.SaveItem); err != nil {
		respondValidation(w, err)
		return
	}

	results, it := h.service.Save(r.Context(), req.Data.SaveItem.Item)
	respondEnvelope(w, results, &ItemResponseData{
		SaveItem: &ItemPayload{Item: it},
	})
}

func (h *ItemHandler) HandleDestroy(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeRequest(w, r, &req, opDestroyItem) {
		return
	}
	if req.Data == nil || req.Data.DestroyItem == nil {
		respondMissingVariant(w, opDestroyItem)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.DestroyItem); err != nil {
		respondValidation(w, err)
		return
	}

	results := h.service.Destroy(r.Context(), req.Data.DestroyItem.ItemID)
	respondEnvelope(w, results, &ItemResponseData{
		DestroyItem: &DestroyPayload{Destroyed: domain.OK(results)},
	})
}

func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeRequest(w, r, &req, opListItem) {
		return
	}
	if req.Data == nil || req.Data.ListItem == nil {
		respondMissingVariant(w, opListItem)
		return
	}
	data := req.Data.ListItem
	if err := h.validate.ValidateStruct(data); err != nil {
		respondValidation(w, err)
		return
	}

	results, items, total := h.service.ListRecords(r.Context(), data.Query, data.Page, data.PerPage)
	page, perPage := repository.ClampPage(data.Page, data.PerPage)
	respondEnvelope(w, results, &ItemResponseData{
		ListItem: &ItemListPayload{
			Items:    items,
			PageData: PageData{Page: page, PerPage: perPage, TotalCount: total},
		},
	})
}

func (h *ItemHandler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Describe(r.Context()))
}
