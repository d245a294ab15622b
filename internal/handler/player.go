package handler

import (
	"net/http"

	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/player"
	"github.com/osse101/GameDB_Go/internal/repository"
)

const (
	opLoadPlayer   = "load_player"
	opCreatePlayer = "create_player"
	opSavePlayer   = "save_player"
	opDeletePlayer = "delete_player"
	opListPlayer   = "list_player"
)

type PlayerHandler struct {
	service  player.Service
	validate *Validator
}

func NewPlayerHandler(service player.Service) *PlayerHandler {
	return &PlayerHandler{
		service:  service,
		validate: NewValidator(),
	}
}

type PlayerRequest struct {
	Data *PlayerRequestData `json:"data"`
}

type PlayerRequestData struct {
	LoadPlayer   *LoadPlayerData   `json:"load_player,omitempty"`
	CreatePlayer *CreatePlayerData `json:"create_player,omitempty"`
	SavePlayer   *SavePlayerData   `json:"save_player,omitempty"`
	DeletePlayer *DeletePlayerData `json:"delete_player,omitempty"`
	ListPlayer   *ListRecordsData  `json:"list_player,omitempty"`
}

type LoadPlayerData struct {
	PlayerID int64 `json:"player_id" validate:"required"`
}

type CreatePlayerData struct {
	Player *domain.Player `json:"player" validate:"required"`
}

type SavePlayerData struct {
	Player *domain.Player `json:"player" validate:"required"`
}

type DeletePlayerData struct {
	PlayerID int64 `json:"player_id" validate:"required"`
}

type PlayerResponseData struct {
	LoadPlayer   *PlayerPayload     `json:"load_player,omitempty"`
	CreatePlayer *PlayerPayload     `json:"create_player,omitempty"`
	SavePlayer   *PlayerPayload     `json:"save_player,omitempty"`
	DeletePlayer *DestroyPayload    `json:"delete_player,omitempty"`
	ListPlayer   *PlayerListPayload `json:"list_player,omitempty"`
}

type PlayerPayload struct {
	Player *domain.Player `json:"player"`
}

type PlayerListPayload struct {
	Players  []*domain.Player `json:"players"`
	PageData PageData         `json:"page_data"`
}

func (h *PlayerHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if !decodeRequest(w, r, &req, opLoadPlayer) {
		return
	}
	if req.Data == nil || req.Data.LoadPlayer == nil {
		respondMissingVariant(w, opLoadPlayer)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.LoadPlayer); err != nil {
		respondValidation(w, err)
		return
	}

	results, p := h.service.Load(r.Context(), req.Data.LoadPlayer.PlayerID)
	respondEnvelope(w, results, &PlayerResponseData{
		LoadPlayer: &PlayerPayload{Player: p},
	})
}

func (h *PlayerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if !decodeRequest(w, r, &req, opCreatePlayer) {
		return
	}
	if req.Data == nil || req.Data.CreatePlayer == nil {
		respondMissingVariant(w, opCreatePlayer)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.CreatePlayer); err != nil {
		respondValidation(w, err)
		return
	}

	results, p := h.service.Create(r.Context(), req.Data.CreatePlayer.Player)
	respondEnvelope(w, results, &PlayerResponseData{
		CreatePlayer: &PlayerPayload{Player: p},
	})
}

func (h *PlayerHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if !decodeRequest(w, r, &req, opSavePlayer) {
		return
	}
	if req.Data == nil || req.Data.SavePlayer == nil {
		respondMissingVariant(w, opSavePlayer)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.SavePlayer); err != nil {
		respondValidation(w, err)
		return
	}

	results, p := h.service.Save(r.Context(), req.Data.SavePlayer.Player)
	respondEnvelope(w, results, &PlayerResponseData{
		SavePlayer: &PlayerPayload{Player: p},
	})
}

func (h *PlayerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if !decodeRequest(w, r, &req, opDeletePlayer) {
		return
	}
	if req.Data == nil || req.Data.DeletePlayer == nil {
		respondMissingVariant(w, opDeletePlayer)
		return
	}
	if err := h.validate.ValidateStruct(req.Data.DeletePlayer); err != nil {
		respondValidation(w, err)
		return
	}

	results := h.service.Delete(r.Context(), req.Data.DeletePlayer.PlayerID)
	respondEnvelope(w, results, &PlayerResponseData{
		DeletePlayer: &DestroyPayload{Destroyed: domain.OK(results)},
	})
}

func (h *PlayerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if !decodeRequest(w, r, &req, opListPlayer) {
		return
	}
	if req.Data == nil || req.Data.ListPlayer == nil {
		respondMissingVariant(w, opListPlayer)
		return
	}
	data := req.Data.ListPlayer
	if err := h.validate.ValidateStruct(data); err != nil {
		respondValidation(w, err)
		return
	}

	results, players, total := h.service.ListRecords(r.Context(), data.Query, data.Page, data.PerPage)
	page, perPage := repository.ClampPage(data.Page, data.PerPage)
	respondEnvelope(w, results, &PlayerResponseData{
		ListPlayer: &PlayerListPayload{
			Players:  players,
			PageData: PageData{Page: page, PerPage: perPage, TotalCount: total},
		},
	})
}

func (h *PlayerHandler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Describe(r.Context()))
}
