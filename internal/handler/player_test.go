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
	"github.com/osse101/GameDB_Go/internal/player"
	"github.com/osse101/GameDB_Go/internal/repository"
)

type playerFixture struct {
	handler *PlayerHandler
	store   *repository.FakePlayer
}

func newPlayerFixture(t *testing.T) *playerFixture {
	t.Helper()
	playerCache, err := cache.New[*domain.Player](16)
	require.NoError(t, err)

	store := repository.NewFakePlayer()
	return &playerFixture{
		handler: NewPlayerHandler(player.NewService(store, playerCache)),
		store:   store,
	}
}

func TestPlayerHandlerCreate(t *testing.T) {
	f := newPlayerFixture(t)

	w := postJSON(t, f.handler.HandleCreate, "/api/v1/player/create", PlayerRequest{
		Data: &PlayerRequestData{CreatePlayer: &CreatePlayerData{
			Player: &domain.Player{
				FullName:      "Ada Lovelace",
				WhatWeCallYou: "ada",
				YearOfBirth:   1990,
				Email:         "ada@example.com",
			},
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.StatusSuccess, results[0].Status)

	var payload PlayerPayload
	require.NoError(t, json.Unmarshal(data["create_player"], &payload))
	require.NotNil(t, payload.Player)
	assert.NotZero(t, payload.Player.ID)
	assert.True(t, payload.Player.Over13)
	assert.Equal(t, 1, f.store.Len())
}

func TestPlayerHandlerCreateMissingName(t *testing.T) {
	f := newPlayerFixture(t)

	w := postJSON(t, f.handler.HandleCreate, "/api/v1/player/create", PlayerRequest{
		Data: &PlayerRequestData{CreatePlayer: &CreatePlayerData{
			Player: &domain.Player{WhatWeCallYou: "ghost", YearOfBirth: 1990},
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, _ := decodeEnvelope(t, w)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.StatusFailure, results[0].Status)
	assert.Equal(t, domain.ErrCodeDBInvalidData, results[0].ErrorCode)
	assert.Zero(t, f.store.Len())
}

func TestPlayerHandlerDelete(t *testing.T) {
	f := newPlayerFixture(t)
	stored, err := f.store.Create(context.Background(), &domain.Player{
		FullName:      "Grace Hopper",
		WhatWeCallYou: "grace",
		YearOfBirth:   1980,
	})
	require.NoError(t, err)

	w := postJSON(t, f.handler.HandleDelete, "/api/v1/player/delete", PlayerRequest{
		Data: &PlayerRequestData{DeletePlayer: &DeletePlayerData{PlayerID: stored.ID}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	assert.True(t, domain.OK(results))

	var payload DestroyPayload
	require.NoError(t, json.Unmarshal(data["delete_player"], &payload))
	assert.True(t, payload.Destroyed)
	assert.Zero(t, f.store.Len())
}

func TestPlayerHandlerDeleteMissingVariant(t *testing.T) {
	f := newPlayerFixture(t)

	w := postJSON(t, f.handler.HandleDelete, "/api/v1/player/delete", PlayerRequest{
		Data: &PlayerRequestData{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	results, _ := decodeEnvelope(t, w)
	require.Len(t, results, 1)
	assert.Equal(t, domain.ErrCodeDBInvalidData, results[0].ErrorCode)
	assert.Contains(t, results[0].Message, "delete_player")
}

func TestPlayerHandlerListByEmail(t *testing.T) {
	f := newPlayerFixture(t)
	_, err := f.store.Create(context.Background(), &domain.Player{
		FullName: "Ada Lovelace", WhatWeCallYou: "ada", YearOfBirth: 1990, Email: "ada@example.com",
	})
	require.NoError(t, err)
	_, err = f.store.Create(context.Background(), &domain.Player{
		FullName: "Grace Hopper", WhatWeCallYou: "grace", YearOfBirth: 1980, Email: "grace@example.com",
	})
	require.NoError(t, err)

	w := postJSON(t, f.handler.HandleList, "/api/v1/player/list", PlayerRequest{
		Data: &PlayerRequestData{ListPlayer: &ListRecordsData{Query: "ada@"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	results, data := decodeEnvelope(t, w)
	assert.True(t, domain.OK(results))

	var payload PlayerListPayload
	require.NoError(t, json.Unmarshal(data["list_player"], &payload))
	require.Len(t, payload.Players, 1)
	assert.Equal(t, "ada", payload.Players[0].WhatWeCallYou)
	assert.Equal(t, int64(1), payload.PageData.TotalCount)
}
