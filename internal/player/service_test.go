package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameDB_Go/internal/cache"
	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/repository"
)

func newTestService(t *testing.T, now time.Time) (Service, *repository.FakePlayer) {
	t.Helper()
	playerCache, err := cache.New[*domain.Player](16)
	require.NoError(t, err)
	store := repository.NewFakePlayer()
	svc := NewService(store, playerCache).(*service)
	svc.now = func() time.Time { return now }
	return svc, store
}

func testPlayer(yearOfBirth int64) *domain.Player {
	return &domain.Player{
		FullName:      "Ada Lovelace",
		WhatWeCallYou: "Ada",
		SecurityToken: "s3cret",
		YearOfBirth:   yearOfBirth,
		Email:         "ada@example.com",
	}
}

func TestPlayerCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("recomputes over_13 server side", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		player := testPlayer(2020)
		player.Over13 = true // client lies

		results, created := svc.Create(ctx, player)

		require.True(t, domain.OK(results))
		require.NotNil(t, created)
		assert.False(t, created.Over13)
		assert.NotZero(t, created.ID)
	})

	t.Run("adult year of birth sets over_13", func(t *testing.T) {
		svc, _ := newTestService(t, now)

		_, created := svc.Create(ctx, testPlayer(2010))

		require.NotNil(t, created)
		assert.True(t, created.Over13)
	})

	t.Run("rejects a missing full name", func(t *testing.T) {
		svc, store := newTestService(t, now)
		player := testPlayer(2010)
		player.FullName = ""

		results, created := svc.Create(ctx, player)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeDBInvalidData, results[0].ErrorCode)
		assert.Nil(t, created)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("rejects a companion mobile owned by an item", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		player := testPlayer(2010)
		owner := domain.ItemOwner(3)
		player.Mobile = &domain.Mobile{Type: domain.MobileTypePlayer, Owner: &owner}

		results, created := svc.Create(ctx, player)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeDBInvalidData, results[0].ErrorCode)
		assert.Nil(t, created)
	})
}

func TestPlayerLoadSaveDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("round trip through save and load", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		_, created := svc.Create(ctx, testPlayer(2010))

		created.WhatWeCallYou = "Countess"
		results, saved := svc.Save(ctx, created)
		require.True(t, domain.OK(results))
		assert.Equal(t, created.ID, saved.ID)

		loadResults, loaded := svc.Load(ctx, created.ID)
		require.True(t, domain.OK(loadResults))
		assert.Equal(t, "Countess", loaded.WhatWeCallYou)
	})

	t.Run("delete removes the row and the cache slot", func(t *testing.T) {
		svc, store := newTestService(t, now)
		_, created := svc.Create(ctx, testPlayer(2010))

		results := svc.Delete(ctx, created.ID)
		require.True(t, domain.OK(results))
		assert.Equal(t, 0, store.Len())

		loadResults, loaded := svc.Load(ctx, created.ID)
		assert.Equal(t, domain.ErrCodeDBRecordNotFound, loadResults[0].ErrorCode)
		assert.Nil(t, loaded)
	})

	t.Run("delete of a missing player fails", func(t *testing.T) {
		svc, _ := newTestService(t, now)

		results := svc.Delete(ctx, 404)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeDBRecordNotFound, results[0].ErrorCode)
	})
}

func TestPlayerListRecords(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	for _, name := range []string{"Ada Lovelace", "Alan Turing", "Grace Hopper"} {
		p := testPlayer(2000)
		p.FullName = name
		_, created := svc.Create(ctx, p)
		require.NotNil(t, created)
	}

	results, players, total := svc.ListRecords(ctx, "a", 0, 2)
	require.True(t, domain.OK(results))
	assert.Equal(t, int64(3), total)
	assert.Len(t, players, 2)

	_, rest, _ := svc.ListRecords(ctx, "a", 1, 2)
	assert.Len(t, rest, 1)
}

func TestPlayerDescribe(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	meta := svc.Describe(context.Background())

	require.NotNil(t, meta)
	assert.Equal(t, "PlayerService", meta.ServiceName)
	require.NotEmpty(t, meta.Methods)
	for _, m := range meta.Methods {
		assert.NotEmpty(t, m.ExampleRequest, m.MethodName)
	}
}
