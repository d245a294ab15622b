package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameDB_Go/internal/domain"
)

func stackableItem(id, maxStack int64, unitVolume float64) *domain.Item {
	item := &domain.Item{
		ID:           id,
		InternalName: "test_item",
		Type:         domain.ItemTypeRawMaterial,
		MaxStackSize: &maxStack,
	}
	if unitVolume > 0 {
		item.Attributes = domain.AttributeMap{
			domain.AttributeVolume: {
				InternalName: "volume",
				Type:         domain.AttributeVolume,
				Value:        domain.DoubleAttributeValue(unitVolume),
			},
		}
	}
	return item
}

func simpleItem(id int64, unitVolume float64) *domain.Item {
	item := stackableItem(id, 1, unitVolume)
	item.MaxStackSize = nil
	return item
}

func virtualItem(id int64) *domain.Item {
	return &domain.Item{ID: id, InternalName: "achievement", Type: domain.ItemTypeVirtual}
}

func testInventory(maxEntries int64, maxVolume float64, entries ...domain.InventoryEntry) *domain.Inventory {
	inv := &domain.Inventory{
		ID:         1,
		MaxEntries: maxEntries,
		MaxVolume:  maxVolume,
		Entries:    entries,
	}
	return inv
}

func lastResult(t *testing.T, results []domain.Result) domain.Result {
	t.Helper()
	require.NotEmpty(t, results)
	return results[len(results)-1]
}

func TestAdd(t *testing.T) {
	t.Run("creates a new entry", func(t *testing.T) {
		inv := testInventory(5, 100)
		item := stackableItem(7, 10, 2)

		results := Add(inv, item, 4)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 1)
		assert.Equal(t, int64(7), inv.Entries[0].ItemID)
		assert.Equal(t, 4.0, inv.Entries[0].Quantity)
		assert.False(t, inv.Entries[0].IsMaxStacked)
		assert.Equal(t, 8.0, inv.LastCalculatedVolume)
	})

	t.Run("consolidates into existing stacks left to right", func(t *testing.T) {
		inv := testInventory(5, 1000,
			domain.InventoryEntry{ItemID: 7, Quantity: 8},
			domain.InventoryEntry{ItemID: 9, Quantity: 1},
			domain.InventoryEntry{ItemID: 7, Quantity: 3},
		)
		item := stackableItem(7, 10, 0)

		results := Add(inv, item, 5)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 3)
		assert.Equal(t, 10.0, inv.Entries[0].Quantity)
		assert.True(t, inv.Entries[0].IsMaxStacked)
		assert.Equal(t, 6.0, inv.Entries[2].Quantity)
		assert.False(t, inv.Entries[2].IsMaxStacked)
	})

	t.Run("overflow opens new max stacks", func(t *testing.T) {
		inv := testInventory(5, 1000)
		item := stackableItem(7, 10, 0)

		results := Add(inv, item, 25)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 3)
		assert.Equal(t, 10.0, inv.Entries[0].Quantity)
		assert.True(t, inv.Entries[0].IsMaxStacked)
		assert.Equal(t, 10.0, inv.Entries[1].Quantity)
		assert.True(t, inv.Entries[1].IsMaxStacked)
		assert.Equal(t, 5.0, inv.Entries[2].Quantity)
		assert.False(t, inv.Entries[2].IsMaxStacked)
		assert.Equal(t, 25.0, inv.TotalQuantity(7))
	})

	t.Run("non-stackable items get one entry each call", func(t *testing.T) {
		inv := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 2})
		item := simpleItem(7, 0)

		results := Add(inv, item, 3)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 2)
		assert.Equal(t, 2.0, inv.Entries[0].Quantity)
		assert.Equal(t, 3.0, inv.Entries[1].Quantity)
	})

	t.Run("rejects a new item when max entries reached", func(t *testing.T) {
		inv := testInventory(1, 1000, domain.InventoryEntry{ItemID: 1, Quantity: 1})
		before := inv.Clone()
		item := stackableItem(7, 10, 0)

		results := Add(inv, item, 1)

		require.Len(t, results, 2)
		assert.Equal(t, domain.StatusFailure, results[0].Status)
		assert.Equal(t, domain.ErrCodeInvMaxItemsReached, results[0].ErrorCode)
		assert.Equal(t, domain.ErrCodeInvCannotAddItem, results[1].ErrorCode)
		assert.Equal(t, before, inv)
	})

	t.Run("rejects when all entries are max stacked and inventory is full", func(t *testing.T) {
		inv := testInventory(1, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 10, IsMaxStacked: true})
		before := inv.Clone()
		item := stackableItem(7, 10, 0)

		results := Add(inv, item, 1)

		require.Len(t, results, 2)
		assert.Equal(t, domain.ErrCodeInvAllEntriesMaxStacked, results[0].ErrorCode)
		assert.Equal(t, domain.ErrCodeInvCannotAddItem, results[1].ErrorCode)
		assert.Equal(t, before, inv)
	})

	t.Run("still consolidates into a full inventory with free stack space", func(t *testing.T) {
		inv := testInventory(1, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 4})
		item := stackableItem(7, 10, 0)

		results := Add(inv, item, 6)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 1)
		assert.Equal(t, 10.0, inv.Entries[0].Quantity)
		assert.True(t, inv.Entries[0].IsMaxStacked)
	})

	t.Run("rejects when the new volume is too high", func(t *testing.T) {
		inv := testInventory(5, 10)
		inv.LastCalculatedVolume = 6
		before := inv.Clone()
		item := stackableItem(7, 10, 1)

		results := Add(inv, item, 5)

		last := lastResult(t, results)
		assert.Equal(t, domain.StatusFailure, results[0].Status)
		assert.Equal(t, domain.ErrCodeInvNewVolumeTooHigh, results[0].ErrorCode)
		assert.Equal(t, domain.ErrCodeInvCannotAddItem, last.ErrorCode)
		assert.Equal(t, before, inv)
	})

	t.Run("failure after partial placement leaves the inventory untouched", func(t *testing.T) {
		// Two full stacks fit the entry budget, the third does not. The
		// consolidation into entry 0 must be rolled back with the rest.
		inv := testInventory(2, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 4})
		before := inv.Clone()
		item := stackableItem(7, 10, 0)

		results := Add(inv, item, 26)

		last := lastResult(t, results)
		assert.Equal(t, domain.StatusFailure, last.Status)
		assert.Equal(t, domain.ErrCodeInvMaxItemsReached, last.ErrorCode)
		assert.Equal(t, before, inv)
	})

	t.Run("virtual items bypass entry and volume limits", func(t *testing.T) {
		inv := testInventory(1, 1, domain.InventoryEntry{ItemID: 1, Quantity: 1})
		inv.LastCalculatedVolume = 1
		item := virtualItem(42)

		results := Add(inv, item, 3)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 2)
		assert.Equal(t, int64(42), inv.Entries[1].ItemID)
		assert.Equal(t, 3.0, inv.Entries[1].Quantity)
		assert.Equal(t, 1.0, inv.LastCalculatedVolume)
	})

	t.Run("non-positive quantity is a skip", func(t *testing.T) {
		inv := testInventory(5, 100)
		before := inv.Clone()

		results := Add(inv, stackableItem(7, 10, 0), 0)

		require.Len(t, results, 1)
		assert.Equal(t, domain.StatusSkip, results[0].Status)
		assert.Equal(t, before, inv)
	})
}

func TestRemove(t *testing.T) {
	t.Run("depletes entries left to right and drops empty ones", func(t *testing.T) {
		inv := testInventory(5, 1000,
			domain.InventoryEntry{ItemID: 7, Quantity: 3},
			domain.InventoryEntry{ItemID: 9, Quantity: 2},
			domain.InventoryEntry{ItemID: 7, Quantity: 5},
		)
		item := stackableItem(7, 10, 1)
		inv.LastCalculatedVolume = 8

		results := Remove(inv, item, 4)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 2)
		assert.Equal(t, int64(9), inv.Entries[0].ItemID)
		assert.Equal(t, int64(7), inv.Entries[1].ItemID)
		assert.Equal(t, 4.0, inv.Entries[1].Quantity)
		assert.Equal(t, 4.0, inv.LastCalculatedVolume)
	})

	t.Run("clears the max stacked flag on a drained stack", func(t *testing.T) {
		inv := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 10, IsMaxStacked: true})
		item := stackableItem(7, 10, 0)

		results := Remove(inv, item, 1)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 1)
		assert.Equal(t, 9.0, inv.Entries[0].Quantity)
		assert.False(t, inv.Entries[0].IsMaxStacked)
	})

	t.Run("fails when the item is absent", func(t *testing.T) {
		inv := testInventory(5, 1000, domain.InventoryEntry{ItemID: 1, Quantity: 1})
		before := inv.Clone()

		results := Remove(inv, stackableItem(7, 10, 0), 1)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeInvItemNotFound, results[0].ErrorCode)
		assert.Equal(t, before, inv)
	})

	t.Run("fails on insufficient quantity without mutating", func(t *testing.T) {
		inv := testInventory(5, 1000,
			domain.InventoryEntry{ItemID: 7, Quantity: 2},
			domain.InventoryEntry{ItemID: 7, Quantity: 1},
		)
		before := inv.Clone()

		results := Remove(inv, stackableItem(7, 10, 0), 4)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeInvInsufficientQuantity, results[0].ErrorCode)
		assert.Equal(t, before, inv)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		inv := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 2})
		before := inv.Clone()

		results := Remove(inv, stackableItem(7, 10, 0), -1)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeInvNewQuantityInvalid, results[0].ErrorCode)
		assert.Equal(t, before, inv)
	})
}

func TestSplitStack(t *testing.T) {
	t.Run("splits an entry into two", func(t *testing.T) {
		inv := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 10, IsMaxStacked: true})
		inv.LastCalculatedVolume = 20

		results := SplitStack(inv, 0, 4)

		assert.True(t, domain.OK(results))
		require.Len(t, inv.Entries, 2)
		assert.Equal(t, 6.0, inv.Entries[0].Quantity)
		assert.False(t, inv.Entries[0].IsMaxStacked)
		assert.Equal(t, int64(7), inv.Entries[1].ItemID)
		assert.Equal(t, 4.0, inv.Entries[1].Quantity)
		assert.False(t, inv.Entries[1].IsMaxStacked)
		assert.Equal(t, 20.0, inv.LastCalculatedVolume)
	})

	t.Run("fails on an unknown entry index", func(t *testing.T) {
		inv := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 10})
		before := inv.Clone()

		for _, index := range []int{-1, 1, 99} {
			results := SplitStack(inv, index, 2)
			require.Len(t, results, 1)
			assert.Equal(t, domain.ErrCodeInvCouldNotFindEntry, results[0].ErrorCode)
		}
		assert.Equal(t, before, inv)
	})

	t.Run("fails on an invalid split quantity", func(t *testing.T) {
		inv := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 10})
		before := inv.Clone()

		for _, quantity := range []float64{0, -3, 10, 11} {
			results := SplitStack(inv, 0, quantity)
			require.Len(t, results, 1)
			assert.Equal(t, domain.ErrCodeInvNewQuantityInvalid, results[0].ErrorCode)
		}
		assert.Equal(t, before, inv)
	})

	t.Run("fails when the inventory is full", func(t *testing.T) {
		inv := testInventory(1, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 10})
		before := inv.Clone()

		results := SplitStack(inv, 0, 4)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeInvFullCannotSplit, results[0].ErrorCode)
		assert.Equal(t, before, inv)
	})
}

func TestTransferItem(t *testing.T) {
	t.Run("moves quantity between inventories", func(t *testing.T) {
		src := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 8})
		dst := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 2})
		dst.ID = 2
		item := stackableItem(7, 10, 1)
		src.LastCalculatedVolume = 8
		dst.LastCalculatedVolume = 2

		results := TransferItem(src, dst, item, 5)

		assert.True(t, domain.OK(results))
		assert.Equal(t, 3.0, src.TotalQuantity(7))
		assert.Equal(t, 7.0, dst.TotalQuantity(7))
		assert.Equal(t, 3.0, src.LastCalculatedVolume)
		assert.Equal(t, 7.0, dst.LastCalculatedVolume)
	})

	t.Run("same inventory is a skip", func(t *testing.T) {
		inv := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 8})
		before := inv.Clone()

		results := TransferItem(inv, inv, stackableItem(7, 10, 0), 5)

		require.Len(t, results, 1)
		assert.Equal(t, domain.StatusSkip, results[0].Status)
		assert.Equal(t, before, inv)
	})

	t.Run("fails when the destination volume would be exceeded", func(t *testing.T) {
		src := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 8})
		dst := testInventory(5, 3)
		dst.ID = 2
		srcBefore := src.Clone()
		dstBefore := dst.Clone()

		results := TransferItem(src, dst, stackableItem(7, 10, 1), 5)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeInvNewVolumeTooHigh, results[0].ErrorCode)
		assert.Equal(t, srcBefore, src)
		assert.Equal(t, dstBefore, dst)
	})

	t.Run("fails when the destination entry budget would be exceeded", func(t *testing.T) {
		src := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 20})
		dst := testInventory(1, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 10, IsMaxStacked: true})
		dst.ID = 2
		srcBefore := src.Clone()
		dstBefore := dst.Clone()

		results := TransferItem(src, dst, stackableItem(7, 10, 0), 5)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeInvMaxItemsReached, results[0].ErrorCode)
		assert.Equal(t, srcBefore, src)
		assert.Equal(t, dstBefore, dst)
	})

	t.Run("propagates a source removal failure", func(t *testing.T) {
		src := testInventory(5, 1000, domain.InventoryEntry{ItemID: 7, Quantity: 2})
		dst := testInventory(5, 1000)
		dst.ID = 2
		srcBefore := src.Clone()
		dstBefore := dst.Clone()

		results := TransferItem(src, dst, stackableItem(7, 10, 0), 5)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeInvInsufficientQuantity, results[0].ErrorCode)
		assert.Equal(t, srcBefore, src)
		assert.Equal(t, dstBefore, dst)
	})

	t.Run("source item not found propagates", func(t *testing.T) {
		src := testInventory(5, 1000)
		dst := testInventory(5, 1000)
		dst.ID = 2

		results := TransferItem(src, dst, stackableItem(7, 10, 0), 5)

		require.Len(t, results, 1)
		assert.Equal(t, domain.ErrCodeInvItemNotFound, results[0].ErrorCode)
	})

	t.Run("virtual items transfer past full destinations", func(t *testing.T) {
		src := testInventory(5, 1000, domain.InventoryEntry{ItemID: 42, Quantity: 3})
		dst := testInventory(1, 1, domain.InventoryEntry{ItemID: 1, Quantity: 1})
		dst.ID = 2
		dst.LastCalculatedVolume = 1

		results := TransferItem(src, dst, virtualItem(42), 3)

		assert.True(t, domain.OK(results))
		assert.Equal(t, 0.0, src.TotalQuantity(42))
		assert.Equal(t, 3.0, dst.TotalQuantity(42))
	})
}
