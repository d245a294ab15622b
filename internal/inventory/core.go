// Package inventory implements the inventory operations core and the
// InventoryService built on top of it.
//
// The core functions in this file are pure: they evaluate add, remove, split
// and transfer rules over in-memory inventories and never touch storage or
// the cache. All mutations happen on scratch copies which are committed back
// to the inputs only when every rule passed, so a failed call leaves its
// inputs exactly as they were.
package inventory

import (
	"fmt"
	"math"

	"github.com/osse101/GameDB_Go/internal/domain"
)

// VolumeOf returns the volume occupied by an entry of the given item.
func VolumeOf(entry domain.InventoryEntry, item *domain.Item) float64 {
	return entry.Quantity * item.UnitVolume()
}

// RecalculateVolume recomputes LastCalculatedVolume from scratch using the
// supplied per-item unit volumes. Entries whose item is unknown contribute 0.
func RecalculateVolume(inv *domain.Inventory, unitVolumes map[int64]float64) {
	var total float64
	for _, e := range inv.Entries {
		total += e.Quantity * unitVolumes[e.ItemID]
	}
	inv.LastCalculatedVolume = total
}

// entryFreeQuantity returns how much more of item fits into the entry before
// it saturates. Non-stackable items have no free capacity.
func entryFreeQuantity(entry domain.InventoryEntry, item *domain.Item) float64 {
	if !item.Stackable() {
		return 0
	}
	free := float64(*item.MaxStackSize) - entry.Quantity
	if free < 0 {
		return 0
	}
	return free
}

// saturated reports whether the entry holds a full stack of item.
func saturated(entry domain.InventoryEntry, item *domain.Item) bool {
	return item.Stackable() && entry.Quantity == float64(*item.MaxStackSize)
}

// canAccept checks the entry-count and volume gates for adding addedVolume
// worth of item. Virtual items bypass both gates because they count toward
// neither total.
func canAccept(inv *domain.Inventory, item *domain.Item, addedVolume float64) domain.Result {
	if item.Type == domain.ItemTypeVirtual {
		return domain.Success("virtual items can always be added")
	}

	inInventory := inv.FindEntry(item.ID) != -1
	atMaxEntries := int64(len(inv.Entries)) >= inv.MaxEntries

	if !inInventory && atMaxEntries {
		return domain.Failure(domain.ErrCodeInvMaxItemsReached,
			"item is not in inventory, and inventory has reached max items")
	}
	if inInventory && atMaxEntries {
		allMaxStacked := true
		for _, e := range inv.Entries {
			if e.ItemID == item.ID && !saturated(e, item) {
				allMaxStacked = false
				break
			}
		}
		if allMaxStacked {
			return domain.Failure(domain.ErrCodeInvAllEntriesMaxStacked,
				"item is in inventory, but all entries are max stacked")
		}
	}

	newVolume := inv.LastCalculatedVolume + addedVolume
	if newVolume > inv.MaxVolume {
		return domain.Failure(domain.ErrCodeInvNewVolumeTooHigh,
			fmt.Sprintf("the new volume=%g is too high", newVolume))
	}
	return domain.Success("item can be added")
}

// Add adds quantity of item to inv, consolidating into existing
// non-saturated stacks before opening new entries. The call is all or
// nothing: on any failure inv is left untouched and the returned results end
// with the failure.
func Add(inv *domain.Inventory, item *domain.Item, quantity float64) []domain.Result {
	if quantity <= 0 {
		return []domain.Result{domain.Skip("nothing to add, quantity is not > 0")}
	}

	work := inv.Clone()
	unitVolume := item.UnitVolume()
	virtual := item.Type == domain.ItemTypeVirtual

	if result := canAccept(work, item, quantity*unitVolume); result.Status == domain.StatusFailure {
		return []domain.Result{
			result,
			domain.Failure(domain.ErrCodeInvCannotAddItem, "cannot add this item to the inventory"),
		}
	}

	var results []domain.Result
	remaining := quantity

	// Fill existing stacks first, left to right.
	if item.Stackable() {
		for i := range work.Entries {
			if remaining <= 0 {
				break
			}
			entry := &work.Entries[i]
			if entry.ItemID != item.ID {
				continue
			}
			free := entryFreeQuantity(*entry, item)
			if free <= 0 {
				entry.IsMaxStacked = saturated(*entry, item)
				continue
			}
			fill := math.Min(free, remaining)
			entry.Quantity += fill
			entry.IsMaxStacked = saturated(*entry, item)
			remaining -= fill
			if !virtual {
				work.LastCalculatedVolume += fill * unitVolume
			}
			results = append(results, domain.Success(fmt.Sprintf("incremented entry by %g", fill)))
		}
	}

	// Open new entries for whatever is left.
	for remaining > 0 {
		chunk := remaining
		if item.Stackable() {
			chunk = math.Min(remaining, float64(*item.MaxStackSize))
		}

		if !virtual {
			if int64(len(work.Entries)) >= work.MaxEntries {
				results = append(results, domain.Failure(domain.ErrCodeInvMaxItemsReached,
					fmt.Sprintf("failed to add %g to inventory, max items reached", remaining)))
				return results
			}
			cost := chunk * unitVolume
			if work.LastCalculatedVolume+cost > work.MaxVolume {
				results = append(results, domain.Failure(domain.ErrCodeInvNewVolumeTooHigh,
					fmt.Sprintf("failed to add %g to inventory, volume limit exceeded", remaining)))
				return results
			}
			work.LastCalculatedVolume += cost
		}

		entry := domain.InventoryEntry{
			ItemID:   item.ID,
			Quantity: chunk,
		}
		entry.IsMaxStacked = saturated(entry, item)
		work.Entries = append(work.Entries, entry)
		remaining -= chunk
		results = append(results, domain.Success(fmt.Sprintf("added %g to inventory", chunk)))
	}

	// The whole quantity was placed, so the final total is the exact delta
	// rather than the accumulated per-chunk updates.
	if !virtual {
		work.LastCalculatedVolume = inv.LastCalculatedVolume + quantity*unitVolume
	}

	*inv = *work
	return append(results, domain.Success("item added to inventory"))
}

// Remove subtracts quantity of item from inv, depleting entries left to
// right. If the total available is less than quantity the call fails with
// INV_INSUFFICIENT_QUANTITY and inv is untouched.
func Remove(inv *domain.Inventory, item *domain.Item, quantity float64) []domain.Result {
	if quantity <= 0 {
		return []domain.Result{domain.Failure(domain.ErrCodeInvNewQuantityInvalid,
			"quantity to remove must be > 0")}
	}

	available := inv.TotalQuantity(item.ID)
	if available == 0 {
		return []domain.Result{domain.Failure(domain.ErrCodeInvItemNotFound,
			fmt.Sprintf("item %d not found in inventory", item.ID))}
	}
	if available < quantity {
		return []domain.Result{domain.Failure(domain.ErrCodeInvInsufficientQuantity,
			fmt.Sprintf("insufficient quantity: requested %g, available %g", quantity, available))}
	}

	work := inv.Clone()
	unitVolume := item.UnitVolume()
	remaining := quantity
	var results []domain.Result

	kept := work.Entries[:0]
	for _, entry := range work.Entries {
		if entry.ItemID == item.ID && remaining > 0 {
			take := math.Min(entry.Quantity, remaining)
			entry.Quantity -= take
			remaining -= take
			if item.Type != domain.ItemTypeVirtual {
				work.LastCalculatedVolume -= take * unitVolume
			}
			if entry.Quantity <= 0 {
				results = append(results, domain.Success(
					fmt.Sprintf("removed entry for item %d, quantity reached 0", entry.ItemID)))
				continue
			}
			entry.IsMaxStacked = saturated(entry, item)
		}
		kept = append(kept, entry)
	}
	work.Entries = kept
	if work.LastCalculatedVolume < 0 {
		work.LastCalculatedVolume = 0
	}

	*inv = *work
	return append(results, domain.Success(fmt.Sprintf("removed %g of item %d", quantity, item.ID)))
}

// SplitStack splits quantityToSplit off the entry at entryIndex into a new
// entry appended at the end. Total quantity and volume are unchanged.
func SplitStack(inv *domain.Inventory, entryIndex int, quantityToSplit float64) []domain.Result {
	if entryIndex < 0 || entryIndex >= len(inv.Entries) {
		return []domain.Result{domain.Failure(domain.ErrCodeInvCouldNotFindEntry,
			fmt.Sprintf("could not find entry %d", entryIndex))}
	}
	entry := inv.Entries[entryIndex]
	if quantityToSplit <= 0 || quantityToSplit >= entry.Quantity {
		return []domain.Result{domain.Failure(domain.ErrCodeInvNewQuantityInvalid,
			"the split quantity must be positive and less than the entry quantity")}
	}
	if int64(len(inv.Entries)) >= inv.MaxEntries {
		return []domain.Result{domain.Failure(domain.ErrCodeInvFullCannotSplit,
			"inventory is full, cannot split entry")}
	}

	// Both stacks shrink below any max stack size, so neither is saturated.
	inv.Entries[entryIndex].Quantity -= quantityToSplit
	inv.Entries[entryIndex].IsMaxStacked = false
	inv.Entries = append(inv.Entries, domain.InventoryEntry{
		ItemID:       entry.ItemID,
		Quantity:     quantityToSplit,
		IsMaxStacked: false,
	})

	return []domain.Result{domain.Success("split entry")}
}

// TransferItem moves quantity of item from src to dst atomically: either both
// inventories change or neither does.
func TransferItem(src, dst *domain.Inventory, item *domain.Item, quantity float64) []domain.Result {
	if src == dst || (src.ID != 0 && src.ID == dst.ID) {
		return []domain.Result{domain.Skip("source and destination are the same inventory, nothing to do")}
	}

	virtual := item.Type == domain.ItemTypeVirtual

	// Destination volume gate.
	if !virtual {
		gained := quantity * item.UnitVolume()
		if dst.LastCalculatedVolume+gained > dst.MaxVolume {
			return []domain.Result{domain.Failure(domain.ErrCodeInvNewVolumeTooHigh,
				fmt.Sprintf("destination cannot hold %g more volume", gained))}
		}
	}

	// Destination entry-count gate, under the consolidation rules of Add.
	if !virtual && int64(len(dst.Entries))+newEntriesNeeded(dst, item, quantity) > dst.MaxEntries {
		return []domain.Result{domain.Failure(domain.ErrCodeInvMaxItemsReached,
			"destination inventory has reached max items")}
	}

	srcWork := src.Clone()
	dstWork := dst.Clone()

	removeResults := Remove(srcWork, item, quantity)
	if !domain.OK(removeResults) {
		return removeResults
	}

	addResults := Add(dstWork, item, quantity)
	if !domain.OK(addResults) {
		// src is rolled back implicitly: neither input has been committed.
		failure := domain.Failure(domain.ErrCodeInvFailedToTransfer,
			fmt.Sprintf("failed to transfer item %d with quantity %g", item.ID, quantity))
		return append([]domain.Result{failure}, addResults...)
	}

	*src = *srcWork
	*dst = *dstWork
	return []domain.Result{domain.Success(
		fmt.Sprintf("transferred %g of item %d to inventory %d", quantity, item.ID, dst.ID))}
}

// newEntriesNeeded computes how many new entries adding quantity of item to
// inv would open after filling existing non-saturated stacks.
func newEntriesNeeded(inv *domain.Inventory, item *domain.Item, quantity float64) int64 {
	remaining := quantity
	if item.Stackable() {
		for _, e := range inv.Entries {
			if e.ItemID != item.ID {
				continue
			}
			remaining -= entryFreeQuantity(e, item)
		}
		if remaining <= 0 {
			return 0
		}
		return int64(math.Ceil(remaining / float64(*item.MaxStackSize)))
	}
	if remaining > 0 {
		return 1
	}
	return 0
}
