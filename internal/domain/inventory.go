package domain

// InventoryEntry is a single stack within an inventory.
// IsMaxStacked is true iff the item defines a max stack size and the entry
// quantity equals it; items without a max stack size are never max stacked.
type InventoryEntry struct {
	ID           int64   `json:"id,omitempty"`
	ItemID       int64   `json:"item_id"`
	Quantity     float64 `json:"quantity"`
	IsMaxStacked bool    `json:"is_max_stacked"`
}

// Inventory is an ordered container of item stacks with entry-count and
// volume capacity limits.
//
// Invariants after every successful mutation:
//   - len(Entries) <= MaxEntries
//   - LastCalculatedVolume == sum of entry volumes <= MaxVolume
type Inventory struct {
	ID                   int64            `json:"id,omitempty"`
	Owner                Owner            `json:"owner"`
	MaxEntries           int64            `json:"max_entries"`
	MaxVolume            float64          `json:"max_volume"`
	Entries              []InventoryEntry `json:"entries"`
	LastCalculatedVolume float64          `json:"last_calculated_volume"`
}

// Clone returns a deep copy.
func (inv *Inventory) Clone() *Inventory {
	if inv == nil {
		return nil
	}
	c := *inv
	c.Owner = inv.Owner.Clone()
	c.Entries = make([]InventoryEntry, len(inv.Entries))
	copy(c.Entries, inv.Entries)
	return &c
}

// TotalQuantity sums the quantity of every entry matching itemID.
func (inv *Inventory) TotalQuantity(itemID int64) float64 {
	var total float64
	for _, e := range inv.Entries {
		if e.ItemID == itemID {
			total += e.Quantity
		}
	}
	return total
}

// FindEntry returns the index of the first entry matching itemID, or -1.
func (inv *Inventory) FindEntry(itemID int64) int {
	for i, e := range inv.Entries {
		if e.ItemID == itemID {
			return i
		}
	}
	return -1
}
