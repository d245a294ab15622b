package domain

// ItemType classifies an item. VIRTUAL items do not count toward inventory
// entry or volume totals.
type ItemType int

const (
	ItemTypeVirtual         ItemType = 1
	ItemTypeContainer       ItemType = 2
	ItemTypeWeapon          ItemType = 3
	ItemTypeRawMaterial     ItemType = 4
	ItemTypeRefinedMaterial ItemType = 5
)

var itemTypeLabels = map[ItemType]string{
	ItemTypeVirtual:         "VIRTUAL",
	ItemTypeContainer:       "CONTAINER",
	ItemTypeWeapon:          "WEAPON",
	ItemTypeRawMaterial:     "RAWMATERIAL",
	ItemTypeRefinedMaterial: "REFINEDMATERIAL",
}

// String returns the label stored in the item_type column.
func (t ItemType) String() string {
	if label, ok := itemTypeLabels[t]; ok {
		return label
	}
	return "UNKNOWN"
}

// ParseItemType maps a stored label back to its type.
func ParseItemType(label string) (ItemType, bool) {
	for t, l := range itemTypeLabels {
		if l == label {
			return t, true
		}
	}
	return 0, false
}

// ItemTypeValues returns the label->integer table published by describe().
func ItemTypeValues() map[string]int32 {
	values := make(map[string]int32, len(itemTypeLabels))
	for t, label := range itemTypeLabels {
		values[label] = int32(t)
	}
	return values
}

// ItemBlueprintComponent is one ingredient of a blueprint.
type ItemBlueprintComponent struct {
	ID     int64   `json:"id,omitempty"`
	Ratio  float64 `json:"ratio"`
	ItemID int64   `json:"item_id"`
}

// ItemBlueprint is a recipe for producing an item.
type ItemBlueprint struct {
	ID         int64                            `json:"id,omitempty"`
	BakeTimeMS int64                            `json:"bake_time_ms"`
	Components map[int64]ItemBlueprintComponent `json:"components,omitempty"`
}

// Clone returns a deep copy.
func (b ItemBlueprint) Clone() ItemBlueprint {
	c := b
	if b.Components != nil {
		c.Components = make(map[int64]ItemBlueprintComponent, len(b.Components))
		for id, comp := range b.Components {
			c.Components[id] = comp
		}
	}
	return c
}

// Item is a thing that can appear in inventories. MaxStackSize nil means the
// item does not stack.
type Item struct {
	ID           int64          `json:"id,omitempty"`
	InternalName string         `json:"internal_name"`
	Attributes   AttributeMap   `json:"attributes,omitempty"`
	MaxStackSize *int64         `json:"max_stack_size,omitempty"`
	Type         ItemType       `json:"item_type"`
	Blueprint    *ItemBlueprint `json:"blueprint,omitempty"`
}

// Stackable reports whether the item has a usable max stack size.
func (i *Item) Stackable() bool {
	return i.MaxStackSize != nil && *i.MaxStackSize >= 1
}

// UnitVolume returns the volume of a single unit from the VOLUME attribute,
// or 0 when the attribute is absent.
func (i *Item) UnitVolume() float64 {
	attr, ok := i.Attributes[AttributeVolume]
	if !ok || attr.Value.DoubleValue == nil {
		return 0
	}
	return *attr.Value.DoubleValue
}

// Clone returns a deep copy.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	c.Attributes = i.Attributes.Clone()
	c.MaxStackSize = cloneInt64(i.MaxStackSize)
	if i.Blueprint != nil {
		bp := i.Blueprint.Clone()
		c.Blueprint = &bp
	}
	return &c
}
