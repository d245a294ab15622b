package domain

// Vec3 is a three-component position or direction value.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Owner identifies which kind of entity holds an attribute or inventory.
// Exactly one id must be set; Validate enforces the invariant on construction
// and on load.
type Owner struct {
	PlayerID *int64 `json:"player_id,omitempty"`
	MobileID *int64 `json:"mobile_id,omitempty"`
	ItemID   *int64 `json:"item_id,omitempty"`
	AssetID  *int64 `json:"asset_id,omitempty"`
}

// OwnerKind names the variant of an Owner.
type OwnerKind string

const (
	OwnerKindPlayer OwnerKind = "player"
	OwnerKindMobile OwnerKind = "mobile"
	OwnerKindItem   OwnerKind = "item"
	OwnerKindAsset  OwnerKind = "asset"
)

// PlayerOwner builds an Owner pointing at a player.
func PlayerOwner(id int64) Owner { return Owner{PlayerID: &id} }

// MobileOwner builds an Owner pointing at a mobile.
func MobileOwner(id int64) Owner { return Owner{MobileID: &id} }

// ItemOwner builds an Owner pointing at an item.
func ItemOwner(id int64) Owner { return Owner{ItemID: &id} }

// AssetOwner builds an Owner pointing at an asset.
func AssetOwner(id int64) Owner { return Owner{AssetID: &id} }

// Validate checks the exactly-one-set invariant.
func (o Owner) Validate() error {
	set := 0
	for _, id := range []*int64{o.PlayerID, o.MobileID, o.ItemID, o.AssetID} {
		if id != nil {
			set++
		}
	}
	switch {
	case set == 0:
		return ErrOwnerNotSet
	case set > 1:
		return ErrOwnerAmbiguous
	default:
		return nil
	}
}

// Kind returns the variant name and its id. The second return is false when
// the owner is unset or ambiguous.
func (o Owner) Kind() (OwnerKind, int64, bool) {
	if err := o.Validate(); err != nil {
		return "", 0, false
	}
	switch {
	case o.PlayerID != nil:
		return OwnerKindPlayer, *o.PlayerID, true
	case o.MobileID != nil:
		return OwnerKindMobile, *o.MobileID, true
	case o.ItemID != nil:
		return OwnerKindItem, *o.ItemID, true
	default:
		return OwnerKindAsset, *o.AssetID, true
	}
}

// Clone returns a deep copy.
func (o Owner) Clone() Owner {
	return Owner{
		PlayerID: cloneInt64(o.PlayerID),
		MobileID: cloneInt64(o.MobileID),
		ItemID:   cloneInt64(o.ItemID),
		AssetID:  cloneInt64(o.AssetID),
	}
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat64(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
