package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOwnerValidate(t *testing.T) {
	assert.NoError(t, PlayerOwner(1).Validate())
	assert.NoError(t, MobileOwner(100).Validate())

	var empty Owner
	assert.ErrorIs(t, empty.Validate(), ErrOwnerNotSet)

	p, m := int64(1), int64(2)
	both := Owner{PlayerID: &p, MobileID: &m}
	assert.ErrorIs(t, both.Validate(), ErrOwnerAmbiguous)
}

func TestOwnerKind(t *testing.T) {
	kind, id, ok := ItemOwner(7).Kind()
	assert.True(t, ok)
	assert.Equal(t, OwnerKindItem, kind)
	assert.Equal(t, int64(7), id)

	_, _, ok = Owner{}.Kind()
	assert.False(t, ok)
}

func TestAttributeValueValidate(t *testing.T) {
	assert.NoError(t, DoubleAttributeValue(1.5).Validate())
	assert.NoError(t, Vec3AttributeValue(Vec3{X: 1, Y: 2, Z: 3}).Validate())

	var empty AttributeValue
	assert.ErrorIs(t, empty.Validate(), ErrValueNotSet)

	b, d := true, 2.0
	both := AttributeValue{BoolValue: &b, DoubleValue: &d}
	assert.ErrorIs(t, both.Validate(), ErrValueAmbiguous)
}

func TestMobileOwnerKindRestriction(t *testing.T) {
	owner := ItemOwner(5)
	m := &Mobile{Type: MobileTypeNPC, Owner: &owner, WhatWeCallYou: "crate-bot"}
	assert.ErrorIs(t, m.ValidateOwner(), ErrOwnerKindRejected)

	playerOwner := PlayerOwner(1)
	m.Owner = &playerOwner
	assert.NoError(t, m.ValidateOwner())
}

func TestInventoryCloneIsDeep(t *testing.T) {
	inv := &Inventory{
		ID:         1,
		Owner:      MobileOwner(100),
		MaxEntries: 10,
		MaxVolume:  500,
		Entries: []InventoryEntry{
			{ItemID: 5, Quantity: 100},
		},
	}

	c := inv.Clone()
	c.Entries[0].Quantity = 1
	*c.Owner.MobileID = 999

	assert.Equal(t, float64(100), inv.Entries[0].Quantity)
	assert.Equal(t, int64(100), *inv.Owner.MobileID)
}

func TestPlayerCloneIsDeep(t *testing.T) {
	owner := PlayerOwner(1)
	p := &Player{
		ID:       1,
		FullName: "Ada Lovelace",
		Mobile:   &Mobile{ID: 2, Type: MobileTypePlayer, Owner: &owner},
	}

	c := p.Clone()
	c.Mobile.WhatWeCallYou = "changed"
	*c.Mobile.Owner.PlayerID = 42

	assert.Empty(t, p.Mobile.WhatWeCallYou)
	assert.Equal(t, int64(1), *p.Mobile.Owner.PlayerID)
}

func TestItemCloneIsDeep(t *testing.T) {
	stack := int64(100)
	item := &Item{
		ID:           5,
		InternalName: "steel",
		MaxStackSize: &stack,
		Type:         ItemTypeRawMaterial,
		Attributes: AttributeMap{
			AttributeVolume: {Type: AttributeVolume, Value: DoubleAttributeValue(2)},
		},
	}

	c := item.Clone()
	*c.MaxStackSize = 1
	attr := c.Attributes[AttributeVolume]
	*attr.Value.DoubleValue = 99

	assert.Equal(t, int64(100), *item.MaxStackSize)
	assert.Equal(t, float64(2), item.UnitVolume())
}

func TestRecomputeOver13(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	p := &Player{YearOfBirth: 2000, Over13: false}
	p.RecomputeOver13(now)
	assert.True(t, p.Over13)

	p = &Player{YearOfBirth: 2020, Over13: true}
	p.RecomputeOver13(now)
	assert.False(t, p.Over13)
}

func TestResultOK(t *testing.T) {
	assert.True(t, OK(nil))
	assert.True(t, OK([]Result{Success("a"), Skip("b")}))
	assert.False(t, OK([]Result{Success("a"), Failure(ErrCodeInvFailedToAdd, "b")}))

	r, found := FirstError([]Result{Success("a"), Failure(ErrCodeInvItemNotFound, "missing")})
	assert.True(t, found)
	assert.Equal(t, ErrCodeInvItemNotFound, r.ErrorCode)
}

func TestEnumLabelTables(t *testing.T) {
	assert.Equal(t, "SUCCESS", StatusSuccess.String())
	assert.Equal(t, "DB_RECORD_NOT_FOUND", ErrCodeDBRecordNotFound.String())
	assert.Equal(t, "VOLUME", AttributeVolume.String())
	assert.Equal(t, "RAWMATERIAL", ItemTypeRawMaterial.String())

	parsed, ok := ParseAttributeType("QUANTITY")
	assert.True(t, ok)
	assert.Equal(t, AttributeQuantity, parsed)

	it, ok := ParseItemType("VIRTUAL")
	assert.True(t, ok)
	assert.Equal(t, ItemTypeVirtual, it)

	_, ok = ParseItemType("nope")
	assert.False(t, ok)
}

func TestErrorCodeFor(t *testing.T) {
	assert.Equal(t, ErrCodeDBRecordNotFound, ErrorCodeFor(ErrRecordNotFound, ErrCodeDBQueryFailed))
	assert.Equal(t, ErrCodeDBInvalidData, ErrorCodeFor(ErrOwnerAmbiguous, ErrCodeDBQueryFailed))
	assert.Equal(t, ErrCodeDBInsertFailed, ErrorCodeFor(assert.AnError, ErrCodeDBInsertFailed))
}
