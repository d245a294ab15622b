package domain

// MobileType classifies a mobile. Every player has a companion mobile of type
// PLAYER owned by that player.
type MobileType int

const (
	MobileTypePlayer MobileType = 1
	MobileTypeNPC    MobileType = 2
	MobileTypeDrone  MobileType = 3
)

var mobileTypeLabels = map[MobileType]string{
	MobileTypePlayer: "PLAYER",
	MobileTypeNPC:    "NPC",
	MobileTypeDrone:  "DRONE",
}

// String returns the label stored in the mobile_type column.
func (t MobileType) String() string {
	if label, ok := mobileTypeLabels[t]; ok {
		return label
	}
	return "UNKNOWN"
}

// MobileTypeValues returns the label->integer table published by describe().
func MobileTypeValues() map[string]int32 {
	values := make(map[string]int32, len(mobileTypeLabels))
	for t, label := range mobileTypeLabels {
		values[label] = int32(t)
	}
	return values
}

// ParseMobileType maps a stored label back to its type.
func ParseMobileType(label string) (MobileType, bool) {
	for t, l := range mobileTypeLabels {
		if l == label {
			return t, true
		}
	}
	return 0, false
}

// Mobile is an in-world actor. Valid owner kinds are restricted to player and
// mobile; other kinds are rejected before persistence.
type Mobile struct {
	ID            int64        `json:"id,omitempty"`
	Type          MobileType   `json:"mobile_type"`
	Owner         *Owner       `json:"owner,omitempty"`
	WhatWeCallYou string       `json:"what_we_call_you"`
	Attributes    AttributeMap `json:"attributes,omitempty"`
}

// ValidateOwner enforces the narrower owner surface for mobiles.
func (m *Mobile) ValidateOwner() error {
	if m.Owner == nil {
		return nil
	}
	kind, _, ok := m.Owner.Kind()
	if !ok {
		return m.Owner.Validate()
	}
	if kind != OwnerKindPlayer && kind != OwnerKindMobile {
		return ErrOwnerKindRejected
	}
	return nil
}

// Clone returns a deep copy.
func (m *Mobile) Clone() *Mobile {
	if m == nil {
		return nil
	}
	c := *m
	if m.Owner != nil {
		o := m.Owner.Clone()
		c.Owner = &o
	}
	c.Attributes = m.Attributes.Clone()
	return &c
}
