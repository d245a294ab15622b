package domain

// AttributeType classifies an attribute. A given owner holds at most one
// attribute per type.
type AttributeType int

const (
	AttributeTranslatedName             AttributeType = 1
	AttributeTranslatedShortDescription AttributeType = 2
	AttributeTranslatedLongDescription  AttributeType = 3
	AttributeTranslatedAsset            AttributeType = 4
	AttributeUntranslatedAsset          AttributeType = 5
	AttributeQuantity                   AttributeType = 6
	AttributeGalacticPosition           AttributeType = 7
	AttributeSolarPosition              AttributeType = 8
	AttributeGlobalPosition             AttributeType = 9
	AttributeLocalPosition              AttributeType = 10
	AttributeSize                       AttributeType = 11
	AttributeItem                       AttributeType = 12
	AttributePurity                     AttributeType = 13
	AttributeVolume                     AttributeType = 14
)

var attributeTypeLabels = map[AttributeType]string{
	AttributeTranslatedName:             "TRANSLATED_NAME",
	AttributeTranslatedShortDescription: "TRANSLATED_SHORT_DESCRIPTION",
	AttributeTranslatedLongDescription:  "TRANSLATED_LONG_DESCRIPTION",
	AttributeTranslatedAsset:            "TRANSLATED_ASSET",
	AttributeUntranslatedAsset:          "UNTRANSLATED_ASSET",
	AttributeQuantity:                   "QUANTITY",
	AttributeGalacticPosition:           "GALACTIC_POSITION",
	AttributeSolarPosition:              "SOLAR_POSITION",
	AttributeGlobalPosition:             "GLOBAL_POSITION",
	AttributeLocalPosition:              "LOCAL_POSITION",
	AttributeSize:                       "SIZE",
	AttributeItem:                       "ITEM",
	AttributePurity:                     "PURITY",
	AttributeVolume:                     "VOLUME",
}

// String returns the label stored in the attribute_type column and published
// by describe().
func (t AttributeType) String() string {
	if label, ok := attributeTypeLabels[t]; ok {
		return label
	}
	return "UNKNOWN"
}

// ParseAttributeType maps a stored label back to its type.
func ParseAttributeType(label string) (AttributeType, bool) {
	for t, l := range attributeTypeLabels {
		if l == label {
			return t, true
		}
	}
	return 0, false
}

// AttributeTypeValues returns the label->integer table published by describe().
func AttributeTypeValues() map[string]int32 {
	values := make(map[string]int32, len(attributeTypeLabels))
	for t, label := range attributeTypeLabels {
		values[label] = int32(t)
	}
	return values
}

// AttributeValue holds exactly one of the four variants. Storage flattens it
// columnwise: the non-null column determines the reconstructed variant.
type AttributeValue struct {
	BoolValue   *bool    `json:"bool_value,omitempty"`
	DoubleValue *float64 `json:"double_value,omitempty"`
	Vec3Value   *Vec3    `json:"vector3_value,omitempty"`
	AssetID     *int64   `json:"asset_id,omitempty"`
}

// BoolAttributeValue builds a bool-variant value.
func BoolAttributeValue(v bool) AttributeValue { return AttributeValue{BoolValue: &v} }

// DoubleAttributeValue builds a double-variant value.
func DoubleAttributeValue(v float64) AttributeValue { return AttributeValue{DoubleValue: &v} }

// Vec3AttributeValue builds a vec3-variant value.
func Vec3AttributeValue(v Vec3) AttributeValue { return AttributeValue{Vec3Value: &v} }

// AssetAttributeValue builds an asset-variant value.
func AssetAttributeValue(id int64) AttributeValue { return AttributeValue{AssetID: &id} }

// Validate checks the exactly-one-set invariant.
func (v AttributeValue) Validate() error {
	set := 0
	if v.BoolValue != nil {
		set++
	}
	if v.DoubleValue != nil {
		set++
	}
	if v.Vec3Value != nil {
		set++
	}
	if v.AssetID != nil {
		set++
	}
	switch {
	case set == 0:
		return ErrValueNotSet
	case set > 1:
		return ErrValueAmbiguous
	default:
		return nil
	}
}

// Clone returns a deep copy.
func (v AttributeValue) Clone() AttributeValue {
	c := AttributeValue{
		BoolValue:   cloneBool(v.BoolValue),
		DoubleValue: cloneFloat64(v.DoubleValue),
		AssetID:     cloneInt64(v.AssetID),
	}
	if v.Vec3Value != nil {
		vec := *v.Vec3Value
		c.Vec3Value = &vec
	}
	return c
}

// Attribute is a typed value attached to an owning entity.
type Attribute struct {
	ID           int64          `json:"id,omitempty"`
	InternalName string         `json:"internal_name"`
	Visible      bool           `json:"visible"`
	Type         AttributeType  `json:"attribute_type"`
	Value        AttributeValue `json:"value"`
	Owner        *Owner         `json:"owner,omitempty"`
}

// Clone returns a deep copy.
func (a Attribute) Clone() Attribute {
	c := a
	c.Value = a.Value.Clone()
	if a.Owner != nil {
		o := a.Owner.Clone()
		c.Owner = &o
	}
	return c
}

// Validate checks the value variant and, when present, the owner variant.
func (a Attribute) Validate() error {
	if err := a.Value.Validate(); err != nil {
		return err
	}
	if a.Owner != nil {
		return a.Owner.Validate()
	}
	return nil
}

// AttributeMap maps attribute types to attributes for an owner. The
// at-most-one-per-type uniqueness rule is the map key invariant.
type AttributeMap map[AttributeType]Attribute

// Clone returns a deep copy.
func (m AttributeMap) Clone() AttributeMap {
	if m == nil {
		return nil
	}
	c := make(AttributeMap, len(m))
	for t, a := range m {
		c[t] = a.Clone()
	}
	return c
}
