package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/GameDB_Go/internal/domain"
)

// Owner columns of the attribute_owners junction table.
const (
	ownerColPlayer = "player_id"
	ownerColMobile = "mobile_id"
	ownerColItem   = "item_id"
	ownerColAsset  = "asset_id"
)

func ownerColumn(kind domain.OwnerKind) string {
	switch kind {
	case domain.OwnerKindPlayer:
		return ownerColPlayer
	case domain.OwnerKindMobile:
		return ownerColMobile
	case domain.OwnerKindItem:
		return ownerColItem
	default:
		return ownerColAsset
	}
}

// loadAttributes fetches the attribute map attached to one owning row.
func loadAttributes(ctx context.Context, tx pgx.Tx, column string, ownerID int64) (domain.AttributeMap, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.internal_name, a.visible, a.attribute_type,
		       a.bool_value, a.double_value,
		       a.vector3_x, a.vector3_y, a.vector3_z, a.asset_id
		FROM attributes a
		JOIN attribute_owners ao ON ao.attribute_id = a.id
		WHERE ao.%s = $1
		ORDER BY a.id`, column)

	rows, err := tx.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attributes: %w", translateError(err))
	}
	defer rows.Close()

	attrs := make(domain.AttributeMap)
	for rows.Next() {
		var (
			attr      domain.Attribute
			typeLabel string
			boolVal   *bool
			doubleVal *float64
			vecX      *float64
			vecY      *float64
			vecZ      *float64
			assetID   *int64
		)
		if err := rows.Scan(&attr.ID, &attr.InternalName, &attr.Visible, &typeLabel,
			&boolVal, &doubleVal, &vecX, &vecY, &vecZ, &assetID); err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}

		attrType, ok := domain.ParseAttributeType(typeLabel)
		if !ok {
			return nil, fmt.Errorf("%w: unknown attribute type %q", domain.ErrInvalidData, typeLabel)
		}
		attr.Type = attrType
		attr.Value, err = attributeValueFromColumns(boolVal, doubleVal, vecX, vecY, vecZ, assetID)
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", attr.ID, err)
		}
		attrs[attr.Type] = attr
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attributes: %w", err)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}

// attributeValueFromColumns rebuilds the value variant from the non-null
// column. The three vector columns count as one variant.
func attributeValueFromColumns(boolVal *bool, doubleVal, vecX, vecY, vecZ *float64, assetID *int64) (domain.AttributeValue, error) {
	var value domain.AttributeValue
	switch {
	case boolVal != nil:
		value = domain.BoolAttributeValue(*boolVal)
	case doubleVal != nil:
		value = domain.DoubleAttributeValue(*doubleVal)
	case vecX != nil && vecY != nil && vecZ != nil:
		value = domain.Vec3AttributeValue(domain.Vec3{X: *vecX, Y: *vecY, Z: *vecZ})
	case assetID != nil:
		value = domain.AssetAttributeValue(*assetID)
	default:
		return value, fmt.Errorf("%w: attribute row has no value variant set", domain.ErrInvalidData)
	}
	return value, nil
}

// replaceAttributes deletes the owner's attributes and rewrites them from
// the map. Attribute IDs are reassigned; the junction rows cascade away
// with their attributes.
func replaceAttributes(ctx context.Context, tx pgx.Tx, column string, ownerID int64, attrs domain.AttributeMap) error {
	deleteSQL := fmt.Sprintf(`
		DELETE FROM attributes
		WHERE id IN (SELECT attribute_id FROM attribute_owners WHERE %s = $1)`, column)
	if _, err := tx.Exec(ctx, deleteSQL, ownerID); err != nil {
		return fmt.Errorf("failed to delete attributes: %w", translateError(err))
	}

	insertOwnerSQL := fmt.Sprintf(
		`INSERT INTO attribute_owners (attribute_id, %s) VALUES ($1, $2)`, column)

	for _, attr := range attrs {
		if err := attr.Validate(); err != nil {
			return fmt.Errorf("attribute %q: %w", attr.InternalName, err)
		}

		var vecX, vecY, vecZ *float64
		if attr.Value.Vec3Value != nil {
			vecX = &attr.Value.Vec3Value.X
			vecY = &attr.Value.Vec3Value.Y
			vecZ = &attr.Value.Vec3Value.Z
		}

		var attributeID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO attributes (internal_name, visible, attribute_type,
			                        bool_value, double_value,
			                        vector3_x, vector3_y, vector3_z, asset_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			attr.InternalName, attr.Visible, attr.Type.String(),
			attr.Value.BoolValue, attr.Value.DoubleValue,
			vecX, vecY, vecZ, attr.Value.AssetID,
		).Scan(&attributeID)
		if err != nil {
			return fmt.Errorf("failed to insert attribute: %w", translateError(err))
		}

		if _, err := tx.Exec(ctx, insertOwnerSQL, attributeID, ownerID); err != nil {
			return fmt.Errorf("failed to insert attribute owner: %w", translateError(err))
		}
	}
	return nil
}
