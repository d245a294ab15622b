package item

import (
	"context"

	"github.com/osse101/GameDB_Go/internal/domain"
)

const serviceVersion = "1.0.0"

// Describe returns the discovery metadata for the item service.
func (s *service) Describe(ctx context.Context) *domain.ServiceMetadata {
	itemEnumFields := []domain.FieldEnumMapping{
		{FieldPath: "item.item_type", EnumName: "ItemType"},
	}

	return &domain.ServiceMetadata{
		ServiceName: "ItemService",
		Version:     serviceVersion,
		Description: "Persists items, their attributes and their blueprints",
		Methods: []domain.MethodDescription{
			{
				MethodName:  "create",
				Description: "Create a new item, writing its blueprint first",
				ExampleRequest: `{"data": {"create_item": {"item": {"internal_name": "iron_ore", ` +
					`"item_type": 4, "max_stack_size": 50, ` +
					`"attributes": {"14": {"internal_name": "volume", "visible": true, "attribute_type": 14, "value": {"double_value": 0.5}}}}}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "created item 1"}], ` +
					`"response_data": {"create_item": {"item": {"id": 1, "internal_name": "iron_ore", "item_type": 4, "max_stack_size": 50}}}}`,
				RequestEnumFields:  itemEnumFields,
				ResponseEnumFields: append(domain.CommonResponseEnumFields(), itemEnumFields...),
			},
			{
				MethodName:     "load",
				Description:    "Load an item by ID",
				ExampleRequest: `{"data": {"load_item": {"item_id": 1}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "loaded item"}], ` +
					`"response_data": {"load_item": {"item": {"id": 1, "internal_name": "iron_ore", "item_type": 4}}}}`,
				ResponseEnumFields: append(domain.CommonResponseEnumFields(), itemEnumFields...),
			},
			{
				MethodName:  "save",
				Description: "Create or update an item, dispatching on ID presence",
				ExampleRequest: `{"data": {"save_item": {"item": {"id": 1, "internal_name": "iron_ore", ` +
					`"item_type": 4, "max_stack_size": 100}}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "saved item 1"}], ` +
					`"response_data": {"save_item": {"item": {"id": 1, "internal_name": "iron_ore", "item_type": 4, "max_stack_size": 100}}}}`,
				RequestEnumFields:  itemEnumFields,
				ResponseEnumFields: append(domain.CommonResponseEnumFields(), itemEnumFields...),
			},
			{
				MethodName:         "destroy",
				Description:        "Delete an item, cascading attributes, blueprint components and inventory entries",
				ExampleRequest:     `{"data": {"destroy_item": {"item_id": 1}}}`,
				ExampleResponse:    `{"results": [{"status": 1, "message": "destroyed item 1"}]}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:     "list_records",
				Description:    "List items matching a case-insensitive name substring, zero-indexed pages",
				ExampleRequest: `{"data": {"list_item": {"query": "ore", "page": 0, "per_page": 25}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "listed 1 of 1 items"}], ` +
					`"response_data": {"list_item": {"items": [{"id": 1, "internal_name": "iron_ore", "item_type": 4}], "total": 1}}}`,
				ResponseEnumFields: append(domain.CommonResponseEnumFields(),
					domain.FieldEnumMapping{FieldPath: "items[].item_type", EnumName: "ItemType"}),
			},
		},
		Enums: append(domain.CommonEnums(),
			domain.EnumDefinition{
				EnumName:    "ItemType",
				Values:      domain.ItemTypeValues(),
				Description: "Classification of an item",
			},
			domain.EnumDefinition{
				EnumName:    "AttributeType",
				Values:      domain.AttributeTypeValues(),
				Description: "Typed attribute slots an entity can carry",
			}),
	}
}
