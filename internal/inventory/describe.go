package inventory

import (
	"context"

	"github.com/osse101/GameDB_Go/internal/domain"
)

const serviceVersion = "1.0.0"

// Describe returns the discovery metadata for the inventory service.
func (s *service) Describe(ctx context.Context) *domain.ServiceMetadata {
	return &domain.ServiceMetadata{
		ServiceName: "InventoryService",
		Version:     serviceVersion,
		Description: "Persists inventories and applies stacking, capacity and transfer rules",
		Methods: []domain.MethodDescription{
			{
				MethodName:     "load",
				Description:    "Load an inventory by ID",
				ExampleRequest: `{"data": {"load_inventory": {"inventory_id": 1}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "loaded inventory"}], ` +
					`"response_data": {"load_inventory": {"inventory": {"id": 1, "max_entries": 10, "max_volume": 100.0, "entries": []}}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:  "create",
				Description: "Create a new inventory",
				ExampleRequest: `{"data": {"create_inventory": {"inventory": ` +
					`{"owner": {"player_id": 1}, "max_entries": 10, "max_volume": 100.0}}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "created inventory 1"}], ` +
					`"response_data": {"create_inventory": {"inventory": {"id": 1, "max_entries": 10, "max_volume": 100.0, "entries": []}}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:  "save",
				Description: "Create or update an inventory, dispatching on ID presence",
				ExampleRequest: `{"data": {"save_inventory": {"inventory": ` +
					`{"id": 1, "owner": {"player_id": 1}, "max_entries": 10, "max_volume": 100.0, ` +
					`"entries": [{"item_id": 7, "quantity": 5.0}]}}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "saved inventory 1"}], ` +
					`"response_data": {"save_inventory": {"inventory": {"id": 1, "max_entries": 10, "max_volume": 100.0, ` +
					`"entries": [{"id": 1, "item_id": 7, "quantity": 5.0, "is_max_stacked": false}]}}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:  "split_stack",
				Description: "Split quantity off the first entry holding an item into a new entry",
				ExampleRequest: `{"data": {"split_stack": ` +
					`{"inventory_id": 1, "item_id": 7, "quantity_to_split": 2.0}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "split entry"}, {"status": 1, "message": "saved inventory"}], ` +
					`"response_data": {"split_stack": {"inventory": {"id": 1, "max_entries": 10, "max_volume": 100.0, ` +
					`"entries": [{"id": 1, "item_id": 7, "quantity": 3.0}, {"id": 2, "item_id": 7, "quantity": 2.0}]}}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:  "transfer_item",
				Description: "Move quantity of an item between two inventories atomically",
				ExampleRequest: `{"data": {"transfer_item": {"source_inventory_id": 1, ` +
					`"destination_inventory_id": 2, "item_id": 7, "quantity": 3.0}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "transferred 3 of item 7 to inventory 2"}], ` +
					`"response_data": {"transfer_item": {"source_inventory": {"id": 1}, "destination_inventory": {"id": 2}}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:     "list_records",
				Description:    "List inventories with zero-indexed pagination",
				ExampleRequest: `{"data": {"list_inventory": {"page": 0, "per_page": 25}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "listed 1 of 1 inventories"}], ` +
					`"response_data": {"list_inventory": {"inventories": [{"id": 1, "max_entries": 10, "max_volume": 100.0, "entries": []}], "total": 1}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
		},
		Enums: domain.CommonEnums(),
	}
}
