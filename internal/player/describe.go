package player

import (
	"context"

	"github.com/osse101/GameDB_Go/internal/domain"
)

const serviceVersion = "1.0.0"

// Describe returns the discovery metadata for the player service.
func (s *service) Describe(ctx context.Context) *domain.ServiceMetadata {
	return &domain.ServiceMetadata{
		ServiceName: "PlayerService",
		Version:     serviceVersion,
		Description: "Persists players and their companion mobiles",
		Methods: []domain.MethodDescription{
			{
				MethodName:  "create",
				Description: "Create a player and its companion mobile in one transaction",
				ExampleRequest: `{"data": {"create_player": {"player": {"full_name": "Ada Lovelace", ` +
					`"what_we_call_you": "Ada", "security_token": "s3cret", "year_of_birth": 2010, "email": "ada@example.com"}}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "created player 1"}], ` +
					`"response_data": {"create_player": {"player": {"id": 1, "full_name": "Ada Lovelace", "over_13": true, ` +
					`"mobile": {"id": 1, "mobile_type": 1, "what_we_call_you": "Ada"}}}}}`,
				ResponseEnumFields: append(domain.CommonResponseEnumFields(),
					domain.FieldEnumMapping{FieldPath: "player.mobile.mobile_type", EnumName: "MobileType"}),
			},
			{
				MethodName:     "load",
				Description:    "Load a player with its companion mobile",
				ExampleRequest: `{"data": {"load_player": {"player_id": 1}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "loaded player"}], ` +
					`"response_data": {"load_player": {"player": {"id": 1, "full_name": "Ada Lovelace", "over_13": true}}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:  "save",
				Description: "Create or update a player, dispatching on ID presence; over_13 is recomputed server side",
				ExampleRequest: `{"data": {"save_player": {"player": {"id": 1, "full_name": "Ada Lovelace", ` +
					`"what_we_call_you": "Countess", "security_token": "s3cret", "year_of_birth": 2010, "email": "ada@example.com"}}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "saved player 1"}], ` +
					`"response_data": {"save_player": {"player": {"id": 1, "what_we_call_you": "Countess", "over_13": true}}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:         "delete",
				Description:        "Delete a player, cascading its mobiles, attributes and inventories",
				ExampleRequest:     `{"data": {"delete_player": {"player_id": 1}}}`,
				ExampleResponse:    `{"results": [{"status": 1, "message": "deleted player 1"}]}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
			{
				MethodName:     "list_records",
				Description:    "List players matching a case-insensitive name substring, zero-indexed pages",
				ExampleRequest: `{"data": {"list_player": {"query": "ada", "page": 0, "per_page": 25}}}`,
				ExampleResponse: `{"results": [{"status": 1, "message": "listed 1 of 1 players"}], ` +
					`"response_data": {"list_player": {"players": [{"id": 1, "full_name": "Ada Lovelace"}], "total": 1}}}`,
				ResponseEnumFields: domain.CommonResponseEnumFields(),
			},
		},
		Enums: append(domain.CommonEnums(), domain.EnumDefinition{
			EnumName:    "MobileType",
			Values:      domain.MobileTypeValues(),
			Description: "Classification of a mobile",
		}),
	}
}
