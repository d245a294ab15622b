package domain

// Service-discovery metadata. Each service exposes a describe operation
// returning one ServiceMetadata so generic clients can enumerate methods and
// transcode integer enum wire values to symbolic labels.

// FieldEnumMapping names a JSON field path whose wire value is an enum
// integer, e.g. "results[].status".
type FieldEnumMapping struct {
	FieldPath string `json:"field_path"`
	EnumName  string `json:"enum_name"`
}

// EnumDefinition is a label->integer table for one enum.
type EnumDefinition struct {
	EnumName    string           `json:"enum_name"`
	Values      map[string]int32 `json:"values"`
	Description string           `json:"description,omitempty"`
}

// MethodDescription documents one service method with example payloads.
type MethodDescription struct {
	MethodName         string             `json:"method_name"`
	Description        string             `json:"description"`
	ExampleRequest     string             `json:"example_request_json"`
	ExampleResponse    string             `json:"example_response_json"`
	RequestEnumFields  []FieldEnumMapping `json:"request_enum_fields"`
	ResponseEnumFields []FieldEnumMapping `json:"response_enum_fields"`
}

// ServiceMetadata is the payload of a describe() call.
type ServiceMetadata struct {
	ServiceName string              `json:"service_name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Methods     []MethodDescription `json:"methods"`
	Enums       []EnumDefinition    `json:"enums"`
}

// CommonEnums returns the enum tables shared by every service.
func CommonEnums() []EnumDefinition {
	return []EnumDefinition{
		{
			EnumName:    "StatusType",
			Values:      StatusValues(),
			Description: "Status of an operation result",
		},
		{
			EnumName:    "GameError",
			Values:      ErrorCodeValues(),
			Description: "Error codes for operations",
		},
	}
}

// CommonResponseEnumFields returns the enum field paths present in every
// response envelope.
func CommonResponseEnumFields() []FieldEnumMapping {
	return []FieldEnumMapping{
		{FieldPath: "results[].status", EnumName: "StatusType"},
		{FieldPath: "results[].error_code", EnumName: "GameError"},
	}
}
