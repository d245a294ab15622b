package domain

import "errors"

// Common domain errors.
// These should be used consistently across all layers of the application.
// Wrap with fmt.Errorf("%w: details", domain.ErrXxx) for additional context.
var (
	// Storage errors
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidData         = errors.New("invalid data")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrUniqueViolation     = errors.New("unique constraint violation")

	// Tagged-union errors
	ErrOwnerNotSet       = errors.New("owner must have exactly one id set")
	ErrOwnerAmbiguous    = errors.New("owner has more than one id set")
	ErrValueNotSet       = errors.New("attribute value must have exactly one variant set")
	ErrValueAmbiguous    = errors.New("attribute value has more than one variant set")
	ErrOwnerKindRejected = errors.New("owner kind is not valid for this entity")
)

// ErrorCodeFor maps a domain error to its wire error code. Unrecognized
// errors map to the supplied fallback so storage failures keep their
// operation-specific code (insert vs update vs delete).
func ErrorCodeFor(err error, fallback ErrorCode) ErrorCode {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return ErrCodeDBRecordNotFound
	case errors.Is(err, ErrInvalidData),
		errors.Is(err, ErrOwnerNotSet),
		errors.Is(err, ErrOwnerAmbiguous),
		errors.Is(err, ErrValueNotSet),
		errors.Is(err, ErrValueAmbiguous),
		errors.Is(err, ErrOwnerKindRejected):
		return ErrCodeDBInvalidData
	case errors.Is(err, ErrForeignKeyViolation):
		return ErrCodeDBForeignKeyViolation
	case errors.Is(err, ErrUniqueViolation):
		return ErrCodeDBUniqueConstraintViolation
	default:
		return fallback
	}
}
