package domain

// Status is the outcome of a single step within a service operation.
type Status int

const (
	StatusSuccess Status = 1
	StatusFailure Status = 2
	StatusSkip    Status = 3
)

// String returns the symbolic label used by describe() enum tables.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusSkip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// ErrorCode classifies a failed step. Codes travel on the wire as integers;
// describe() publishes the label table so generic clients can transcode.
type ErrorCode int

const (
	ErrCodeNone ErrorCode = 0

	// Storage codes
	ErrCodeDBConnectionFailed          ErrorCode = 1
	ErrCodeDBTransactionFailed         ErrorCode = 2
	ErrCodeDBInsertFailed              ErrorCode = 3
	ErrCodeDBUpdateFailed              ErrorCode = 4
	ErrCodeDBDeleteFailed              ErrorCode = 5
	ErrCodeDBQueryFailed               ErrorCode = 6
	ErrCodeDBRecordNotFound            ErrorCode = 7
	ErrCodeDBInvalidData               ErrorCode = 8
	ErrCodeDBForeignKeyViolation       ErrorCode = 9
	ErrCodeDBUniqueConstraintViolation ErrorCode = 10

	// Inventory rule codes
	ErrCodeInvMaxItemsReached      ErrorCode = 20
	ErrCodeInvNewVolumeTooHigh     ErrorCode = 21
	ErrCodeInvCannotAddItem        ErrorCode = 22
	ErrCodeInvAllEntriesMaxStacked ErrorCode = 23
	ErrCodeInvCouldNotFindEntry    ErrorCode = 24
	ErrCodeInvNewQuantityInvalid   ErrorCode = 25
	ErrCodeInvFullCannotSplit      ErrorCode = 26
	ErrCodeInvItemNotFound         ErrorCode = 27
	ErrCodeInvInsufficientQuantity ErrorCode = 28
	ErrCodeInvOperationFailed      ErrorCode = 29
	ErrCodeInvFailedToAdd          ErrorCode = 30
	ErrCodeInvFailedToTransfer     ErrorCode = 31
)

// errorCodeLabels maps codes to the labels published by describe().
var errorCodeLabels = map[ErrorCode]string{
	ErrCodeDBConnectionFailed:          "DB_CONNECTION_FAILED",
	ErrCodeDBTransactionFailed:         "DB_TRANSACTION_FAILED",
	ErrCodeDBInsertFailed:              "DB_INSERT_FAILED",
	ErrCodeDBUpdateFailed:              "DB_UPDATE_FAILED",
	ErrCodeDBDeleteFailed:              "DB_DELETE_FAILED",
	ErrCodeDBQueryFailed:               "DB_QUERY_FAILED",
	ErrCodeDBRecordNotFound:            "DB_RECORD_NOT_FOUND",
	ErrCodeDBInvalidData:               "DB_INVALID_DATA",
	ErrCodeDBForeignKeyViolation:       "DB_FOREIGN_KEY_VIOLATION",
	ErrCodeDBUniqueConstraintViolation: "DB_UNIQUE_CONSTRAINT_VIOLATION",
	ErrCodeInvMaxItemsReached:          "INV_MAX_ITEMS_REACHED",
	ErrCodeInvNewVolumeTooHigh:         "INV_NEW_VOLUME_TOO_HIGH",
	ErrCodeInvCannotAddItem:            "INV_CANNOT_ADD_ITEM",
	ErrCodeInvAllEntriesMaxStacked:     "INV_ALL_ENTRIES_MAX_STACKED",
	ErrCodeInvCouldNotFindEntry:        "INV_COULD_NOT_FIND_ENTRY",
	ErrCodeInvNewQuantityInvalid:       "INV_NEW_QUANTITY_INVALID",
	ErrCodeInvFullCannotSplit:          "INV_FULL_CANNOT_SPLIT",
	ErrCodeInvItemNotFound:             "INV_ITEM_NOT_FOUND",
	ErrCodeInvInsufficientQuantity:     "INV_INSUFFICIENT_QUANTITY",
	ErrCodeInvOperationFailed:          "INV_OPERATION_FAILED",
	ErrCodeInvFailedToAdd:              "INV_FAILED_TO_ADD",
	ErrCodeInvFailedToTransfer:         "INV_FAILED_TO_TRANSFER",
}

// String returns the symbolic label used by describe() enum tables.
func (c ErrorCode) String() string {
	if label, ok := errorCodeLabels[c]; ok {
		return label
	}
	return "UNKNOWN"
}

// ErrorCodeValues returns the label->integer table published by describe().
func ErrorCodeValues() map[string]int32 {
	values := make(map[string]int32, len(errorCodeLabels))
	for code, label := range errorCodeLabels {
		values[label] = int32(code)
	}
	return values
}

// StatusValues returns the label->integer table published by describe().
func StatusValues() map[string]int32 {
	return map[string]int32{
		"SUCCESS": int32(StatusSuccess),
		"FAILURE": int32(StatusFailure),
		"SKIP":    int32(StatusSkip),
	}
}

// Result is a single per-step outcome record. Every service operation returns
// a sequence of them; results[0].status is the source of truth for callers.
type Result struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

// Success builds a SUCCESS result.
func Success(message string) Result {
	return Result{Status: StatusSuccess, Message: message}
}

// Skip builds a SKIP result.
func Skip(message string) Result {
	return Result{Status: StatusSkip, Message: message}
}

// Failure builds a FAILURE result with the given code.
func Failure(code ErrorCode, message string) Result {
	return Result{Status: StatusFailure, Message: message, ErrorCode: code}
}

// OK reports whether every result is SUCCESS or SKIP.
func OK(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFailure {
			return false
		}
	}
	return true
}

// FirstError returns the first FAILURE result, if any.
func FirstError(results []Result) (Result, bool) {
	for _, r := range results {
		if r.Status == StatusFailure {
			return r, true
		}
	}
	return Result{}, false
}
