package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when two writers raced on the same aggregate
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Lifecycle and temporal error codes
const (
	// ErrCodeInvalidTransition is used when a session status change is illegal
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
	// ErrCodeTerminalState is used when acting on an ended or cancelled session
	ErrCodeTerminalState = "ERR_TERMINAL_STATE"
	// ErrCodeNonMonotonicTime is used when a transition timestamp goes backwards
	ErrCodeNonMonotonicTime = "ERR_NON_MONOTONIC_TIME"
	// ErrCodeInvalidRange is used when an interval ends before it starts
	ErrCodeInvalidRange = "ERR_INVALID_RANGE"
	// ErrCodeGroupArchived is used when modifying an archived group
	ErrCodeGroupArchived = "ERR_GROUP_ARCHIVED"
	// ErrCodeAlreadyResolved is used when re-resolving an invite
	ErrCodeAlreadyResolved = "ERR_ALREADY_RESOLVED"
	// ErrCodeNotActionable is used when accepting/declining a non-invite notification
	ErrCodeNotActionable = "ERR_NOT_ACTIONABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidTransition: http.StatusConflict,
	ErrCodeTerminalState:     http.StatusConflict,
	ErrCodeNonMonotonicTime:  http.StatusUnprocessableEntity,
	ErrCodeInvalidRange:      http.StatusBadRequest,
	ErrCodeGroupArchived:     http.StatusUnprocessableEntity,
	ErrCodeAlreadyResolved:   http.StatusConflict,
	ErrCodeNotActionable:     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to transport codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"ALREADY_MEMBER":       ErrCodeConflict,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_TRANSITION":   ErrCodeInvalidTransition,
	"TERMINAL_STATE":       ErrCodeTerminalState,
	"NON_MONOTONIC_TIME":   ErrCodeNonMonotonicTime,
	"INVALID_RANGE":        ErrCodeInvalidRange,
	"GROUP_ARCHIVED":       ErrCodeGroupArchived,
	"ALREADY_RESOLVED":     ErrCodeAlreadyResolved,
	"NOT_ACTIONABLE":       ErrCodeNotActionable,
	"INVALID_NAME":         ErrCodeValidation,
	"INVALID_TITLE":        ErrCodeValidation,
	"INVALID_TIMEZONE":     ErrCodeValidation,
	"INVALID_PERIOD":       ErrCodeValidation,
	"INVALID_TARGET":       ErrCodeValidation,
	"INVALID_ROLE":         ErrCodeValidation,
	"INVALID_STATUS":       ErrCodeValidation,
	"INVALID_KIND":         ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to the transport format
// If the code is already in the transport format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
