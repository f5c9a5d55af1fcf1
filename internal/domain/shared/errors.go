package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Illegal session status transition")
	ErrTerminalState       = NewDomainError("TERMINAL_STATE", "Session is already ended or cancelled")
	ErrNonMonotonicTime    = NewDomainError("NON_MONOTONIC_TIME", "Timestamp is older than the last recorded timestamp")
	ErrInvalidRange        = NewDomainError("INVALID_RANGE", "Interval must end after it starts")
	ErrAlreadyResolved     = NewDomainError("ALREADY_RESOLVED", "Invite has already been accepted or declined")
)
