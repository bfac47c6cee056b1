package apperr

import "errors"

// Failure taxonomy for the application. Callers match with errors.Is so
// authorization failures and stock-state failures surface as distinct,
// human-readable reasons.
var (
	ErrNotFound          = errors.New("record not found")
	ErrNegativeStock     = errors.New("stock quantity would become negative")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrAlreadyRevoked    = errors.New("log entry already revoked")
	ErrUnauthorized      = errors.New("not permitted to revoke this entry")
	ErrUnknownActionKind = errors.New("unknown action kind")
	ErrConflict          = errors.New("record already exists")
	ErrReadOnlyStore     = errors.New("parent store is read-only for inventory mutation")
)
