package domain

import "errors"

// Error taxonomy surfaced by the services. Handlers map each sentinel to a
// fixed HTTP status with a machine-stable code; storage-internal error text
// never reaches the wire.
var (
	// ErrUnauthenticated: no subject could be resolved for the request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrValidation: malformed or empty input, rejected before touching storage.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound: a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: an authorization predicate failed.
	ErrForbidden = errors.New("forbidden")
	// ErrStoreUnavailable: infrastructure fault. Not user-actionable and not
	// retried by the service layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)
