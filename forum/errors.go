package forum

import "errors"

// Outcome taxonomy for every core operation. Callers match with errors.Is and
// must keep the three identity outcomes (unauthenticated, forbidden, not
// found) distinct.
var (
	// ErrUnauthenticated means the request carried no valid credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the actor is authenticated but not permitted.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument covers malformed pagination, sort keys, role values,
	// unknown categories and mismatched parent/post pairings.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is a uniqueness violation on username or email.
	ErrConflict = errors.New("conflict")
	// ErrStorage means the durable flush failed; the mutation was not applied.
	ErrStorage = errors.New("storage failure")
)
