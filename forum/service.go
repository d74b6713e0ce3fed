package forum

import (
	"errors"
	"fmt"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

// Service implements the feed, thread, and administration operations over a
// document store. All methods return outcomes from the error taxonomy in
// errors.go; nothing else escapes.
type Service struct {
	store *store.Store
}

// NewService creates a Service backed by the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Actor is the authenticated identity performing an operation, as resolved by
// the authenticator from a bearer credential.
type Actor struct {
	ID   string
	Role models.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// mutate runs a store mutation and folds a failed flush into the taxonomy.
func (s *Service) mutate(fn func(*store.Snapshot) error) error {
	err := s.store.Mutate(fn)
	if err != nil && errors.Is(err, store.ErrPersist) {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return err
}
