package forum

import (
	"fmt"

	"github.com/kakage553656552/vue-forum/models"
)

// Authorization gate: stateless ownership/role decisions, checked after the
// target is known to exist so Forbidden never masks NotFound.

// canModifyPost reports whether the actor may edit, delete, or toggle the pin
// on a post: the author or any admin.
func canModifyPost(a Actor, p models.Post) bool {
	return a.ID == p.AuthorID || a.IsAdmin()
}

// requireAdmin gates administrative views and user management.
func requireAdmin(a Actor) error {
	if !a.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}

// canViewUser allows reading a profile: the user themselves, or an admin for
// read-only lookup.
func canViewUser(a Actor, userID string) bool {
	return a.ID == userID || a.IsAdmin()
}
