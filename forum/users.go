package forum

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

// DefaultAvatar is assigned at registration when the client supplies none.
const DefaultAvatar = "https://cube.elemecdn.com/3/7c/3ea6beec64369c2642b92c6726f1epng.png"

// UserSummary is a user annotated with activity counts for profile and admin
// listings.
type UserSummary struct {
	models.PublicUser
	PostCount  int `json:"postCount"`
	ReplyCount int `json:"replyCount"`
}

// CreateUser inserts a new account with the user role. The caller hashes the
// credential; uniqueness of username and email is enforced here.
func (s *Service) CreateUser(username, email, passwordHash, avatar string) (models.User, error) {
	if avatar == "" {
		avatar = DefaultAvatar
	}
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		Avatar:       avatar,
		CreatedAt:    time.Now(),
	}
	err := s.mutate(func(snap *store.Snapshot) error {
		return insertUser(snap, user)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Credentials returns the full user record for a username, hash included, for
// the authenticator to verify against.
func (s *Service) Credentials(username string) (models.User, error) {
	var user models.User
	err := fmt.Errorf("%w: user %q", ErrNotFound, username)
	s.store.View(func(snap *store.Snapshot) {
		if u := findUserByUsername(snap, username); u != nil {
			user = *u
			err = nil
		}
	})
	return user, err
}

// GetUser returns a user's public record. Users may read themselves; admins
// may read anyone.
func (s *Service) GetUser(actor Actor, userID string) (models.PublicUser, error) {
	if !canViewUser(actor, userID) {
		return models.PublicUser{}, fmt.Errorf("%w: cannot view user %s", ErrForbidden, userID)
	}
	var pub models.PublicUser
	err := fmt.Errorf("%w: user %s", ErrNotFound, userID)
	s.store.View(func(snap *store.Snapshot) {
		if u := findUser(snap, userID); u != nil {
			pub = u.Public()
			err = nil
		}
	})
	return pub, err
}

// Profile returns a user with their post and reply counts.
func (s *Service) Profile(userID string) (UserSummary, error) {
	var summary UserSummary
	err := fmt.Errorf("%w: user %s", ErrNotFound, userID)
	s.store.View(func(snap *store.Snapshot) {
		u := findUser(snap, userID)
		if u == nil {
			return
		}
		summary = UserSummary{PublicUser: u.Public()}
		for _, p := range snap.Posts {
			if p.AuthorID == userID {
				summary.PostCount++
			}
		}
		for _, r := range snap.Replies {
			if r.AuthorID == userID {
				summary.ReplyCount++
			}
		}
		err = nil
	})
	return summary, err
}

// UpdateProfile changes the actor's username and email, keeping both unique
// across other accounts.
func (s *Service) UpdateProfile(actor Actor, username, email string) (models.PublicUser, error) {
	var pub models.PublicUser
	err := s.mutate(func(snap *store.Snapshot) error {
		user := findUser(snap, actor.ID)
		if user == nil {
			return fmt.Errorf("%w: user %s", ErrNotFound, actor.ID)
		}
		if err := checkProfileUnique(snap, actor.ID, username, email); err != nil {
			return err
		}
		user.Username = username
		user.Email = email
		pub = user.Public()
		return nil
	})
	if err != nil {
		return models.PublicUser{}, err
	}
	return pub, nil
}

// UpdateAvatar sets the actor's avatar URL.
func (s *Service) UpdateAvatar(actor Actor, avatar string) (string, error) {
	err := s.mutate(func(snap *store.Snapshot) error {
		user := findUser(snap, actor.ID)
		if user == nil {
			return fmt.Errorf("%w: user %s", ErrNotFound, actor.ID)
		}
		user.Avatar = avatar
		return nil
	})
	if err != nil {
		return "", err
	}
	return avatar, nil
}

// ListUsers returns every account with activity counts. Admin only.
func (s *Service) ListUsers(actor Actor) ([]UserSummary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users := []UserSummary{}
	s.store.View(func(snap *store.Snapshot) {
		postCounts := make(map[string]int, len(snap.Users))
		replyCounts := make(map[string]int, len(snap.Users))
		for _, p := range snap.Posts {
			postCounts[p.AuthorID]++
		}
		for _, r := range snap.Replies {
			replyCounts[r.AuthorID]++
		}
		for _, u := range snap.Users {
			users = append(users, UserSummary{
				PublicUser: u.Public(),
				PostCount:  postCounts[u.ID],
				ReplyCount: replyCounts[u.ID],
			})
		}
	})
	return users, nil
}

// SetUserRole changes an account's role. Admin only; the role value must be
// part of the closed set.
func (s *Service) SetUserRole(actor Actor, userID, role string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	parsed, ok := models.ParseRole(role)
	if !ok {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, role)
	}
	return s.mutate(func(snap *store.Snapshot) error {
		user := findUser(snap, userID)
		if user == nil {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		user.Role = parsed
		return nil
	})
}

// DeleteUser removes an account and everything it authored: its posts, every
// reply on those posts, and its replies elsewhere. Admin only; self-deletion
// is denied regardless of role.
func (s *Service) DeleteUser(actor Actor, userID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == userID {
		return fmt.Errorf("%w: cannot delete own account", ErrForbidden)
	}
	return s.mutate(func(snap *store.Snapshot) error {
		if !removeUser(snap, userID) {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		removedPosts := removePostsWhere(snap, func(p models.Post) bool {
			return p.AuthorID == userID
		})
		orphaned := make(map[string]bool, len(removedPosts))
		for _, id := range removedPosts {
			orphaned[id] = true
		}
		removeRepliesWhere(snap, func(r models.Reply) bool {
			return r.AuthorID == userID || orphaned[r.PostID]
		})
		return nil
	})
}
