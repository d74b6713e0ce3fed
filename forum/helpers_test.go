package forum

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

// baseTime anchors the seeded timestamps so ordering assertions are exact.
var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	return NewService(st)
}

func seedUser(t *testing.T, svc *Service, username string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$seeded-hash",
		Role:         role,
		CreatedAt:    baseTime,
	}
	require.NoError(t, svc.store.Mutate(func(snap *store.Snapshot) error {
		snap.Users = append(snap.Users, user)
		return nil
	}))
	return user
}

// seedPost inserts the post as given, filling in an id, the first seeded
// category, and timestamps when absent.
func seedPost(t *testing.T, svc *Service, post models.Post) models.Post {
	t.Helper()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CategoryID == "" {
		post.CategoryID = "1"
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = baseTime
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}
	require.NoError(t, svc.store.Mutate(func(snap *store.Snapshot) error {
		snap.Posts = append(snap.Posts, post)
		return nil
	}))
	return post
}

func seedReply(t *testing.T, svc *Service, reply models.Reply) models.Reply {
	t.Helper()
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = baseTime
	}
	require.NoError(t, svc.store.Mutate(func(snap *store.Snapshot) error {
		snap.Replies = append(snap.Replies, reply)
		return nil
	}))
	return reply
}

func ptr(s string) *string { return &s }
