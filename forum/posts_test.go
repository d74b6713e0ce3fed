package forum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

func TestCreatePost(t *testing.T) {
	svc := newTestService(t)
	author := seedUser(t, svc, "alice", models.RoleUser)

	post, err := svc.CreatePost(Actor{ID: author.ID, Role: author.Role}, "hello", "first post", "2")
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "2", post.CategoryID)
	assert.Equal(t, 0, post.ViewCount)
	assert.False(t, post.IsPinned)
	assert.Nil(t, post.PinnedAt)
}

func TestCreatePostUnknownCategory(t *testing.T) {
	svc := newTestService(t)
	author := seedUser(t, svc, "alice", models.RoleUser)

	_, err := svc.CreatePost(Actor{ID: author.ID, Role: author.Role}, "hello", "body", "99")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdatePostKeepsOmittedFields(t *testing.T) {
	svc := newTestService(t)
	author := seedUser(t, svc, "alice", models.RoleUser)
	post := seedPost(t, svc, models.Post{AuthorID: author.ID, Title: "old title", Content: "old body", CategoryID: "1"})

	updated, err := svc.UpdatePost(Actor{ID: author.ID, Role: author.Role}, post.ID, PostPatch{Content: "new body"})
	require.NoError(t, err)
	assert.Equal(t, "old title", updated.Title)
	assert.Equal(t, "new body", updated.Content)
	assert.Equal(t, "1", updated.CategoryID)
	assert.True(t, updated.UpdatedAt.After(post.UpdatedAt))
}

func TestUpdatePostUnknownCategory(t *testing.T) {
	svc := newTestService(t)
	author := seedUser(t, svc, "alice", models.RoleUser)
	post := seedPost(t, svc, models.Post{AuthorID: author.ID})

	_, err := svc.UpdatePost(Actor{ID: author.ID, Role: author.Role}, post.ID, PostPatch{CategoryID: "99"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// Owner and admin succeed on every post mutation; any other actor is
// Forbidden, and a missing target is NotFound before the gate is consulted.
func TestPostMutationAuthorization(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc, "owner", models.RoleUser)
	admin := seedUser(t, svc, "admin", models.RoleAdmin)
	other := seedUser(t, svc, "other", models.RoleUser)

	ops := map[string]func(actor Actor, postID string) error{
		"update": func(a Actor, id string) error {
			_, err := svc.UpdatePost(a, id, PostPatch{Title: "t"})
			return err
		},
		"delete": func(a Actor, id string) error {
			return svc.DeletePost(a, id)
		},
		"toggle-pinned": func(a Actor, id string) error {
			_, err := svc.TogglePinned(a, id)
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			post := seedPost(t, svc, models.Post{AuthorID: owner.ID})

			err := op(Actor{ID: other.ID, Role: other.Role}, post.ID)
			assert.ErrorIs(t, err, ErrForbidden)

			assert.NoError(t, op(Actor{ID: owner.ID, Role: owner.Role}, post.ID))

			adminTarget := seedPost(t, svc, models.Post{AuthorID: owner.ID})
			assert.NoError(t, op(Actor{ID: admin.ID, Role: admin.Role}, adminTarget.ID))

			err = op(Actor{ID: admin.ID, Role: admin.Role}, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestTogglePinnedStampsAndClearsPinTime(t *testing.T) {
	svc := newTestService(t)
	author := seedUser(t, svc, "alice", models.RoleUser)
	post := seedPost(t, svc, models.Post{AuthorID: author.ID})
	actor := Actor{ID: author.ID, Role: author.Role}

	pinned, err := svc.TogglePinned(actor, post.ID)
	require.NoError(t, err)
	assert.True(t, pinned)

	svc.store.View(func(snap *store.Snapshot) {
		p := snap.Posts[0]
		assert.True(t, p.IsPinned)
		require.NotNil(t, p.PinnedAt)
	})

	pinned, err = svc.TogglePinned(actor, post.ID)
	require.NoError(t, err)
	assert.False(t, pinned)

	svc.store.View(func(snap *store.Snapshot) {
		p := snap.Posts[0]
		assert.False(t, p.IsPinned)
		assert.Nil(t, p.PinnedAt)
	})
}

func TestDeletePostCascadesReplies(t *testing.T) {
	svc := newTestService(t)
	author := seedUser(t, svc, "alice", models.RoleUser)
	doomed := seedPost(t, svc, models.Post{AuthorID: author.ID})
	kept := seedPost(t, svc, models.Post{AuthorID: author.ID})

	parent := seedReply(t, svc, models.Reply{PostID: doomed.ID, AuthorID: author.ID, Content: "top"})
	seedReply(t, svc, models.Reply{PostID: doomed.ID, AuthorID: author.ID, ParentID: ptr(parent.ID), Content: "child"})
	survivor := seedReply(t, svc, models.Reply{PostID: kept.ID, AuthorID: author.ID, Content: "elsewhere"})

	require.NoError(t, svc.DeletePost(Actor{ID: author.ID, Role: author.Role}, doomed.ID))

	svc.store.View(func(snap *store.Snapshot) {
		assert.Len(t, snap.Posts, 1)
		require.Len(t, snap.Replies, 1)
		assert.Equal(t, survivor.ID, snap.Replies[0].ID)
	})
}

func TestListOwnPostsPinnedFirstThenNewest(t *testing.T) {
	svc := newTestService(t)
	author := seedUser(t, svc, "alice", models.RoleUser)
	stranger := seedUser(t, svc, "bob", models.RoleUser)

	pin := baseTime.Add(time.Hour)
	seedPost(t, svc, models.Post{ID: "mine-old", AuthorID: author.ID, CreatedAt: baseTime})
	seedPost(t, svc, models.Post{ID: "mine-new", AuthorID: author.ID, CreatedAt: baseTime.Add(2 * time.Hour)})
	seedPost(t, svc, models.Post{ID: "mine-pinned", AuthorID: author.ID, CreatedAt: baseTime.Add(time.Minute), IsPinned: true, PinnedAt: &pin})
	seedPost(t, svc, models.Post{ID: "not-mine", AuthorID: stranger.ID, CreatedAt: baseTime.Add(3 * time.Hour)})

	posts, err := svc.ListOwnPosts(Actor{ID: author.ID, Role: author.Role})
	require.NoError(t, err)

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"mine-pinned", "mine-new", "mine-old"}, ids)
}

func TestListUserPosts(t *testing.T) {
	svc := newTestService(t)
	admin := seedUser(t, svc, "admin", models.RoleAdmin)
	target := seedUser(t, svc, "target", models.RoleUser)

	seedPost(t, svc, models.Post{ID: "a", AuthorID: target.ID, CategoryID: "2", CreatedAt: baseTime})
	seedPost(t, svc, models.Post{ID: "b", AuthorID: target.ID, CategoryID: "1", CreatedAt: baseTime.Add(time.Hour)})

	posts, err := svc.ListUserPosts(Actor{ID: admin.ID, Role: admin.Role}, target.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "b", posts[0].ID)
	assert.Equal(t, "综合讨论", posts[0].CategoryName)
	assert.Equal(t, "技术交流", posts[1].CategoryName)

	_, err = svc.ListUserPosts(Actor{ID: target.ID, Role: target.Role}, target.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ListUserPosts(Actor{ID: admin.ID, Role: admin.Role}, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
