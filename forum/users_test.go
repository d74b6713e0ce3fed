package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

func TestCreateUser(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser("alice", "alice@example.com", "$2a$10$hash", "")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, DefaultAvatar, user.Avatar)

	custom, err := svc.CreateUser("bob", "bob@example.com", "$2a$10$hash", "https://example.com/me.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.png", custom.Avatar)
}

func TestCreateUserConflicts(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "alice", models.RoleUser)

	_, err := svc.CreateUser("alice", "other@example.com", "h", "")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateUser("fresh", "alice@example.com", "h", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCredentials(t *testing.T) {
	svc := newTestService(t)
	seeded := seedUser(t, svc, "alice", models.RoleUser)

	user, err := svc.Credentials("alice")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.NotEmpty(t, user.PasswordHash)

	_, err = svc.Credentials("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserAuthorization(t *testing.T) {
	svc := newTestService(t)
	admin := seedUser(t, svc, "admin", models.RoleAdmin)
	alice := seedUser(t, svc, "alice", models.RoleUser)
	bob := seedUser(t, svc, "bob", models.RoleUser)

	self, err := svc.GetUser(Actor{ID: alice.ID, Role: alice.Role}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", self.Username)

	other, err := svc.GetUser(Actor{ID: admin.ID, Role: admin.Role}, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", other.Username)

	_, err = svc.GetUser(Actor{ID: alice.ID, Role: alice.Role}, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetUser(Actor{ID: admin.ID, Role: admin.Role}, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileCountsActivity(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice", models.RoleUser)
	bob := seedUser(t, svc, "bob", models.RoleUser)

	p1 := seedPost(t, svc, models.Post{AuthorID: alice.ID})
	seedPost(t, svc, models.Post{AuthorID: alice.ID})
	seedPost(t, svc, models.Post{AuthorID: bob.ID})
	seedReply(t, svc, models.Reply{PostID: p1.ID, AuthorID: alice.ID, Content: "mine"})
	seedReply(t, svc, models.Reply{PostID: p1.ID, AuthorID: bob.ID, Content: "theirs"})

	summary, err := svc.Profile(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PostCount)
	assert.Equal(t, 1, summary.ReplyCount)

	_, err = svc.Profile("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice", models.RoleUser)
	seedUser(t, svc, "bob", models.RoleUser)
	actor := Actor{ID: alice.ID, Role: alice.Role}

	pub, err := svc.UpdateProfile(actor, "alice2", "alice2@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice2", pub.Username)
	assert.Equal(t, "alice2@example.com", pub.Email)

	// Keeping your own values is not a conflict with yourself.
	_, err = svc.UpdateProfile(actor, "alice2", "alice2@example.com")
	assert.NoError(t, err)

	_, err = svc.UpdateProfile(actor, "bob", "alice2@example.com")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.UpdateProfile(actor, "alice2", "bob@example.com")
	assert.ErrorIs(t, err, ErrConflict)
}

// Uniqueness is case-sensitive on both the registration and the profile
// update path: "Bob" and "bob" are distinct accounts.
func TestUniquenessIsCaseSensitiveOnBothPaths(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice", models.RoleUser)
	seedUser(t, svc, "bob", models.RoleUser)

	_, err := svc.CreateUser("Bob", "Bob@example.com", "h", "")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(Actor{ID: alice.ID, Role: alice.Role}, "BOB", "alice@example.com")
	assert.NoError(t, err)
}

func TestUpdateAvatar(t *testing.T) {
	svc := newTestService(t)
	alice := seedUser(t, svc, "alice", models.RoleUser)

	avatar, err := svc.UpdateAvatar(Actor{ID: alice.ID, Role: alice.Role}, "https://example.com/new.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/new.png", avatar)

	svc.store.View(func(snap *store.Snapshot) {
		assert.Equal(t, "https://example.com/new.png", snap.Users[0].Avatar)
	})
}

func TestListUsersAdminOnly(t *testing.T) {
	svc := newTestService(t)
	admin := seedUser(t, svc, "admin", models.RoleAdmin)
	alice := seedUser(t, svc, "alice", models.RoleUser)

	post := seedPost(t, svc, models.Post{AuthorID: alice.ID})
	seedReply(t, svc, models.Reply{PostID: post.ID, AuthorID: alice.ID, Content: "hi"})

	_, err := svc.ListUsers(Actor{ID: alice.ID, Role: alice.Role})
	assert.ErrorIs(t, err, ErrForbidden)

	users, err := svc.ListUsers(Actor{ID: admin.ID, Role: admin.Role})
	require.NoError(t, err)
	require.Len(t, users, 2)

	byName := make(map[string]UserSummary, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	assert.Equal(t, 1, byName["alice"].PostCount)
	assert.Equal(t, 1, byName["alice"].ReplyCount)
	assert.Equal(t, 0, byName["admin"].PostCount)
}

func TestSetUserRole(t *testing.T) {
	svc := newTestService(t)
	admin := seedUser(t, svc, "admin", models.RoleAdmin)
	alice := seedUser(t, svc, "alice", models.RoleUser)
	adminActor := Actor{ID: admin.ID, Role: admin.Role}

	err := svc.SetUserRole(Actor{ID: alice.ID, Role: alice.Role}, alice.ID, "admin")
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.SetUserRole(adminActor, alice.ID, "superuser")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = svc.SetUserRole(adminActor, "missing", "admin")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.SetUserRole(adminActor, alice.ID, "admin"))
	svc.store.View(func(snap *store.Snapshot) {
		u := findUser(snap, alice.ID)
		require.NotNil(t, u)
		assert.Equal(t, models.RoleAdmin, u.Role)
	})
}

func TestDeleteUserAuthorization(t *testing.T) {
	svc := newTestService(t)
	admin := seedUser(t, svc, "admin", models.RoleAdmin)
	alice := seedUser(t, svc, "alice", models.RoleUser)

	err := svc.DeleteUser(Actor{ID: alice.ID, Role: alice.Role}, admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteUser(Actor{ID: admin.ID, Role: admin.Role}, admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteUser(Actor{ID: admin.ID, Role: admin.Role}, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	svc := newTestService(t)
	admin := seedUser(t, svc, "admin", models.RoleAdmin)
	doomed := seedUser(t, svc, "doomed", models.RoleUser)
	bystander := seedUser(t, svc, "bystander", models.RoleUser)

	doomedPost := seedPost(t, svc, models.Post{AuthorID: doomed.ID})
	otherPost := seedPost(t, svc, models.Post{AuthorID: bystander.ID})

	// Goes away with the author's post even though someone else wrote it.
	seedReply(t, svc, models.Reply{PostID: doomedPost.ID, AuthorID: bystander.ID, Content: "on doomed post"})
	// Goes away because the doomed user wrote it, wherever it lives.
	seedReply(t, svc, models.Reply{PostID: otherPost.ID, AuthorID: doomed.ID, Content: "elsewhere"})
	survivor := seedReply(t, svc, models.Reply{PostID: otherPost.ID, AuthorID: bystander.ID, Content: "untouched"})

	require.NoError(t, svc.DeleteUser(Actor{ID: admin.ID, Role: admin.Role}, doomed.ID))

	svc.store.View(func(snap *store.Snapshot) {
		assert.Len(t, snap.Users, 2)
		assert.Nil(t, findUser(snap, doomed.ID))
		require.Len(t, snap.Posts, 1)
		assert.Equal(t, otherPost.ID, snap.Posts[0].ID)
		require.Len(t, snap.Replies, 1)
		assert.Equal(t, survivor.ID, snap.Replies[0].ID)
	})
}
