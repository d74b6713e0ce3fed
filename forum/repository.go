package forum

import (
	"fmt"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

// Typed repository accessors over a snapshot. Lookups return pointers into
// the snapshot's backing slices so updates apply in place; only call them on
// a snapshot owned by the current View or Mutate.

func findUser(s *store.Snapshot, id string) *models.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

func findUserByUsername(s *store.Snapshot, username string) *models.User {
	for i := range s.Users {
		if s.Users[i].Username == username {
			return &s.Users[i]
		}
	}
	return nil
}

func findCategory(s *store.Snapshot, id string) *models.Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

func findPost(s *store.Snapshot, id string) *models.Post {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return &s.Posts[i]
		}
	}
	return nil
}

func findReply(s *store.Snapshot, id string) *models.Reply {
	for i := range s.Replies {
		if s.Replies[i].ID == id {
			return &s.Replies[i]
		}
	}
	return nil
}

// insertUser appends a user after checking the username/email uniqueness
// constraints across the whole user set.
func insertUser(s *store.Snapshot, u models.User) error {
	for i := range s.Users {
		if s.Users[i].Username == u.Username {
			return fmt.Errorf("%w: username %q already taken", ErrConflict, u.Username)
		}
		if s.Users[i].Email == u.Email {
			return fmt.Errorf("%w: email %q already taken", ErrConflict, u.Email)
		}
	}
	s.Users = append(s.Users, u)
	return nil
}

// checkProfileUnique verifies username/email are not held by another user.
// Comparison is case-sensitive, matching insertUser.
func checkProfileUnique(s *store.Snapshot, selfID, username, email string) error {
	for i := range s.Users {
		if s.Users[i].ID == selfID {
			continue
		}
		if s.Users[i].Username == username {
			return fmt.Errorf("%w: username %q already taken", ErrConflict, username)
		}
		if s.Users[i].Email == email {
			return fmt.Errorf("%w: email %q already taken", ErrConflict, email)
		}
	}
	return nil
}

func removeUser(s *store.Snapshot, id string) bool {
	for i := range s.Users {
		if s.Users[i].ID == id {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			return true
		}
	}
	return false
}

func removePost(s *store.Snapshot, id string) bool {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			s.Posts = append(s.Posts[:i], s.Posts[i+1:]...)
			return true
		}
	}
	return false
}

// removePostsWhere drops matching posts and returns their ids for dependent
// cleanup.
func removePostsWhere(s *store.Snapshot, match func(models.Post) bool) []string {
	kept := s.Posts[:0]
	var removed []string
	for _, p := range s.Posts {
		if match(p) {
			removed = append(removed, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	s.Posts = kept
	return removed
}

func removeRepliesWhere(s *store.Snapshot, match func(models.Reply) bool) int {
	kept := s.Replies[:0]
	removed := 0
	for _, r := range s.Replies {
		if match(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.Replies = kept
	return removed
}

// usersByID builds the author lookup index for one snapshot version.
func usersByID(s *store.Snapshot) map[string]models.User {
	idx := make(map[string]models.User, len(s.Users))
	for _, u := range s.Users {
		idx[u.ID] = u
	}
	return idx
}

// replyCountByPost builds the postId -> reply count index.
func replyCountByPost(s *store.Snapshot) map[string]int {
	idx := make(map[string]int, len(s.Posts))
	for _, r := range s.Replies {
		idx[r.PostID]++
	}
	return idx
}

// childCountByParent builds the parentId -> direct child count index over the
// reply forest.
func childCountByParent(s *store.Snapshot) map[string]int {
	idx := make(map[string]int)
	for _, r := range s.Replies {
		if r.ParentID != nil {
			idx[*r.ParentID]++
		}
	}
	return idx
}
