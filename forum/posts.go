package forum

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

// PostDetail is a single post with its author summary attached.
type PostDetail struct {
	models.Post
	Author models.PublicUser `json:"author"`
}

// PostPatch carries the mutable post fields for UpdatePost. Empty fields keep
// the stored value.
type PostPatch struct {
	Title      string
	Content    string
	CategoryID string
}

// GetPostDetail returns a post with its author and increments the view count
// by exactly one, persisting the change.
func (s *Service) GetPostDetail(postID string) (PostDetail, error) {
	var detail PostDetail
	err := s.mutate(func(snap *store.Snapshot) error {
		post := findPost(snap, postID)
		if post == nil {
			return fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}
		post.ViewCount++
		detail = PostDetail{Post: *post}
		if author := findUser(snap, post.AuthorID); author != nil {
			detail.Author = author.Public()
		}
		return nil
	})
	return detail, err
}

// CreatePost files a new post under an existing category.
func (s *Service) CreatePost(actor Actor, title, content, categoryID string) (models.Post, error) {
	now := time.Now()
	post := models.Post{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    content,
		AuthorID:   actor.ID,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.mutate(func(snap *store.Snapshot) error {
		if findCategory(snap, categoryID) == nil {
			return fmt.Errorf("%w: category %s does not exist", ErrInvalidArgument, categoryID)
		}
		snap.Posts = append(snap.Posts, post)
		return nil
	})
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// UpdatePost applies a patch to a post. Only the author or an admin may edit;
// a supplied category must exist.
func (s *Service) UpdatePost(actor Actor, postID string, patch PostPatch) (models.Post, error) {
	var updated models.Post
	err := s.mutate(func(snap *store.Snapshot) error {
		post := findPost(snap, postID)
		if post == nil {
			return fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}
		if !canModifyPost(actor, *post) {
			return fmt.Errorf("%w: not the author of post %s", ErrForbidden, postID)
		}
		if patch.CategoryID != "" && findCategory(snap, patch.CategoryID) == nil {
			return fmt.Errorf("%w: category %s does not exist", ErrInvalidArgument, patch.CategoryID)
		}
		if patch.Title != "" {
			post.Title = patch.Title
		}
		if patch.Content != "" {
			post.Content = patch.Content
		}
		if patch.CategoryID != "" {
			post.CategoryID = patch.CategoryID
		}
		post.UpdatedAt = time.Now()
		updated = *post
		return nil
	})
	if err != nil {
		return models.Post{}, err
	}
	return updated, nil
}

// DeletePost removes a post and cascades to every reply attached to it.
func (s *Service) DeletePost(actor Actor, postID string) error {
	return s.mutate(func(snap *store.Snapshot) error {
		post := findPost(snap, postID)
		if post == nil {
			return fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}
		if !canModifyPost(actor, *post) {
			return fmt.Errorf("%w: not the author of post %s", ErrForbidden, postID)
		}
		removeRepliesWhere(snap, func(r models.Reply) bool { return r.PostID == postID })
		removePost(snap, postID)
		return nil
	})
}

// TogglePinned flips a post's pinned state, stamping or clearing pinnedAt so
// the pin invariant holds. Returns the new state.
func (s *Service) TogglePinned(actor Actor, postID string) (bool, error) {
	var pinned bool
	err := s.mutate(func(snap *store.Snapshot) error {
		post := findPost(snap, postID)
		if post == nil {
			return fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}
		if !canModifyPost(actor, *post) {
			return fmt.Errorf("%w: not the author of post %s", ErrForbidden, postID)
		}
		post.IsPinned = !post.IsPinned
		if post.IsPinned {
			now := time.Now()
			post.PinnedAt = &now
		} else {
			post.PinnedAt = nil
		}
		pinned = post.IsPinned
		return nil
	})
	return pinned, err
}

// ListOwnPosts returns the actor's posts in the owner view: pinned first by
// pin time descending, then createdAt descending, each with its reply count.
func (s *Service) ListOwnPosts(actor Actor) ([]FeedPost, error) {
	posts := []FeedPost{}
	s.store.View(func(snap *store.Snapshot) {
		counts := replyCountByPost(snap)
		var self models.PublicUser
		if u := findUser(snap, actor.ID); u != nil {
			self = u.Public()
		}
		for _, p := range snap.Posts {
			if p.AuthorID != actor.ID {
				continue
			}
			posts = append(posts, FeedPost{Post: p, Author: self, ReplyCount: counts[p.ID]})
		}
		sort.SliceStable(posts, func(i, j int) bool {
			a, b := posts[i], posts[j]
			if a.IsPinned != b.IsPinned {
				return a.IsPinned
			}
			if a.IsPinned && b.IsPinned {
				return pinnedAt(a.Post).After(pinnedAt(b.Post))
			}
			return a.CreatedAt.After(b.CreatedAt)
		})
	})
	return posts, nil
}

// UserPost is the administrative view of a post: the raw record with its
// category name denormalized.
type UserPost struct {
	models.Post
	CategoryName string `json:"categoryName"`
}

// ListUserPosts returns every post a user authored, newest first. Admin only.
func (s *Service) ListUserPosts(actor Actor, userID string) ([]UserPost, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var notFound error
	posts := []UserPost{}
	s.store.View(func(snap *store.Snapshot) {
		if findUser(snap, userID) == nil {
			notFound = fmt.Errorf("%w: user %s", ErrNotFound, userID)
			return
		}
		for _, p := range snap.Posts {
			if p.AuthorID != userID {
				continue
			}
			up := UserPost{Post: p, CategoryName: "未知分类"}
			if c := findCategory(snap, p.CategoryID); c != nil {
				up.CategoryName = c.Name
			}
			posts = append(posts, up)
		}
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	})
	if notFound != nil {
		return nil, notFound
	}
	return posts, nil
}
