package forum

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

// ThreadReply is a reply denormalized for listing: author summary plus the
// number of replies directly referencing it as parent.
type ThreadReply struct {
	models.Reply
	Author     models.PublicUser `json:"author"`
	ChildCount int               `json:"childRepliesCount"`
}

// ListTopLevelReplies returns the parentless replies of a post in
// conversational order, oldest first. An absent post is NotFound rather than
// an empty thread.
func (s *Service) ListTopLevelReplies(postID string) ([]ThreadReply, error) {
	var notFound error
	replies := []ThreadReply{}
	s.store.View(func(snap *store.Snapshot) {
		if findPost(snap, postID) == nil {
			notFound = fmt.Errorf("%w: post %s", ErrNotFound, postID)
			return
		}
		replies = collectReplies(snap, func(r models.Reply) bool {
			return r.PostID == postID && r.ParentID == nil
		})
	})
	if notFound != nil {
		return nil, notFound
	}
	return replies, nil
}

// ListChildReplies returns the direct children of a reply, oldest first. An
// absent parent is NotFound.
func (s *Service) ListChildReplies(replyID string) ([]ThreadReply, error) {
	var notFound error
	replies := []ThreadReply{}
	s.store.View(func(snap *store.Snapshot) {
		if findReply(snap, replyID) == nil {
			notFound = fmt.Errorf("%w: reply %s", ErrNotFound, replyID)
			return
		}
		replies = collectReplies(snap, func(r models.Reply) bool {
			return r.ParentID != nil && *r.ParentID == replyID
		})
	})
	if notFound != nil {
		return nil, notFound
	}
	return replies, nil
}

// collectReplies gathers matching replies with their annotations, sorted by
// createdAt ascending.
func collectReplies(snap *store.Snapshot, match func(models.Reply) bool) []ThreadReply {
	users := usersByID(snap)
	children := childCountByParent(snap)

	out := []ThreadReply{}
	for _, r := range snap.Replies {
		if !match(r) {
			continue
		}
		tr := ThreadReply{Reply: r, ChildCount: children[r.ID]}
		if author, ok := users[r.AuthorID]; ok {
			tr.Author = author.Public()
		}
		out = append(out, tr)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CreateReply attaches a reply to a post, optionally under a parent reply.
// The parent must exist and belong to the same post.
func (s *Service) CreateReply(actor Actor, postID, content, parentID string) (ThreadReply, error) {
	reply := models.Reply{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: actor.ID,
		Content:  content,
	}
	if parentID != "" {
		id := parentID
		reply.ParentID = &id
	}

	var author models.PublicUser
	err := s.mutate(func(snap *store.Snapshot) error {
		if findPost(snap, postID) == nil {
			return fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}
		if parentID != "" {
			parent := findReply(snap, parentID)
			if parent == nil {
				return fmt.Errorf("%w: parent reply %s", ErrNotFound, parentID)
			}
			if parent.PostID != postID {
				return fmt.Errorf("%w: parent reply belongs to a different post", ErrInvalidArgument)
			}
		}
		reply.CreatedAt = time.Now()
		snap.Replies = append(snap.Replies, reply)
		if u := findUser(snap, actor.ID); u != nil {
			author = u.Public()
		}
		return nil
	})
	if err != nil {
		return ThreadReply{}, err
	}
	return ThreadReply{Reply: reply, Author: author, ChildCount: 0}, nil
}
