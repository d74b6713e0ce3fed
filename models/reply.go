package models

import "time"

// Reply is a comment on a post. ParentID is nil for top-level replies; when
// set it must reference a reply on the same post, so the parent graph forms a
// forest rooted at nil. Replies are immutable once created.
type Reply struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	ParentID  *string   `json:"parentId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
