package models

import "time"

// Post represents a forum post created by a user.
// Invariant: IsPinned is true exactly when PinnedAt is non-nil.
type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	AuthorID   string     `json:"authorId"`
	CategoryID string     `json:"categoryId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ViewCount  int        `json:"viewCount"`
	IsPinned   bool       `json:"isPinned,omitempty"`
	PinnedAt   *time.Time `json:"pinnedAt,omitempty"`
}
