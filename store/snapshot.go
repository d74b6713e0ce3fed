package store

import (
	"github.com/kakage553656552/vue-forum/models"
)

// Snapshot is the entire dataset at a point in time. It is held in memory and
// flushed to disk as one JSON document. Version counts accepted mutations.
type Snapshot struct {
	Version    int64             `json:"version"`
	Users      []models.User     `json:"users"`
	Categories []models.Category `json:"categories"`
	Posts      []models.Post     `json:"posts"`
	Replies    []models.Reply    `json:"replies"`
}

// Clone returns a deep copy of the snapshot. Mutations are applied to a clone
// and swapped in only after a successful flush, so a failed flush never leaves
// the in-memory state ahead of the durable copy.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Version:    s.Version,
		Users:      make([]models.User, len(s.Users)),
		Categories: make([]models.Category, len(s.Categories)),
		Posts:      make([]models.Post, len(s.Posts)),
		Replies:    make([]models.Reply, len(s.Replies)),
	}
	copy(out.Users, s.Users)
	copy(out.Categories, s.Categories)
	for i, p := range s.Posts {
		if p.PinnedAt != nil {
			t := *p.PinnedAt
			p.PinnedAt = &t
		}
		out.Posts[i] = p
	}
	for i, r := range s.Replies {
		if r.ParentID != nil {
			id := *r.ParentID
			r.ParentID = &id
		}
		out.Replies[i] = r
	}
	return out
}

// defaultCategories are seeded when the store starts with no categories.
func defaultCategories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "综合讨论", Description: "各种话题的综合讨论区"},
		{ID: "2", Name: "技术交流", Description: "分享和讨论各种技术问题"},
		{ID: "3", Name: "问答专区", Description: "提问和解答各种问题"},
		{ID: "4", Name: "站务公告", Description: "网站公告和规则"},
	}
}
