package forum

import (
	"fmt"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

// CategorySummary is a category with its post and topic counts. Every post is
// its own topic on this board, so the two counts coincide.
type CategorySummary struct {
	models.Category
	PostCount  int `json:"postCount"`
	TopicCount int `json:"topicCount"`
}

// ListCategories returns all categories with their counts.
func (s *Service) ListCategories() []CategorySummary {
	out := []CategorySummary{}
	s.store.View(func(snap *store.Snapshot) {
		counts := make(map[string]int, len(snap.Categories))
		for _, p := range snap.Posts {
			counts[p.CategoryID]++
		}
		for _, c := range snap.Categories {
			n := counts[c.ID]
			out = append(out, CategorySummary{Category: c, PostCount: n, TopicCount: n})
		}
	})
	return out
}

// GetCategory returns one category with its counts.
func (s *Service) GetCategory(id string) (CategorySummary, error) {
	var summary CategorySummary
	err := fmt.Errorf("%w: category %s", ErrNotFound, id)
	s.store.View(func(snap *store.Snapshot) {
		c := findCategory(snap, id)
		if c == nil {
			return
		}
		n := 0
		for _, p := range snap.Posts {
			if p.CategoryID == c.ID {
				n++
			}
		}
		summary = CategorySummary{Category: *c, PostCount: n, TopicCount: n}
		err = nil
	})
	return summary, err
}
