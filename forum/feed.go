package forum

import (
	"fmt"
	"sort"
	"time"

	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/store"
)

// FeedSort selects the ordering of unpinned posts in a feed.
type FeedSort string

const (
	SortNewest  FeedSort = "newest"
	SortHot     FeedSort = "hot"
	SortReplies FeedSort = "replies"
)

// FeedQuery describes one feed request. An empty CategoryID selects the whole
// board.
type FeedQuery struct {
	CategoryID string
	Page       int
	PageSize   int
	Sort       FeedSort
}

// FeedPost is a post denormalized for listing: author summary plus the number
// of replies attached to it.
type FeedPost struct {
	models.Post
	Author     models.PublicUser `json:"author"`
	ReplyCount int               `json:"replyCount"`
}

// Pagination is the metadata returned alongside every feed page.
type Pagination struct {
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// FeedPage is one page of the ordered feed.
type FeedPage struct {
	Posts      []FeedPost `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// ListFeed assembles the paginated post listing. Pinned posts always precede
// unpinned ones, ordered by pin time descending regardless of the requested
// sort; unpinned posts follow the requested sort with createdAt descending as
// the tie-break. Out-of-range pages yield an empty page, not an error.
func (s *Service) ListFeed(q FeedQuery) (FeedPage, error) {
	if q.Page < 1 || q.PageSize < 1 {
		return FeedPage{}, fmt.Errorf("%w: page and pageSize must be positive", ErrInvalidArgument)
	}

	var page FeedPage
	s.store.View(func(snap *store.Snapshot) {
		users := usersByID(snap)
		counts := replyCountByPost(snap)

		var pinned, unpinned []FeedPost
		for _, p := range snap.Posts {
			if q.CategoryID != "" && p.CategoryID != q.CategoryID {
				continue
			}
			fp := FeedPost{Post: p, ReplyCount: counts[p.ID]}
			if author, ok := users[p.AuthorID]; ok {
				fp.Author = author.Public()
			}
			if p.IsPinned {
				pinned = append(pinned, fp)
			} else {
				unpinned = append(unpinned, fp)
			}
		}

		sort.SliceStable(pinned, func(i, j int) bool {
			return pinnedAt(pinned[i].Post).After(pinnedAt(pinned[j].Post))
		})
		sortUnpinned(unpinned, q.Sort)

		ordered := append(pinned, unpinned...)
		page = paginate(ordered, q.Page, q.PageSize)
	})
	return page, nil
}

func pinnedAt(p models.Post) time.Time {
	if p.PinnedAt == nil {
		return time.Time{}
	}
	return *p.PinnedAt
}

// sortUnpinned orders the unpinned partition. Unknown sort values fall back
// to newest.
func sortUnpinned(posts []FeedPost, by FeedSort) {
	newest := func(a, b FeedPost) bool { return a.CreatedAt.After(b.CreatedAt) }
	switch by {
	case SortHot:
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].ViewCount != posts[j].ViewCount {
				return posts[i].ViewCount > posts[j].ViewCount
			}
			return newest(posts[i], posts[j])
		})
	case SortReplies:
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].ReplyCount != posts[j].ReplyCount {
				return posts[i].ReplyCount > posts[j].ReplyCount
			}
			return newest(posts[i], posts[j])
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			return newest(posts[i], posts[j])
		})
	}
}

// paginate slices one page out of the full ordered feed. Any page past the
// end is empty, including pages so large the offset arithmetic overflows.
func paginate(ordered []FeedPost, page, pageSize int) FeedPage {
	total := len(ordered)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start < 0 || start > total {
		start, end = total, total
	}
	if end < start || end > total {
		end = total
	}

	items := make([]FeedPost, end-start)
	copy(items, ordered[start:end])

	return FeedPage{
		Posts: items,
		Pagination: Pagination{
			Total:       total,
			TotalPages:  totalPages,
			CurrentPage: page,
			PageSize:    pageSize,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}
}
