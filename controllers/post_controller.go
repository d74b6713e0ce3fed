package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kakage553656552/vue-forum/forum"
	"github.com/kakage553656552/vue-forum/utils"
)

// feedCachePrefix covers every cached feed page. The sort segment comes first
// so the hot pages can be invalidated on their own when a view count moves.
const feedCachePrefix = "cache:feed:"

func feedCacheKey(sortKey, categoryID string, page, pageSize int) string {
	return fmt.Sprintf("%ssort=%s:cat=%s:page=%d:size=%d", feedCachePrefix, sortKey, categoryID, page, pageSize)
}

func hotFeedCachePrefix() string {
	return feedCachePrefix + "sort=hot:"
}

// PostController manages the feed and post mutations.
type PostController struct {
	svc *forum.Service
}

// NewPostController creates a new PostController instance.
func NewPostController(svc *forum.Service) *PostController {
	return &PostController{svc: svc}
}

// ListPosts returns the paginated, sorted feed for a category or the whole
// board. Pages are cached per query and invalidated on any post mutation.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("pageSize"))
	categoryID := strings.TrimSpace(ctx.Query("categoryId"))
	sortKey := strings.TrimSpace(ctx.Query("sort"))

	cacheKey := feedCacheKey(sortKey, categoryID, page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	feed, err := p.svc.ListFeed(forum.FeedQuery{
		CategoryID: categoryID,
		Page:       page,
		PageSize:   pageSize,
		Sort:       forum.FeedSort(sortKey),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: feed}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, feed)
}

// GetPost returns a single post with its author. Each read increments the
// view count, so detail responses are never served from cache, and the
// hot-sorted feed pages are dropped so their ordering tracks the new count.
func (p *PostController) GetPost(ctx *gin.Context) {
	detail, err := p.svc.GetPostDetail(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(hotFeedCachePrefix())
	utils.Success(ctx, detail)
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title      string `json:"title" binding:"required,min=1"`
		Content    string `json:"content" binding:"required"`
		CategoryID string `json:"categoryId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	title := utils.SanitizePlain(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)

	post, err := p.svc.CreatePost(actor, title, content, req.CategoryID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(feedCachePrefix)
	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost allows the author or an admin to edit a post. Omitted fields
// keep their stored values.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		CategoryID string `json:"categoryId"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	patch := forum.PostPatch{
		Title:      utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Content:    utils.Sanitize(req.Content),
		CategoryID: req.CategoryID,
	}

	post, err := p.svc.UpdatePost(actor, ctx.Param("id"), patch)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(feedCachePrefix)
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost allows the author or an admin to delete a post along with every
// reply on it.
func (p *PostController) DeletePost(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := p.svc.DeletePost(actor, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(feedCachePrefix)
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// TogglePinned flips the pinned state of a post.
func (p *PostController) TogglePinned(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	pinned, err := p.svc.TogglePinned(actor, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(feedCachePrefix)
	message := "post unpinned"
	if pinned {
		message = "post pinned"
	}
	utils.Success(ctx, gin.H{"message": message, "isPinned": pinned})
}

// ListMyPosts returns the authenticated user's posts, pinned first.
func (p *PostController) ListMyPosts(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	posts, err := p.svc.ListOwnPosts(actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}
