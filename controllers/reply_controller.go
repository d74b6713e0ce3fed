package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kakage553656552/vue-forum/forum"
	"github.com/kakage553656552/vue-forum/utils"
)

// ReplyController serves the threaded reply listings and reply creation.
type ReplyController struct {
	svc *forum.Service
}

// NewReplyController creates a new ReplyController instance.
func NewReplyController(svc *forum.Service) *ReplyController {
	return &ReplyController{svc: svc}
}

// ListReplies returns the top-level replies of a post, oldest first, each
// with its direct child count.
func (r *ReplyController) ListReplies(ctx *gin.Context) {
	replies, err := r.svc.ListTopLevelReplies(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, replies)
}

// ListChildReplies returns the direct children of a reply, oldest first.
func (r *ReplyController) ListChildReplies(ctx *gin.Context) {
	replies, err := r.svc.ListChildReplies(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, replies)
}

// CreateReply attaches a reply to a post, optionally under a parent reply on
// the same post.
func (r *ReplyController) CreateReply(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Content  string `json:"content" binding:"required"`
		ParentID string `json:"parentId"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "content cannot be empty")
		return
	}

	reply, err := r.svc.CreateReply(actor, ctx.Param("id"), content, req.ParentID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(feedCachePrefix)
	utils.Created(ctx, reply)
}
