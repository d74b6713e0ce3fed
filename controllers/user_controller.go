package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kakage553656552/vue-forum/forum"
	"github.com/kakage553656552/vue-forum/utils"
)

// UserController serves user lookups and the administrative user management
// endpoints. Role checks live in the core; handlers just relay outcomes.
type UserController struct {
	svc *forum.Service
}

// NewUserController creates a new UserController instance.
func NewUserController(svc *forum.Service) *UserController {
	return &UserController{svc: svc}
}

// GetUser returns a user's public record: self, or anyone for admins.
func (u *UserController) GetUser(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := u.svc.GetUser(actor, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, user)
}

// ListUsers returns all accounts with activity counts. Admin only.
func (u *UserController) ListUsers(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	users, err := u.svc.ListUsers(actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, users)
}

// ListUserPosts returns every post a user authored, with category names.
// Admin only.
func (u *UserController) ListUserPosts(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	posts, err := u.svc.ListUserPosts(actor, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}

// UpdateUserRole changes an account's role. Admin only.
func (u *UserController) UpdateUserRole(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	if err := u.svc.SetUserRole(actor, ctx.Param("id"), req.Role); err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "user role updated"})
}

// DeleteUser removes an account and cascades to everything it authored.
// Admin only; self-deletion is always denied.
func (u *UserController) DeleteUser(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := u.svc.DeleteUser(actor, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(feedCachePrefix)
	utils.Success(ctx, gin.H{"message": "user deleted"})
}
