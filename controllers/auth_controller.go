package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kakage553656552/vue-forum/forum"
	"github.com/kakage553656552/vue-forum/utils"
)

const tokenDuration = 24 * time.Hour

// AuthController handles registration, login, and profile endpoints.
type AuthController struct {
	svc *forum.Service
}

// NewAuthController creates an AuthController.
func NewAuthController(svc *forum.Service) *AuthController {
	return &AuthController{svc: svc}
}

// Register creates an account and issues a token for it.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=1"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Avatar   string `json:"avatar"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	username := utils.SanitizePlain(strings.TrimSpace(req.Username))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40011, "username cannot be empty")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to hash password")
		return
	}

	user, err := a.svc.CreateUser(username, strings.TrimSpace(req.Email), hash, req.Avatar)
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, string(user.Role), tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to issue token")
		return
	}

	utils.Created(ctx, gin.H{"user": user.Public(), "token": token})
}

// Login verifies credentials and issues a token. Unknown username and wrong
// password are indistinguishable to the caller.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}

	user, err := a.svc.Credentials(strings.TrimSpace(req.Username))
	if err != nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "incorrect username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, string(user.Role), tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{"user": user.Public(), "token": token})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 {
		if token := strings.TrimSpace(parts[1]); token != "" {
			if claims, err := utils.ParseToken(token); err == nil {
				utils.BlacklistToken(token, claims.ExpiresAt.Time)
			}
		}
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Profile returns the authenticated user with post and reply counts.
func (a *AuthController) Profile(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	summary, err := a.svc.Profile(actor.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, summary)
}

// UpdateProfile changes the authenticated user's username and email.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Username string `json:"username" binding:"required,min=1"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid request payload")
		return
	}

	username := utils.SanitizePlain(strings.TrimSpace(req.Username))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40011, "username cannot be empty")
		return
	}

	user, err := a.svc.UpdateProfile(actor, username, strings.TrimSpace(req.Email))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// UpdateAvatar sets the authenticated user's avatar URL.
func (a *AuthController) UpdateAvatar(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Avatar string `json:"avatar" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "invalid request payload")
		return
	}

	avatar, err := a.svc.UpdateAvatar(actor, strings.TrimSpace(req.Avatar))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"avatar": avatar})
}
