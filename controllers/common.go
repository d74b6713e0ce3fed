package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kakage553656552/vue-forum/forum"
	"github.com/kakage553656552/vue-forum/middleware"
	"github.com/kakage553656552/vue-forum/models"
	"github.com/kakage553656552/vue-forum/utils"
)

// actorFrom rebuilds the authenticated actor from the Gin context populated
// by the auth middleware.
func actorFrom(ctx *gin.Context) (forum.Actor, bool) {
	idVal, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return forum.Actor{}, false
	}
	id, _ := idVal.(string)
	if id == "" {
		return forum.Actor{}, false
	}

	roleVal, _ := ctx.Get(middleware.ContextRoleKey)
	roleStr, _ := roleVal.(string)
	role, ok := models.ParseRole(roleStr)
	if !ok {
		role = models.RoleUser
	}
	return forum.Actor{ID: id, Role: role}, true
}

// respondError maps a core outcome onto the HTTP status and stable code of
// the response envelope. The three identity outcomes stay distinct.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, forum.ErrInvalidArgument):
		utils.Error(ctx, http.StatusBadRequest, 40001, err.Error())
	case errors.Is(err, forum.ErrUnauthenticated):
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
	case errors.Is(err, forum.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40301, err.Error())
	case errors.Is(err, forum.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, err.Error())
	case errors.Is(err, forum.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40901, err.Error())
	case errors.Is(err, forum.ErrStorage):
		utils.Sugar.Errorf("storage failure: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to persist changes")
	default:
		utils.Sugar.Errorf("unexpected error: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}

// parsePagination parses page/pageSize query values, keeping invalid or
// out-of-range text as-is for the core to reject. Absent values fall back to
// the first page of ten.
func parsePagination(pageStr, sizeStr string) (int, int) {
	page, pageSize := 1, 10
	if pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			page = p
		} else {
			page = 0 // force an InvalidArgument from the core
		}
	}
	if sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil {
			pageSize = s
		} else {
			pageSize = 0
		}
	}
	return page, pageSize
}
