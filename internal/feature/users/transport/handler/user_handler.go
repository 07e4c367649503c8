// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authentity "social_backend/internal/feature/auth/domain/entity"
	"social_backend/internal/feature/auth/transport/middleware"
	"social_backend/internal/feature/users/transport/http/dto"
	"social_backend/internal/feature/users/usecase"
	"social_backend/internal/shared/pagination"
)

// UserUsecase はユーザー管理とフォロー操作のユースケースを抽象化します。
type UserUsecase interface {
	List(ctx context.Context, page, limit int) ([]authentity.User, pagination.Meta, error)
	Get(ctx context.Context, id uint) (*authentity.User, error)
	UpdateUsername(ctx context.Context, id uint, username string) (*authentity.User, error)
	Delete(ctx context.Context, id uint) error
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	ListFollowing(ctx context.Context, userID uint) ([]uint, error)
	ListFollowers(ctx context.Context, userID uint) ([]uint, error)
}

// UserHandler はユーザー関連エンドポイントのHTTPハンドラーです。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List はGET /usersを処理し、全ユーザーをページネーション付きで返します。
func (h *UserHandler) List(c *gin.Context) {
	page, limit := pagination.Params(c.Query("page"), c.Query("limit"))

	users, meta, err := h.uc.List(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "pagination": meta})
}

// Get はGET /users/:idを処理し、単一のユーザーを返します。
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	following, err := h.uc.ListFollowing(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	followers, err := h.uc.ListFollowers(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "following": following, "followers": followers})
}

// Update はPATCH /users/:idを処理します。本人のみ実行できます。
func (h *UserHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if user.ID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify another user"})
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.uc.UpdateUsername(c.Request.Context(), id, req.Username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete はDELETE /users/:idを処理します。本人のみ実行できます。
func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if user.ID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete another user"})
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Follow はPOST /follow/:idを処理し、フォローエッジを追加します。
func (h *UserHandler) Follow(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	followeeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.Follow(c.Request.Context(), user.ID, followeeID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Followed successfully"})
}

// Unfollow はDELETE /follow/:idを処理し、フォローエッジを削除します。
func (h *UserHandler) Unfollow(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	followeeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.Unfollow(c.Request.Context(), user.ID, followeeID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

// respondError はユースケースのエラーをHTTPステータスへ変換します。
func (h *UserHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, usecase.ErrFollowSelf):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
	case errors.Is(err, usecase.ErrAlreadyFollowing):
		c.JSON(http.StatusConflict, gin.H{"error": "already following"})
	case errors.Is(err, usecase.ErrNotFollowing):
		c.JSON(http.StatusNotFound, gin.H{"error": "not following"})
	default:
		slog.Error("user operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathID は:idパスパラメータを解析します。不正な場合は400を返します。
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
