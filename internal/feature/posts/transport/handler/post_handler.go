// Package handler はpostsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social_backend/internal/feature/auth/transport/middleware"
	"social_backend/internal/feature/posts/domain/entity"
	"social_backend/internal/feature/posts/transport/http/dto"
	"social_backend/internal/feature/posts/usecase"
	"social_backend/internal/shared/pagination"
)

// PostUsecase は投稿のCRUDとアクションのユースケースを抽象化します。
type PostUsecase interface {
	Create(ctx context.Context, authorID uint, content, imageURL, videoURL, edit string) (*entity.Post, error)
	Get(ctx context.Context, id uint) (*entity.Post, error)
	Update(ctx context.Context, actorID, postID uint, content, imageURL, videoURL string) (*entity.Post, error)
	Delete(ctx context.Context, actorID, postID uint) (*entity.Post, error)
	List(ctx context.Context, page, limit int) ([]entity.Post, pagination.Meta, error)
	ListByUser(ctx context.Context, authorID uint, page, limit int) ([]entity.Post, pagination.Meta, error)
	FeedByFollowing(ctx context.Context, userID uint, page, limit int) ([]entity.Post, pagination.Meta, error)
	Comment(ctx context.Context, actorID, postID uint, text string) ([]entity.Comment, error)
	Like(ctx context.Context, actorID, postID uint) ([]uint, error)
	Mention(ctx context.Context, recipientID uint, payload json.RawMessage) error
}

// PostHandler は投稿関連エンドポイントのHTTPハンドラーです。
type PostHandler struct {
	uc PostUsecase
}

// NewPostHandler はPostHandlerの新しいインスタンスを生成します。
func NewPostHandler(uc PostUsecase) *PostHandler {
	return &PostHandler{uc: uc}
}

// List はGET /postsを処理し、全投稿をページネーション付きで返します。
func (h *PostHandler) List(c *gin.Context) {
	page, limit := pagination.Params(c.Query("page"), c.Query("limit"))

	posts, meta, err := h.uc.List(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "pagination": meta})
}

// Get はGET /posts/:idを処理し、単一の投稿を返します。
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.uc.Get(c.Request.Context(), postID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create はPOST /posts/newを処理し、新しい投稿を作成します。
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.uc.Create(c.Request.Context(), user.ID, req.Post, req.ImageURL, req.VideoURL, req.Edit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Update はPATCH /posts/:idを処理します。所有者のみ実行できます。
func (h *PostHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.uc.Update(c.Request.Context(), user.ID, postID, req.Post, req.ImageURL, req.VideoURL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete はDELETE /posts/:idを処理します。所有者のみ実行できます。
func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.uc.Delete(c.Request.Context(), user.ID, postID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully", "post": post})
}

// ListByUser はGET /posts/user/:idを処理し、指定ユーザーの投稿を返します。
func (h *PostHandler) ListByUser(c *gin.Context) {
	authorID, ok := pathID(c)
	if !ok {
		return
	}
	page, limit := pagination.Params(c.Query("page"), c.Query("limit"))

	posts, meta, err := h.uc.ListByUser(c.Request.Context(), authorID, page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "pagination": meta})
}

// Feed はGET /post/followingを処理し、フォロー中ユーザーの投稿を返します。
func (h *PostHandler) Feed(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	page, limit := pagination.Params(c.Query("page"), c.Query("limit"))

	posts, meta, err := h.uc.FeedByFollowing(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "pagination": meta})
}

// Comment はPOST /posts/comment/:idを処理し、コメントを追記して投稿者へ通知します。
func (h *PostHandler) Comment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comments, err := h.uc.Comment(c.Request.Context(), user.ID, postID, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Like はPOST /posts/likes/:idを処理し、いいねをトグルします。
func (h *PostHandler) Like(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	likes, err := h.uc.Like(c.Request.Context(), user.ID, postID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Mention はPOST /posts/mentionsを処理し、指定ユーザーへペイロードをそのまま通知します。
func (h *PostHandler) Mention(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}

	var req dto.MentionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.uc.Mention(c.Request.Context(), req.UserID, req.Post); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mention delivered successfully"})
}

// respondError はユースケースのエラーをHTTPステータスへ変換します。
func (h *PostHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, usecase.ErrNotPostOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the post owner"})
	case errors.Is(err, usecase.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "post content must not be empty"})
	case errors.Is(err, usecase.ErrUpstream):
		slog.Error("post rewrite failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream collaborator failed"})
	default:
		slog.Error("post operation failed", "error", err)
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
