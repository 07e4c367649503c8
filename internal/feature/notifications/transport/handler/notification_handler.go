// Package handler はnotificationsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"social_backend/internal/feature/auth/transport/middleware"
	"social_backend/internal/feature/notifications/domain/entity"
)

// NotificationReader は認証済みユーザーの通知取得ユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type NotificationReader interface {
	// ListForRecipient は受信者の全通知エントリーを返します。
	// アグリゲートが未作成の場合は空のアグリゲートを返します。
	ListForRecipient(ctx context.Context, recipientID uint) (*entity.NotificationAggregate, error)
}

// NotificationHandler は通知のプル取得リクエストを処理します。
// オフライン中に配送されなかったエントリーもここから取得できます。
type NotificationHandler struct {
	notifications NotificationReader
}

// NewNotificationHandler はNotificationHandlerの新しいインスタンスを生成します。
func NewNotificationHandler(notifications NotificationReader) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List は認証済みユーザーの通知アグリゲートを返却します。
func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}

	agg, err := h.notifications.ListForRecipient(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("failed to list notifications", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve notifications"})
		return
	}
	c.JSON(http.StatusOK, agg)
}
