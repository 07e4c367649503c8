// Package middleware はセッショントークンに基づくGin認証ミドルウェアを提供します。
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"social_backend/internal/feature/auth/domain/entity"
)

const (
	// ContextUser は認証済みユーザーを格納するGinコンテキストのキーです。
	ContextUser = "currentUser"

	// CookieName はセッショントークンを運ぶクッキー名です。
	CookieName = "DEMO-AUTH"
)

// SessionResolver は不透明なセッショントークンからユーザーを特定します。
// コンシューマー（ミドルウェア）側で定義されるインターフェースです。
type SessionResolver interface {
	// Resolve はトークンに対応するユーザーを返します。
	// 無効なトークンの場合、usecase.ErrUnauthenticatedを返します。
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// TokenFromRequest はリクエストからセッショントークンを抽出します。
// Authorizationヘッダー（Bearer）を優先し、なければクッキーを参照します。
func TokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if token, err := c.Cookie(CookieName); err == nil {
		return token
	}
	return ""
}

// AuthRequired は認証済みユーザーのみアクセスを許可するGinミドルウェアを返します。
// 解決したユーザーはContextUserキーでコンテキストに格納されます。
// トークンの欠落・無効はミューテーション前に403で拒否されます。
func AuthRequired(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			slog.Warn("session resolution failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "authentication required"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser はコンテキストから認証済みユーザーを取り出します。
// AuthRequiredを通過したハンドラー内でのみ有効です。
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
