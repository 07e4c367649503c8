package realtime

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"social_backend/internal/feature/auth/domain/entity"
	"social_backend/internal/feature/auth/transport/middleware"
)

// SessionResolver resolves a session token to its user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// Handler upgrades HTTP requests to websocket connections and binds
// them to the presence registry.
type Handler struct {
	registry *Registry
	resolver SessionResolver
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler backed by the given registry.
func NewHandler(registry *Registry, resolver SessionResolver) *Handler {
	return &Handler{
		registry: registry,
		resolver: resolver,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The session token is the access control; origins are not.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Serve はGET /wsを処理します。トークンを解決してからアップグレードし、
// 接続をレジストリへ登録して接続確認イベントを送ります。
func (h *Handler) Serve(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		token = c.Query("token")
	}

	user, err := h.resolver.Resolve(c.Request.Context(), token)
	if err != nil {
		slog.Warn("websocket auth rejected", "state", StateRejected, "error", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade writes its own error response.
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(user.ID, conn)
	h.registry.Register(client)
	client.state = StateJoined
	slog.Info("websocket connected", "connection", client.ID(), "user", user.ID, "state", client.state)

	go client.writePump()

	if err := client.Push("connected", gin.H{"user": user.ID}); err != nil {
		slog.Warn("connected ack dropped", "connection", client.ID(), "error", err)
	}

	go client.readPump(func() {
		h.registry.Unregister(client)
		client.state = StateDisconnected
		slog.Info("websocket disconnected", "connection", client.ID(), "user", user.ID, "state", client.state)
	})
}
