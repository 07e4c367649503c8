package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "social_backend/internal/feature/auth/transport/handler"
	"social_backend/internal/feature/auth/transport/middleware"
	notifhandler "social_backend/internal/feature/notifications/transport/handler"
	posthandler "social_backend/internal/feature/posts/transport/handler"
	userhandler "social_backend/internal/feature/users/transport/handler"
	"social_backend/internal/platform/realtime"
)

func NewRouter(
	authHandler *authhandler.AuthHandler,
	userHandler *userhandler.UserHandler,
	postHandler *posthandler.PostHandler,
	notifHandler *notifhandler.NotificationHandler,
	wsHandler *realtime.Handler,
	resolver middleware.SessionResolver,
) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	// 新規ユーザー登録
	r.POST("/auth/register", authHandler.Register)
	// ログイン（セッショントークン発行）
	r.POST("/auth/login", authHandler.Login)
	// Websocket接続（トークンはハンドラー内で解決される）
	r.GET("/ws", wsHandler.Serve)

	// 認証必須のルート
	auth := r.Group("/")
	// セッショントークンをユーザーへ解決するミドルウェアを適用
	auth.Use(middleware.AuthRequired(resolver))
	{
		auth.GET("/users", userHandler.List)
		auth.GET("/users/:id", userHandler.Get)
		auth.PATCH("/users/:id", userHandler.Update)
		auth.DELETE("/users/:id", userHandler.Delete)
		auth.GET("/users/:id/posts", postHandler.ListByUser)

		auth.POST("/follow/:id", userHandler.Follow)
		auth.DELETE("/follow/:id", userHandler.Unfollow)

		auth.GET("/posts", postHandler.List)
		auth.POST("/posts", postHandler.Create)
		auth.GET("/posts/:id", postHandler.Get)
		auth.PATCH("/posts/:id", postHandler.Update)
		auth.DELETE("/posts/:id", postHandler.Delete)
		auth.POST("/posts/:id/comments", postHandler.Comment)
		auth.POST("/posts/:id/likes", postHandler.Like)
		auth.POST("/mentions", postHandler.Mention)
		auth.GET("/feed", postHandler.Feed)

		auth.GET("/notifications", notifHandler.List)
	}

	return r
}
