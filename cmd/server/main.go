package main

import (
	"context"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"social_backend/internal/app/di"
	"social_backend/internal/app/router"
	authadapters "social_backend/internal/feature/auth/adapters"
	authhandler "social_backend/internal/feature/auth/transport/handler"
	authusecase "social_backend/internal/feature/auth/usecase"
	notifadapters "social_backend/internal/feature/notifications/adapters"
	notifhandler "social_backend/internal/feature/notifications/transport/handler"
	notifusecase "social_backend/internal/feature/notifications/usecase"
	postadapters "social_backend/internal/feature/posts/adapters"
	posthandler "social_backend/internal/feature/posts/transport/handler"
	postusecase "social_backend/internal/feature/posts/usecase"
	useradapters "social_backend/internal/feature/users/adapters"
	userhandler "social_backend/internal/feature/users/transport/handler"
	userusecase "social_backend/internal/feature/users/usecase"
	"social_backend/internal/platform/cache"
	infradb "social_backend/internal/platform/db"
	"social_backend/internal/platform/realtime"
	infraredis "social_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	authUserRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	userRepo := useradapters.NewUserGorm(db)
	followRepo := useradapters.NewFollowGorm(db)
	notifRepo := notifadapters.NewNotificationGorm(db)
	postRepo := postadapters.NewPostGorm(db)

	// Redisキャッシュでラップ
	cachedPostRepo := cache.NewCachingPostRepository(rdb, 5*time.Minute, postRepo, "posts")

	// 在席レジストリとライブ配送
	registry := realtime.NewRegistry()
	dispatcher := notifusecase.NewPushDispatcher(registry)

	// Usecase
	authUC := authusecase.NewAuthUsecase(authUserRepo, sessionRepo)
	userUC := userusecase.NewUserUsecase(userRepo, followRepo)
	notifUC := notifusecase.NewNotifyUsecase(notifRepo, dispatcher)
	postUC := postusecase.NewPostUsecase(cachedPostRepo, authUserRepo, followRepo, notifUC, di.NewRewriter(ctx))

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)
	postH := posthandler.NewPostHandler(postUC)
	notifH := notifhandler.NewNotificationHandler(notifUC)
	wsH := realtime.NewHandler(registry, authUC)

	// ルータ生成
	r := router.NewRouter(authH, userH, postH, notifH, wsH, authUC)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
