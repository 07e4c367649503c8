package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "social_backend/internal/feature/auth/domain/entity"
	notifentity "social_backend/internal/feature/notifications/domain/entity"
	postentity "social_backend/internal/feature/posts/domain/entity"
	userentity "social_backend/internal/feature/users/domain/entity"
)

func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, pass, name)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		// TranslateError is required: adapters branch on gorm.ErrDuplicatedKey
		// to detect unique-constraint conflicts.
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Follow, Post, Notification など）
		if err := db.AutoMigrate(
			&authentity.User{},
			&userentity.Follow{},
			&postentity.Post{},
			&postentity.Comment{},
			&postentity.PostLike{},
			&notifentity.NotificationAggregate{},
			&notifentity.NotificationEntry{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}

	}

	return db
}
