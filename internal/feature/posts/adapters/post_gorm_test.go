package adapters

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"social_backend/internal/feature/posts/domain/entity"
	"social_backend/internal/feature/posts/usecase"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Post{}, &entity.Comment{}, &entity.PostLike{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedPost はテスト用の投稿をデータベースに作成します。
func seedPost(t *testing.T, db *gorm.DB, userID uint, content string) *entity.Post {
	t.Helper()

	post := &entity.Post{UserID: userID, Content: content}
	err := db.Create(post).Error
	require.NoError(t, err, "failed to seed post")

	return post
}

// TestPostGorm_CreateAndFindByID は作成と取得、関連の読み込みを検証します。
func TestPostGorm_CreateAndFindByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPostGorm(db)

	post := &entity.Post{UserID: 1, Content: "hello", ImageURL: "https://cdn.example.com/a.png"}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Content)
	assert.Equal(t, "https://cdn.example.com/a.png", found.ImageURL)
	// 関連が未設定でも空集合として返る
	assert.Empty(t, found.Comments)
	assert.Empty(t, found.Likes)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
}

// TestPostGorm_Update は本文とメディア参照の更新を検証します。
func TestPostGorm_Update(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPostGorm(db)
	post := seedPost(t, db, 1, "before")

	post.Content = "after"
	post.VideoURL = "https://cdn.example.com/v.mp4"
	require.NoError(t, repo.Update(ctx, post))

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", found.Content)
	assert.Equal(t, "https://cdn.example.com/v.mp4", found.VideoURL)

	ghost := &entity.Post{ID: 9999, Content: "nope"}
	assert.ErrorIs(t, repo.Update(ctx, ghost), usecase.ErrPostNotFound)
}

// TestPostGorm_Delete は投稿と付随データの削除を検証します。
func TestPostGorm_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPostGorm(db)
	post := seedPost(t, db, 1, "to be deleted")

	_, err := repo.AppendComment(ctx, post.ID, &entity.Comment{UserID: 2, Text: "bye"})
	require.NoError(t, err)
	_, _, err = repo.ToggleLike(ctx, post.ID, 3)
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)
	// 削除された投稿は直前の状態を保持している
	assert.Len(t, deleted.Comments, 1)
	assert.Equal(t, []uint{3}, deleted.Likes)

	_, err = repo.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)

	// 付随データも消えている
	var count int64
	require.NoError(t, db.Model(&entity.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entity.PostLike{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = repo.Delete(ctx, post.ID)
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
}

// TestPostGorm_List はページネーションと並び順（新しい順）を検証します。
func TestPostGorm_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPostGorm(db)

	for i := 1; i <= 15; i++ {
		seedPost(t, db, uint(i%3+1), fmt.Sprintf("post %d", i))
	}

	posts, meta, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 10)
	assert.Equal(t, "post 15", posts[0].Content, "newest post first")
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, int64(15), meta.TotalItems)

	posts, _, err = repo.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
}

// TestPostGorm_ListByAuthor は著者での絞り込みを検証します。
func TestPostGorm_ListByAuthor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPostGorm(db)

	seedPost(t, db, 1, "by alice 1")
	seedPost(t, db, 2, "by bob")
	seedPost(t, db, 1, "by alice 2")

	posts, meta, err := repo.ListByAuthor(ctx, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "by alice 2", posts[0].Content)
	assert.Equal(t, int64(2), meta.TotalItems)
}

// TestPostGorm_ListByAuthors はフォローフィード用の複数著者絞り込みを検証します。
func TestPostGorm_ListByAuthors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPostGorm(db)

	seedPost(t, db, 1, "by alice")
	seedPost(t, db, 2, "by bob")
	seedPost(t, db, 3, "by carol")

	posts, meta, err := repo.ListByAuthors(ctx, []uint{1, 3}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, int64(2), meta.TotalItems)

	// 誰もフォローしていない場合は空ページ
	posts, meta, err = repo.ListByAuthors(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, meta.TotalItems)
}

// TestPostGorm_AppendComment はコメントの追記と追記順の保持を検証します。
func TestPostGorm_AppendComment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPostGorm(db)
	post := seedPost(t, db, 1, "commented")

	comments, err := repo.AppendComment(ctx, post.ID, &entity.Comment{UserID: 2, Text: "first"})
	require.NoError(t, err)
	require.Len(t, comments, 1)

	comments, err = repo.AppendComment(ctx, post.ID, &entity.Comment{UserID: 3, Text: "second"})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)

	_, err = repo.AppendComment(ctx, 9999, &entity.Comment{UserID: 2, Text: "ghost"})
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
}

// TestPostGorm_ToggleLike はいいねトグルの自己逆元性を検証します。
func TestPostGorm_ToggleLike(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPostGorm(db)
	post := seedPost(t, db, 1, "liked")

	// 1回目のトグルで追加
	added, likes, err := repo.ToggleLike(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []uint{2}, likes)

	// 2回目のトグルで解除（2回のトグルは恒等変換）
	added, likes, err = repo.ToggleLike(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, likes)

	// 別ユーザーのいいねは独立
	_, _, err = repo.ToggleLike(ctx, post.ID, 2)
	require.NoError(t, err)
	_, likes, err = repo.ToggleLike(ctx, post.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, likes)

	_, _, err = repo.ToggleLike(ctx, 9999, 2)
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
}
