package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "social_backend/internal/feature/auth/domain/entity"
	"social_backend/internal/feature/users/domain/entity"
	"social_backend/internal/feature/users/usecase"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&authentity.User{}, &entity.Follow{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedUser はテスト用のユーザーをデータベースに作成します。
func seedUser(t *testing.T, db *gorm.DB, email, username string) *authentity.User {
	t.Helper()

	user := &authentity.User{Email: email, Username: username, Password: "hashed"}
	err := db.Create(user).Error
	require.NoError(t, err, "failed to seed user")

	return user
}

// TestFollowGorm_Create はフォローエッジの追加と重複検出を検証します。
func TestFollowGorm_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewFollowGorm(db)

	require.NoError(t, repo.Create(ctx, 1, 2))

	// 同じエッジの再追加は拒否される
	assert.ErrorIs(t, repo.Create(ctx, 1, 2), usecase.ErrAlreadyFollowing)

	// 逆方向のエッジは独立している
	assert.NoError(t, repo.Create(ctx, 2, 1))
}

// TestFollowGorm_Delete はフォローエッジの削除を検証します。
func TestFollowGorm_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewFollowGorm(db)

	require.NoError(t, repo.Create(ctx, 1, 2))
	require.NoError(t, repo.Delete(ctx, 1, 2))

	// 削除後は存在しないエッジとして扱われる
	assert.ErrorIs(t, repo.Delete(ctx, 1, 2), usecase.ErrNotFollowing)
}

// TestFollowGorm_Lists はfollowingとfollowersが同じエッジ集合の両面であることを検証します。
func TestFollowGorm_Lists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewFollowGorm(db)

	// 1 -> 2, 1 -> 3, 3 -> 2
	require.NoError(t, repo.Create(ctx, 1, 2))
	require.NoError(t, repo.Create(ctx, 1, 3))
	require.NoError(t, repo.Create(ctx, 3, 2))

	following, err := repo.ListFollowing(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, following)

	followers, err := repo.ListFollowers(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, followers)

	// エッジのないユーザーは両方向とも空
	following, err = repo.ListFollowing(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, following)

	followers, err = repo.ListFollowers(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, followers)
}
