package adapters

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"social_backend/internal/feature/notifications/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.NotificationAggregate{}, &entity.NotificationEntry{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// likeEntry はテスト用のいいね通知エントリーを生成します。
func likeEntry(postID, likedBy uint) *entity.NotificationEntry {
	data, _ := json.Marshal(entity.LikePayload{PostID: postID, LikedBy: likedBy})
	return &entity.NotificationEntry{Kind: entity.KindLike, Data: data}
}

// TestNotificationGorm_Append_CreatesAggregateLazily は初回追記でアグリゲートが
// 作成されることを検証します。
func TestNotificationGorm_Append_CreatesAggregateLazily(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewNotificationGorm(db)

	// 追記前はアグリゲートが存在しない
	agg, err := repo.FindByRecipient(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, agg)

	require.NoError(t, repo.Append(ctx, 7, likeEntry(5, 2)))

	agg, err = repo.FindByRecipient(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, uint(7), agg.RecipientID)
	require.Len(t, agg.Entries, 1)
	assert.Equal(t, entity.KindLike, agg.Entries[0].Kind)
}

// TestNotificationGorm_Append_ReusesAggregate は2回目以降の追記が既存の
// アグリゲートに追加されることを検証します。
func TestNotificationGorm_Append_ReusesAggregate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewNotificationGorm(db)

	require.NoError(t, repo.Append(ctx, 7, likeEntry(5, 2)))
	require.NoError(t, repo.Append(ctx, 7, likeEntry(6, 3)))
	require.NoError(t, repo.Append(ctx, 7, likeEntry(8, 4)))

	// 受信者ごとにアグリゲートは1件だけ
	var count int64
	require.NoError(t, db.Model(&entity.NotificationAggregate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	agg, err := repo.FindByRecipient(ctx, 7)
	require.NoError(t, err)
	require.Len(t, agg.Entries, 3)

	// エントリーは追記順に返る
	var payload entity.LikePayload
	require.NoError(t, json.Unmarshal(agg.Entries[0].Data, &payload))
	assert.Equal(t, uint(5), payload.PostID)
}

// TestNotificationGorm_Append_SeparateRecipients は受信者ごとにアグリゲートが
// 分離されることを検証します。
func TestNotificationGorm_Append_SeparateRecipients(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewNotificationGorm(db)

	require.NoError(t, repo.Append(ctx, 7, likeEntry(5, 2)))
	require.NoError(t, repo.Append(ctx, 8, likeEntry(5, 3)))

	agg7, err := repo.FindByRecipient(ctx, 7)
	require.NoError(t, err)
	agg8, err := repo.FindByRecipient(ctx, 8)
	require.NoError(t, err)

	assert.Len(t, agg7.Entries, 1)
	assert.Len(t, agg8.Entries, 1)
	assert.NotEqual(t, agg7.ID, agg8.ID)
}
