package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"social_backend/internal/feature/users/domain/entity"
	"social_backend/internal/feature/users/usecase"
)

// followGorm はGORMベースのフォローグラフリポジトリ実装です。
// エッジの一意性は複合一意インデックスで保証されるため、
// 並行するフォロー要求は単一の行に収束します。
type followGorm struct {
	db *gorm.DB
}

// NewFollowGorm はGORMベースのフォローリポジトリを生成します。
func NewFollowGorm(db *gorm.DB) usecase.FollowRepository {
	return &followGorm{db: db}
}

var _ usecase.FollowRepository = (*followGorm)(nil)

// Create はフォローエッジを追加します。重複はErrAlreadyFollowingになります。
func (r *followGorm) Create(ctx context.Context, followerID, followeeID uint) error {
	follow := entity.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Delete はフォローエッジを削除します。不在はErrNotFollowingになります。
func (r *followGorm) Delete(ctx context.Context, followerID, followeeID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&entity.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNotFollowing
	}
	return nil
}

// ListFollowing はフォロー中のユーザーIDを返します。
func (r *followGorm) ListFollowing(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Model(&entity.Follow{}).
		Where("follower_id = ?", userID).
		Order("followee_id ASC").
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListFollowers はフォロワーのユーザーIDを返します。
func (r *followGorm) ListFollowers(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Model(&entity.Follow{}).
		Where("followee_id = ?", userID).
		Order("follower_id ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
