package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"social_backend/internal/feature/auth/domain/entity"
	"social_backend/internal/feature/auth/usecase"
)

// sessionGorm はSessionRepositoryのデータベース実装です。
// users.session_tokenカラムにトークンを1つだけ保持するため、
// ローテーションは単一のUPDATEで完結します（Redisが利用できない場合のフォールバック）。
type sessionGorm struct {
	db *gorm.DB
}

// sessionGormがSessionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm はsessionGormの新しいインスタンスを生成します。
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Rotate はユーザーのセッショントークンを置き換えます。
// 対象ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *sessionGorm) Rotate(ctx context.Context, userID uint, token string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Update("session_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// FindUserID はトークンに対応するユーザーIDを返します。
// トークンが未知の場合、usecase.ErrSessionNotFoundを返します。
func (r *sessionGorm) FindUserID(ctx context.Context, token string) (uint, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("session_token = ?", token).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, usecase.ErrSessionNotFound
		}
		return 0, err
	}
	return u.ID, nil
}
