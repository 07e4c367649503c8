// Package adapters はusersフィーチャーの永続化アダプターを実装します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	authentity "social_backend/internal/feature/auth/domain/entity"
	"social_backend/internal/feature/users/usecase"
	"social_backend/internal/shared/pagination"
)

// userGorm はGORMベースのユーザーリポジトリ実装です。
type userGorm struct {
	db *gorm.DB
}

// NewUserGorm はGORMベースのユーザーリポジトリを生成します。
func NewUserGorm(db *gorm.DB) usecase.UserRepository {
	return &userGorm{db: db}
}

var _ usecase.UserRepository = (*userGorm)(nil)

// List は全ユーザーをページネーション付きで返します（登録順）。
func (r *userGorm) List(ctx context.Context, page, limit int) ([]authentity.User, pagination.Meta, error) {
	page, limit = pagination.Normalize(page, limit)

	var total int64
	if err := r.db.WithContext(ctx).Model(&authentity.User{}).Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	users := []authentity.User{}
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(pagination.Offset(page, limit)).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, pagination.MetaFor(total, page, limit), nil
}

// FindByID はユーザーをIDで取得します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	var user authentity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUsername はユーザー名を更新し、更新後のユーザーを返します。
func (r *userGorm) UpdateUsername(ctx context.Context, id uint, username string) (*authentity.User, error) {
	result := r.db.WithContext(ctx).
		Model(&authentity.User{}).
		Where("id = ?", id).
		Update("username", username)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete はユーザーを削除します。
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&authentity.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
