// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	authentity "social_backend/internal/feature/auth/domain/entity"
	"social_backend/internal/shared/pagination"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
type UserRepository interface {
	// List は全ユーザーをページネーション付きで返します。
	List(ctx context.Context, page, limit int) ([]authentity.User, pagination.Meta, error)

	// FindByID はユーザーをIDで取得します。
	// 存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*authentity.User, error)

	// UpdateUsername はユーザー名を更新します。
	// 対象が存在しない場合、ErrUserNotFoundを返します。
	UpdateUsername(ctx context.Context, id uint, username string) (*authentity.User, error)

	// Delete はユーザーを削除します。
	// 対象が存在しない場合、ErrUserNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// FollowRepository はフォローグラフの永続化層を抽象化します。
type FollowRepository interface {
	// Create はフォローエッジを追加します。
	// 既に存在する場合、ErrAlreadyFollowingを返します。
	Create(ctx context.Context, followerID, followeeID uint) error

	// Delete はフォローエッジを削除します。
	// 存在しない場合、ErrNotFollowingを返します。
	Delete(ctx context.Context, followerID, followeeID uint) error

	// ListFollowing は指定ユーザーがフォローしているユーザーのIDを返します。
	ListFollowing(ctx context.Context, userID uint) ([]uint, error)

	// ListFollowers は指定ユーザーをフォローしているユーザーのIDを返します。
	ListFollowers(ctx context.Context, userID uint) ([]uint, error)
}

// UserUsecase はユーザーの一覧・更新・削除とフォロー操作を実装します。
type UserUsecase struct {
	users   UserRepository
	follows FollowRepository
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, follows FollowRepository) *UserUsecase {
	return &UserUsecase{users: users, follows: follows}
}

// List は全ユーザーをページネーション付きで返します。
func (u *UserUsecase) List(ctx context.Context, page, limit int) ([]authentity.User, pagination.Meta, error) {
	return u.users.List(ctx, page, limit)
}

// Get はユーザーをIDで取得します。
func (u *UserUsecase) Get(ctx context.Context, id uint) (*authentity.User, error) {
	return u.users.FindByID(ctx, id)
}

// UpdateUsername はユーザー名を更新します。
func (u *UserUsecase) UpdateUsername(ctx context.Context, id uint, username string) (*authentity.User, error) {
	return u.users.UpdateUsername(ctx, id, username)
}

// Delete はユーザーを削除します。
func (u *UserUsecase) Delete(ctx context.Context, id uint) error {
	return u.users.Delete(ctx, id)
}

// Follow はフォローエッジを追加します。
// 自己フォローと重複フォローは拒否され、対象の存在が事前に確認されます。
func (u *UserUsecase) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrFollowSelf
	}
	if _, err := u.users.FindByID(ctx, followeeID); err != nil {
		return err
	}
	return u.follows.Create(ctx, followerID, followeeID)
}

// Unfollow はフォローエッジを削除します。
func (u *UserUsecase) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrFollowSelf
	}
	return u.follows.Delete(ctx, followerID, followeeID)
}

// ListFollowing は指定ユーザーがフォローしているユーザーのIDを返します。
func (u *UserUsecase) ListFollowing(ctx context.Context, userID uint) ([]uint, error) {
	return u.follows.ListFollowing(ctx, userID)
}

// ListFollowers は指定ユーザーをフォローしているユーザーのIDを返します。
func (u *UserUsecase) ListFollowers(ctx context.Context, userID uint) ([]uint, error) {
	return u.follows.ListFollowers(ctx, userID)
}
