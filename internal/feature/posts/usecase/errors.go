package usecase

import "errors"

// posts usecaseが返すセンチネルエラー。
var (
	// ErrPostNotFound は対象の投稿が存在しないことを示します。
	ErrPostNotFound = errors.New("post not found")

	// ErrUserNotFound は対象のユーザーが存在しないことを示します。
	ErrUserNotFound = errors.New("user not found")

	// ErrNotPostOwner は実行者が投稿の所有者でないことを示します。
	ErrNotPostOwner = errors.New("user is not the post owner")

	// ErrEmptyContent は投稿本文が空であることを示します。
	ErrEmptyContent = errors.New("post content is required")

	// ErrUpstream は外部のテキスト生成コラボレーターの失敗を示します。
	// 通知コアには影響しません。
	ErrUpstream = errors.New("upstream text rewrite failed")
)
