package usecase

import "context"

// SessionRepository はユーザーごとに単一のアクティブなセッショントークンを永続化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/session, adapters）ではなく
// コンシューマー（usecase）が定義します。
type SessionRepository interface {
	// Rotate はユーザーのアクティブなトークンを置き換えます。
	// 以前のトークンは同時に無効化されます（ユーザーにつき常に1つ）。
	Rotate(ctx context.Context, userID uint, token string) error

	// FindUserID はトークンに対応するユーザーIDを返します。
	// トークンが存在しない場合、ErrSessionNotFoundを返します。
	FindUserID(ctx context.Context, token string) (uint, error)
}
