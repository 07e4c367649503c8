package usecase

import "errors"

// auth usecaseが返すセンチネルエラー。
// トランスポート層はこれらをHTTPステータスコードに変換します。
var (
	// ErrEmailAlreadyExists は同じメールアドレスのユーザーが既に存在することを示します。
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound は条件に一致するユーザーが見つからないことを示します。
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials はメールアドレスまたはパスワードが不正であることを示します。
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound はセッショントークンがストアに存在しないことを示します。
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnauthenticated はセッショントークンが無効・欠落しており、
	// アクションの実行者を特定できないことを示します。ミューテーション前に返却されます。
	ErrUnauthenticated = errors.New("unauthenticated")
)
