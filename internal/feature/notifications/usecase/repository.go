package usecase

import (
	"context"

	"social_backend/internal/feature/notifications/domain/entity"
)

// NotificationRepository は通知アグリゲートの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type NotificationRepository interface {
	// Append はエントリーを受信者のアグリゲートに原子的に追記します。
	// アグリゲートが存在しない場合はその場で作成します（lazy creation）。
	// 同一受信者への並行追記は直列化され、追記が失われることはありません。
	Append(ctx context.Context, recipientID uint, entry *entity.NotificationEntry) error

	// FindByRecipient は受信者のアグリゲートを返します。
	// アグリゲートが存在しない場合は(nil, nil)を返します（不在はエラーではない）。
	FindByRecipient(ctx context.Context, recipientID uint) (*entity.NotificationAggregate, error)
}
