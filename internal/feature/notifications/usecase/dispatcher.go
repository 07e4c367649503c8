package usecase

import (
	"context"
	"log/slog"

	"social_backend/internal/feature/notifications/domain/entity"
)

// EventNotification はライブ接続へプッシュされるイベントのタイプラベルです。
const EventNotification = "notification"

// Connection はプッシュ可能なライブ接続のハンドルです。
type Connection interface {
	// ID は接続ハンドルの識別子を返します。
	ID() string
	// Push はイベントを接続へ送信します。スロー・コンシューマーや
	// 切断された接続ではエラーを返しますが、ブロックはしません。
	Push(event string, payload any) error
}

// Presence はユーザーのライブ接続を照会します。
// コンシューマー（ディスパッチャー）側で定義されるインターフェースで、
// platform/realtimeのレジストリが実装します。
type Presence interface {
	// ConnectionsFor はユーザーの全ライブ接続を返します。
	// 不在の場合は空スライスを返し、エラーにはなりません。
	ConnectionsFor(userID uint) []Connection
}

// PushDispatcher はプレゼンスレジストリを参照して通知エントリーを
// 受信者の全ライブ接続へプッシュします。配送はfire-and-forgetです:
// 個別接続への失敗は他の接続への配送を妨げず、永続化済みの追記を
// ロールバックすることもありません。
type PushDispatcher struct {
	presence Presence
}

// PushDispatcherがDispatcherを実装していることをコンパイル時に検証します。
var _ Dispatcher = (*PushDispatcher)(nil)

// NewPushDispatcher はPushDispatcherの新しいインスタンスを生成します。
func NewPushDispatcher(presence Presence) *PushDispatcher {
	return &PushDispatcher{presence: presence}
}

// Dispatch はエントリーを受信者の全ライブ接続へプッシュします。
// 接続が1つもない場合は意図的なno-opです。エントリーはアグリゲートに
// 永続化済みであり、後からプル取得できます。
func (d *PushDispatcher) Dispatch(ctx context.Context, recipientID uint, entry *entity.NotificationEntry) {
	conns := d.presence.ConnectionsFor(recipientID)
	if len(conns) == 0 {
		return
	}

	for _, conn := range conns {
		if err := conn.Push(EventNotification, entry); err != nil {
			// プッシュ失敗はログに記録して握りつぶす。アクションは既に成功している。
			slog.Warn("notification push failed",
				"recipient_id", recipientID,
				"connection_id", conn.ID(),
				"kind", entry.Kind,
				"error", err,
			)
		}
	}
}
