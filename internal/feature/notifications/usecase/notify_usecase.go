// Package usecase は通知の集約と配送のビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"social_backend/internal/feature/notifications/domain/entity"
)

// Dispatcher は永続化済みエントリーを受信者のライブ接続へ送り出します。
type Dispatcher interface {
	// Dispatch はエントリーを受信者の全接続へプッシュします。
	// 受信者がオフラインの場合は何もしません（エラーではない）。
	Dispatch(ctx context.Context, recipientID uint, entry *entity.NotificationEntry)
}

// NotifyUsecase は通知集約エンジンです。
// アクションイベントから通知エントリーを構築し、受信者のアグリゲートへ
// 原子的に追記した上で、配送ディスパッチャーへ引き渡します。
type NotifyUsecase struct {
	repo       NotificationRepository
	dispatcher Dispatcher
}

// NewNotifyUsecase はNotifyUsecaseの新しいインスタンスを生成します。
// dispatcherはnil可で、その場合は永続化のみ行います（テスト用）。
func NewNotifyUsecase(repo NotificationRepository, dispatcher Dispatcher) *NotifyUsecase {
	return &NotifyUsecase{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

// Notify は通知エントリーを構築・永続化し、ライブ配送へ引き渡します。
// payloadはJSONにシリアライズされてエントリーに格納されます
// （json.RawMessageの場合はそのまま格納）。
// 永続化の失敗はそのまま呼び出し元へ伝播します。配送の失敗は
// Dispatcher内でログに記録され、アクションの結果には影響しません。
func (u *NotifyUsecase) Notify(ctx context.Context, kind entity.Kind, recipientID uint, payload any) (*entity.NotificationEntry, error) {
	data, err := marshalPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification payload: %w", err)
	}

	entry := &entity.NotificationEntry{
		Kind:      kind,
		Data:      data,
		CreatedAt: time.Now(),
	}

	if err := u.repo.Append(ctx, recipientID, entry); err != nil {
		return nil, fmt.Errorf("failed to append notification: %w", err)
	}

	if u.dispatcher != nil {
		u.dispatcher.Dispatch(ctx, recipientID, entry)
	}
	return entry, nil
}

// ListForRecipient は受信者の全通知エントリーを返します。
// アグリゲートが未作成の場合は空のアグリゲートを返します。
func (u *NotifyUsecase) ListForRecipient(ctx context.Context, recipientID uint) (*entity.NotificationAggregate, error) {
	agg, err := u.repo.FindByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		agg = &entity.NotificationAggregate{
			RecipientID: recipientID,
			Entries:     []entity.NotificationEntry{},
		}
	}
	return agg, nil
}

// marshalPayload はペイロードをJSONバイト列へ正規化します。
func marshalPayload(payload any) (json.RawMessage, error) {
	switch p := payload.(type) {
	case json.RawMessage:
		return p, nil
	case []byte:
		return json.RawMessage(p), nil
	default:
		return json.Marshal(payload)
	}
}
