// Package adapters はnotificationsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"social_backend/internal/feature/notifications/domain/entity"
	"social_backend/internal/feature/notifications/usecase"
)

// notificationGorm はNotificationRepositoryのGORM実装です。
// アグリゲートは受信者IDのユニーク制約で1ユーザー1件を保証し、
// エントリーの追記はINSERTのみで行うため並行追記が失われることはありません。
type notificationGorm struct {
	db *gorm.DB
}

// notificationGormがNotificationRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.NotificationRepository = (*notificationGorm)(nil)

// NewNotificationGorm はnotificationGormの新しいインスタンスを生成します。
func NewNotificationGorm(db *gorm.DB) *notificationGorm {
	return &notificationGorm{db: db}
}

// Append はエントリーを受信者のアグリゲートへ原子的に追記します。
// アグリゲートが存在しない場合はトランザクション内で作成します。
// create-or-appendの分岐はON CONFLICT DO NOTHINGで一本化されており、
// 並行する初回通知同士が競合してもアグリゲートは1件しか作られません。
func (r *notificationGorm) Append(ctx context.Context, recipientID uint, entry *entity.NotificationEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		agg := entity.NotificationAggregate{RecipientID: recipientID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&agg).Error; err != nil {
			return err
		}
		if agg.ID == 0 {
			// 既存アグリゲートとの競合で挿入がスキップされた場合はIDを引き直す
			if err := tx.Select("id").
				Where("recipient_id = ?", recipientID).
				First(&agg).Error; err != nil {
				return err
			}
		}

		entry.AggregateID = agg.ID
		return tx.Create(entry).Error
	})
}

// FindByRecipient は受信者のアグリゲートをエントリー付き（追記順）で返します。
// アグリゲートが存在しない場合は(nil, nil)を返します。
func (r *notificationGorm) FindByRecipient(ctx context.Context, recipientID uint) (*entity.NotificationAggregate, error) {
	var agg entity.NotificationAggregate
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("recipient_id = ?", recipientID).
		First(&agg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &agg, nil
}
