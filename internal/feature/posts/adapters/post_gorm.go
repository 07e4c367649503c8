// Package adapters はpostsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"social_backend/internal/feature/posts/domain/entity"
	"social_backend/internal/feature/posts/usecase"
	"social_backend/internal/shared/pagination"
)

// postGorm はPostRepositoryインターフェースのGORM実装です。
// いいねセットはpost_likesテーブルの複合ユニーク制約で重複を排除し、
// トグルはread-modify-writeではなくINSERT/DELETEで原子的に行います。
type postGorm struct {
	db *gorm.DB
}

// postGormがPostRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostGorm は指定されたgorm.DB接続でpostGormの新しいインスタンスを生成します。
func NewPostGorm(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// Create は投稿をデータベースに追加します。
func (r *postGorm) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID は投稿をコメント（追記順）といいねセット付きで取得します。
func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}

	likes, err := r.likesOf(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Likes = likes
	return &post, nil
}

// Update は投稿の本文とメディア参照のみ更新します。
// コメント・いいねの関連は専用の原子的プリミティブでのみ変更されます。
func (r *postGorm) Update(ctx context.Context, post *entity.Post) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"content":   post.Content,
			"image_url": post.ImageURL,
			"video_url": post.VideoURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPostNotFound
	}
	return nil
}

// Delete は投稿と付随するコメント・いいねを削除し、削除された投稿を返します。
func (r *postGorm) Delete(ctx context.Context, id uint) (*entity.Post, error) {
	post, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Post{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// List は全投稿を新しい順にページネーション付きで返します。
func (r *postGorm) List(ctx context.Context, page, limit int) ([]entity.Post, pagination.Meta, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&entity.Post{}), page, limit)
}

// ListByAuthor は指定ユーザーの投稿をページネーション付きで返します。
func (r *postGorm) ListByAuthor(ctx context.Context, authorID uint, page, limit int) ([]entity.Post, pagination.Meta, error) {
	q := r.db.WithContext(ctx).Model(&entity.Post{}).Where("user_id = ?", authorID)
	return r.list(ctx, q, page, limit)
}

// ListByAuthors は複数ユーザーの投稿をページネーション付きで返します。
// authorIDsが空の場合は空ページを返します。
func (r *postGorm) ListByAuthors(ctx context.Context, authorIDs []uint, page, limit int) ([]entity.Post, pagination.Meta, error) {
	page, limit = pagination.Normalize(page, limit)
	if len(authorIDs) == 0 {
		return []entity.Post{}, pagination.MetaFor(0, page, limit), nil
	}
	q := r.db.WithContext(ctx).Model(&entity.Post{}).Where("user_id IN ?", authorIDs)
	return r.list(ctx, q, page, limit)
}

// list はクエリにページネーションを適用し、各投稿のいいねセットを埋めます。
func (r *postGorm) list(ctx context.Context, q *gorm.DB, page, limit int) ([]entity.Post, pagination.Meta, error) {
	page, limit = pagination.Normalize(page, limit)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	var posts []entity.Post
	err := q.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("id DESC").
		Offset(pagination.Offset(page, limit)).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	for i := range posts {
		likes, err := r.likesOf(ctx, posts[i].ID)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
		posts[i].Likes = likes
	}
	return posts, pagination.MetaFor(total, page, limit), nil
}

// AppendComment はコメントを原子的に追記し、更新後のコメントリストを返します。
// 投稿の存在確認と追記は同一トランザクション内で行われます。
func (r *postGorm) AppendComment(ctx context.Context, postID uint, comment *entity.Comment) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}

		comment.PostID = postID
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return tx.Where("post_id = ?", postID).
			Order("id ASC").
			Find(&comments).Error
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ToggleLike はいいねセットのメンバーシップを原子的にトグルします。
// ON CONFLICT DO NOTHINGの挿入が0行だった場合は既にメンバーなので削除します。
// 並行トグルはユニーク制約で直列化され、重複・消失は発生しません。
func (r *postGorm) ToggleLike(ctx context.Context, postID, userID uint) (bool, []uint, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.PostLike{PostID: postID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		added = res.RowsAffected == 1
		if added {
			return nil
		}

		// 既にいいね済み: トグルなので解除する
		return tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&entity.PostLike{}).Error
	})
	if err != nil {
		return false, nil, err
	}

	likes, err := r.likesOf(ctx, postID)
	if err != nil {
		return false, nil, err
	}
	return added, likes, nil
}

// likesOf は投稿のいいねユーザーIDを追加順に返します。
func (r *postGorm) likesOf(ctx context.Context, postID uint) ([]uint, error) {
	likes := []uint{}
	err := r.db.WithContext(ctx).
		Model(&entity.PostLike{}).
		Where("post_id = ?", postID).
		Order("id ASC").
		Pluck("user_id", &likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// postExists は投稿の存在を確認し、不在ならErrPostNotFoundを返します。
func postExists(tx *gorm.DB, postID uint) error {
	var count int64
	if err := tx.Model(&entity.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return usecase.ErrPostNotFound
	}
	return nil
}
