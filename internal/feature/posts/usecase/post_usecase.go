// Package usecase はpostsフィーチャーのビジネスロジックを実装します。
// いいね・コメント・メンションの3つのアクションが通知集約エンジンの呼び出し元です。
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	authentity "social_backend/internal/feature/auth/domain/entity"
	authusecase "social_backend/internal/feature/auth/usecase"
	notifentity "social_backend/internal/feature/notifications/domain/entity"
	"social_backend/internal/feature/posts/domain/entity"
	"social_backend/internal/shared/pagination"
)

// PostRepository は投稿エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PostRepository interface {
	// Create は新しい投稿を永続化します。
	Create(ctx context.Context, post *entity.Post) error

	// FindByID は投稿をコメント（追記順）といいねセット付きで取得します。
	// 投稿が存在しない場合、ErrPostNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// Update は投稿の本文とメディア参照を更新します。
	Update(ctx context.Context, post *entity.Post) error

	// Delete は投稿を削除し、削除された投稿を返します。
	// 投稿が存在しない場合、ErrPostNotFoundを返します。
	Delete(ctx context.Context, id uint) (*entity.Post, error)

	// List は全投稿をページネーション付きで返します（新しい順）。
	List(ctx context.Context, page, limit int) ([]entity.Post, pagination.Meta, error)

	// ListByAuthor は指定ユーザーの投稿をページネーション付きで返します。
	ListByAuthor(ctx context.Context, authorID uint, page, limit int) ([]entity.Post, pagination.Meta, error)

	// ListByAuthors は複数ユーザーの投稿をページネーション付きで返します（フォローフィード用）。
	ListByAuthors(ctx context.Context, authorIDs []uint, page, limit int) ([]entity.Post, pagination.Meta, error)

	// AppendComment はコメントを投稿へ原子的に追記し、更新後のコメントリストを返します。
	// 投稿が存在しない場合、ErrPostNotFoundを返します。
	AppendComment(ctx context.Context, postID uint, comment *entity.Comment) ([]entity.Comment, error)

	// ToggleLike はいいねセットのメンバーシップを原子的にトグルします。
	// 追加された場合はadded=true、解除された場合はadded=falseを返し、
	// いずれの場合も更新後のいいねセットを返します。
	// read-modify-writeではなく一意制約付きINSERT/DELETEで実装されるため、
	// 並行トグルでエントリーが失われたり重複したりすることはありません。
	ToggleLike(ctx context.Context, postID, userID uint) (added bool, likes []uint, err error)
}

// UserFinder はユーザー存在確認のための読み取りインターフェースです。
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// FollowLister はフォローフィード構築のためにフォロー中のユーザーIDを列挙します。
type FollowLister interface {
	ListFollowing(ctx context.Context, userID uint) ([]uint, error)
}

// Notifier は通知集約エンジンへの窓口です。
// エントリーの構築・永続化・ライブ配送をまとめて担当します。
type Notifier interface {
	Notify(ctx context.Context, kind notifentity.Kind, recipientID uint, payload any) (*notifentity.NotificationEntry, error)
}

// Rewriter は外部のテキスト生成コラボレーターを抽象化します。
// 本文と編集指示を受け取り、書き直された本文を返します。
type Rewriter interface {
	Rewrite(ctx context.Context, text, instruction string) (string, error)
}

// PostUsecase は投稿のCRUDとアクション（いいね・コメント・メンション）を実装します。
type PostUsecase struct {
	posts    PostRepository
	users    UserFinder
	follows  FollowLister
	notifier Notifier
	rewriter Rewriter
}

// NewPostUsecase はPostUsecaseの新しいインスタンスを生成します。
// rewriterはnil可で、その場合は編集指示付きの投稿作成が失敗します。
func NewPostUsecase(posts PostRepository, users UserFinder, follows FollowLister, notifier Notifier, rewriter Rewriter) *PostUsecase {
	return &PostUsecase{
		posts:    posts,
		users:    users,
		follows:  follows,
		notifier: notifier,
		rewriter: rewriter,
	}
}

// Create は新しい投稿を作成します。
// editが指定された場合、本文は外部コラボレーターで書き直されます。
// 書き直しの失敗はErrUpstreamとして呼び出し元へ伝播します。
func (u *PostUsecase) Create(ctx context.Context, authorID uint, content, imageURL, videoURL, edit string) (*entity.Post, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	if edit != "" {
		if u.rewriter == nil {
			return nil, fmt.Errorf("%w: rewriter not configured", ErrUpstream)
		}
		rewritten, err := u.rewriter.Rewrite(ctx, content, edit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		content = rewritten
	}

	post := &entity.Post{
		UserID:   authorID,
		Content:  content,
		ImageURL: imageURL,
		VideoURL: videoURL,
		Comments: []entity.Comment{},
		Likes:    []uint{},
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get は投稿をIDで取得します。
func (u *PostUsecase) Get(ctx context.Context, id uint) (*entity.Post, error) {
	return u.posts.FindByID(ctx, id)
}

// Update は投稿の本文・メディア参照を更新します。所有者のみ実行できます。
func (u *PostUsecase) Update(ctx context.Context, actorID, postID uint, content, imageURL, videoURL string) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, ErrNotPostOwner
	}

	if content != "" {
		post.Content = content
	}
	if imageURL != "" {
		post.ImageURL = imageURL
	}
	if videoURL != "" {
		post.VideoURL = videoURL
	}
	if err := u.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete は投稿を削除します。所有者のみ実行できます。
func (u *PostUsecase) Delete(ctx context.Context, actorID, postID uint) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, ErrNotPostOwner
	}
	return u.posts.Delete(ctx, postID)
}

// List は全投稿をページネーション付きで返します。
func (u *PostUsecase) List(ctx context.Context, page, limit int) ([]entity.Post, pagination.Meta, error) {
	return u.posts.List(ctx, page, limit)
}

// ListByUser は指定ユーザーの投稿をページネーション付きで返します。
func (u *PostUsecase) ListByUser(ctx context.Context, authorID uint, page, limit int) ([]entity.Post, pagination.Meta, error) {
	return u.posts.ListByAuthor(ctx, authorID, page, limit)
}

// FeedByFollowing はフォロー中のユーザーの投稿をページネーション付きで返します。
func (u *PostUsecase) FeedByFollowing(ctx context.Context, userID uint, page, limit int) ([]entity.Post, pagination.Meta, error) {
	following, err := u.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return u.posts.ListByAuthors(ctx, following, page, limit)
}

// Comment はコメントを投稿へ追記し、投稿者へ通知します。
// 通知は常に発生します（アグリゲートの有無に関わらず正確に1エントリー）。
func (u *PostUsecase) Comment(ctx context.Context, actorID, postID uint, text string) ([]entity.Comment, error) {
	// 投稿者の特定と存在確認
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{PostID: postID, UserID: actorID, Text: text}
	comments, err := u.posts.AppendComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}

	if _, err := u.notifier.Notify(ctx, notifentity.KindComment, post.UserID, notifentity.CommentPayload{
		PostID:      postID,
		CommentedBy: actorID,
		Comment:     text,
	}); err != nil {
		return nil, err
	}

	return comments, nil
}

// Like はいいねセットのメンバーシップをトグルします。
// セットに追加された場合のみ投稿者へ通知します（解除では通知しない）。
// 投稿者自身によるいいねでも通知は抑制されません。
func (u *PostUsecase) Like(ctx context.Context, actorID, postID uint) ([]uint, error) {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	added, likes, err := u.posts.ToggleLike(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}
	if !added {
		// いいね解除は通知を生成しない
		return likes, nil
	}

	if _, err := u.notifier.Notify(ctx, notifentity.KindLike, post.UserID, notifentity.LikePayload{
		PostID:  postID,
		LikedBy: actorID,
	}); err != nil {
		return nil, err
	}

	return likes, nil
}

// Mention は指定された受信者へペイロードをそのまま通知します。
// 投稿の参照は不要で、受信者の存在だけを確認します。
func (u *PostUsecase) Mention(ctx context.Context, recipientID uint, payload json.RawMessage) error {
	if _, err := u.users.FindByID(ctx, recipientID); err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	_, err := u.notifier.Notify(ctx, notifentity.KindMention, recipientID, payload)
	return err
}
