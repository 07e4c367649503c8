package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"social_backend/internal/feature/posts/domain/entity"
	"social_backend/internal/shared/pagination"
)

// mockPostRepository はテスト用のPostRepositoryモック実装です。
type mockPostRepository struct {
	findByIDFn      func(ctx context.Context, id uint) (*entity.Post, error)
	listFn          func(ctx context.Context, page, limit int) ([]entity.Post, pagination.Meta, error)
	toggleLikeFn    func(ctx context.Context, postID, userID uint) (bool, []uint, error)
	appendCommentFn func(ctx context.Context, postID uint, comment *entity.Comment) ([]entity.Comment, error)
}

func (m *mockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	return nil
}

func (m *mockPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, id uint) (*entity.Post, error) {
	return &entity.Post{ID: id}, nil
}

func (m *mockPostRepository) List(ctx context.Context, page, limit int) ([]entity.Post, pagination.Meta, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page, limit)
	}
	return nil, pagination.Meta{}, nil
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID uint, page, limit int) ([]entity.Post, pagination.Meta, error) {
	return nil, pagination.Meta{}, nil
}

func (m *mockPostRepository) ListByAuthors(ctx context.Context, authorIDs []uint, page, limit int) ([]entity.Post, pagination.Meta, error) {
	return nil, pagination.Meta{}, nil
}

func (m *mockPostRepository) AppendComment(ctx context.Context, postID uint, comment *entity.Comment) ([]entity.Comment, error) {
	if m.appendCommentFn != nil {
		return m.appendCommentFn(ctx, postID, comment)
	}
	return nil, nil
}

func (m *mockPostRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, []uint, error) {
	if m.toggleLikeFn != nil {
		return m.toggleLikeFn(ctx, postID, userID)
	}
	return false, nil, nil
}

// TestNewCachingPostRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingPostRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingPostRepository(nil, 0, &mockPostRepository{}, "")

	if repo.ttl != 5*time.Minute {
		t.Errorf("expected default TTL, got %v", repo.ttl)
	}
	if repo.namespace != "posts" {
		t.Errorf("expected default namespace, got %q", repo.namespace)
	}
}

// TestCachingPostRepository_FindByID_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingPostRepository_FindByID_NilRedis(t *testing.T) {
	t.Parallel()

	expected := &entity.Post{ID: 5, UserID: 1, Content: "hello"}
	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			return expected, nil
		},
	}

	repo := NewCachingPostRepository(nil, 5*time.Minute, inner, "posts")

	post, err := repo.FindByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Content != "hello" {
		t.Errorf("expected inner result, got %+v", post)
	}
}

// TestCachingPostRepository_FindByID_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingPostRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := &entity.Post{ID: 5, UserID: 1, Content: "cached"}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("posts:id:5").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	post, err := repo.FindByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if post.Content != "cached" {
		t.Errorf("expected cached post, got %+v", post)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindByID_CacheMiss はキャッシュミス時にDBから取得して保存することを検証します。
func TestCachingPostRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := &entity.Post{ID: 5, UserID: 1, Content: "from db"}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("posts:id:5").RedisNil()
	mock.ExpectSet("posts:id:5", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			return expected, nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	post, err := repo.FindByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Content != "from db" {
		t.Errorf("expected db post, got %+v", post)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_List_CacheMiss はリストページのキャッシュ格納を検証します。
func TestCachingPostRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	posts := []entity.Post{{ID: 2, Content: "newer"}, {ID: 1, Content: "older"}}
	meta := pagination.Meta{CurrentPage: 1, TotalPages: 1, TotalItems: 2}
	pageJSON, _ := json.Marshal(cachedPage{Posts: posts, Meta: meta})

	mock.ExpectGet("posts:list:all:1:10").RedisNil()
	mock.ExpectSet("posts:list:all:1:10", pageJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPostRepository{
		listFn: func(ctx context.Context, page, limit int) ([]entity.Post, pagination.Meta, error) {
			return posts, meta, nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	got, gotMeta, err := repo.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || gotMeta.TotalItems != 2 {
		t.Errorf("unexpected page: %d posts, meta %+v", len(got), gotMeta)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_ToggleLike_Invalidates は書き込みが投稿キーと
// リストページを無効化することを検証します。
func TestCachingPostRepository_ToggleLike_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("posts:id:5").SetVal(1)
	mock.ExpectScan(0, "posts:list:*", 200).SetVal([]string{"posts:list:all:1:10"}, 0)
	mock.ExpectDel("posts:list:all:1:10").SetVal(1)

	inner := &mockPostRepository{
		toggleLikeFn: func(ctx context.Context, postID, userID uint) (bool, []uint, error) {
			return true, []uint{2}, nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	added, likes, err := repo.ToggleLike(context.Background(), 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added || len(likes) != 1 {
		t.Errorf("unexpected toggle result: added=%v likes=%v", added, likes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_ToggleLike_InnerError は内部エラー時にキャッシュへ
// 触れないことを検証します。
func TestCachingPostRepository_ToggleLike_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	inner := &mockPostRepository{
		toggleLikeFn: func(ctx context.Context, postID, userID uint) (bool, []uint, error) {
			return false, nil, expectedErr
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	_, _, err := repo.ToggleLike(context.Background(), 5, 2)

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected inner error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("cache must be untouched on inner error: %v", err)
	}
}
