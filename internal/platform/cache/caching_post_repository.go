// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"social_backend/internal/feature/posts/domain/entity"
	"social_backend/internal/feature/posts/usecase"
	"social_backend/internal/shared/pagination"
)

// CachingPostRepository decorates a PostRepository with Redis caching.
// Reads check the cache first; every write invalidates the affected
// post key and all list pages, so stale like or comment sets are never
// served past the write that changed them.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// cachedPage is the cache envelope for paginated list results.
type cachedPage struct {
	Posts []entity.Post   `json:"posts"`
	Meta  pagination.Meta `json:"meta"`
}

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "posts".
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// Create persists a new post and invalidates all list pages.
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Create(ctx, post); err != nil {
		return err
	}
	c.invalidateLists(ctx)
	return nil
}

// FindByID retrieves a post, checking cache first then falling back to the database.
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.postKey(id)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Post
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Update persists changes and invalidates the post key and list pages.
func (c *CachingPostRepository) Update(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Update(ctx, post); err != nil {
		return err
	}
	c.invalidatePost(ctx, post.ID)
	return nil
}

// Delete removes a post and invalidates the post key and list pages.
func (c *CachingPostRepository) Delete(ctx context.Context, id uint) (*entity.Post, error) {
	post, err := c.inner.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidatePost(ctx, id)
	return post, nil
}

// List retrieves a page of all posts through the cache.
func (c *CachingPostRepository) List(ctx context.Context, page, limit int) ([]entity.Post, pagination.Meta, error) {
	return c.cachedList(ctx, c.listKey("all", page, limit), func() ([]entity.Post, pagination.Meta, error) {
		return c.inner.List(ctx, page, limit)
	})
}

// ListByAuthor retrieves a page of one author's posts through the cache.
func (c *CachingPostRepository) ListByAuthor(ctx context.Context, authorID uint, page, limit int) ([]entity.Post, pagination.Meta, error) {
	key := c.listKey("author_"+strconv.FormatUint(uint64(authorID), 10), page, limit)
	return c.cachedList(ctx, key, func() ([]entity.Post, pagination.Meta, error) {
		return c.inner.ListByAuthor(ctx, authorID, page, limit)
	})
}

// ListByAuthors retrieves a page of several authors' posts through the cache.
func (c *CachingPostRepository) ListByAuthors(ctx context.Context, authorIDs []uint, page, limit int) ([]entity.Post, pagination.Meta, error) {
	parts := make([]string, len(authorIDs))
	for i, id := range authorIDs {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	key := c.listKey("authors_"+strings.Join(parts, "_"), page, limit)
	return c.cachedList(ctx, key, func() ([]entity.Post, pagination.Meta, error) {
		return c.inner.ListByAuthors(ctx, authorIDs, page, limit)
	})
}

// AppendComment delegates to the inner repository and invalidates the post.
func (c *CachingPostRepository) AppendComment(ctx context.Context, postID uint, comment *entity.Comment) ([]entity.Comment, error) {
	comments, err := c.inner.AppendComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}
	c.invalidatePost(ctx, postID)
	return comments, nil
}

// ToggleLike delegates to the inner repository and invalidates the post.
func (c *CachingPostRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, []uint, error) {
	added, likes, err := c.inner.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, nil, err
	}
	c.invalidatePost(ctx, postID)
	return added, likes, nil
}

// cachedList serves a list page from cache, falling back to loader.
func (c *CachingPostRepository) cachedList(ctx context.Context, key string, loader func() ([]entity.Post, pagination.Meta, error)) ([]entity.Post, pagination.Meta, error) {
	if c.rdb == nil {
		return loader()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out cachedPage
		if err := json.Unmarshal(b, &out); err == nil {
			return out.Posts, out.Meta, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	posts, meta, err := loader()
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if b, err := json.Marshal(cachedPage{Posts: posts, Meta: meta}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return posts, meta, nil
}

// invalidatePost drops the post key and all list pages. Best effort:
// cache failures never fail the write that triggered them.
func (c *CachingPostRepository) invalidatePost(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.postKey(id)).Err()
	c.invalidateLists(ctx)
}

// invalidateLists drops every cached list page.
func (c *CachingPostRepository) invalidateLists(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":list:*")
}

// postKey generates the cache key for a single post.
func (c *CachingPostRepository) postKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// listKey generates the cache key for one list page.
func (c *CachingPostRepository) listKey(scope string, page, limit int) string {
	return fmt.Sprintf("%s:list:%s:%d:%d", c.namespace, scope, page, limit)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPostRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
