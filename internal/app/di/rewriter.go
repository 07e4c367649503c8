package di

import (
	"context"
	"log/slog"
	"time"

	"social_backend/internal/feature/posts/adapters/gemini"
	"social_backend/internal/feature/posts/usecase"
	"social_backend/internal/shared/ratelimiter"
)

// NewRewriter creates the external post rewriter. If the generative AI
// client cannot be configured, it returns nil and post creation with an
// edit instruction will fail with an upstream error.
func NewRewriter(ctx context.Context) usecase.Rewriter {
	limiter := ratelimiter.NewRateLimiter(10, time.Minute)
	rewriter, err := gemini.NewPostRewriter(ctx, limiter)
	if err != nil {
		slog.Warn("generative AI client unavailable, post rewriting disabled", "error", err)
		return nil
	}
	return rewriter
}
