// Package gemini はGoogle Gemini APIを使用した投稿本文の書き直しクライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"social_backend/internal/feature/posts/usecase"
	"social_backend/internal/shared/ratelimiter"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// PostRewriter はGoogle Gemini APIを使用して投稿本文を編集指示に従って書き直します。
type PostRewriter struct {
	client  *genai.Client
	model   string
	limiter ratelimiter.RateLimiterInterface
}

// PostRewriterがRewriterを実装していることをコンパイル時に検証します。
var _ usecase.Rewriter = (*PostRewriter)(nil)

// NewPostRewriter はADCを使用してPostRewriterの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewPostRewriter(ctx context.Context, limiter ratelimiter.RateLimiterInterface) (*PostRewriter, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &PostRewriter{client: client, model: DefaultModel, limiter: limiter}, nil
}

// Rewrite は編集指示に従って本文を書き直したテキストを返します。
func (g *PostRewriter) Rewrite(ctx context.Context, text, instruction string) (string, error) {
	if g.limiter != nil {
		g.limiter.WaitIfNeeded()
	}

	prompt := fmt.Sprintf("Rewrite this post: %q according to this instruction: %q. Return only the rewritten post text.", text, instruction)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
