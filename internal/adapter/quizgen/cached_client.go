package quizgen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// CachedClient serves repeated prompts from the cache instead of the backend.
// Cache failures are logged and never fail a generation.
type CachedClient struct {
	next  domain.GenerationClient
	cache domain.Cache
	ttl   time.Duration
	model string
}

// NewCachedClient wraps next. model is part of the cache key so switching
// models does not return stale completions.
func NewCachedClient(next domain.GenerationClient, c domain.Cache, model string, ttl time.Duration) (*CachedClient, error) {
	if next == nil {
		return nil, fmt.Errorf("generation client cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("cache instance cannot be nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("completion cache TTL must be positive")
	}
	return &CachedClient{next: next, cache: c, ttl: ttl, model: model}, nil
}

// CompletionKey is the cache key for a prompt sent to model.
func CompletionKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cache.GenerateCacheKey("quizgen", "completion", hex.EncodeToString(sum[:]), model)
}

func (c *CachedClient) Generate(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()
	key := CompletionKey(c.model, prompt)

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil && cached != "":
		l.Debug("Completion cache hit", zap.String("key", key))
		return cached, nil
	case err != nil && !errors.Is(err, domain.ErrCacheMiss):
		l.Warn("Completion cache lookup failed", zap.String("key", key), zap.Error(err))
	}

	response, err := c.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if setErr := c.cache.Set(ctx, key, response, c.ttl); setErr != nil {
		l.Warn("Failed to store completion in cache", zap.String("key", key), zap.Error(setErr))
	}
	return response, nil
}

// Forget drops the cached completion for prompt, used when its output failed validation.
func (c *CachedClient) Forget(ctx context.Context, prompt string) {
	key := CompletionKey(c.model, prompt)
	if err := c.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to drop cached completion", zap.String("key", key), zap.Error(err))
	}
}

var _ domain.GenerationClient = (*CachedClient)(nil)
