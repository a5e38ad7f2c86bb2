package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "advisor:evidence:"

// CacheStore is the subset of the Redis client used by CachedFetcher.
type CacheStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedFetcher is a read-through cache in front of another Fetcher. Bodies are
// stored zstd-compressed. Cache failures are logged and never returned.
type CachedFetcher struct {
	next    Fetcher
	store   CacheStore
	ttl     time.Duration
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewCachedFetcher(next Fetcher, store CacheStore, ttl time.Duration) (*CachedFetcher, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	return &CachedFetcher{
		next:    next,
		store:   store,
		ttl:     ttl,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", ErrEmptyURL
	}

	key := CacheKey(url)

	cached, err := f.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		content, decodeErr := f.decoder.DecodeAll(cached, nil)
		if decodeErr == nil {
			slog.DebugContext(ctx, "evidence cache hit", "url", url)
			return string(content), nil
		}
		slog.WarnContext(ctx, "evidence cache entry unreadable", "url", url, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "evidence cache read failed", "url", url, "error", err)
	}

	content, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	compressed := f.encoder.EncodeAll([]byte(content), nil)
	if err := f.store.Set(ctx, key, compressed, f.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "evidence cache write failed", "url", url, "error", err)
	}

	return content, nil
}

func CacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
