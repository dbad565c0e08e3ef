// Package cache provides Redis-backed read-through caches.
//
// Redis stays optional at startup, so every method degrades to a cache
// miss (and a logged warning) instead of failing the request when the
// client is unavailable.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ImageCacheTTL bounds staleness of cached image references. Entries are
// also invalidated explicitly on post update/delete; the TTL only covers
// writers outside this service.
const ImageCacheTTL = 15 * time.Minute

// ImageCache caches post image references under "post:image:<id>".
type ImageCache struct {
	client *redis.Client
	logger *zerolog.Logger
}

// NewImageCache builds an ImageCache. A nil client is allowed and turns
// every operation into a no-op.
func NewImageCache(client *redis.Client, logger *zerolog.Logger) *ImageCache {
	return &ImageCache{
		client: client,
		logger: logger,
	}
}

func imageKey(postID int64) string {
	return fmt.Sprintf("post:image:%d", postID)
}

// GetImageURL returns the cached image reference for the post and
// whether the cache held one.
func (c *ImageCache) GetImageURL(ctx context.Context, postID int64) (string, bool) {
	if c.client == nil {
		return "", false
	}

	image, err := c.client.Get(ctx, imageKey(postID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Int64("post_id", postID).Msg("image cache read failed")
		}
		return "", false
	}
	return image, true
}

// SetImageURL stores the image reference for the post.
func (c *ImageCache) SetImageURL(ctx context.Context, postID int64, image string) {
	if c.client == nil {
		return
	}

	if err := c.client.Set(ctx, imageKey(postID), image, ImageCacheTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("post_id", postID).Msg("image cache write failed")
	}
}

// InvalidateImageURL drops the cached image reference for the post.
// Called whenever the post's image may have changed or the post is gone.
func (c *ImageCache) InvalidateImageURL(ctx context.Context, postID int64) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, imageKey(postID)).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("post_id", postID).Msg("image cache invalidation failed")
	}
}
