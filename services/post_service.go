package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/SaorsaGrowth/saorsa-site-backend/logger"
	"github.com/SaorsaGrowth/saorsa-site-backend/pkg/substack"
	"github.com/SaorsaGrowth/saorsa-site-backend/types"
	"github.com/redis/go-redis/v9"
)

const postCacheKey = "posts:feed"

// PostServiceInterface defines the read operations exposed to handlers.
type PostServiceInterface interface {
	ListPosts(ctx context.Context) []types.Post
	GetPost(ctx context.Context, slug string) *types.Post
}

// PostService serves normalized posts from the feed client behind a
// revalidation-window cache. With a Redis client the cache is shared across
// instances; without one it degrades to a per-process copy. Errors from the
// feed never propagate: callers get an empty list and the page stays up.
type PostService struct {
	feed        substack.ClientInterface
	redisClient *redis.Client
	ttl         time.Duration

	mu        sync.RWMutex
	cached    []types.Post
	fetchedAt time.Time
}

// NewPostService creates a PostService. redisClient may be nil.
func NewPostService(feed substack.ClientInterface, redisClient *redis.Client, ttl time.Duration) *PostService {
	return &PostService{
		feed:        feed,
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// ListPosts returns the current post collection, newest first. A cache hit
// within the revalidation window skips the feed fetch entirely; any fetch
// failure is logged and collapsed to an empty list.
func (s *PostService) ListPosts(ctx context.Context) []types.Post {
	if posts, ok := s.readCache(ctx); ok {
		return posts
	}

	posts, err := s.feed.FetchPosts(ctx)
	if err != nil {
		logger.LogError(ctx, err, "Failed to fetch feed, serving empty post list", map[string]interface{}{
			"cache_ttl": s.ttl.String(),
		})
		return []types.Post{}
	}

	s.writeCache(ctx, posts)
	return posts
}

// GetPost returns the first post whose slug matches, or nil. An empty slug
// never matches: posts with malformed links all normalize to an empty slug,
// and none of them should be addressable.
func (s *PostService) GetPost(ctx context.Context, slug string) *types.Post {
	if slug == "" {
		return nil
	}

	for _, post := range s.ListPosts(ctx) {
		if post.Slug == slug {
			p := post
			return &p
		}
	}
	return nil
}

func (s *PostService) readCache(ctx context.Context) ([]types.Post, bool) {
	log := logger.GetLogger()

	if s.redisClient != nil {
		raw, err := s.redisClient.Get(ctx, postCacheKey).Result()
		if err != nil {
			if err != redis.Nil {
				// Treat a broken cache like a miss; the feed fetch still works.
				log.Warnw("Post cache read failed", "error", err)
			}
			return nil, false
		}

		var posts []types.Post
		if err := json.Unmarshal([]byte(raw), &posts); err != nil {
			log.Warnw("Post cache entry corrupt, refetching", "error", err)
			return nil, false
		}
		return posts, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		posts := make([]types.Post, len(s.cached))
		copy(posts, s.cached)
		return posts, true
	}
	return nil, false
}

func (s *PostService) writeCache(ctx context.Context, posts []types.Post) {
	log := logger.GetLogger()

	if s.redisClient != nil {
		raw, err := json.Marshal(posts)
		if err != nil {
			log.Warnw("Failed to encode posts for cache", "error", err)
			return
		}
		if err := s.redisClient.Set(ctx, postCacheKey, raw, s.ttl).Err(); err != nil {
			log.Warnw("Post cache write failed", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.cached = make([]types.Post, len(posts))
	copy(s.cached, posts)
	s.fetchedAt = time.Now()
	s.mu.Unlock()
}
