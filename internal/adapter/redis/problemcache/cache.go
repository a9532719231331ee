package problemcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
)

var _ secondary.ProblemCache = (*ProblemCache)(nil)

// ProblemCache stores resolved problems as JSON strings in Redis
type ProblemCache struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func NewProblemCache(redisClient *redis.Client, logger primary.Logger) *ProblemCache {
	return &ProblemCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (c *ProblemCache) GetProblem(ctx context.Context, key string) (*domain.Problem, error) {
	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached problem: %w", err)
	}

	var p domain.Problem
	if err := json.Unmarshal(data, &p); err != nil {
		// a stale or foreign value is treated as a miss
		c.logger.Warn("Dropping undecodable cached problem", "key", key, "error", err)
		c.redisClient.Del(ctx, key)
		return nil, nil
	}
	return &p, nil
}

func (c *ProblemCache) SetProblem(ctx context.Context, key string, p *domain.Problem, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal problem: %w", err)
	}
	if err := c.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache problem: %w", err)
	}
	c.logger.Debug("Cached problem", "key", key, "problemId", p.ID, "ttl", ttl)
	return nil
}
