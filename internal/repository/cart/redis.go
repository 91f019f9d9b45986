package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	redisCartPrefix     = "cart:"
	redisContextTimeout = 2 * time.Second
)

type redisRepo struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedis stores each session cart as a JSON array under "cart:<session>" with a sliding TTL.
func NewRedis(client redis.Cmdable, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

func (r *redisRepo) Load(ctx context.Context, sessionID string) ([]domain.CartLineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, redisContextTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, redisCartPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.CartLineItem{}, nil
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var lines []domain.CartLineItem
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if lines == nil {
		lines = []domain.CartLineItem{}
	}
	return lines, nil
}

func (r *redisRepo) Save(ctx context.Context, sessionID string, lines []domain.CartLineItem) error {
	ctx, cancel := context.WithTimeout(ctx, redisContextTimeout)
	defer cancel()

	if lines == nil {
		lines = []domain.CartLineItem{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.client.Set(ctx, redisCartPrefix+sessionID, string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, redisContextTimeout)
	defer cancel()

	if err := r.client.Del(ctx, redisCartPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}
