package wishlist

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
	redisWishlistPrefix = "wishlist:"
	redisContextTimeout = 2 * time.Second
)

type redisRepo struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedis stores each wishlist as a JSON array under "wishlist:<session>".
func NewRedis(client redis.Cmdable, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

func (r *redisRepo) Load(ctx context.Context, sessionID string) ([]domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, redisContextTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, redisWishlistPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.WishlistItem{}, nil
		}
		return nil, fmt.Errorf("redis get wishlist: %w", err)
	}
	items := []domain.WishlistItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return items, nil
}

func (r *redisRepo) Save(ctx context.Context, sessionID string, items []domain.WishlistItem) error {
	ctx, cancel := context.WithTimeout(ctx, redisContextTimeout)
	defer cancel()

	key := redisWishlistPrefix + sessionID
	if len(items) == 0 {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis del wishlist: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	if err := r.client.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set wishlist: %w", err)
	}
	return nil
}
