package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/specialdk/rac-artwork/internal/domain"
)

// Carts are kept for 90 days after the last mutation, then expire.
const cartTTL = 90 * 24 * time.Hour

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: cartTTL}
}

// RedisStore keeps each cart as one JSON document under one namespaced key.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func storeKey(cartID string) string {
	return fmt.Sprintf("artcart:%s", cartID)
}

func (s *RedisStore) Load(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	data, err := s.client.Get(ctx, storeKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		// A corrupt document must not brick the cart; recover to empty.
		log.Warn().Err(err).Str("cart_id", cartID).Msg("stored cart is corrupt, resetting to empty")
		return []domain.CartLine{}, nil
	}
	return lines, nil
}

func (s *RedisStore) Save(ctx context.Context, cartID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := s.client.Set(ctx, storeKey(cartID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, storeKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
