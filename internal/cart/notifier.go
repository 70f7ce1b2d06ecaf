package cart

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Notifier tells the badge UI that a cart's line count changed. Delivery is
// best effort; a failed notification never fails the mutation that caused it.
type Notifier interface {
	CartChanged(ctx context.Context, cartID string, count int)
}

// NopNotifier drops notifications. Used when no badge channel is wired.
type NopNotifier struct{}

func (NopNotifier) CartChanged(context.Context, string, int) {}

// RedisNotifier publishes count changes on a pub/sub channel the badge UI
// subscribes to.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client, channel: "artcart:badge"}
}

type badgeEvent struct {
	CartID string `json:"cart_id"`
	Count  int    `json:"count"`
}

func (n *RedisNotifier) CartChanged(ctx context.Context, cartID string, count int) {
	payload, err := json.Marshal(badgeEvent{CartID: cartID, Count: count})
	if err != nil {
		log.Warn().Err(err).Msg("badge event marshal failed")
		return
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("cart_id", cartID).Msg("badge publish failed")
	}
}
