package notifier

import (
	"context"
	"encoding/json"
	"time"

	"bottlekeep-backend/internal/domain/notify"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// RedisNotifier publishes events on a per-store channel. Delivery to
// devices (push, LINE) is a downstream subscriber's problem.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	if channel == "" {
		channel = "notifications"
	}
	return &RedisNotifier{rdb: rdb, channel: channel}
}

var _ notify.Notifier = (*RedisNotifier)(nil)

func (n *RedisNotifier) Notify(ctx context.Context, m notify.Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return n.rdb.Publish(ctx, n.channel+":"+m.StoreID, payload).Err()
}
