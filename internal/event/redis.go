package event

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "silai:changes:"

// RedisBus fans change events out over Redis pub/sub so every server
// instance (and its SSE clients) sees writes made by any other instance.
type RedisBus struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisBus(rdb *redis.Client, logger *zap.Logger) *RedisBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBus{rdb: rdb, logger: logger}
}

func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, channelPrefix+ev.Resource, payload).Err()
}

// Subscribe opens a pub/sub channel for resource. ResourceAll uses a
// pattern subscription across all change channels.
func (b *RedisBus) Subscribe(resource string, fn func(Event)) (func(), error) {
	ctx := context.Background()

	var pubsub *redis.PubSub
	if resource == ResourceAll {
		pubsub = b.rdb.PSubscribe(ctx, channelPrefix+"*")
	} else {
		pubsub = b.rdb.Subscribe(ctx, channelPrefix+resource)
	}

	// Confirm the subscription before handing out the cancel func.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	go func() {
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("dropping malformed change event",
					zap.String("channel", msg.Channel),
					zap.Error(err))
				continue
			}
			if ev.Resource == "" {
				ev.Resource = strings.TrimPrefix(msg.Channel, channelPrefix)
			}
			fn(ev)
		}
	}()

	return func() { pubsub.Close() }, nil
}
