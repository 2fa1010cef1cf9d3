package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"eventagenda/internal/domain"
)

// ChangesChannel is the Redis Pub/Sub channel carrying agenda change events.
const ChangesChannel = "agenda:changes"

// RedisBus carries change events between instances. Services publish through
// Notify; every instance runs Listen to feed its local Hub. Delivery is
// at-most-once, which is enough because each change triggers a full snapshot.
type RedisBus struct {
	rdb     goredis.UniversalClient
	channel string
	logger  *slog.Logger
}

func NewRedisBus(rdb goredis.UniversalClient, logger *slog.Logger) *RedisBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisBus{rdb: rdb, channel: ChangesChannel, logger: logger}
}

// Notify publishes change as JSON.
func (b *RedisBus) Notify(ctx context.Context, change domain.ChangeEvent) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// WithLocalFallback returns a notifier that publishes through the bus and,
// when publishing fails, hands the change to local instead. Subscribers on
// this instance keep refreshing while Redis is unreachable.
func (b *RedisBus) WithLocalFallback(local domain.ChangeNotifier) domain.ChangeNotifier {
	return domain.NotifierFunc(func(ctx context.Context, change domain.ChangeEvent) error {
		err := b.Notify(ctx, change)
		if err == nil {
			return nil
		}
		b.logger.WarnContext(ctx, "change publish failed, notifying local subscribers only",
			"event_id", change.EventID, "err", err)
		return local.Notify(ctx, change)
	})
}

// Listen subscribes to the change channel and forwards each event to sink
// until ctx is cancelled. It returns once the subscription is confirmed.
func (b *RedisBus) Listen(ctx context.Context, sink domain.ChangeNotifier) error {
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var change domain.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					b.logger.Warn("dropping malformed change event", "channel", msg.Channel, "err", err)
					continue
				}
				if err := sink.Notify(ctx, change); err != nil {
					b.logger.Warn("change event forward failed", "event_id", change.EventID, "err", err)
				}
			}
		}
	}()
	return nil
}
