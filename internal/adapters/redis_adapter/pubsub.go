// internal/adapters/redis_adapter/pubsub.go
package redis_a

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

// MemoChannel is the pub/sub channel new memos are published on
const MemoChannel = "memos"

// MemoBroadcaster fans memos out over Redis pub/sub so every API instance
// can push them to its stream clients
type MemoBroadcaster struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

var _ ports.MemoBroadcaster = (*MemoBroadcaster)(nil)

func NewMemoBroadcaster(client *redis.Client, logger *slog.Logger) *MemoBroadcaster {
	return &MemoBroadcaster{
		client:  client,
		channel: MemoChannel,
		logger:  logger.With(slog.String("component", "memo_pubsub")),
	}
}

// Publish sends memo to every subscriber
func (b *MemoBroadcaster) Publish(ctx context.Context, memo *domain.Memo) error {
	data, err := json.Marshal(memo)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish error: %w", err)
	}
	return nil
}

// Subscribe returns memos published after the subscription is confirmed.
// The channel is closed when ctx is done.
func (b *MemoBroadcaster) Subscribe(ctx context.Context) (<-chan domain.Memo, error) {
	sub := b.client.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe error: %w", err)
	}

	out := make(chan domain.Memo, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var memo domain.Memo
				if err := json.Unmarshal([]byte(msg.Payload), &memo); err != nil {
					b.logger.WarnContext(ctx, "dropping malformed memo message", slog.String("error", err.Error()))
					continue
				}
				select {
				case out <- memo:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
