// internal/adapters/redis_adapter/read_marks.go
package redis_a

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/picking-be/internal/core/ports"
)

// ReadMarks stores each user's last memo read time as RFC 3339 under memo:read:<email>
type ReadMarks struct {
	client *redis.Client
}

var _ ports.ReadMarkStore = (*ReadMarks)(nil)

func NewReadMarks(client *redis.Client) *ReadMarks {
	return &ReadMarks{client: client}
}

// LastRead returns the zero time when the user never opened the log
func (r *ReadMarks) LastRead(ctx context.Context, userEmail string) (time.Time, error) {
	raw, err := r.client.Get(ctx, readKey(userEmail)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("redis get error: %w", err)
	}

	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid read mark %q: %w", raw, err)
	}
	return at, nil
}

func (r *ReadMarks) SetLastRead(ctx context.Context, userEmail string, at time.Time) error {
	if err := r.client.Set(ctx, readKey(userEmail), at.UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func readKey(email string) string {
	return BuildKey(PrefixMemoRead, strings.ToLower(strings.TrimSpace(email)))
}
