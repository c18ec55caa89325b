// internal/adapters/redis_adapter/download_marks.go
package redis_a

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/picking-be/internal/core/ports"
)

// downloadMarkTTL is refreshed on every export
const downloadMarkTTL = 30 * 24 * time.Hour

// DownloadMarks keeps a set of exported order ids per user under order:downloaded:<email>
type DownloadMarks struct {
	client *redis.Client
}

var _ ports.DownloadMarkStore = (*DownloadMarks)(nil)

func NewDownloadMarks(client *redis.Client) *DownloadMarks {
	return &DownloadMarks{client: client}
}

func (d *DownloadMarks) MarkDownloaded(ctx context.Context, userEmail string, orderIDs ...string) error {
	if len(orderIDs) == 0 {
		return nil
	}
	members := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		members[i] = id
	}

	key := downloadKey(userEmail)
	pipe := d.client.TxPipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, downloadMarkTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis sadd error: %w", err)
	}
	return nil
}

// Downloaded returns an empty set for a user who never exported
func (d *DownloadMarks) Downloaded(ctx context.Context, userEmail string) (map[string]bool, error) {
	ids, err := d.client.SMembers(ctx, downloadKey(userEmail)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers error: %w", err)
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func downloadKey(email string) string {
	return BuildKey(PrefixDownload, strings.ToLower(strings.TrimSpace(email)))
}
