// Package cache keeps fetched corpus snapshots in redis so repeated audits
// of one snapshot skip the paginated refetch. A cache miss or any redis
// failure degrades to a normal fetch, never to an audit failure.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"corpus-audit/internal/message"
)

const (
	opTimeout  = 5 * time.Second
	defaultTTL = 1 * time.Hour
)

type Corpus struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client) *Corpus {
	return &Corpus{rdb: rdb, ttl: defaultTTL}
}

func key(source string) string {
	return fmt.Sprintf("corpus:%s", source)
}

func (c *Corpus) Get(ctx context.Context, source string) ([]message.Record, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := c.rdb.Get(ctx, key(source)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Corpus cache read failed: %v", err)
		return nil, false
	}

	var msgs []message.Record
	if err := json.Unmarshal(raw, &msgs); err != nil {
		log.Printf("Corpus cache entry corrupt, ignoring: %v", err)
		return nil, false
	}
	return msgs, true
}

func (c *Corpus) Put(ctx context.Context, source string, msgs []message.Record) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	serialized, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("could not serialize corpus: %w", err)
	}
	if err := c.rdb.Set(ctx, key(source), serialized, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache corpus: %w", err)
	}
	return nil
}
