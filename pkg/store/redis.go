package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/birthdaysvc/birthdayd/pkg/hello"
)

// DefaultNamespace is the logical partition under which birthday records
// are keyed.
const DefaultNamespace = "birthday"

// Redis is a hello.Store backed by a Redis key-value server. One record per
// username, keyed <namespace>:<username>, value is the JSON record. Upserts
// are single-key SET operations, so replacement is atomic and the last
// write to complete wins.
type Redis struct {
	rdb       *redis.Client
	namespace string
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithNamespace overrides the key namespace.
func WithNamespace(namespace string) RedisOption {
	return func(s *Redis) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// NewRedis creates a Redis-backed store. The client is shared across all
// concurrent requests; go-redis clients are safe for concurrent use.
func NewRedis(rdb *redis.Client, opts ...RedisOption) *Redis {
	s := &Redis{
		rdb:       rdb,
		namespace: DefaultNamespace,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Redis) key(username string) string {
	return s.namespace + ":" + username
}

// GetBirthday implements hello.Store. Absence of a record is (nil, nil);
// every other failure is forwarded wrapped, never interpreted here.
func (s *Redis) GetBirthday(ctx context.Context, username string) (*hello.Record, error) {
	val, err := s.rdb.Get(ctx, s.key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting birthday record for %q: %w", username, err)
	}

	var record hello.Record
	if err := json.Unmarshal(val, &record); err != nil {
		return nil, fmt.Errorf("decoding birthday record for %q: %w", username, err)
	}
	return &record, nil
}

// UpsertBirthday implements hello.Store, replacing any prior value whole.
func (s *Redis) UpsertBirthday(ctx context.Context, username string, dob hello.Date) error {
	payload, err := json.Marshal(hello.Record{DOB: dob})
	if err != nil {
		return fmt.Errorf("encoding birthday record for %q: %w", username, err)
	}

	if err := s.rdb.Set(ctx, s.key(username), payload, 0).Err(); err != nil {
		return fmt.Errorf("storing birthday record for %q: %w", username, err)
	}
	return nil
}
