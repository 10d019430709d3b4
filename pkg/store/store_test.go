package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birthdaysvc/birthdayd/pkg/hello"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	record, err := s.GetBirthday(ctx, "foo")
	require.NoError(t, err)
	assert.Nil(t, record, "unknown user must yield nil record, nil error")

	dob := hello.NewDate(2000, time.December, 31)
	require.NoError(t, s.UpsertBirthday(ctx, "foo", dob))

	record, err = s.GetBirthday(ctx, "foo")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "2000-12-31", record.DOB.String())
}

func TestMemoryLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.UpsertBirthday(ctx, "foo", hello.NewDate(2000, time.January, 1)))
	require.NoError(t, s.UpsertBirthday(ctx, "foo", hello.NewDate(1999, time.June, 15)))

	record, err := s.GetBirthday(ctx, "foo")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "1999-06-15", record.DOB.String())
}

func TestMemoryConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	dob := hello.NewDate(2000, time.January, 1)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.UpsertBirthday(ctx, "foo", dob))
			_, err := s.GetBirthday(ctx, "foo")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	record, err := s.GetBirthday(ctx, "foo")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, dob.String(), record.DOB.String())
}

func TestMemoryReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.UpsertBirthday(ctx, "foo", hello.NewDate(2000, time.January, 1)))

	first, err := s.GetBirthday(ctx, "foo")
	require.NoError(t, err)
	first.DOB = hello.NewDate(1990, time.May, 5)

	second, err := s.GetBirthday(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01", second.DOB.String(),
		"mutating a returned record must not affect stored state")
}

func TestRedisKeyNamespacing(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedis(rdb)
	assert.Equal(t, "birthday:foo", s.key("foo"))

	s = NewRedis(rdb, WithNamespace("test"))
	assert.Equal(t, "test:foo", s.key("foo"))

	// Empty namespace keeps the default instead of producing ":foo" keys.
	s = NewRedis(rdb, WithNamespace(""))
	assert.Equal(t, "birthday:foo", s.key("foo"))
}

func TestRecordWireSchema(t *testing.T) {
	payload, err := json.Marshal(hello.Record{DOB: hello.NewDate(2000, time.December, 31)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dob": "2000-12-31"}`, string(payload))

	var record hello.Record
	require.NoError(t, json.Unmarshal([]byte(`{"dob": "2000-12-31"}`), &record))
	assert.Equal(t, "2000-12-31", record.DOB.String())
}
