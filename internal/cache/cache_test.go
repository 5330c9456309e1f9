package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", Entry{Distance: 0.22, Similarity: 0.927}))

	e, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Entry{Distance: 0.22, Similarity: 0.927}, e)
	assert.Equal(t, 1, m.Len())
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			_ = m.Set(ctx, key, Entry{Distance: float64(i % 4)})
			_, _, _ = m.Get(ctx, key)
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, m.Len())
}

func TestEntryEncoding(t *testing.T) {
	for _, e := range []Entry{
		{Distance: 0, Similarity: 1},
		{Distance: 1.11, Similarity: 0.63},
		{Distance: 3, Similarity: -2},
	} {
		got, err := decodeEntry(encodeEntry(e))
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	for _, bad := range []string{"", "1.0", "x,1", "1,y"} {
		_, err := decodeEntry(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewRedis_DefaultPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	r := NewRedis(client, "", time.Minute)
	assert.Equal(t, DefaultPrefix, r.prefix)
}

// TestRedis runs against a live server when PHONSIM_TEST_REDIS is set, e.g. localhost:6379.
func TestRedis(t *testing.T) {
	addr := os.Getenv("PHONSIM_TEST_REDIS")
	if addr == "" {
		t.Skip("PHONSIM_TEST_REDIS not set")
	}

	ctx := context.Background()
	r := NewRedis(redis.NewClient(&redis.Options{Addr: addr}), "phonsim-test:", time.Minute)
	defer r.Close()

	require.NoError(t, r.Ping(ctx))

	key := fmt.Sprintf("%s-%d", t.Name(), time.Now().UnixNano())

	_, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, key, Entry{Distance: 0.5, Similarity: 0.75}))

	e, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Entry{Distance: 0.5, Similarity: 0.75}, e)
}
