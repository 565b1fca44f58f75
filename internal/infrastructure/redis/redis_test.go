package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	redisinfra "github.com/jhoicas/Practicas-api/internal/infrastructure/redis"
	"github.com/jhoicas/Practicas-api/pkg/config"
)

// Requieren un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./...
func testConfig(t *testing.T) config.RedisConfig {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	return config.RedisConfig{Addr: addr, DB: 15}
}

func TestQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	client, err := redisinfra.NewClient(ctx, testConfig(t))
	require.NoError(t, err)
	defer client.Close()

	key := "test:jobs:" + t.Name()
	client.Del(ctx, key)
	q := redisinfra.NewQueue(client, key)

	require.NoError(t, q.Enqueue(ctx, ports.Job{ID: "1", Name: "a", Payload: map[string]string{"k": "v"}}))
	require.NoError(t, q.Enqueue(ctx, ports.Job{ID: "2", Name: "b"}))

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, "v", got.Payload["k"])

	got, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)

	got, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStorage_GetSetReset(t *testing.T) {
	ctx := context.Background()
	client, err := redisinfra.NewClient(ctx, testConfig(t))
	require.NoError(t, err)
	defer client.Close()

	s := redisinfra.NewStorage(client, "test:limiter:")
	require.NoError(t, s.Reset())

	v, err := s.Get("ip")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("ip", []byte("3"), time.Minute))
	v, err = s.Get("ip")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)

	require.NoError(t, s.Reset())
	v, err = s.Get("ip")
	require.NoError(t, err)
	assert.Nil(t, v)
}
