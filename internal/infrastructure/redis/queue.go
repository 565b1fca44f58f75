package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
)

var _ ports.JobQueue = (*Queue)(nil)

// Queue cola FIFO sobre una lista: LPUSH para encolar, BRPOP para consumir.
type Queue struct {
	client *redis.Client
	key    string
}

// NewQueue construye la cola sobre la clave dada.
func NewQueue(client *redis.Client, key string) *Queue {
	if key == "" {
		key = "practicas:jobs"
	}
	return &Queue{client: client, key: key}
}

// Enqueue serializa el trabajo en JSON.
func (q *Queue) Enqueue(ctx context.Context, job ports.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, raw).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", q.key, err)
	}
	return nil
}

// Dequeue bloquea hasta timeout; (nil, nil) si no hubo trabajo.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*ports.Job, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("brpop %s: %w", q.key, err)
	}
	// res = [clave, valor]
	if len(res) != 2 {
		return nil, fmt.Errorf("brpop %s: respuesta inesperada", q.key)
	}
	var job ports.Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &job, nil
}

// Len trabajos pendientes.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
