package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
)

// ErrQueueFull la cola en memoria alcanzó su capacidad.
var ErrQueueFull = errors.New("jobs: cola en memoria llena")

// MemQueue cola en proceso para cuando no hay Redis configurado.
// Los trabajos se pierden si el proceso termina.
type MemQueue struct {
	ch chan ports.Job
}

// NewMemQueue crea una cola con la capacidad dada.
func NewMemQueue(size int) *MemQueue {
	if size <= 0 {
		size = 256
	}
	return &MemQueue{ch: make(chan ports.Job, size)}
}

// Enqueue no bloquea: si la cola está llena devuelve ErrQueueFull.
func (q *MemQueue) Enqueue(ctx context.Context, job ports.Job) error {
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Dequeue espera hasta timeout. Devuelve (nil, nil) si no llegó nada.
func (q *MemQueue) Dequeue(ctx context.Context, timeout time.Duration) (*ports.Job, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case job := <-q.ch:
		return &job, nil
	case <-t.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len trabajos pendientes.
func (q *MemQueue) Len() int { return len(q.ch) }
