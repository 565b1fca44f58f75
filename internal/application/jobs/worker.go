package jobs

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

// Handler ejecuta un trabajo.
type Handler interface {
	Handle(ctx context.Context, job ports.Job) error
}

// Worker consume la cola con N goroutines y reencola los fallos hasta MaxAttempts.
type Worker struct {
	queue       ports.JobQueue
	handler     Handler
	concurrency int
	poll        time.Duration
	log         *logger.Logger
}

// NewWorker construye el consumidor.
func NewWorker(queue ports.JobQueue, handler Handler, concurrency int, poll time.Duration, log *logger.Logger) *Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if poll <= 0 {
		poll = 5 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Worker{queue: queue, handler: handler, concurrency: concurrency, poll: poll, log: log.Component("worker")}
}

// Run bloquea hasta que ctx se cancele o la cola falle.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.concurrency; i++ {
		g.Go(func() error { return w.loop(ctx) })
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (w *Worker) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		job, err := w.queue.Dequeue(ctx, w.poll)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Error().Err(err).Msg("leer cola")
			select {
			case <-time.After(w.poll):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		if job == nil {
			continue
		}
		w.process(ctx, *job)
	}
}

// process ejecuta un trabajo y decide si se reintenta.
func (w *Worker) process(ctx context.Context, job ports.Job) {
	start := time.Now()
	err := w.handler.Handle(ctx, job)
	ev := w.log.Info()
	if err != nil {
		ev = w.log.Error().Err(err)
	}
	ev.Str("job", job.Name).Str("job_id", job.ID).Int("intento", job.Attempts+1).
		Dur("duracion", time.Since(start)).Msg("trabajo procesado")
	if err == nil || errors.Is(err, ErrUnknownJob) {
		return
	}
	job.Attempts++
	if job.Attempts >= MaxAttempts {
		w.log.Warn().Str("job", job.Name).Str("job_id", job.ID).Msg("trabajo descartado tras agotar intentos")
		return
	}
	if err := w.queue.Enqueue(ctx, job); err != nil {
		w.log.Error().Err(err).Str("job_id", job.ID).Msg("no se pudo reencolar")
	}
}
