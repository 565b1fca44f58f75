package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

// Publisher encola trabajos para el worker. Implementa usecase.JobPublisher.
type Publisher struct {
	queue ports.JobQueue
	log   *logger.Logger
	now   func() time.Time
}

// NewPublisher construye el publicador sobre la cola dada.
func NewPublisher(queue ports.JobQueue, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{queue: queue, log: log.Component("jobs"), now: time.Now}
}

// Publish encola el trabajo. Un fallo solo se registra: la petición ya se completó.
func (p *Publisher) Publish(ctx context.Context, name string, payload map[string]string) {
	job := ports.Job{
		ID:         uuid.New().String(),
		Name:       name,
		Payload:    payload,
		EnqueuedAt: p.now().UTC(),
	}
	if err := p.queue.Enqueue(ctx, job); err != nil {
		p.log.Error().Err(err).Str("job", name).Interface("payload", payload).Msg("no se pudo encolar el trabajo")
		return
	}
	p.log.Debug().Str("job", name).Str("job_id", job.ID).Msg("trabajo encolado")
}
