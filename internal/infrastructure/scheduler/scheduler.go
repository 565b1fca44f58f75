// Package scheduler ejecuta tareas periódicas del worker con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Practicas-api/pkg/logger"
)

// Task tarea periódica; recibe un contexto con timeout.
type Task func(ctx context.Context) error

// Scheduler envuelve cron.Cron. Una ejecución que sigue corriendo hace que
// la siguiente se omita.
type Scheduler struct {
	c       *cron.Cron
	log     *logger.Logger
	timeout time.Duration
}

// New crea el planificador. timeout limita cada ejecución.
func New(log *logger.Logger, timeout time.Duration) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 4 * time.Minute
	}
	l := log.Component("scheduler")
	cl := cronLogger{l}
	return &Scheduler{
		c:       cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log:     l,
		timeout: timeout,
	}
}

// Add registra task con una expresión cron de 5 campos.
func (s *Scheduler) Add(spec, name string, task Task) error {
	_, err := s.c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		start := time.Now()
		if err := task(ctx); err != nil {
			s.log.Error().Err(err).Str("task", name).Msg("tarea periódica falló")
			return
		}
		s.log.Info().Str("task", name).Dur("duracion", time.Since(start)).Msg("tarea periódica completada")
	})
	if err != nil {
		return fmt.Errorf("scheduler: %s %q: %w", name, spec, err)
	}
	s.log.Info().Str("task", name).Str("spec", spec).Msg("tarea registrada")
	return nil
}

// Run arranca el planificador y bloquea hasta que ctx termine; espera a las
// ejecuciones en curso antes de volver.
func (s *Scheduler) Run(ctx context.Context) error {
	s.c.Start()
	<-ctx.Done()
	<-s.c.Stop().Done()
	return nil
}

// Entries número de tareas registradas.
func (s *Scheduler) Entries() int { return len(s.c.Entries()) }

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct{ l *logger.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug().Fields(kv).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(kv).Msg(msg)
}
