// Command worker consume la cola de Redis y envía correos; además programa
// los recordatorios de reuniones.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/infrastructure/mail"
	"github.com/jhoicas/Practicas-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Practicas-api/internal/infrastructure/redis"
	"github.com/jhoicas/Practicas-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Practicas-api/pkg/config"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "worker",
	})
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("REDIS_ADDR es obligatorio para el worker; sin Redis la API procesa los trabajos en proceso")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	mailer, err := mail.New(cfg.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de correo")
	}

	queue := infraredis.NewQueue(rdb, cfg.Redis.QueueKey)
	publisher := jobs.NewPublisher(queue, log)
	repos := postgres.NewRegistry(pool)
	meetingUC := usecase.NewMeetingUseCase(repos, postgres.NewTxRunner(pool), publisher)

	dispatcher := jobs.NewDispatcher(repos, mailer, meetingUC, jobs.DispatcherConfig{PublicURL: cfg.App.PublicURL}, log)
	worker := jobs.NewWorker(queue, dispatcher, cfg.Worker.Concurrency, cfg.Worker.PollTimeout, log)

	sched := scheduler.New(log, 0)
	err = sched.Add(cfg.Worker.ReminderCron, jobs.MeetingReminders, func(ctx context.Context) error {
		publisher.Publish(ctx, jobs.MeetingReminders, nil)
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Worker.ReminderCron).Msg("programar recordatorios")
	}

	log.Info().
		Int("concurrency", cfg.Worker.Concurrency).
		Str("queue", cfg.Redis.QueueKey).
		Str("reminder_cron", cfg.Worker.ReminderCron).
		Msg("worker iniciado")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return worker.Run(gctx) })
	g.Go(func() error { return sched.Run(gctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("worker finalizado con error")
		os.Exit(1)
	}
	log.Info().Msg("worker detenido")
}
