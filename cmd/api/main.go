// @title                       Prácticas API
// @version                     1.0
// @description                 Gestión de prácticas profesionales.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Practicas-api/docs"
	"github.com/jhoicas/Practicas-api/internal/application/auth"
	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/Practicas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Practicas-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Practicas-api/internal/infrastructure/redis"
	"github.com/jhoicas/Practicas-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Practicas-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Practicas-api/internal/interfaces/http"
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
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	health := map[string]httpRouter.HealthCheck{"postgres": pool.Ping}

	// Con Redis la cola y el limiter se comparten entre réplicas y el worker corre aparte;
	// sin Redis los trabajos se procesan dentro de este proceso.
	var (
		queue          ports.JobQueue
		limiterStorage fiber.Storage
		embedded       bool
	)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		queue = infraredis.NewQueue(rdb, cfg.Redis.QueueKey)
		limiterStorage = infraredis.NewStorage(rdb, "practicas:limiter:")
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		queue = jobs.NewMemQueue(0)
		embedded = true
		log.Warn().Msg("REDIS_ADDR vacío: cola de trabajos en memoria")
	}

	files, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("almacenamiento de archivos")
	}

	repos := postgres.NewRegistry(pool)
	txRunner := postgres.NewTxRunner(pool)
	publisher := jobs.NewPublisher(queue, log)

	// PDF: constancia de práctica con QR de verificación
	certGenerator := infrapdf.NewCertificateGenerator(cfg.App.Institution)

	userUC := usecase.NewUserUseCase(repos)
	companyUC := usecase.NewCompanyUseCase(repos)
	postingUC := usecase.NewPostingUseCase(repos, txRunner)
	applicationUC := usecase.NewApplicationUseCase(repos, txRunner, publisher)
	internshipUC := usecase.NewInternshipUseCase(repos, txRunner, publisher, certGenerator, usecase.InternshipConfig{
		MaxStudentsPerAdvisor: cfg.Internship.MaxStudentsPerAdvisor,
		PublicURL:             cfg.App.PublicURL,
	})
	deliverableUC := usecase.NewDeliverableUseCase(repos, txRunner, files)
	meetingUC := usecase.NewMeetingUseCase(repos, txRunner, publisher)
	notificationUC := usecase.NewNotificationUseCase(repos, txRunner, publisher)
	surveyUC := usecase.NewSurveyUseCase(repos, txRunner)
	documentUC := usecase.NewDocumentUseCase(repos, files)
	observationUC := usecase.NewObservationUseCase(repos)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})

	workerDone := make(chan struct{})
	if embedded {
		mailer, err := mail.New(cfg.Mail, log)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración de correo")
		}
		dispatcher := jobs.NewDispatcher(repos, mailer, meetingUC, jobs.DispatcherConfig{PublicURL: cfg.App.PublicURL}, log)
		worker := jobs.NewWorker(queue, dispatcher, cfg.Worker.Concurrency, cfg.Worker.PollTimeout, log)
		sched := scheduler.New(log, 0)
		err = sched.Add(cfg.Worker.ReminderCron, jobs.MeetingReminders, func(ctx context.Context) error {
			publisher.Publish(ctx, jobs.MeetingReminders, nil)
			return nil
		})
		if err != nil {
			log.Fatal().Err(err).Msg("programar recordatorios")
		}
		go func() {
			defer close(workerDone)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return worker.Run(gctx) })
			g.Go(func() error { return sched.Run(gctx) })
			if err := g.Wait(); err != nil {
				log.Error().Err(err).Msg("worker en proceso finalizado")
			}
		}()
	} else {
		close(workerDone)
	}

	var swaggerDoc []byte
	if cfg.HTTP.Swagger {
		swaggerDoc = []byte(docs.SwaggerInfo.ReadDoc())
	}
	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:    cfg.App.Name,
		HTTP:    cfg.HTTP,
		Swagger: swaggerDoc,
	}, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		CompanyUC:      companyUC,
		PostingUC:      postingUC,
		ApplicationUC:  applicationUC,
		InternshipUC:   internshipUC,
		DeliverableUC:  deliverableUC,
		MeetingUC:      meetingUC,
		NotificationUC: notificationUC,
		SurveyUC:       surveyUC,
		DocumentUC:     documentUC,
		ObservationUC:  observationUC,
		Health:         health,
		JWTSecret:      cfg.JWT.Secret,
		MaxUploadBytes: int64(cfg.Storage.MaxUploadMB) << 20,
		LoginMax:       cfg.RateLimit.LoginMax,
		LoginWindow:    cfg.RateLimit.LoginWindow,
		LimiterStorage: limiterStorage,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("el worker en proceso no terminó a tiempo")
	}

	log.Info().Msg("aplicación detenida")
}
