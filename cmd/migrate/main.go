// migrate aplica las migraciones del esquema y crea la primera cuenta de coordinación.
//
// Uso:
//
//	go run ./cmd/migrate [up|down|status]
//	go run ./cmd/migrate coordinator <email> <password> <nombre> <apellido>
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Practicas-api/pkg/config"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := postgres.NewMigrator(pool)
	switch cmd {
	case "up":
		applied, err := m.Migrate(ctx)
		if err != nil {
			log.Fatal().Err(err).Ints("aplicadas", applied).Msg("migrar")
		}
		log.Info().Ints("aplicadas", applied).Msg("migraciones al día")
	case "down":
		version, err := m.Rollback(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("revertir")
		}
		if version == 0 {
			log.Info().Msg("no hay migraciones que revertir")
			return
		}
		log.Info().Int("version", version).Msg("migración revertida")
	case "status":
		list, err := m.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("estado de migraciones")
		}
		for _, mig := range list {
			state := "pendiente"
			if mig.IsApplied {
				state = mig.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%04d  %-40s  %s\n", mig.Version, mig.Name, state)
		}
	case "coordinator":
		if len(os.Args) != 6 {
			fmt.Fprintln(os.Stderr, "Uso: migrate coordinator <email> <password> <nombre> <apellido>")
			os.Exit(2)
		}
		users := usecase.NewUserUseCase(postgres.NewRegistry(pool))
		// Actor de sistema: la primera cuenta no tiene quién la cree.
		system := usecase.Actor{Role: entity.RoleCoordinator}
		out, err := users.Create(ctx, system, dto.CreateUserRequest{
			Email:     os.Args[2],
			Password:  os.Args[3],
			FirstName: os.Args[4],
			LastName:  os.Args[5],
			Role:      string(entity.RoleCoordinator),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear coordinación")
		}
		log.Info().Str("user_id", out.ID).Str("email", out.Email).Msg("cuenta de coordinación creada")
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q (up, down, status, coordinator)\n", cmd)
		os.Exit(2)
	}
}
