package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// NewRegistry arma todos los repositorios sobre el mismo Querier (pool o tx).
func NewRegistry(db Querier) repository.Registry {
	return repository.Registry{
		Users:             NewUserRepository(db),
		Companies:         NewCompanyRepository(db),
		Postings:          NewPostingRepository(db),
		Applications:      NewApplicationRepository(db),
		Internships:       NewInternshipRepository(db),
		Deliverables:      NewDeliverableRepository(db),
		Meetings:          NewMeetingRepository(db),
		Notifications:     NewNotificationRepository(db),
		BulkNotifications: NewBulkNotificationRepository(db),
		Surveys:           NewSurveyRepository(db),
		SurveyResponses:   NewSurveyResponseRepository(db),
		Documents:         NewDocumentRepository(db),
		Observations:      NewObservationRepository(db),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Registry) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRegistry(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
