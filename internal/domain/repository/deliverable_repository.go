package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// DeliverableFilter filtros de entregables.
type DeliverableFilter struct {
	InternshipID string
	StudentID    string
	TutorID      string
	AdvisorID    string
	Status       entity.DeliverableStatus
	Limit        int
	Offset       int
}

// DeliverableRepository puerto de persistencia de entregables.
type DeliverableRepository interface {
	Create(ctx context.Context, d *entity.Deliverable) error
	GetByID(ctx context.Context, id string) (*entity.Deliverable, error)
	// GetForUpdate bloquea el entregable hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Deliverable, error)
	Update(ctx context.Context, d *entity.Deliverable) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f DeliverableFilter) ([]*entity.Deliverable, int, error)
	// CountByInternship devuelve total de entregables y cuántos tienen calificación.
	CountByInternship(ctx context.Context, internshipID string) (total, evaluated int, err error)
}
