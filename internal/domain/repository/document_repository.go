package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// DocumentFilter filtros de documentos.
type DocumentFilter struct {
	OwnerID      string
	InternshipID string
	Type         string
	Valid        *bool
	Limit        int
	Offset       int
}

// DocumentRepository puerto de persistencia de documentos.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	Update(ctx context.Context, d *entity.Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f DocumentFilter) ([]*entity.Document, int, error)
}

// ObservationRepository puerto de persistencia de observaciones.
type ObservationRepository interface {
	Create(ctx context.Context, o *entity.Observation) error
	GetByID(ctx context.Context, id string) (*entity.Observation, error)
	Delete(ctx context.Context, id string) error
	ListByInternship(ctx context.Context, internshipID string) ([]*entity.Observation, error)
}
