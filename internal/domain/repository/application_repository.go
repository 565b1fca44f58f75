package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// ApplicationFilter filtros de postulaciones.
type ApplicationFilter struct {
	StudentID string
	PostingID string
	CompanyID string // postulaciones a vacantes de la empresa
	Status    entity.ApplicationStatus
	Limit     int
	Offset    int
}

// ApplicationRepository puerto de persistencia de postulaciones.
type ApplicationRepository interface {
	Create(ctx context.Context, a *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	Update(ctx context.Context, a *entity.Application) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ApplicationFilter) ([]*entity.Application, int, error)
	Exists(ctx context.Context, studentID, postingID string) (bool, error)
}
