package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// PostingFilter filtros del listado de vacantes.
type PostingFilter struct {
	CompanyID     string
	Status        entity.PostingStatus
	Modality      string
	Area          string
	Search        string
	AvailableOnly bool // ABIERTA y con cupo
	Limit         int
	Offset        int
}

// PostingRepository puerto de persistencia de vacantes.
type PostingRepository interface {
	Create(ctx context.Context, p *entity.Posting) error
	GetByID(ctx context.Context, id string) (*entity.Posting, error)
	// GetForUpdate bloquea la vacante para modificar los cupos.
	GetForUpdate(ctx context.Context, id string) (*entity.Posting, error)
	Update(ctx context.Context, p *entity.Posting) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PostingFilter) ([]*entity.Posting, int, error)
}
