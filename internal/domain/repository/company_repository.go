package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// CompanyFilter filtros del listado de empresas.
type CompanyFilter struct {
	Active   *bool
	Verified *bool
	Sector   string
	Search   string
	Limit    int
	Offset   int
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, f CompanyFilter) ([]*entity.Company, int, error)
	Delete(ctx context.Context, id string) error
	CountPostings(ctx context.Context, companyID string) (int, error)
}
