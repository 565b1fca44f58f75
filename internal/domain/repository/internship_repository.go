package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// InternshipFilter filtros de prácticas.
type InternshipFilter struct {
	StudentID string
	AdvisorID string
	TutorID   string
	CompanyID string
	Status    entity.InternshipStatus
	Limit     int
	Offset    int
}

// InternshipRepository puerto de persistencia de prácticas.
type InternshipRepository interface {
	Create(ctx context.Context, p *entity.Internship) error
	GetByID(ctx context.Context, id string) (*entity.Internship, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Internship, error)
	Update(ctx context.Context, p *entity.Internship) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f InternshipFilter) ([]*entity.Internship, int, error)
	// CountActiveByAdvisor cuenta prácticas ASIGNADA/EN_CURSO del docente, sin excludeID.
	CountActiveByAdvisor(ctx context.Context, advisorID, excludeID string) (int, error)
	// GetActiveByStudent devuelve la práctica activa del estudiante distinta de excludeID.
	GetActiveByStudent(ctx context.Context, studentID, excludeID string) (*entity.Internship, error)
}
