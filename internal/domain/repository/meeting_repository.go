package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// MeetingFilter filtros de reuniones.
type MeetingFilter struct {
	InternshipID string
	AdvisorID    string
	StudentID    string
	Type         entity.MeetingType
	Status       entity.MeetingStatus
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// MeetingRepository puerto de persistencia de reuniones.
type MeetingRepository interface {
	Create(ctx context.Context, m *entity.Meeting) error
	GetByID(ctx context.Context, id string) (*entity.Meeting, error)
	Update(ctx context.Context, m *entity.Meeting) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f MeetingFilter) ([]*entity.Meeting, int, error)
	// GetDefense devuelve la sustentación de la práctica, si existe.
	GetDefense(ctx context.Context, internshipID string) (*entity.Meeting, error)
	// ListDueForReminder reuniones vigentes entre from y to sin recordatorio.
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]*entity.Meeting, error)
}
