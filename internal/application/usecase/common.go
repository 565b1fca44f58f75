package usecase

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción; los repositorios de repos
// quedan atados a ella. Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Registry) error) error
}

// JobPublisher publica trabajos en segundo plano. Un fallo al encolar nunca
// hace fallar la petición: la implementación lo registra y sigue.
type JobPublisher interface {
	Publish(ctx context.Context, name string, payload map[string]string)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, map[string]string) {}

func publisherOrNop(p JobPublisher) JobPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// Actor usuario autenticado que ejecuta la operación (sale del JWT).
type Actor struct {
	UserID    string
	Role      entity.Role
	CompanyID string
}

// Can indica si el rol del actor tiene la capacidad.
func (a Actor) Can(c entity.Capability) bool { return a.Role.Can(c) }

// Is compara el rol del actor.
func (a Actor) Is(r entity.Role) bool { return a.Role == r }

func (a Actor) require(c entity.Capability, msg string) error {
	if !a.Can(c) {
		return domain.Forbidden(msg)
	}
	return nil
}

// canSeeInternship coordinación ve todo; el resto solo las prácticas donde participa.
func (a Actor) canSeeInternship(p *entity.Internship) bool {
	switch a.Role {
	case entity.RoleCoordinator:
		return true
	case entity.RoleStudent:
		return p.StudentID == a.UserID
	case entity.RoleAdvisor:
		return p.HasAdvisor(a.UserID)
	case entity.RoleTutor:
		return p.HasTutor(a.UserID)
	}
	return false
}

// scopeInternships restringe el filtro de prácticas al actor.
func (a Actor) scopeInternships(f *repository.InternshipFilter) {
	switch a.Role {
	case entity.RoleStudent:
		f.StudentID = a.UserID
	case entity.RoleAdvisor:
		f.AdvisorID = a.UserID
	case entity.RoleTutor:
		f.TutorID = a.UserID
	}
}

func newID() string { return uuid.New().String() }

func page(limit, offset, total int) dto.PageResponse {
	return dto.PageResponse{Limit: limit, Offset: offset, Total: total}
}

// parseBool "true"/"false" a puntero; vacío o inválido devuelve nil.
func parseBool(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// loadInternship carga la práctica y verifica que el actor pueda verla.
func loadInternship(ctx context.Context, repo repository.InternshipRepository, actor Actor, id string) (*entity.Internship, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !actor.canSeeInternship(p) {
		return nil, domain.NotFound("Práctica no encontrada.")
	}
	return p, nil
}

// all límite usado cuando se necesitan todas las filas de un dueño.
const all = 1000
