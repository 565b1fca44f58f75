package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// ApplicationUseCase postulaciones de estudiantes a vacantes.
type ApplicationUseCase struct {
	applications repository.ApplicationRepository
	postings     repository.PostingRepository
	users        repository.UserRepository
	tx           TxRunner
	jobs         JobPublisher
}

// NewApplicationUseCase construye el caso de uso.
func NewApplicationUseCase(repos repository.Registry, tx TxRunner, jobs JobPublisher) *ApplicationUseCase {
	return &ApplicationUseCase{
		applications: repos.Applications,
		postings:     repos.Postings,
		users:        repos.Users,
		tx:           tx,
		jobs:         publisherOrNop(jobs),
	}
}

// Create postula al estudiante autenticado. Exige cumplir los requisitos de la vacante.
func (uc *ApplicationUseCase) Create(ctx context.Context, actor Actor, in dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if err := actor.require(entity.CapApply, "Solo estudiantes pueden postularse."); err != nil {
		return nil, err
	}
	posting, err := uc.postings.GetByID(ctx, in.PostingID)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, domain.NotFound("Vacante no encontrada.")
	}
	student, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, _ := student.Student()
	if e := posting.CheckEligibility(profile); !e.Eligible {
		return nil, domain.ValidationField("posting_id", e.Reason)
	}
	now := time.Now()
	if posting.ApplicationDeadline != nil && now.After(*posting.ApplicationDeadline) {
		return nil, domain.ValidationField("posting_id", "La fecha límite de postulación ya pasó.")
	}
	exists, err := uc.applications.Exists(ctx, actor.UserID, posting.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Duplicate("Ya te postulaste a esta vacante.")
	}
	a := &entity.Application{
		ID:         newID(),
		StudentID:  actor.UserID,
		PostingID:  posting.ID,
		Status:     entity.ApplicationPending,
		Motivation: in.Motivation,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.applications.Create(ctx, a); err != nil {
		return nil, err
	}
	return toApplicationResponse(a), nil
}

// GetByID obtiene una postulación visible para el actor.
func (uc *ApplicationUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.ApplicationResponse, error) {
	a, err := uc.load(ctx, uc.applications, uc.postings, actor, id)
	if err != nil {
		return nil, err
	}
	return toApplicationResponse(a), nil
}

// load carga la postulación y verifica visibilidad: el estudiante la suya, el
// tutor las de vacantes de su empresa y coordinación todas.
func (uc *ApplicationUseCase) load(ctx context.Context, apps repository.ApplicationRepository, postings repository.PostingRepository, actor Actor, id string) (*entity.Application, error) {
	notFound := domain.NotFound("Postulación no encontrada.")
	a, err := apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, notFound
	}
	switch actor.Role {
	case entity.RoleCoordinator:
		return a, nil
	case entity.RoleStudent:
		if a.StudentID == actor.UserID {
			return a, nil
		}
	case entity.RoleTutor:
		p, err := postings.GetByID(ctx, a.PostingID)
		if err != nil {
			return nil, err
		}
		if p != nil && actor.CompanyID != "" && p.CompanyID == actor.CompanyID {
			return a, nil
		}
	}
	return nil, notFound
}

// List postulaciones visibles para el actor.
func (uc *ApplicationUseCase) List(ctx context.Context, actor Actor, in dto.ApplicationFilterRequest) (*dto.ApplicationListResponse, error) {
	in.DefaultPage()
	f := repository.ApplicationFilter{
		PostingID: in.PostingID,
		Status:    entity.ApplicationStatus(in.Status),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	switch actor.Role {
	case entity.RoleStudent:
		f.StudentID = actor.UserID
	case entity.RoleTutor:
		if actor.CompanyID == "" {
			return &dto.ApplicationListResponse{Items: []dto.ApplicationResponse{}, Page: page(in.Limit, in.Offset, 0)}, nil
		}
		f.CompanyID = actor.CompanyID
	case entity.RoleCoordinator:
	default:
		return nil, domain.Forbidden("No tienes acceso a las postulaciones.")
	}
	list, total, err := uc.applications.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApplicationResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toApplicationResponse(a))
	}
	return &dto.ApplicationListResponse{Items: items, Page: page(in.Limit, in.Offset, total)}, nil
}

// Delete retira una postulación pendiente (el estudiante la suya, coordinación cualquiera).
func (uc *ApplicationUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	a, err := uc.load(ctx, uc.applications, uc.postings, actor, id)
	if err != nil {
		return err
	}
	if actor.Is(entity.RoleTutor) {
		return domain.Forbidden("No puedes eliminar postulaciones.")
	}
	if !a.CanWithdraw() {
		return domain.Validation("Solo se pueden retirar postulaciones pendientes.")
	}
	return uc.applications.Delete(ctx, id)
}

// Select selecciona la postulación y ocupa un lugar de la vacante, todo en una
// transacción con la vacante bloqueada.
func (uc *ApplicationUseCase) Select(ctx context.Context, actor Actor, id string) (*dto.ApplicationResponse, error) {
	if err := actor.require(entity.CapSelectApplications, "No tienes permiso para seleccionar postulaciones."); err != nil {
		return nil, err
	}
	var out *entity.Application
	err := uc.tx.Run(ctx, func(repos repository.Registry) error {
		a, posting, err := uc.lockPair(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := a.Select(actor.UserID, now); err != nil {
			return err
		}
		if err := posting.FillOneSlot(); err != nil {
			return err
		}
		posting.UpdatedAt = now
		if err := repos.Postings.Update(ctx, posting); err != nil {
			return err
		}
		out = a
		return repos.Applications.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	uc.jobs.Publish(ctx, jobs.NotifyOnSelection, map[string]string{jobs.KeyApplicationID: out.ID})
	return toApplicationResponse(out), nil
}

// Reject rechaza la postulación; si estaba seleccionada libera el lugar.
func (uc *ApplicationUseCase) Reject(ctx context.Context, actor Actor, id string) (*dto.ApplicationResponse, error) {
	if err := actor.require(entity.CapSelectApplications, "No tienes permiso para rechazar postulaciones."); err != nil {
		return nil, err
	}
	var out *entity.Application
	err := uc.tx.Run(ctx, func(repos repository.Registry) error {
		a, posting, err := uc.lockPair(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		now := time.Now()
		wasSelected, err := a.Reject(now)
		if err != nil {
			return err
		}
		if wasSelected {
			if err := posting.ReleaseOneSlot(); err != nil {
				return err
			}
			posting.UpdatedAt = now
			if err := repos.Postings.Update(ctx, posting); err != nil {
				return err
			}
		}
		out = a
		return repos.Applications.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return toApplicationResponse(out), nil
}

// lockPair carga la postulación y bloquea su vacante dentro de la transacción.
func (uc *ApplicationUseCase) lockPair(ctx context.Context, repos repository.Registry, actor Actor, id string) (*entity.Application, *entity.Posting, error) {
	a, err := uc.load(ctx, repos.Applications, repos.Postings, actor, id)
	if err != nil {
		return nil, nil, err
	}
	posting, err := repos.Postings.GetForUpdate(ctx, a.PostingID)
	if err != nil {
		return nil, nil, err
	}
	if posting == nil {
		return nil, nil, domain.NotFound("Vacante no encontrada.")
	}
	return a, posting, nil
}

func toApplicationResponse(a *entity.Application) *dto.ApplicationResponse {
	if a == nil {
		return nil
	}
	return &dto.ApplicationResponse{
		ID:         a.ID,
		StudentID:  a.StudentID,
		PostingID:  a.PostingID,
		Status:     string(a.Status),
		Motivation: a.Motivation,
		SelectedAt: a.SelectedAt,
		SelectedBy: a.SelectedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
