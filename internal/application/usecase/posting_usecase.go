package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// PostingUseCase vacantes: publicación, cupos y elegibilidad.
type PostingUseCase struct {
	postings  repository.PostingRepository
	companies repository.CompanyRepository
	users     repository.UserRepository
	tx        TxRunner
}

// NewPostingUseCase construye el caso de uso.
func NewPostingUseCase(repos repository.Registry, tx TxRunner) *PostingUseCase {
	return &PostingUseCase{postings: repos.Postings, companies: repos.Companies, users: repos.Users, tx: tx}
}

// Create publica una vacante abierta para una empresa activa.
func (uc *PostingUseCase) Create(ctx context.Context, actor Actor, in dto.CreatePostingRequest) (*dto.PostingResponse, error) {
	if err := actor.require(entity.CapManagePostings, "Solo coordinación puede publicar vacantes."); err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ValidationField("company_id", "La empresa no existe.")
	}
	if !company.Active {
		return nil, domain.ValidationField("company_id", "La empresa debe estar activa.")
	}
	now := time.Now()
	p := &entity.Posting{
		ID:                  newID(),
		CompanyID:           in.CompanyID,
		Title:               in.Title,
		Description:         in.Description,
		Requirements:        in.Requirements,
		EligibleMajors:      in.EligibleMajors,
		MinSemester:         in.MinSemester,
		MinGPA:              in.MinGPA,
		Area:                in.Area,
		Modality:            in.Modality,
		Location:            in.Location,
		Schedule:            in.Schedule,
		DurationMonths:      in.DurationMonths,
		SlotsAvailable:      in.SlotsAvailable,
		StartDate:           in.StartDate,
		ApplicationDeadline: in.ApplicationDeadline,
		Paid:                in.Paid,
		StipendAmount:       in.StipendAmount,
		Benefits:            in.Benefits,
		Status:              entity.PostingOpen,
		CreatedBy:           actor.UserID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if p.MinSemester == 0 {
		p.MinSemester = 1
	}
	if p.SlotsAvailable == 0 {
		p.SlotsAvailable = 1
	}
	if p.Modality == "" {
		p.Modality = entity.ModalityOnSite
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.postings.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPostingResponse(p), nil
}

// GetByID obtiene una vacante. Estudiantes solo ven vacantes abiertas.
func (uc *PostingUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.PostingResponse, error) {
	p, err := uc.get(ctx, uc.postings, actor, id)
	if err != nil {
		return nil, err
	}
	return toPostingResponse(p), nil
}

func (uc *PostingUseCase) get(ctx context.Context, repo repository.PostingRepository, actor Actor, id string) (*entity.Posting, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || (actor.Is(entity.RoleStudent) && p.Status != entity.PostingOpen) {
		return nil, domain.NotFound("Vacante no encontrada.")
	}
	return p, nil
}

// List lista vacantes con filtros. Estudiantes solo ven las abiertas.
func (uc *PostingUseCase) List(ctx context.Context, actor Actor, in dto.PostingFilterRequest) (*dto.PostingListResponse, error) {
	in.DefaultPage()
	f := repository.PostingFilter{
		CompanyID: in.CompanyID,
		Status:    entity.PostingStatus(in.Status),
		Modality:  in.Modality,
		Area:      in.Area,
		Search:    in.Search,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if actor.Is(entity.RoleStudent) {
		f.Status = entity.PostingOpen
	}
	list, total, err := uc.postings.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toPostingList(list, in.Limit, in.Offset, total), nil
}

// Available vacantes abiertas con cupo.
func (uc *PostingUseCase) Available(ctx context.Context, in dto.PostingFilterRequest) (*dto.PostingListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.postings.List(ctx, repository.PostingFilter{
		CompanyID:     in.CompanyID,
		Modality:      in.Modality,
		Area:          in.Area,
		Search:        in.Search,
		AvailableOnly: true,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toPostingList(list, in.Limit, in.Offset, total), nil
}

// CheckEligibility verifica si el estudiante autenticado cumple los requisitos.
func (uc *PostingUseCase) CheckEligibility(ctx context.Context, actor Actor, id string) (*dto.EligibilityResponse, error) {
	if !actor.Is(entity.RoleStudent) {
		return nil, domain.Forbidden("Solo estudiantes pueden verificar elegibilidad.")
	}
	p, err := uc.get(ctx, uc.postings, actor, id)
	if err != nil {
		return nil, err
	}
	student, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, _ := student.Student()
	e := p.CheckEligibility(profile)
	return &dto.EligibilityResponse{Eligible: e.Eligible, Reason: e.Reason}, nil
}

// Update modifica la vacante con la fila bloqueada para no pisar cambios de cupo.
func (uc *PostingUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdatePostingRequest) (*dto.PostingResponse, error) {
	if err := actor.require(entity.CapManagePostings, "Solo coordinación puede modificar vacantes."); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(p *entity.Posting) error {
		setString(&p.Title, in.Title)
		setString(&p.Description, in.Description)
		setString(&p.Requirements, in.Requirements)
		setString(&p.EligibleMajors, in.EligibleMajors)
		setString(&p.Area, in.Area)
		setString(&p.Modality, in.Modality)
		setString(&p.Location, in.Location)
		setString(&p.Schedule, in.Schedule)
		setString(&p.Benefits, in.Benefits)
		if in.MinSemester != nil {
			p.MinSemester = *in.MinSemester
		}
		if in.MinGPA != nil {
			p.MinGPA = in.MinGPA
		}
		if in.DurationMonths != nil {
			p.DurationMonths = *in.DurationMonths
		}
		if in.StartDate != nil {
			p.StartDate = in.StartDate
		}
		if in.ApplicationDeadline != nil {
			p.ApplicationDeadline = in.ApplicationDeadline
		}
		if in.Paid != nil {
			p.Paid = *in.Paid
		}
		if in.StipendAmount != nil {
			p.StipendAmount = in.StipendAmount
		}
		if in.SlotsAvailable != nil {
			if err := p.Resize(*in.SlotsAvailable); err != nil {
				return err
			}
		}
		return p.Validate()
	})
}

// Close cierre manual de la vacante.
func (uc *PostingUseCase) Close(ctx context.Context, actor Actor, id string) (*dto.PostingResponse, error) {
	return uc.transition(ctx, actor, id, (*entity.Posting).Close)
}

// Reopen reabre la vacante si quedan lugares.
func (uc *PostingUseCase) Reopen(ctx context.Context, actor Actor, id string) (*dto.PostingResponse, error) {
	return uc.transition(ctx, actor, id, (*entity.Posting).Reopen)
}

// Pause pausa una vacante abierta.
func (uc *PostingUseCase) Pause(ctx context.Context, actor Actor, id string) (*dto.PostingResponse, error) {
	return uc.transition(ctx, actor, id, (*entity.Posting).Pause)
}

// Cancel cancela la vacante.
func (uc *PostingUseCase) Cancel(ctx context.Context, actor Actor, id string) (*dto.PostingResponse, error) {
	return uc.transition(ctx, actor, id, (*entity.Posting).Cancel)
}

func (uc *PostingUseCase) transition(ctx context.Context, actor Actor, id string, fn func(*entity.Posting) error) (*dto.PostingResponse, error) {
	if err := actor.require(entity.CapManagePostings, "Solo coordinación puede cambiar el estado de vacantes."); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, fn)
}

// mutate bloquea la vacante, aplica fn y guarda en la misma transacción.
func (uc *PostingUseCase) mutate(ctx context.Context, id string, fn func(*entity.Posting) error) (*dto.PostingResponse, error) {
	var out *entity.Posting
	err := uc.tx.Run(ctx, func(repos repository.Registry) error {
		p, err := repos.Postings.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("Vacante no encontrada.")
		}
		if err := fn(p); err != nil {
			return err
		}
		p.UpdatedAt = time.Now()
		out = p
		return repos.Postings.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toPostingResponse(out), nil
}

// Delete elimina la vacante y sus postulaciones.
func (uc *PostingUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.require(entity.CapManagePostings, "Solo coordinación puede eliminar vacantes."); err != nil {
		return err
	}
	p, err := uc.postings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFound("Vacante no encontrada.")
	}
	return uc.postings.Delete(ctx, id)
}

func toPostingList(list []*entity.Posting, limit, offset, total int) *dto.PostingListResponse {
	items := make([]dto.PostingResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPostingResponse(p))
	}
	return &dto.PostingListResponse{Items: items, Page: page(limit, offset, total)}
}

func toPostingResponse(p *entity.Posting) *dto.PostingResponse {
	if p == nil {
		return nil
	}
	return &dto.PostingResponse{
		ID:                  p.ID,
		CompanyID:           p.CompanyID,
		Title:               p.Title,
		Description:         p.Description,
		Requirements:        p.Requirements,
		EligibleMajors:      p.EligibleMajors,
		MinSemester:         p.MinSemester,
		MinGPA:              p.MinGPA,
		Area:                p.Area,
		Modality:            p.Modality,
		Location:            p.Location,
		Schedule:            p.Schedule,
		DurationMonths:      p.DurationMonths,
		SlotsAvailable:      p.SlotsAvailable,
		SlotsFilled:         p.SlotsFilled,
		RemainingSlots:      p.RemainingSlots(),
		StartDate:           p.StartDate,
		ApplicationDeadline: p.ApplicationDeadline,
		Paid:                p.Paid,
		StipendAmount:       p.StipendAmount,
		Benefits:            p.Benefits,
		Status:              string(p.Status),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
