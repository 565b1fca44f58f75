package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// InternshipConfig reglas configurables de prácticas.
type InternshipConfig struct {
	MaxStudentsPerAdvisor int
	PublicURL             string // base del enlace de verificación de la constancia
}

// InternshipUseCase ciclo de vida de las prácticas.
type InternshipUseCase struct {
	repos repository.Registry
	tx    TxRunner
	jobs  JobPublisher
	cert  ports.CertificateGenerator
	cfg   InternshipConfig
}

// NewInternshipUseCase construye el caso de uso.
func NewInternshipUseCase(repos repository.Registry, tx TxRunner, jobs JobPublisher, cert ports.CertificateGenerator, cfg InternshipConfig) *InternshipUseCase {
	if cfg.MaxStudentsPerAdvisor <= 0 {
		cfg.MaxStudentsPerAdvisor = entity.DefaultAdvisorCapacity
	}
	return &InternshipUseCase{repos: repos, tx: tx, jobs: publisherOrNop(jobs), cert: cert, cfg: cfg}
}

// Create registra una práctica PENDIENTE para un estudiante.
func (uc *InternshipUseCase) Create(ctx context.Context, actor Actor, in dto.CreateInternshipRequest) (*dto.InternshipResponse, error) {
	if err := actor.require(entity.CapManageInternships, "Solo coordinación puede registrar prácticas."); err != nil {
		return nil, err
	}
	student, err := uc.repos.Users.GetByID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil || student.Role != entity.RoleStudent {
		return nil, domain.ValidationField("student_id", "El estudiante no es válido.")
	}
	now := time.Now()
	p := &entity.Internship{
		ID:        newID(),
		StudentID: in.StudentID,
		Area:      in.Area,
		Project:   in.Project,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    entity.InternshipPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.PostingID != "" {
		posting, err := uc.repos.Postings.GetByID(ctx, in.PostingID)
		if err != nil {
			return nil, err
		}
		if posting == nil {
			return nil, domain.ValidationField("posting_id", "La vacante no existe.")
		}
		p.PostingID = &posting.ID
		if p.Area == "" {
			p.Area = posting.Area
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repos.Internships.Create(ctx, p); err != nil {
		return nil, err
	}
	return toInternshipResponse(p), nil
}

// GetByID obtiene una práctica visible para el actor.
func (uc *InternshipUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.InternshipResponse, error) {
	p, err := loadInternship(ctx, uc.repos.Internships, actor, id)
	if err != nil {
		return nil, err
	}
	return toInternshipResponse(p), nil
}

// List prácticas visibles para el actor.
func (uc *InternshipUseCase) List(ctx context.Context, actor Actor, in dto.InternshipFilterRequest) (*dto.InternshipListResponse, error) {
	in.DefaultPage()
	f := repository.InternshipFilter{
		StudentID: in.StudentID,
		CompanyID: in.CompanyID,
		Status:    entity.InternshipStatus(in.Status),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	actor.scopeInternships(&f)
	list, total, err := uc.repos.Internships.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InternshipResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toInternshipResponse(p))
	}
	return &dto.InternshipListResponse{Items: items, Page: page(in.Limit, in.Offset, total)}, nil
}

// Update modifica área, proyecto y fechas.
func (uc *InternshipUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateInternshipRequest) (*dto.InternshipResponse, error) {
	if err := actor.require(entity.CapManageInternships, "Solo coordinación puede modificar prácticas."); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, actor, id, func(p *entity.Internship, _ repository.Registry) error {
		setString(&p.Area, in.Area)
		setString(&p.Project, in.Project)
		if in.StartDate != nil {
			p.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			p.EndDate = in.EndDate
		}
		return p.Validate()
	})
}

// Delete elimina la práctica con sus entregables, reuniones y observaciones.
func (uc *InternshipUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.require(entity.CapManageInternships, "Solo coordinación puede eliminar prácticas."); err != nil {
		return err
	}
	if _, err := loadInternship(ctx, uc.repos.Internships, actor, id); err != nil {
		return err
	}
	return uc.repos.Internships.Delete(ctx, id)
}

// Assign asigna docente, tutor y empresa. Bloquea la práctica y al docente para
// que el conteo de capacidad no compita con otra asignación simultánea.
func (uc *InternshipUseCase) Assign(ctx context.Context, actor Actor, id string, in dto.AssignInternshipRequest) (*dto.InternshipResponse, error) {
	if err := actor.require(entity.CapManageInternships, "Solo coordinación puede asignar prácticas."); err != nil {
		return nil, err
	}
	out, err := uc.mutate(ctx, actor, id, func(p *entity.Internship, repos repository.Registry) error {
		advisor, err := repos.Users.GetForUpdate(ctx, in.AdvisorID)
		if err != nil {
			return err
		}
		tutor, err := repos.Users.GetByID(ctx, in.TutorID)
		if err != nil {
			return err
		}
		company, err := repos.Companies.GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		other, err := repos.Internships.GetActiveByStudent(ctx, p.StudentID, p.ID)
		if err != nil {
			return err
		}
		if other != nil {
			return domain.Conflict("El estudiante ya tiene una práctica activa.")
		}
		load := 0
		if advisor != nil {
			if load, err = repos.Internships.CountActiveByAdvisor(ctx, advisor.ID, p.ID); err != nil {
				return err
			}
		}
		return p.Assign(entity.Assignment{
			Advisor:     advisor,
			Tutor:       tutor,
			Company:     company,
			AssignedBy:  actor.UserID,
			AdvisorLoad: load,
			Capacity:    uc.cfg.MaxStudentsPerAdvisor,
		}, time.Now())
	})
	if err != nil {
		return nil, err
	}
	uc.jobs.Publish(ctx, jobs.NotifyOnAssignment, map[string]string{jobs.KeyInternshipID: id})
	return out, nil
}

// Start ASIGNADA → EN_CURSO (coordinación o el docente asignado).
func (uc *InternshipUseCase) Start(ctx context.Context, actor Actor, id string) (*dto.InternshipResponse, error) {
	return uc.mutate(ctx, actor, id, func(p *entity.Internship, _ repository.Registry) error {
		if err := uc.canDrive(actor, p); err != nil {
			return err
		}
		return p.Start(time.Now())
	})
}

// Complete EN_CURSO → COMPLETADA con calificación final opcional.
func (uc *InternshipUseCase) Complete(ctx context.Context, actor Actor, id string, in dto.CompleteInternshipRequest) (*dto.InternshipResponse, error) {
	return uc.mutate(ctx, actor, id, func(p *entity.Internship, _ repository.Registry) error {
		if err := uc.canDrive(actor, p); err != nil {
			return err
		}
		return p.Complete(in.FinalGrade, time.Now())
	})
}

// Cancel cancela la práctica desde cualquier estado.
func (uc *InternshipUseCase) Cancel(ctx context.Context, actor Actor, id string) (*dto.InternshipResponse, error) {
	if err := actor.require(entity.CapManageInternships, "Solo coordinación puede cancelar prácticas."); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, actor, id, func(p *entity.Internship, _ repository.Registry) error {
		p.Cancel(time.Now())
		return nil
	})
}

// CloseRecord cierra el expediente de una práctica terminada.
func (uc *InternshipUseCase) CloseRecord(ctx context.Context, actor Actor, id string) (*dto.InternshipResponse, error) {
	if err := actor.require(entity.CapManageInternships, "Solo coordinación puede cerrar prácticas."); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, actor, id, func(p *entity.Internship, _ repository.Registry) error {
		return p.CloseRecord(actor.UserID, time.Now())
	})
}

func (uc *InternshipUseCase) canDrive(actor Actor, p *entity.Internship) error {
	if actor.Can(entity.CapManageInternships) || (actor.Is(entity.RoleAdvisor) && p.HasAdvisor(actor.UserID)) {
		return nil
	}
	return domain.Forbidden("Solo coordinación o el docente asesor asignado.")
}

// mutate bloquea la práctica, aplica fn y guarda en una transacción.
func (uc *InternshipUseCase) mutate(ctx context.Context, actor Actor, id string, fn func(*entity.Internship, repository.Registry) error) (*dto.InternshipResponse, error) {
	var out *entity.Internship
	err := uc.tx.Run(ctx, func(repos repository.Registry) error {
		p, err := repos.Internships.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || !actor.canSeeInternship(p) {
			return domain.NotFound("Práctica no encontrada.")
		}
		if err := fn(p, repos); err != nil {
			return err
		}
		p.UpdatedAt = time.Now()
		out = p
		return repos.Internships.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toInternshipResponse(out), nil
}

// Progress avance de entregables evaluados.
func (uc *InternshipUseCase) Progress(ctx context.Context, actor Actor, id string) (*dto.ProgressResponse, error) {
	p, err := loadInternship(ctx, uc.repos.Internships, actor, id)
	if err != nil {
		return nil, err
	}
	total, evaluated, err := uc.repos.Deliverables.CountByInternship(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProgressResponse{
		InternshipID: p.ID,
		Total:        total,
		Evaluated:    evaluated,
		Percent:      entity.Progress(total, evaluated),
	}, nil
}

// Certificate genera la constancia PDF de una práctica completada.
func (uc *InternshipUseCase) Certificate(ctx context.Context, actor Actor, id string) ([]byte, string, error) {
	if uc.cert == nil {
		return nil, "", fmt.Errorf("certificate: generador no configurado")
	}
	p, err := loadInternship(ctx, uc.repos.Internships, actor, id)
	if err != nil {
		return nil, "", err
	}
	if p.Status != entity.InternshipCompleted {
		return nil, "", domain.Validation("Solo las prácticas completadas tienen constancia.")
	}
	student, err := uc.repos.Users.GetByID(ctx, p.StudentID)
	if err != nil {
		return nil, "", err
	}
	if student == nil {
		return nil, "", domain.ErrUserNotFound
	}
	data := ports.CertificateData{
		InternshipID: p.ID,
		StudentName:  student.FullName(),
		Area:         p.Area,
		Project:      p.Project,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		FinalGrade:   p.FinalGrade,
		IssuedAt:     time.Now(),
		VerifyURL:    strings.TrimRight(uc.cfg.PublicURL, "/") + "/api/internships/" + p.ID + "/certificate",
	}
	if s, ok := student.Student(); ok {
		data.Enrollment = s.EnrollmentID
		data.Major = s.Major
	}
	if data.AdvisorName, err = uc.userName(ctx, p.AdvisorID); err != nil {
		return nil, "", err
	}
	if data.TutorName, err = uc.userName(ctx, p.TutorID); err != nil {
		return nil, "", err
	}
	if p.CompanyID != nil {
		c, err := uc.repos.Companies.GetByID(ctx, *p.CompanyID)
		if err != nil {
			return nil, "", err
		}
		if c != nil {
			data.CompanyName = c.Name
		}
	}
	pdf, err := uc.cert.Generate(data)
	if err != nil {
		return nil, "", fmt.Errorf("certificate: %w", err)
	}
	name := "constancia-" + p.ID + ".pdf"
	if data.Enrollment != "" {
		name = "constancia-" + data.Enrollment + ".pdf"
	}
	return pdf, name, nil
}

func (uc *InternshipUseCase) userName(ctx context.Context, id *string) (string, error) {
	if id == nil {
		return "", nil
	}
	u, err := uc.repos.Users.GetByID(ctx, *id)
	if err != nil || u == nil {
		return "", err
	}
	return u.FullName(), nil
}

func toInternshipResponse(p *entity.Internship) *dto.InternshipResponse {
	if p == nil {
		return nil
	}
	return &dto.InternshipResponse{
		ID:           p.ID,
		StudentID:    p.StudentID,
		AdvisorID:    p.AdvisorID,
		TutorID:      p.TutorID,
		CompanyID:    p.CompanyID,
		PostingID:    p.PostingID,
		Area:         p.Area,
		Project:      p.Project,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		AssignedAt:   p.AssignedAt,
		Status:       string(p.Status),
		Closed:       p.Closed,
		FinalGrade:   p.FinalGrade,
		DefenseDate:  p.DefenseDate,
		DefensePlace: p.DefensePlace,
		DefenseNotes: p.DefenseNotes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
