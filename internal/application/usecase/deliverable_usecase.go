package usecase

import (
	"context"
	"errors"
	"io"
	"path"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

const deliverablesFolder = "entregables"

// DeliverableUseCase entregables: alta, envío del archivo y evaluación del tutor.
type DeliverableUseCase struct {
	deliverables repository.DeliverableRepository
	internships  repository.InternshipRepository
	tx           TxRunner
	storage      ports.FileStorage
}

// NewDeliverableUseCase construye el caso de uso.
func NewDeliverableUseCase(repos repository.Registry, tx TxRunner, storage ports.FileStorage) *DeliverableUseCase {
	return &DeliverableUseCase{deliverables: repos.Deliverables, internships: repos.Internships, tx: tx, storage: storage}
}

// Create el estudiante registra un entregable sobre su propia práctica.
func (uc *DeliverableUseCase) Create(ctx context.Context, actor Actor, in dto.CreateDeliverableRequest) (*dto.DeliverableResponse, error) {
	if err := actor.require(entity.CapCreateDeliverables, "Solo estudiantes pueden crear entregables."); err != nil {
		return nil, err
	}
	p, err := loadInternship(ctx, uc.internships, actor, in.InternshipID)
	if err != nil {
		return nil, err
	}
	d, err := entity.NewDeliverable(newID(), p, actor.UserID, in.Title, in.Description, in.DueDate, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.deliverables.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDeliverableResponse(d, time.Now()), nil
}

// load carga el entregable y su práctica comprobando visibilidad.
func (uc *DeliverableUseCase) load(ctx context.Context, actor Actor, id string) (*entity.Deliverable, *entity.Internship, error) {
	d, err := uc.deliverables.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		return nil, nil, domain.NotFound("Entregable no encontrado.")
	}
	p, err := loadInternship(ctx, uc.internships, actor, d.InternshipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.NotFound("Entregable no encontrado.")
		}
		return nil, nil, err
	}
	return d, p, nil
}

// GetByID obtiene un entregable visible para el actor.
func (uc *DeliverableUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.DeliverableResponse, error) {
	d, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toDeliverableResponse(d, time.Now()), nil
}

// List entregables visibles: estudiante los suyos, docente y tutor los de sus prácticas.
func (uc *DeliverableUseCase) List(ctx context.Context, actor Actor, in dto.DeliverableFilterRequest) (*dto.DeliverableListResponse, error) {
	in.DefaultPage()
	f := repository.DeliverableFilter{
		InternshipID: in.InternshipID,
		Status:       entity.DeliverableStatus(in.Status),
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
	switch actor.Role {
	case entity.RoleStudent:
		f.StudentID = actor.UserID
	case entity.RoleAdvisor:
		f.AdvisorID = actor.UserID
	case entity.RoleTutor:
		f.TutorID = actor.UserID
	}
	list, total, err := uc.deliverables.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.DeliverableResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeliverableResponse(d, now))
	}
	return &dto.DeliverableListResponse{Items: items, Page: page(in.Limit, in.Offset, total)}, nil
}

// Update edita título, descripción o fecha límite antes de la evaluación.
func (uc *DeliverableUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error) {
	d, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := uc.canEdit(actor, d); err != nil {
		return nil, err
	}
	setString(&d.Title, in.Title)
	setString(&d.Description, in.Description)
	if in.DueDate != nil {
		d.DueDate = *in.DueDate
	}
	if d.Title == "" {
		return nil, domain.ValidationField("title", "El título es requerido.")
	}
	d.UpdatedAt = time.Now()
	if err := uc.deliverables.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDeliverableResponse(d, time.Now()), nil
}

func (uc *DeliverableUseCase) canEdit(actor Actor, d *entity.Deliverable) error {
	if actor.Is(entity.RoleCoordinator) {
		return nil
	}
	if d.StudentID != actor.UserID {
		return domain.Forbidden("Solo el estudiante puede modificar su entregable.")
	}
	if d.IsEvaluated() && d.Status != entity.DeliverableRejected {
		return domain.Validation("El entregable ya fue evaluado.")
	}
	return nil
}

// Delete elimina el entregable y su archivo.
func (uc *DeliverableUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	d, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.canEdit(actor, d); err != nil {
		return err
	}
	if err := uc.deliverables.Delete(ctx, id); err != nil {
		return err
	}
	if d.FilePath != "" {
		_ = uc.storage.Delete(ctx, d.FilePath)
	}
	return nil
}

// Submit guarda el archivo y pasa el entregable a ENVIADO. En un reenvío el
// archivo anterior se borra una vez guardado el nuevo.
func (uc *DeliverableUseCase) Submit(ctx context.Context, actor Actor, id, filename string, r io.Reader) (*dto.DeliverableResponse, error) {
	d, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := canSubmit(actor, d); err != nil {
		return nil, err
	}
	stored, err := uc.storage.Save(ctx, deliverablesFolder, filename, r)
	if err != nil {
		return nil, err
	}
	var previous string
	now := time.Now()
	err = uc.tx.Run(ctx, func(repos repository.Registry) error {
		locked, err := repos.Deliverables.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.NotFound("Entregable no encontrado.")
		}
		if err := canSubmit(actor, locked); err != nil {
			return err
		}
		previous = locked.FilePath
		if err := locked.Submit(stored.Path, now); err != nil {
			return err
		}
		d = locked
		return repos.Deliverables.Update(ctx, locked)
	})
	if err != nil {
		_ = uc.storage.Delete(ctx, stored.Path)
		return nil, err
	}
	if previous != "" && previous != stored.Path {
		_ = uc.storage.Delete(ctx, previous)
	}
	return toDeliverableResponse(d, now), nil
}

func canSubmit(actor Actor, d *entity.Deliverable) error {
	if d.StudentID != actor.UserID {
		return domain.Forbidden("Solo el estudiante puede enviar su entregable.")
	}
	if d.Status != entity.DeliverablePending && d.Status != entity.DeliverableRejected {
		return domain.Validation("Solo se pueden enviar entregables pendientes o rechazados.")
	}
	return nil
}

// Evaluate el tutor asignado califica un entregable enviado. La fila queda
// bloqueada para que la calificación se asigne una sola vez por envío.
// Un tutor ajeno a la práctica recibe 403, no 404.
func (uc *DeliverableUseCase) Evaluate(ctx context.Context, actor Actor, id string, in dto.EvaluateDeliverableRequest) (*dto.DeliverableResponse, error) {
	if err := actor.require(entity.CapEvaluateDeliverables, "Solo el tutor empresarial asignado puede evaluar."); err != nil {
		return nil, err
	}
	approved := true
	if in.Approved != nil {
		approved = *in.Approved
	}
	now := time.Now()
	var out *entity.Deliverable
	err := uc.tx.Run(ctx, func(repos repository.Registry) error {
		d, err := repos.Deliverables.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.NotFound("Entregable no encontrado.")
		}
		p, err := repos.Internships.GetByID(ctx, d.InternshipID)
		if err != nil {
			return err
		}
		if err := d.Evaluate(p, entity.Evaluation{
			TutorID:  actor.UserID,
			Grade:    in.Grade,
			Feedback: in.Feedback,
			Approved: approved,
		}, now); err != nil {
			return err
		}
		out = d
		return repos.Deliverables.Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return toDeliverableResponse(out, now), nil
}

// OpenFile abre el archivo enviado. El llamador cierra el lector.
func (uc *DeliverableUseCase) OpenFile(ctx context.Context, actor Actor, id string) (io.ReadCloser, string, error) {
	d, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if d.FilePath == "" {
		return nil, "", domain.NotFound("El entregable no tiene archivo.")
	}
	rc, err := uc.storage.Open(ctx, d.FilePath)
	if err != nil {
		return nil, "", err
	}
	return rc, path.Base(d.FilePath), nil
}

func toDeliverableResponse(d *entity.Deliverable, now time.Time) *dto.DeliverableResponse {
	if d == nil {
		return nil
	}
	return &dto.DeliverableResponse{
		ID:           d.ID,
		InternshipID: d.InternshipID,
		StudentID:    d.StudentID,
		Title:        d.Title,
		Description:  d.Description,
		HasFile:      d.FilePath != "",
		DueDate:      d.DueDate,
		SubmittedAt:  d.SubmittedAt,
		EvaluatedAt:  d.EvaluatedAt,
		EvaluatedBy:  d.EvaluatedBy,
		Grade:        d.Grade,
		Feedback:     d.Feedback,
		Status:       string(d.Status),
		Overdue:      d.IsOverdue(now),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
