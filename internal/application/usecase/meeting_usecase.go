package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// MeetingUseCase reuniones de seguimiento y sustentaciones.
type MeetingUseCase struct {
	repos repository.Registry
	tx    TxRunner
	jobs  JobPublisher
}

// NewMeetingUseCase construye el caso de uso.
func NewMeetingUseCase(repos repository.Registry, tx TxRunner, jobs JobPublisher) *MeetingUseCase {
	return &MeetingUseCase{repos: repos, tx: tx, jobs: publisherOrNop(jobs)}
}

// Create el docente asesor de la práctica programa una reunión. Una
// sustentación se copia a los datos de defensa de la práctica.
func (uc *MeetingUseCase) Create(ctx context.Context, actor Actor, in dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	if err := actor.require(entity.CapManageMeetings, "Solo el docente asesor puede programar reuniones."); err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Meeting{
		ID:              newID(),
		InternshipID:    in.InternshipID,
		AdvisorID:       actor.UserID,
		Type:            entity.MeetingType(in.Type),
		Title:           in.Title,
		Description:     in.Description,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		Location:        in.Location,
		VirtualLink:     in.VirtualLink,
		Status:          entity.MeetingScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Registry) error {
		p, err := repos.Internships.GetForUpdate(ctx, in.InternshipID)
		if err != nil {
			return err
		}
		if p == nil || !actor.canSeeInternship(p) {
			return domain.NotFound("Práctica no encontrada.")
		}
		m.StudentID = p.StudentID
		if err := uc.validate(ctx, repos, m, p); err != nil {
			return err
		}
		if err := repos.Meetings.Create(ctx, m); err != nil {
			return err
		}
		return uc.syncDefense(ctx, repos, m, p, now)
	})
	if err != nil {
		return nil, err
	}
	uc.jobs.Publish(ctx, jobs.NotifyMeeting, map[string]string{jobs.KeyMeetingID: m.ID})
	return toMeetingResponse(m, now), nil
}

func (uc *MeetingUseCase) validate(ctx context.Context, repos repository.Registry, m *entity.Meeting, p *entity.Internship) error {
	var defense *entity.Meeting
	if m.Type == entity.MeetingFinalDefense {
		var err error
		if defense, err = repos.Meetings.GetDefense(ctx, p.ID); err != nil {
			return err
		}
	}
	return entity.ValidateMeeting(m, p, defense)
}

func (uc *MeetingUseCase) syncDefense(ctx context.Context, repos repository.Registry, m *entity.Meeting, p *entity.Internship, now time.Time) error {
	if m.Type != entity.MeetingFinalDefense {
		return nil
	}
	place := m.Location
	if place == "" {
		place = m.VirtualLink
	}
	p.ScheduleDefense(m.ScheduledAt, place, m.Description, now)
	return repos.Internships.Update(ctx, p)
}

// load carga la reunión comprobando que el actor participe en su práctica.
func (uc *MeetingUseCase) load(ctx context.Context, actor Actor, id string) (*entity.Meeting, error) {
	m, err := uc.repos.Meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("Reunión no encontrada.")
	}
	if actor.Is(entity.RoleCoordinator) || m.AdvisorID == actor.UserID || m.StudentID == actor.UserID {
		return m, nil
	}
	if actor.Is(entity.RoleTutor) {
		_, err := loadInternship(ctx, uc.repos.Internships, actor, m.InternshipID)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, domain.NotFound("Reunión no encontrada.")
}

// owned solo el docente dueño de la reunión actúa sobre ella.
func owned(actor Actor, m *entity.Meeting) error {
	if m.AdvisorID != actor.UserID {
		return domain.Forbidden("Solo el docente asesor de la reunión puede modificarla.")
	}
	return nil
}

// GetByID obtiene una reunión.
func (uc *MeetingUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.MeetingResponse, error) {
	m, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toMeetingResponse(m, time.Now()), nil
}

// List reuniones visibles para el actor.
func (uc *MeetingUseCase) List(ctx context.Context, actor Actor, in dto.MeetingFilterRequest) (*dto.MeetingListResponse, error) {
	in.DefaultPage()
	f := repository.MeetingFilter{
		InternshipID: in.InternshipID,
		Type:         entity.MeetingType(in.Type),
		Status:       entity.MeetingStatus(in.Status),
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
	switch actor.Role {
	case entity.RoleStudent:
		f.StudentID = actor.UserID
	case entity.RoleAdvisor:
		f.AdvisorID = actor.UserID
	case entity.RoleTutor:
		if in.InternshipID == "" {
			return nil, domain.ValidationField("internship_id", "Indica la práctica.")
		}
		if _, err := loadInternship(ctx, uc.repos.Internships, actor, in.InternshipID); err != nil {
			return nil, err
		}
	}
	return uc.list(ctx, f, in.Limit, in.Offset)
}

// Upcoming reuniones programadas del actor en las próximas 24 horas.
func (uc *MeetingUseCase) Upcoming(ctx context.Context, actor Actor) (*dto.MeetingListResponse, error) {
	now := time.Now()
	to := now.Add(entity.UpcomingWindow)
	f := repository.MeetingFilter{Status: entity.MeetingScheduled, From: &now, To: &to, Limit: all}
	switch actor.Role {
	case entity.RoleStudent:
		f.StudentID = actor.UserID
	case entity.RoleAdvisor:
		f.AdvisorID = actor.UserID
	case entity.RoleCoordinator:
	default:
		return &dto.MeetingListResponse{Items: []dto.MeetingResponse{}, Page: page(all, 0, 0)}, nil
	}
	return uc.list(ctx, f, all, 0)
}

func (uc *MeetingUseCase) list(ctx context.Context, f repository.MeetingFilter, limit, offset int) (*dto.MeetingListResponse, error) {
	list, total, err := uc.repos.Meetings.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.MeetingResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMeetingResponse(m, now))
	}
	return &dto.MeetingListResponse{Items: items, Page: page(limit, offset, total)}, nil
}

// Update edita la reunión y revalida la regla de una sustentación por práctica.
func (uc *MeetingUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateMeetingRequest) (*dto.MeetingResponse, error) {
	var out *entity.Meeting
	err := uc.mutate(ctx, actor, id, func(m *entity.Meeting, repos repository.Registry, now time.Time) error {
		if in.Type != nil {
			m.Type = entity.MeetingType(*in.Type)
		}
		setString(&m.Title, in.Title)
		setString(&m.Description, in.Description)
		setString(&m.Location, in.Location)
		setString(&m.VirtualLink, in.VirtualLink)
		setString(&m.Notes, in.Notes)
		setString(&m.Agreements, in.Agreements)
		if in.DurationMinutes != nil {
			m.DurationMinutes = *in.DurationMinutes
		}
		p, err := repos.Internships.GetForUpdate(ctx, m.InternshipID)
		if err != nil {
			return err
		}
		if err := uc.validate(ctx, repos, m, p); err != nil {
			return err
		}
		m.UpdatedAt = now
		if err := repos.Meetings.Update(ctx, m); err != nil {
			return err
		}
		out = m
		return uc.syncDefense(ctx, repos, m, p, now)
	})
	if err != nil {
		return nil, err
	}
	return toMeetingResponse(out, time.Now()), nil
}

// mutate carga la reunión dentro de una transacción y verifica al dueño.
func (uc *MeetingUseCase) mutate(ctx context.Context, actor Actor, id string, fn func(m *entity.Meeting, repos repository.Registry, now time.Time) error) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos repository.Registry) error {
		m, err := repos.Meetings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFound("Reunión no encontrada.")
		}
		if err := owned(actor, m); err != nil {
			return err
		}
		return fn(m, repos, time.Now())
	})
}

// transition aplica un cambio de estado simple y persiste.
func (uc *MeetingUseCase) transition(ctx context.Context, actor Actor, id string, fn func(m *entity.Meeting, now time.Time) error) (*entity.Meeting, error) {
	var out *entity.Meeting
	err := uc.mutate(ctx, actor, id, func(m *entity.Meeting, repos repository.Registry, now time.Time) error {
		if err := fn(m, now); err != nil {
			return err
		}
		out = m
		return repos.Meetings.Update(ctx, m)
	})
	return out, err
}

// Delete elimina la reunión.
func (uc *MeetingUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	return uc.mutate(ctx, actor, id, func(m *entity.Meeting, repos repository.Registry, _ time.Time) error {
		return repos.Meetings.Delete(ctx, m.ID)
	})
}

// MarkHeld registra la reunión como realizada.
func (uc *MeetingUseCase) MarkHeld(ctx context.Context, actor Actor, id string, in dto.MarkHeldRequest) (*dto.MeetingResponse, error) {
	m, err := uc.transition(ctx, actor, id, func(m *entity.Meeting, now time.Time) error {
		return m.MarkHeld(in.Notes, in.Agreements, now)
	})
	if err != nil {
		return nil, err
	}
	return toMeetingResponse(m, time.Now()), nil
}

// Cancel cancela la reunión.
func (uc *MeetingUseCase) Cancel(ctx context.Context, actor Actor, id string, in dto.CancelMeetingRequest) (*dto.MeetingResponse, error) {
	m, err := uc.transition(ctx, actor, id, func(m *entity.Meeting, now time.Time) error {
		return m.Cancel(in.Reason, now)
	})
	if err != nil {
		return nil, err
	}
	return toMeetingResponse(m, time.Now()), nil
}

// Reschedule mueve la reunión y vuelve a avisar al estudiante.
func (uc *MeetingUseCase) Reschedule(ctx context.Context, actor Actor, id string, in dto.RescheduleMeetingRequest) (*dto.MeetingResponse, error) {
	var out *entity.Meeting
	err := uc.mutate(ctx, actor, id, func(m *entity.Meeting, repos repository.Registry, now time.Time) error {
		if err := m.Reschedule(in.ScheduledAt, now); err != nil {
			return err
		}
		if err := repos.Meetings.Update(ctx, m); err != nil {
			return err
		}
		out = m
		if m.Type != entity.MeetingFinalDefense {
			return nil
		}
		p, err := repos.Internships.GetForUpdate(ctx, m.InternshipID)
		if err != nil || p == nil {
			return err
		}
		return uc.syncDefense(ctx, repos, m, p, now)
	})
	if err != nil {
		return nil, err
	}
	uc.jobs.Publish(ctx, jobs.NotifyMeeting, map[string]string{jobs.KeyMeetingID: out.ID})
	return toMeetingResponse(out, time.Now()), nil
}

// Notify encola el aviso al estudiante si aún no se le notificó.
func (uc *MeetingUseCase) Notify(ctx context.Context, actor Actor, id string) (*dto.MeetingResponse, error) {
	m, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := owned(actor, m); err != nil {
		return nil, err
	}
	if m.StudentNotified {
		return nil, domain.Conflict("El estudiante ya fue notificado de esta reunión.")
	}
	uc.jobs.Publish(ctx, jobs.NotifyMeeting, map[string]string{jobs.KeyMeetingID: m.ID})
	return toMeetingResponse(m, time.Now()), nil
}

// MarkNotified lo llama el worker tras enviar el correo de la reunión.
func (uc *MeetingUseCase) MarkNotified(ctx context.Context, id string, now time.Time) error {
	m, err := uc.repos.Meetings.GetByID(ctx, id)
	if err != nil || m == nil {
		return err
	}
	if !m.MarkNotified(now) {
		return nil
	}
	return uc.repos.Meetings.Update(ctx, m)
}

// SendReminders marca y encola un recordatorio por cada reunión de las
// próximas 24 horas que aún no lo tenga. Devuelve cuántos se encolaron.
func (uc *MeetingUseCase) SendReminders(ctx context.Context, now time.Time) (int, error) {
	due, err := uc.repos.Meetings.ListDueForReminder(ctx, now, now.Add(entity.UpcomingWindow))
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, m := range due {
		if !m.NeedsReminder(now) {
			continue
		}
		at := now
		m.RemindedAt = &at
		if err := uc.repos.Meetings.Update(ctx, m); err != nil {
			return sent, err
		}
		uc.jobs.Publish(ctx, jobs.NotifyMeeting, map[string]string{
			jobs.KeyMeetingID: m.ID,
			jobs.KeyKind:      jobs.KindReminder,
		})
		sent++
	}
	return sent, nil
}

func toMeetingResponse(m *entity.Meeting, now time.Time) *dto.MeetingResponse {
	if m == nil {
		return nil
	}
	return &dto.MeetingResponse{
		ID:              m.ID,
		InternshipID:    m.InternshipID,
		AdvisorID:       m.AdvisorID,
		StudentID:       m.StudentID,
		Type:            string(m.Type),
		Title:           m.Title,
		Description:     m.Description,
		ScheduledAt:     m.ScheduledAt,
		DurationMinutes: m.DurationMinutes,
		Location:        m.Location,
		VirtualLink:     m.VirtualLink,
		Status:          string(m.Status),
		Notes:           m.Notes,
		Agreements:      m.Agreements,
		StudentNotified: m.StudentNotified,
		NotifiedAt:      m.NotifiedAt,
		Upcoming:        m.IsUpcoming(now),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
