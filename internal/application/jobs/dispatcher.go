package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

// ErrUnknownJob nombre de trabajo sin manejador; no se reintenta.
var ErrUnknownJob = errors.New("jobs: trabajo desconocido")

// MeetingTracker lo implementa usecase.MeetingUseCase.
type MeetingTracker interface {
	MarkNotified(ctx context.Context, id string, now time.Time) error
	SendReminders(ctx context.Context, now time.Time) (int, error)
}

// DispatcherConfig opciones del despachador.
type DispatcherConfig struct {
	PublicURL string
	Location  *time.Location // zona para fechas en correos; por defecto time.Local
}

// Dispatcher ejecuta cada trabajo según su nombre. Las entidades se recargan;
// si ya no existen el trabajo se descarta sin error.
type Dispatcher struct {
	repos    repository.Registry
	mailer   ports.Mailer
	meetings MeetingTracker
	cfg      DispatcherConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewDispatcher construye el despachador del worker.
func NewDispatcher(repos repository.Registry, mailer ports.Mailer, meetings MeetingTracker, cfg DispatcherConfig, log *logger.Logger) *Dispatcher {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		repos:    repos,
		mailer:   mailer,
		meetings: meetings,
		cfg:      cfg,
		log:      log.Component("dispatcher"),
		now:      time.Now,
	}
}

// Handle ejecuta el trabajo. Un error indica que puede reintentarse.
func (d *Dispatcher) Handle(ctx context.Context, job ports.Job) error {
	switch job.Name {
	case NotifyOnAssignment:
		return d.notifyAssignment(ctx, job.Payload[KeyInternshipID])
	case NotifyOnSelection:
		return d.notifySelection(ctx, job.Payload[KeyApplicationID])
	case NotifyMeeting:
		return d.notifyMeeting(ctx, job.Payload[KeyMeetingID], job.Payload[KeyKind] == KindReminder)
	case SendNotificationEmail:
		return d.sendNotification(ctx, job.Payload[KeyNotificationID])
	case MeetingReminders:
		n, err := d.meetings.SendReminders(ctx, d.now())
		if err != nil {
			return err
		}
		d.log.Info().Int("encolados", n).Msg("recordatorios de reuniones")
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownJob, job.Name)
}

func (d *Dispatcher) skip(job, id string) error {
	d.log.Warn().Str("job", job).Str("id", id).Msg("entidad no encontrada, se descarta")
	return nil
}

func (d *Dispatcher) user(ctx context.Context, id *string) (*entity.User, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	return d.repos.Users.GetByID(ctx, *id)
}

func (d *Dispatcher) send(ctx context.Context, msg ports.MailMessage) error {
	if len(msg.To) == 0 || msg.To[0] == "" {
		return nil
	}
	if err := d.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("enviar correo %q: %w", msg.Subject, err)
	}
	return nil
}

func (d *Dispatcher) notifyAssignment(ctx context.Context, id string) error {
	p, err := d.repos.Internships.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return d.skip(NotifyOnAssignment, id)
	}
	student, err := d.repos.Users.GetByID(ctx, p.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return d.skip(NotifyOnAssignment, id)
	}
	advisor, err := d.user(ctx, p.AdvisorID)
	if err != nil {
		return err
	}
	tutor, err := d.user(ctx, p.TutorID)
	if err != nil {
		return err
	}
	var company *entity.Company
	if p.CompanyID != nil {
		if company, err = d.repos.Companies.GetByID(ctx, *p.CompanyID); err != nil {
			return err
		}
	}

	msgs := []ports.MailMessage{assignmentToStudent(student, advisor, company, p)}
	if advisor != nil {
		msgs = append(msgs, assignmentToAdvisor(advisor, student))
	}
	if tutor != nil {
		msgs = append(msgs, assignmentToTutor(tutor, student))
	}
	for _, m := range msgs {
		if err := d.send(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) notifySelection(ctx context.Context, id string) error {
	a, err := d.repos.Applications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil || a.Status != entity.ApplicationSelected {
		return d.skip(NotifyOnSelection, id)
	}
	student, err := d.repos.Users.GetByID(ctx, a.StudentID)
	if err != nil {
		return err
	}
	posting, err := d.repos.Postings.GetByID(ctx, a.PostingID)
	if err != nil {
		return err
	}
	if student == nil || posting == nil {
		return d.skip(NotifyOnSelection, id)
	}
	return d.send(ctx, selectionMail(student, posting))
}

func (d *Dispatcher) notifyMeeting(ctx context.Context, id string, reminder bool) error {
	m, err := d.repos.Meetings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return d.skip(NotifyMeeting, id)
	}
	if m.Status == entity.MeetingCancelled || m.Status == entity.MeetingHeld {
		return nil
	}
	student, err := d.repos.Users.GetByID(ctx, m.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return d.skip(NotifyMeeting, id)
	}
	if err := d.send(ctx, meetingMail(student, m, reminder, d.cfg.Location)); err != nil {
		return err
	}
	if reminder {
		return nil
	}
	return d.meetings.MarkNotified(ctx, m.ID, d.now())
}

func (d *Dispatcher) sendNotification(ctx context.Context, id string) error {
	n, err := d.repos.Notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil || !n.SendEmail {
		return d.skip(SendNotificationEmail, id)
	}
	recipient, err := d.repos.Users.GetByID(ctx, n.RecipientID)
	if err != nil {
		return err
	}
	if recipient == nil {
		return d.skip(SendNotificationEmail, id)
	}
	return d.send(ctx, notificationMail(recipient, n, d.cfg.PublicURL))
}
