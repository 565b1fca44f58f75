package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
)

// MeetingType tipo de reunión.
type MeetingType string

const (
	MeetingCheckin      MeetingType = "SEGUIMIENTO"
	MeetingFinalDefense MeetingType = "SUSTENTACION"
)

// MeetingStatus estado de una reunión.
type MeetingStatus string

const (
	MeetingScheduled   MeetingStatus = "PROGRAMADA"
	MeetingHeld        MeetingStatus = "REALIZADA"
	MeetingCancelled   MeetingStatus = "CANCELADA"
	MeetingRescheduled MeetingStatus = "REPROGRAMADA"
)

// DefaultMeetingDuration duración por defecto en minutos.
const DefaultMeetingDuration = 60

// UpcomingWindow ventana para considerar una reunión próxima.
const UpcomingWindow = 24 * time.Hour

// ErrDuplicateDefense mensaje cuando ya existe una sustentación.
const ErrDuplicateDefense = "Ya existe una sustentación programada para esta práctica."

// Meeting reunión entre docente asesor y estudiante sobre una práctica.
type Meeting struct {
	ID              string
	InternshipID    string
	AdvisorID       string
	StudentID       string
	Type            MeetingType
	Title           string
	Description     string
	ScheduledAt     time.Time
	DurationMinutes int
	Location        string
	VirtualLink     string
	Status          MeetingStatus
	Notes           string
	Agreements      string
	StudentNotified bool
	NotifiedAt      *time.Time
	RemindedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidateMeeting valida la reunión contra su práctica. existingDefense es otra
// sustentación de la misma práctica (nil si no hay); se ignora si es la misma reunión.
func ValidateMeeting(m *Meeting, internship *Internship, existingDefense *Meeting) error {
	if internship == nil {
		return domain.ValidationField("internship_id", "La práctica es requerida.")
	}
	if m.Type != MeetingCheckin && m.Type != MeetingFinalDefense {
		return domain.ValidationField("type", "Tipo de reunión inválido.")
	}
	if strings.TrimSpace(m.Title) == "" {
		return domain.ValidationField("title", "El título es requerido.")
	}
	if m.ScheduledAt.IsZero() {
		return domain.ValidationField("scheduled_at", "La fecha y hora son requeridas.")
	}
	if m.DurationMinutes <= 0 {
		m.DurationMinutes = DefaultMeetingDuration
	}
	if !internship.HasAdvisor(m.AdvisorID) {
		return domain.ValidationField("advisor_id", "El docente asesor debe ser el mismo de la práctica.")
	}
	if internship.StudentID != m.StudentID {
		return domain.ValidationField("student_id", "El estudiante debe ser el mismo de la práctica.")
	}
	if m.Type == MeetingFinalDefense && existingDefense != nil && existingDefense.ID != m.ID {
		return domain.Validation(ErrDuplicateDefense)
	}
	return nil
}

// MarkHeld PROGRAMADA → REALIZADA.
func (m *Meeting) MarkHeld(notes, agreements string, now time.Time) error {
	if m.Status != MeetingScheduled {
		return domain.Validation("Solo se pueden marcar como realizadas reuniones programadas.")
	}
	m.Status = MeetingHeld
	if notes != "" {
		m.Notes = notes
	}
	if agreements != "" {
		m.Agreements = agreements
	}
	m.UpdatedAt = now
	return nil
}

// Cancel cancela la reunión salvo que ya se haya realizado.
func (m *Meeting) Cancel(reason string, now time.Time) error {
	if m.Status == MeetingHeld {
		return domain.Validation("No se puede cancelar una reunión ya realizada.")
	}
	m.Status = MeetingCancelled
	if reason != "" {
		m.Notes = "Cancelada: " + reason
	}
	m.UpdatedAt = now
	return nil
}

// Reschedule mueve la reunión a una nueva fecha y limpia la notificación.
func (m *Meeting) Reschedule(at time.Time, now time.Time) error {
	if m.Status == MeetingHeld {
		return domain.Validation("No se puede reprogramar una reunión ya realizada.")
	}
	if at.IsZero() {
		return domain.ValidationField("scheduled_at", "La nueva fecha es requerida.")
	}
	m.ScheduledAt = at
	m.Status = MeetingRescheduled
	m.StudentNotified = false
	m.NotifiedAt = nil
	m.RemindedAt = nil
	m.UpdatedAt = now
	return nil
}

// MarkNotified registra la notificación al estudiante. Devuelve false si ya estaba notificado.
func (m *Meeting) MarkNotified(now time.Time) bool {
	if m.StudentNotified {
		return false
	}
	m.StudentNotified = true
	m.NotifiedAt = &now
	m.UpdatedAt = now
	return true
}

// NeedsReminder reunión vigente dentro de la ventana y sin recordatorio enviado.
func (m *Meeting) NeedsReminder(now time.Time) bool {
	if m.Status != MeetingScheduled && m.Status != MeetingRescheduled {
		return false
	}
	if m.RemindedAt != nil {
		return false
	}
	return !m.ScheduledAt.Before(now) && !m.ScheduledAt.After(now.Add(UpcomingWindow))
}

// IsUpcoming programada dentro de las próximas 24 horas.
func (m *Meeting) IsUpcoming(now time.Time) bool {
	if m.Status != MeetingScheduled {
		return false
	}
	return !m.ScheduledAt.Before(now) && !m.ScheduledAt.After(now.Add(UpcomingWindow))
}
