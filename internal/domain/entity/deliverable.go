package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// DeliverableStatus estado de un entregable.
type DeliverableStatus string

const (
	DeliverablePending   DeliverableStatus = "PENDIENTE"
	DeliverableSubmitted DeliverableStatus = "ENVIADO"
	DeliverableReviewed  DeliverableStatus = "REVISADO"
	DeliverableApproved  DeliverableStatus = "APROBADO"
	DeliverableRejected  DeliverableStatus = "RECHAZADO"
)

// Deliverable entregable calificable de una práctica.
type Deliverable struct {
	ID           string
	InternshipID string
	StudentID    string
	Title        string
	Description  string
	FilePath     string
	DueDate      time.Time
	SubmittedAt  *time.Time
	EvaluatedAt  *time.Time
	EvaluatedBy  *string
	Grade        *decimal.Decimal
	Feedback     string
	Status       DeliverableStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDeliverable crea un entregable pendiente para la práctica. El estudiante
// debe ser el de la práctica.
func NewDeliverable(id string, internship *Internship, studentID, title, description string, due, now time.Time) (*Deliverable, error) {
	if internship == nil {
		return nil, domain.ValidationField("internship_id", "La práctica es requerida.")
	}
	if internship.StudentID != studentID {
		return nil, domain.ValidationField("student_id", "El estudiante debe ser el asignado a la práctica.")
	}
	if strings.TrimSpace(title) == "" {
		return nil, domain.ValidationField("title", "El título es requerido.")
	}
	if due.IsZero() {
		return nil, domain.ValidationField("due_date", "La fecha límite es requerida.")
	}
	return &Deliverable{
		ID:           id,
		InternshipID: internship.ID,
		StudentID:    studentID,
		Title:        title,
		Description:  description,
		DueDate:      due,
		Status:       DeliverablePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Submit envía el archivo. Solo desde PENDIENTE o RECHAZADO.
func (d *Deliverable) Submit(filePath string, now time.Time) error {
	if d.Status != DeliverablePending && d.Status != DeliverableRejected {
		return domain.Validation("Solo se pueden enviar entregables pendientes o rechazados.")
	}
	if strings.TrimSpace(filePath) == "" {
		return domain.ValidationField("file", "El archivo es requerido.")
	}
	d.FilePath = filePath
	d.Status = DeliverableSubmitted
	d.SubmittedAt = &now
	d.UpdatedAt = now
	return nil
}

// Evaluation calificación de un tutor.
type Evaluation struct {
	TutorID  string
	Grade    decimal.Decimal
	Feedback string
	Approved bool
}

// Evaluate califica un entregable enviado. Solo el tutor asignado a la práctica.
func (d *Deliverable) Evaluate(internship *Internship, e Evaluation, now time.Time) error {
	if d.Status != DeliverableSubmitted {
		return domain.Validation("Solo se pueden evaluar entregables enviados.")
	}
	if internship == nil || !internship.HasTutor(e.TutorID) {
		return domain.Forbidden("Solo el tutor empresarial asignado puede evaluar.")
	}
	if err := ValidateGrade("grade", e.Grade); err != nil {
		return err
	}
	g := e.Grade.Round(2)
	d.Grade = &g
	d.Feedback = e.Feedback
	tutor := e.TutorID
	d.EvaluatedBy = &tutor
	d.EvaluatedAt = &now
	if e.Approved {
		d.Status = DeliverableApproved
	} else {
		d.Status = DeliverableRejected
	}
	d.UpdatedAt = now
	return nil
}

// IsOverdue pendiente o enviado después de la fecha límite.
func (d *Deliverable) IsOverdue(now time.Time) bool {
	if d.Status != DeliverablePending && d.Status != DeliverableSubmitted {
		return false
	}
	return now.After(d.DueDate)
}

// IsEvaluated tiene calificación.
func (d *Deliverable) IsEvaluated() bool {
	return d.Grade != nil
}
