package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// InternshipStatus estado de una práctica.
type InternshipStatus string

const (
	InternshipPending    InternshipStatus = "PENDIENTE"
	InternshipAssigned   InternshipStatus = "ASIGNADA"
	InternshipInProgress InternshipStatus = "EN_CURSO"
	InternshipCompleted  InternshipStatus = "COMPLETADA"
	InternshipCancelled  InternshipStatus = "CANCELADA"
)

// ActiveInternshipStatuses estados que cuentan para la capacidad del docente
// y para la regla de una práctica activa por estudiante.
var ActiveInternshipStatuses = []InternshipStatus{InternshipAssigned, InternshipInProgress}

// DefaultAdvisorCapacity máximo de estudiantes activos por docente asesor.
const DefaultAdvisorCapacity = 10

// MaxGrade calificación máxima.
var MaxGrade = decimal.NewFromInt(100)

// Internship práctica profesional de un estudiante.
type Internship struct {
	ID           string
	StudentID    string
	AdvisorID    *string
	TutorID      *string
	CompanyID    *string
	PostingID    *string
	Area         string
	Project      string
	StartDate    *time.Time
	EndDate      *time.Time
	AssignedAt   *time.Time
	AssignedBy   *string
	Status       InternshipStatus
	Closed       bool
	ClosedBy     *string
	FinalGrade   *decimal.Decimal
	DefenseDate  *time.Time
	DefensePlace string
	DefenseNotes string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive asignada o en curso.
func (p *Internship) IsActive() bool {
	return p.Status == InternshipAssigned || p.Status == InternshipInProgress
}

// HasAdvisor indica si id es el docente asesor asignado.
func (p *Internship) HasAdvisor(id string) bool {
	return p.AdvisorID != nil && *p.AdvisorID == id
}

// HasTutor indica si id es el tutor empresarial asignado.
func (p *Internship) HasTutor(id string) bool {
	return p.TutorID != nil && *p.TutorID == id
}

// Validate valida fechas y calificación.
func (p *Internship) Validate() error {
	if p.StudentID == "" {
		return domain.ValidationField("student_id", "El estudiante es requerido.")
	}
	if p.StartDate != nil && p.EndDate != nil && !p.EndDate.After(*p.StartDate) {
		return domain.ValidationField("end_date", "La fecha de fin debe ser posterior a la fecha de inicio.")
	}
	if p.FinalGrade != nil {
		if err := ValidateGrade("final_grade", *p.FinalGrade); err != nil {
			return err
		}
	}
	return nil
}

// Assignment datos necesarios para asignar una práctica.
type Assignment struct {
	Advisor     *User
	Tutor       *User
	Company     *Company
	AssignedBy  string
	AdvisorLoad int // prácticas activas del docente, sin contar esta
	Capacity    int
}

// Assign asigna docente, tutor y empresa. Verifica en orden: empresa activa,
// tutor de la empresa y capacidad del docente.
func (p *Internship) Assign(a Assignment, now time.Time) error {
	if p.Status != InternshipPending && p.Status != InternshipAssigned {
		return domain.Validation("Solo se pueden asignar prácticas pendientes o asignadas.")
	}
	if a.Advisor == nil || a.Advisor.Role != RoleAdvisor {
		return domain.ValidationField("advisor_id", "El docente asesor no es válido.")
	}
	if a.Tutor == nil || a.Tutor.Role != RoleTutor {
		return domain.ValidationField("tutor_id", "El tutor empresarial no es válido.")
	}
	if a.Company == nil || !a.Company.Active {
		return domain.ValidationField("company_id", "La empresa debe estar activa.")
	}
	if a.Tutor.CompanyID() != a.Company.ID {
		return domain.ValidationField("tutor_id", "El tutor empresarial debe pertenecer a la empresa asignada.")
	}
	capacity := a.Capacity
	if capacity <= 0 {
		capacity = DefaultAdvisorCapacity
	}
	if a.AdvisorLoad >= capacity {
		return domain.ValidationField("advisor_id",
			fmt.Sprintf("El docente asesor ya tiene el máximo de %d estudiantes asignados.", capacity))
	}

	p.AdvisorID = &a.Advisor.ID
	p.TutorID = &a.Tutor.ID
	p.CompanyID = &a.Company.ID
	by := a.AssignedBy
	p.AssignedBy = &by
	p.AssignedAt = &now
	p.Status = InternshipAssigned
	p.UpdatedAt = now
	return nil
}

// Start ASIGNADA → EN_CURSO.
func (p *Internship) Start(now time.Time) error {
	if p.Status != InternshipAssigned {
		return domain.Validation("La práctica debe estar en estado ASIGNADA.")
	}
	p.Status = InternshipInProgress
	if p.StartDate == nil {
		p.StartDate = &now
	}
	p.UpdatedAt = now
	return nil
}

// Complete EN_CURSO → COMPLETADA con calificación final opcional.
func (p *Internship) Complete(grade *decimal.Decimal, now time.Time) error {
	if p.Status != InternshipInProgress {
		return domain.Validation("La práctica debe estar en curso.")
	}
	if grade != nil {
		if err := ValidateGrade("final_grade", *grade); err != nil {
			return err
		}
		g := grade.Round(2)
		p.FinalGrade = &g
	}
	p.Status = InternshipCompleted
	if p.EndDate == nil {
		p.EndDate = &now
	}
	p.UpdatedAt = now
	return nil
}

// Cancel cancela la práctica desde cualquier estado.
func (p *Internship) Cancel(now time.Time) {
	p.Status = InternshipCancelled
	p.UpdatedAt = now
}

// CloseRecord cierra el expediente de una práctica terminada.
func (p *Internship) CloseRecord(by string, now time.Time) error {
	if p.Closed {
		return domain.Validation("La práctica ya está cerrada.")
	}
	if p.Status != InternshipCompleted && p.Status != InternshipCancelled {
		return domain.Validation("Solo se pueden cerrar prácticas completadas o canceladas.")
	}
	p.Closed = true
	p.ClosedBy = &by
	p.UpdatedAt = now
	return nil
}

// ScheduleDefense copia los datos de la sustentación a la práctica.
func (p *Internship) ScheduleDefense(at time.Time, place, notes string, now time.Time) {
	p.DefenseDate = &at
	p.DefensePlace = place
	p.DefenseNotes = notes
	p.UpdatedAt = now
}

// Progress porcentaje de entregables evaluados, redondeado.
func Progress(total, evaluated int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(evaluated) / float64(total) * 100))
}

// ValidateGrade calificación en [0, 100].
func ValidateGrade(field string, g decimal.Decimal) error {
	if g.IsNegative() || g.GreaterThan(MaxGrade) {
		return domain.ValidationField(field, "La calificación debe estar entre 0 y 100.")
	}
	return nil
}
