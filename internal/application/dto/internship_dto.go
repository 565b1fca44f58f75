package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInternshipRequest alta de una práctica (coordinación).
type CreateInternshipRequest struct {
	StudentID string     `json:"student_id" validate:"required,uuid"`
	PostingID string     `json:"posting_id" validate:"omitempty,uuid"`
	Area      string     `json:"area" validate:"omitempty,max=100"`
	Project   string     `json:"project"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// UpdateInternshipRequest datos editables de una práctica.
type UpdateInternshipRequest struct {
	Area      *string    `json:"area" validate:"omitempty,max=100"`
	Project   *string    `json:"project"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// AssignInternshipRequest asignación de docente, tutor y empresa.
type AssignInternshipRequest struct {
	AdvisorID string `json:"advisor_id" validate:"required,uuid"`
	TutorID   string `json:"tutor_id" validate:"required,uuid"`
	CompanyID string `json:"company_id" validate:"required,uuid"`
}

// CompleteInternshipRequest cierre con calificación final opcional.
type CompleteInternshipRequest struct {
	FinalGrade *decimal.Decimal `json:"final_grade" swaggertype:"string"`
}

// InternshipFilterRequest filtros de prácticas.
type InternshipFilterRequest struct {
	PageRequest
	StudentID string `query:"student_id"`
	CompanyID string `query:"company_id"`
	Status    string `query:"status"`
}

// InternshipResponse salida de una práctica.
type InternshipResponse struct {
	ID           string           `json:"id"`
	StudentID    string           `json:"student_id"`
	AdvisorID    *string          `json:"advisor_id"`
	TutorID      *string          `json:"tutor_id"`
	CompanyID    *string          `json:"company_id"`
	PostingID    *string          `json:"posting_id"`
	Area         string           `json:"area"`
	Project      string           `json:"project"`
	StartDate    *time.Time       `json:"start_date"`
	EndDate      *time.Time       `json:"end_date"`
	AssignedAt   *time.Time       `json:"assigned_at"`
	Status       string           `json:"status"`
	Closed       bool             `json:"closed"`
	FinalGrade   *decimal.Decimal `json:"final_grade" swaggertype:"string"`
	DefenseDate  *time.Time       `json:"defense_date"`
	DefensePlace string           `json:"defense_place"`
	DefenseNotes string           `json:"defense_notes"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// InternshipListResponse lista paginada de prácticas.
type InternshipListResponse struct {
	Items []InternshipResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ProgressResponse avance de entregables de la práctica.
type ProgressResponse struct {
	InternshipID string `json:"internship_id"`
	Total        int    `json:"total"`
	Evaluated    int    `json:"evaluated"`
	Percent      int    `json:"percent"`
}
