package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePostingRequest entrada para publicar una vacante.
type CreatePostingRequest struct {
	CompanyID           string           `json:"company_id" validate:"required,uuid"`
	Title               string           `json:"title" validate:"required,max=200"`
	Description         string           `json:"description" validate:"required"`
	Requirements        string           `json:"requirements"`
	EligibleMajors      string           `json:"eligible_majors" validate:"omitempty,max=500"`
	MinSemester         int              `json:"min_semester" validate:"omitempty,min=1,max=12"`
	MinGPA              *decimal.Decimal `json:"min_gpa" swaggertype:"string"`
	Area                string           `json:"area" validate:"omitempty,max=100"`
	Modality            string           `json:"modality" validate:"omitempty,oneof=PRESENCIAL REMOTO HIBRIDO"`
	Location            string           `json:"location" validate:"omitempty,max=200"`
	Schedule            string           `json:"schedule" validate:"omitempty,max=100"`
	DurationMonths      int              `json:"duration_months" validate:"omitempty,min=1,max=24"`
	SlotsAvailable      int              `json:"slots_available" validate:"omitempty,min=1"`
	StartDate           *time.Time       `json:"start_date"`
	ApplicationDeadline *time.Time       `json:"application_deadline"`
	Paid                bool             `json:"paid"`
	StipendAmount       *decimal.Decimal `json:"stipend_amount" swaggertype:"string"`
	Benefits            string           `json:"benefits"`
}

// UpdatePostingRequest entrada para actualizar una vacante (campos opcionales).
type UpdatePostingRequest struct {
	Title               *string          `json:"title" validate:"omitempty,max=200"`
	Description         *string          `json:"description"`
	Requirements        *string          `json:"requirements"`
	EligibleMajors      *string          `json:"eligible_majors" validate:"omitempty,max=500"`
	MinSemester         *int             `json:"min_semester" validate:"omitempty,min=1,max=12"`
	MinGPA              *decimal.Decimal `json:"min_gpa" swaggertype:"string"`
	Area                *string          `json:"area" validate:"omitempty,max=100"`
	Modality            *string          `json:"modality" validate:"omitempty,oneof=PRESENCIAL REMOTO HIBRIDO"`
	Location            *string          `json:"location" validate:"omitempty,max=200"`
	Schedule            *string          `json:"schedule" validate:"omitempty,max=100"`
	DurationMonths      *int             `json:"duration_months" validate:"omitempty,min=1,max=24"`
	SlotsAvailable      *int             `json:"slots_available" validate:"omitempty,min=1"`
	StartDate           *time.Time       `json:"start_date"`
	ApplicationDeadline *time.Time       `json:"application_deadline"`
	Paid                *bool            `json:"paid"`
	StipendAmount       *decimal.Decimal `json:"stipend_amount" swaggertype:"string"`
	Benefits            *string          `json:"benefits"`
}

// PostingFilterRequest filtros del listado de vacantes.
type PostingFilterRequest struct {
	PageRequest
	CompanyID string `query:"company_id"`
	Status    string `query:"status"`
	Modality  string `query:"modality"`
	Area      string `query:"area"`
	Search    string `query:"search"`
}

// PostingResponse salida de una vacante.
type PostingResponse struct {
	ID                  string           `json:"id"`
	CompanyID           string           `json:"company_id"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Requirements        string           `json:"requirements"`
	EligibleMajors      string           `json:"eligible_majors"`
	MinSemester         int              `json:"min_semester"`
	MinGPA              *decimal.Decimal `json:"min_gpa" swaggertype:"string"`
	Area                string           `json:"area"`
	Modality            string           `json:"modality"`
	Location            string           `json:"location"`
	Schedule            string           `json:"schedule"`
	DurationMonths      int              `json:"duration_months"`
	SlotsAvailable      int              `json:"slots_available"`
	SlotsFilled         int              `json:"slots_filled"`
	RemainingSlots      int              `json:"remaining_slots"`
	StartDate           *time.Time       `json:"start_date"`
	ApplicationDeadline *time.Time       `json:"application_deadline"`
	Paid                bool             `json:"paid"`
	StipendAmount       *decimal.Decimal `json:"stipend_amount" swaggertype:"string"`
	Benefits            string           `json:"benefits"`
	Status              string           `json:"status"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// PostingListResponse lista paginada de vacantes.
type PostingListResponse struct {
	Items []PostingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// EligibilityResponse resultado de verificar requisitos.
type EligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
}
