package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeliverableRequest alta de un entregable por el estudiante.
type CreateDeliverableRequest struct {
	InternshipID string    `json:"internship_id" validate:"required,uuid"`
	Title        string    `json:"title" validate:"required,max=200"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"due_date" validate:"required"`
}

// UpdateDeliverableRequest datos editables antes de la evaluación.
type UpdateDeliverableRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// EvaluateDeliverableRequest calificación del tutor. Approved es true si se omite.
type EvaluateDeliverableRequest struct {
	Grade    decimal.Decimal `json:"grade" swaggertype:"string"`
	Feedback string          `json:"feedback"`
	Approved *bool           `json:"approved"`
}

// DeliverableFilterRequest filtros de entregables.
type DeliverableFilterRequest struct {
	PageRequest
	InternshipID string `query:"internship_id"`
	Status       string `query:"status"`
}

// DeliverableResponse salida de un entregable.
type DeliverableResponse struct {
	ID           string           `json:"id"`
	InternshipID string           `json:"internship_id"`
	StudentID    string           `json:"student_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	HasFile      bool             `json:"has_file"`
	DueDate      time.Time        `json:"due_date"`
	SubmittedAt  *time.Time       `json:"submitted_at"`
	EvaluatedAt  *time.Time       `json:"evaluated_at"`
	EvaluatedBy  *string          `json:"evaluated_by"`
	Grade        *decimal.Decimal `json:"grade" swaggertype:"string"`
	Feedback     string           `json:"feedback"`
	Status       string           `json:"status"`
	Overdue      bool             `json:"overdue"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// DeliverableListResponse lista paginada de entregables.
type DeliverableListResponse struct {
	Items []DeliverableResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
