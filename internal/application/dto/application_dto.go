package dto

import "time"

// CreateApplicationRequest postulación del estudiante autenticado.
type CreateApplicationRequest struct {
	PostingID  string `json:"posting_id" validate:"required,uuid"`
	Motivation string `json:"motivation" validate:"omitempty,max=2000"`
}

// ApplicationFilterRequest filtros de postulaciones.
type ApplicationFilterRequest struct {
	PageRequest
	PostingID string `query:"posting_id"`
	Status    string `query:"status"`
}

// ApplicationResponse salida de una postulación.
type ApplicationResponse struct {
	ID         string     `json:"id"`
	StudentID  string     `json:"student_id"`
	PostingID  string     `json:"posting_id"`
	Status     string     `json:"status"`
	Motivation string     `json:"motivation"`
	SelectedAt *time.Time `json:"selected_at"`
	SelectedBy *string    `json:"selected_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ApplicationListResponse lista paginada de postulaciones.
type ApplicationListResponse struct {
	Items []ApplicationResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
