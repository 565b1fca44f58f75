package dto

import "time"

// UploadDocumentRequest campos de formulario que acompañan al archivo.
type UploadDocumentRequest struct {
	OwnerID      string `form:"owner_id" validate:"omitempty,uuid"`
	InternshipID string `form:"internship_id" validate:"omitempty,uuid"`
	Type         string `form:"type" validate:"required,oneof=CV CARTA_PRESENTACION CONVENIO CONSTANCIA INFORME OTRO"`
}

// ValidateDocumentRequest marca de validez por coordinación.
type ValidateDocumentRequest struct {
	Valid bool `json:"valid"`
}

// DocumentFilterRequest filtros de documentos.
type DocumentFilterRequest struct {
	PageRequest
	OwnerID      string `query:"owner_id"`
	InternshipID string `query:"internship_id"`
	Type         string `query:"type"`
	Valid        string `query:"valid"`
}

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	InternshipID *string   `json:"internship_id"`
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Hash         string    `json:"hash"`
	Size         int64     `json:"size"`
	Valid        bool      `json:"valid"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateObservationRequest nota sobre una práctica.
type CreateObservationRequest struct {
	InternshipID string `json:"internship_id" validate:"required,uuid"`
	Text         string `json:"text" validate:"required"`
}

// ObservationResponse salida de una observación.
type ObservationResponse struct {
	ID           string    `json:"id"`
	InternshipID string    `json:"internship_id"`
	AuthorID     string    `json:"author_id"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}
