package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	TaxID        string `json:"tax_id" validate:"required,min=12,max=13"`
	LegalName    string `json:"legal_name" validate:"omitempty,max=200"`
	Address      string `json:"address"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
	Email        string `json:"email" validate:"omitempty,email"`
	Website      string `json:"website" validate:"omitempty,url"`
	ContactName  string `json:"contact_name" validate:"omitempty,max=200"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=20"`
	Sector       string `json:"sector" validate:"omitempty,max=100"`
	Size         string `json:"size" validate:"omitempty,oneof=MICRO PEQUEÑA MEDIANA GRANDE"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	LegalName    *string `json:"legal_name" validate:"omitempty,max=200"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone" validate:"omitempty,max=20"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Website      *string `json:"website" validate:"omitempty,url"`
	ContactName  *string `json:"contact_name" validate:"omitempty,max=200"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=20"`
	Sector       *string `json:"sector" validate:"omitempty,max=100"`
	Size         *string `json:"size" validate:"omitempty,oneof=MICRO PEQUEÑA MEDIANA GRANDE"`
	Active       *bool   `json:"active"`
}

// CompanyFilterRequest filtros del listado de empresas.
type CompanyFilterRequest struct {
	PageRequest
	Active   string `query:"active"`
	Verified string `query:"verified"`
	Sector   string `query:"sector"`
	Search   string `query:"search"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TaxID        string    `json:"tax_id"`
	LegalName    string    `json:"legal_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Website      string    `json:"website"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	Sector       string    `json:"sector"`
	Size         string    `json:"size"`
	Active       bool      `json:"active"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
