package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// Los campos de perfil aplican solo al rol correspondiente.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Phone     string `json:"phone" validate:"omitempty,max=17"`
	Role      string `json:"role" validate:"required,oneof=ESTUDIANTE DOCENTE_ASESOR TUTOR_EMPRESARIAL COORDINADORA_EMPRESARIAL"`
	ProfileRequest
}

// ProfileRequest atributos de perfil por rol.
type ProfileRequest struct {
	EnrollmentID string           `json:"enrollment_id" validate:"omitempty,max=20"`
	Major        string           `json:"major" validate:"omitempty,max=100"`
	Semester     int              `json:"semester" validate:"omitempty,min=1,max=12"`
	GPA          *decimal.Decimal `json:"gpa" swaggertype:"string"`
	Department   string           `json:"department" validate:"omitempty,max=100"`
	Specialty    string           `json:"specialty" validate:"omitempty,max=100"`
	CompanyID    string           `json:"company_id" validate:"omitempty,uuid"`
	Position     string           `json:"position" validate:"omitempty,max=100"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
type UpdateUserRequest struct {
	FirstName  *string          `json:"first_name" validate:"omitempty,max=150"`
	LastName   *string          `json:"last_name" validate:"omitempty,max=150"`
	Phone      *string          `json:"phone" validate:"omitempty,max=17"`
	Major      *string          `json:"major" validate:"omitempty,max=100"`
	Semester   *int             `json:"semester" validate:"omitempty,min=1,max=12"`
	GPA        *decimal.Decimal `json:"gpa" swaggertype:"string"`
	Department *string          `json:"department" validate:"omitempty,max=100"`
	Specialty  *string          `json:"specialty" validate:"omitempty,max=100"`
	CompanyID  *string          `json:"company_id" validate:"omitempty,uuid"`
	Position   *string          `json:"position" validate:"omitempty,max=100"`
}

// UserFilterRequest filtros del listado de usuarios.
type UserFilterRequest struct {
	PageRequest
	Role   string `query:"role"`
	Active string `query:"active"`
	Search string `query:"search"`
	Major  string `query:"major"`
}

// StudentProfileResponse perfil de estudiante.
type StudentProfileResponse struct {
	EnrollmentID string          `json:"enrollment_id"`
	Major        string          `json:"major"`
	Semester     int             `json:"semester"`
	GPA          decimal.Decimal `json:"gpa" swaggertype:"string"`
}

// AdvisorProfileResponse perfil de docente asesor.
type AdvisorProfileResponse struct {
	Department string `json:"department"`
	Specialty  string `json:"specialty"`
}

// TutorProfileResponse perfil de tutor empresarial.
type TutorProfileResponse struct {
	CompanyID string `json:"company_id"`
	Position  string `json:"position"`
}

// UserResponse salida de un usuario (sin password). Solo viaja el perfil del rol.
type UserResponse struct {
	ID        string                  `json:"id"`
	Email     string                  `json:"email"`
	FirstName string                  `json:"first_name"`
	LastName  string                  `json:"last_name"`
	FullName  string                  `json:"full_name"`
	Phone     string                  `json:"phone"`
	Role      string                  `json:"role"`
	RoleLabel string                  `json:"role_label"`
	Active    bool                    `json:"active"`
	Student   *StudentProfileResponse `json:"student,omitempty"`
	Advisor   *AdvisorProfileResponse `json:"advisor,omitempty"`
	Tutor     *TutorProfileResponse   `json:"tutor,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AdviseeResponse estudiante asesorado con su práctica activa.
type AdviseeResponse struct {
	Student      UserResponse `json:"student"`
	InternshipID string       `json:"internship_id"`
	Status       string       `json:"status"`
	Progress     int          `json:"progress"`
}

// TutorDashboardResponse indicadores del tutor empresarial.
type TutorDashboardResponse struct {
	ActiveInternships     int              `json:"active_internships"`
	PendingDeliverables   int              `json:"pending_deliverables"`
	EvaluatedDeliverables int              `json:"evaluated_deliverables"`
	AverageGrade          *decimal.Decimal `json:"average_grade" swaggertype:"string"`
}
