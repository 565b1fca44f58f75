package dto

import "time"

// CreateMeetingRequest alta de una reunión por el docente asesor.
type CreateMeetingRequest struct {
	InternshipID    string    `json:"internship_id" validate:"required,uuid"`
	Type            string    `json:"type" validate:"required,oneof=SEGUIMIENTO SUSTENTACION"`
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=1,max=480"`
	Location        string    `json:"location" validate:"omitempty,max=200"`
	VirtualLink     string    `json:"virtual_link" validate:"omitempty,url"`
}

// UpdateMeetingRequest datos editables de una reunión.
type UpdateMeetingRequest struct {
	Type            *string `json:"type" validate:"omitempty,oneof=SEGUIMIENTO SUSTENTACION"`
	Title           *string `json:"title" validate:"omitempty,max=200"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=1,max=480"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
	VirtualLink     *string `json:"virtual_link" validate:"omitempty,url"`
	Notes           *string `json:"notes"`
	Agreements      *string `json:"agreements"`
}

// MarkHeldRequest notas y acuerdos de la reunión realizada.
type MarkHeldRequest struct {
	Notes      string `json:"notes"`
	Agreements string `json:"agreements"`
}

// RescheduleMeetingRequest nueva fecha.
type RescheduleMeetingRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// CancelMeetingRequest motivo de cancelación.
type CancelMeetingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// MeetingFilterRequest filtros de reuniones.
type MeetingFilterRequest struct {
	PageRequest
	InternshipID string `query:"internship_id"`
	Type         string `query:"type"`
	Status       string `query:"status"`
}

// MeetingResponse salida de una reunión.
type MeetingResponse struct {
	ID              string     `json:"id"`
	InternshipID    string     `json:"internship_id"`
	AdvisorID       string     `json:"advisor_id"`
	StudentID       string     `json:"student_id"`
	Type            string     `json:"type"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Location        string     `json:"location"`
	VirtualLink     string     `json:"virtual_link"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	Agreements      string     `json:"agreements"`
	StudentNotified bool       `json:"student_notified"`
	NotifiedAt      *time.Time `json:"notified_at"`
	Upcoming        bool       `json:"upcoming"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// MeetingListResponse lista paginada de reuniones.
type MeetingListResponse struct {
	Items []MeetingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
