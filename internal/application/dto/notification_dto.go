package dto

import "time"

// CreateNotificationRequest notificación individual a un estudiante.
type CreateNotificationRequest struct {
	RecipientID          string `json:"recipient_id" validate:"required,uuid"`
	Type                 string `json:"type" validate:"required,oneof=INFORMATIVA IMPORTANTE URGENTE RECORDATORIO"`
	Subject              string `json:"subject" validate:"required,max=200"`
	Message              string `json:"message" validate:"required"`
	SendEmail            bool   `json:"send_email"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
}

// CreateBulkNotificationRequest notificación masiva.
type CreateBulkNotificationRequest struct {
	RecipientIDs         []string `json:"recipient_ids" validate:"required,min=1,dive,uuid"`
	Type                 string   `json:"type" validate:"required,oneof=INFORMATIVA IMPORTANTE URGENTE RECORDATORIO"`
	Subject              string   `json:"subject" validate:"required,max=200"`
	Message              string   `json:"message" validate:"required"`
	SendEmail            bool     `json:"send_email"`
	RequiresConfirmation bool     `json:"requires_confirmation"`
}

// NotificationFilterRequest filtros de notificaciones.
type NotificationFilterRequest struct {
	PageRequest
	Status string `query:"status"`
	Type   string `query:"type"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID                   string     `json:"id"`
	SenderID             string     `json:"sender_id"`
	RecipientID          string     `json:"recipient_id"`
	BulkID               *string    `json:"bulk_id"`
	Type                 string     `json:"type"`
	Subject              string     `json:"subject"`
	Message              string     `json:"message"`
	Status               string     `json:"status"`
	SentAt               *time.Time `json:"sent_at"`
	ReadAt               *time.Time `json:"read_at"`
	SendEmail            bool       `json:"send_email"`
	RequiresConfirmation bool       `json:"requires_confirmation"`
	ConfirmedAt          *time.Time `json:"confirmed_at"`
	CreatedAt            time.Time  `json:"created_at"`
}

// NotificationListResponse lista paginada de notificaciones.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// UnreadResponse notificaciones no leídas del usuario.
type UnreadResponse struct {
	Count int                    `json:"count"`
	Items []NotificationResponse `json:"items"`
}

// BulkNotificationResponse salida de una notificación masiva.
type BulkNotificationResponse struct {
	ID                   string     `json:"id"`
	SenderID             string     `json:"sender_id"`
	RecipientIDs         []string   `json:"recipient_ids"`
	Type                 string     `json:"type"`
	Subject              string     `json:"subject"`
	Message              string     `json:"message"`
	SendEmail            bool       `json:"send_email"`
	RequiresConfirmation bool       `json:"requires_confirmation"`
	Sent                 bool       `json:"sent"`
	SentAt               *time.Time `json:"sent_at"`
	TotalRecipients      int        `json:"total_recipients"`
	CreatedAt            time.Time  `json:"created_at"`
}

// BulkNotificationListResponse lista paginada de notificaciones masivas.
type BulkNotificationListResponse struct {
	Items []BulkNotificationResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}
