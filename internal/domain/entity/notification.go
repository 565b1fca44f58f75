package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
)

// NotificationType tipo de notificación.
type NotificationType string

const (
	NotificationInfo      NotificationType = "INFORMATIVA"
	NotificationImportant NotificationType = "IMPORTANTE"
	NotificationUrgent    NotificationType = "URGENTE"
	NotificationReminder  NotificationType = "RECORDATORIO"
)

// Valid indica si el tipo es conocido.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationImportant, NotificationUrgent, NotificationReminder:
		return true
	}
	return false
}

// NotificationStatus estado de una notificación.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "PENDIENTE"
	NotificationSent    NotificationStatus = "ENVIADA"
	NotificationRead    NotificationStatus = "LEIDA"
)

// Notification mensaje de coordinación a un estudiante.
type Notification struct {
	ID                   string
	SenderID             string
	RecipientID          string
	BulkID               *string
	Type                 NotificationType
	Subject              string
	Message              string
	Status               NotificationStatus
	SentAt               *time.Time
	ReadAt               *time.Time
	SendEmail            bool
	RequiresConfirmation bool
	ConfirmedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate valida contenido y tipo.
func (n *Notification) Validate() error {
	if n.RecipientID == "" {
		return domain.ValidationField("recipient_id", "El destinatario es requerido.")
	}
	return validateMessage(n.Type, n.Subject, n.Message)
}

func validateMessage(t NotificationType, subject, message string) error {
	if !t.Valid() {
		return domain.ValidationField("type", "Tipo de notificación inválido.")
	}
	if strings.TrimSpace(subject) == "" {
		return domain.ValidationField("subject", "El asunto es requerido.")
	}
	if strings.TrimSpace(message) == "" {
		return domain.ValidationField("message", "El mensaje es requerido.")
	}
	return nil
}

// Send PENDIENTE → ENVIADA.
func (n *Notification) Send(now time.Time) error {
	if n.Status != NotificationPending {
		return domain.Validation("Solo se pueden enviar notificaciones pendientes.")
	}
	n.Status = NotificationSent
	n.SentAt = &now
	n.UpdatedAt = now
	return nil
}

// MarkRead ENVIADA → LEIDA. En otro estado no hace nada y devuelve false.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.Status != NotificationSent {
		return false
	}
	n.Status = NotificationRead
	n.ReadAt = &now
	n.UpdatedAt = now
	return true
}

// Confirm confirma la lectura si la notificación lo requiere y ya fue leída.
func (n *Notification) Confirm(now time.Time) error {
	if !n.RequiresConfirmation {
		return domain.Validation("Esta notificación no requiere confirmación.")
	}
	if n.Status != NotificationRead {
		return domain.Validation("La notificación debe estar leída para confirmarla.")
	}
	n.ConfirmedAt = &now
	n.UpdatedAt = now
	return nil
}

// IsUnread pendiente o enviada.
func (n *Notification) IsUnread() bool {
	return n.Status == NotificationPending || n.Status == NotificationSent
}

// BulkNotification notificación masiva a varios estudiantes.
type BulkNotification struct {
	ID                   string
	SenderID             string
	RecipientIDs         []string
	Type                 NotificationType
	Subject              string
	Message              string
	SendEmail            bool
	RequiresConfirmation bool
	Sent                 bool
	SentAt               *time.Time
	TotalRecipients      int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate valida contenido y destinatarios.
func (b *BulkNotification) Validate() error {
	if len(b.RecipientIDs) == 0 {
		return domain.ValidationField("recipient_ids", "Debe haber al menos un destinatario.")
	}
	return validateMessage(b.Type, b.Subject, b.Message)
}

// FanOut genera una notificación ENVIADA por destinatario y marca la masiva como
// enviada. Falla si ya fue enviada; newID genera los IDs de las individuales.
func (b *BulkNotification) FanOut(newID func() string, now time.Time) ([]*Notification, error) {
	if b.Sent {
		return nil, domain.Validation("Esta notificación masiva ya fue enviada.")
	}
	seen := make(map[string]bool, len(b.RecipientIDs))
	out := make([]*Notification, 0, len(b.RecipientIDs))
	for _, rid := range b.RecipientIDs {
		if seen[rid] {
			continue
		}
		seen[rid] = true
		bulkID := b.ID
		n := &Notification{
			ID:                   newID(),
			SenderID:             b.SenderID,
			RecipientID:          rid,
			BulkID:               &bulkID,
			Type:                 b.Type,
			Subject:              b.Subject,
			Message:              b.Message,
			Status:               NotificationPending,
			SendEmail:            b.SendEmail,
			RequiresConfirmation: b.RequiresConfirmation,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := n.Send(now); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	b.TotalRecipients = len(out)
	b.Sent = true
	b.SentAt = &now
	b.UpdatedAt = now
	return out, nil
}
