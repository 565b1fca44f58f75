package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// NotificationFilter filtros de notificaciones.
type NotificationFilter struct {
	RecipientID string
	SenderID    string
	Status      entity.NotificationStatus
	Type        entity.NotificationType
	UnreadOnly  bool
	Limit       int
	Offset      int
}

// NotificationRepository puerto de persistencia de notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// CreateMany inserta todas las notificaciones o ninguna.
	CreateMany(ctx context.Context, list []*entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	Update(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, f NotificationFilter) ([]*entity.Notification, int, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
}

// BulkNotificationRepository puerto de persistencia de notificaciones masivas.
type BulkNotificationRepository interface {
	Create(ctx context.Context, b *entity.BulkNotification) error
	GetByID(ctx context.Context, id string) (*entity.BulkNotification, error)
	GetForUpdate(ctx context.Context, id string) (*entity.BulkNotification, error)
	Update(ctx context.Context, b *entity.BulkNotification) error
	List(ctx context.Context, senderID string, limit, offset int) ([]*entity.BulkNotification, int, error)
}
