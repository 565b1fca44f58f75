package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/jobs"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// NotificationUseCase notificaciones individuales y masivas de coordinación.
type NotificationUseCase struct {
	repos repository.Registry
	tx    TxRunner
	jobs  JobPublisher
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repos repository.Registry, tx TxRunner, jobs JobPublisher) *NotificationUseCase {
	return &NotificationUseCase{repos: repos, tx: tx, jobs: publisherOrNop(jobs)}
}

// Create registra una notificación PENDIENTE para un estudiante.
func (uc *NotificationUseCase) Create(ctx context.Context, actor Actor, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if err := actor.require(entity.CapSendNotifications, "Solo coordinación puede enviar notificaciones."); err != nil {
		return nil, err
	}
	if err := uc.checkRecipients(ctx, []string{in.RecipientID}, "recipient_id"); err != nil {
		return nil, err
	}
	now := time.Now()
	n := &entity.Notification{
		ID:                   newID(),
		SenderID:             actor.UserID,
		RecipientID:          in.RecipientID,
		Type:                 entity.NotificationType(in.Type),
		Subject:              in.Subject,
		Message:              in.Message,
		Status:               entity.NotificationPending,
		SendEmail:            in.SendEmail,
		RequiresConfirmation: in.RequiresConfirmation,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repos.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

// checkRecipients todos los IDs deben ser estudiantes existentes.
func (uc *NotificationUseCase) checkRecipients(ctx context.Context, ids []string, field string) error {
	unique := make(map[string]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}
	users, err := uc.repos.Users.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := 0
	for _, u := range users {
		if u.Role != entity.RoleStudent {
			return domain.ValidationField(field, "Los destinatarios deben ser estudiantes.")
		}
		found++
	}
	if found != len(unique) {
		return domain.ValidationField(field, "Algún destinatario no existe.")
	}
	return nil
}

func (uc *NotificationUseCase) load(ctx context.Context, actor Actor, id string) (*entity.Notification, error) {
	n, err := uc.repos.Notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil || (!actor.Is(entity.RoleCoordinator) && n.RecipientID != actor.UserID) {
		return nil, domain.NotFound("Notificación no encontrada.")
	}
	return n, nil
}

// GetByID obtiene una notificación propia (o cualquiera para coordinación).
func (uc *NotificationUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.NotificationResponse, error) {
	n, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

// List coordinación ve las que envió; el resto las recibidas.
func (uc *NotificationUseCase) List(ctx context.Context, actor Actor, in dto.NotificationFilterRequest) (*dto.NotificationListResponse, error) {
	in.DefaultPage()
	f := repository.NotificationFilter{
		Status: entity.NotificationStatus(in.Status),
		Type:   entity.NotificationType(in.Type),
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if actor.Is(entity.RoleCoordinator) {
		f.SenderID = actor.UserID
	} else {
		f.RecipientID = actor.UserID
	}
	list, total, err := uc.repos.Notifications.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{Items: toNotificationList(list), Page: page(in.Limit, in.Offset, total)}, nil
}

// Unread notificaciones pendientes o enviadas del actor.
func (uc *NotificationUseCase) Unread(ctx context.Context, actor Actor) (*dto.UnreadResponse, error) {
	list, total, err := uc.repos.Notifications.List(ctx, repository.NotificationFilter{
		RecipientID: actor.UserID,
		UnreadOnly:  true,
		Limit:       all,
	})
	if err != nil {
		return nil, err
	}
	return &dto.UnreadResponse{Count: total, Items: toNotificationList(list)}, nil
}

// Send PENDIENTE → ENVIADA; encola el correo si se pidió.
func (uc *NotificationUseCase) Send(ctx context.Context, actor Actor, id string) (*dto.NotificationResponse, error) {
	if err := actor.require(entity.CapSendNotifications, "Solo coordinación puede enviar notificaciones."); err != nil {
		return nil, err
	}
	n, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := n.Send(time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repos.Notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	if n.SendEmail {
		uc.jobs.Publish(ctx, jobs.SendNotificationEmail, map[string]string{jobs.KeyNotificationID: n.ID})
	}
	return toNotificationResponse(n), nil
}

// MarkRead el destinatario marca como leída; en otro estado no hace nada.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, actor Actor, id string) (*dto.NotificationResponse, error) {
	n, err := uc.recipientOnly(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if n.MarkRead(time.Now()) {
		if err := uc.repos.Notifications.Update(ctx, n); err != nil {
			return nil, err
		}
	}
	return toNotificationResponse(n), nil
}

// Confirm el destinatario confirma la lectura.
func (uc *NotificationUseCase) Confirm(ctx context.Context, actor Actor, id string) (*dto.NotificationResponse, error) {
	n, err := uc.recipientOnly(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := n.Confirm(time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repos.Notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func (uc *NotificationUseCase) recipientOnly(ctx context.Context, actor Actor, id string) (*entity.Notification, error) {
	n, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != actor.UserID {
		return nil, domain.Forbidden("Solo el destinatario puede realizar esta acción.")
	}
	return n, nil
}

// CreateBulk registra una notificación masiva sin enviarla.
func (uc *NotificationUseCase) CreateBulk(ctx context.Context, actor Actor, in dto.CreateBulkNotificationRequest) (*dto.BulkNotificationResponse, error) {
	if err := actor.require(entity.CapSendNotifications, "Solo coordinación puede enviar notificaciones."); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.BulkNotification{
		ID:                   newID(),
		SenderID:             actor.UserID,
		RecipientIDs:         in.RecipientIDs,
		Type:                 entity.NotificationType(in.Type),
		Subject:              in.Subject,
		Message:              in.Message,
		SendEmail:            in.SendEmail,
		RequiresConfirmation: in.RequiresConfirmation,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkRecipients(ctx, b.RecipientIDs, "recipient_ids"); err != nil {
		return nil, err
	}
	if err := uc.repos.BulkNotifications.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBulkResponse(b), nil
}

// GetBulk obtiene una notificación masiva.
func (uc *NotificationUseCase) GetBulk(ctx context.Context, actor Actor, id string) (*dto.BulkNotificationResponse, error) {
	if err := actor.require(entity.CapSendNotifications, "Solo coordinación puede ver notificaciones masivas."); err != nil {
		return nil, err
	}
	b, err := uc.repos.BulkNotifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("Notificación masiva no encontrada.")
	}
	return toBulkResponse(b), nil
}

// ListBulk notificaciones masivas del remitente.
func (uc *NotificationUseCase) ListBulk(ctx context.Context, actor Actor, in dto.PageRequest) (*dto.BulkNotificationListResponse, error) {
	if err := actor.require(entity.CapSendNotifications, "Solo coordinación puede ver notificaciones masivas."); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.repos.BulkNotifications.List(ctx, actor.UserID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BulkNotificationResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBulkResponse(b))
	}
	return &dto.BulkNotificationListResponse{Items: items, Page: page(in.Limit, in.Offset, total)}, nil
}

// SendBulk genera las notificaciones individuales en una sola transacción con
// la masiva bloqueada, de modo que dos envíos simultáneos no dupliquen.
func (uc *NotificationUseCase) SendBulk(ctx context.Context, actor Actor, id string) (*dto.BulkNotificationResponse, error) {
	if err := actor.require(entity.CapSendNotifications, "Solo coordinación puede enviar notificaciones."); err != nil {
		return nil, err
	}
	var (
		bulk *entity.BulkNotification
		sent []*entity.Notification
	)
	err := uc.tx.Run(ctx, func(repos repository.Registry) error {
		b, err := repos.BulkNotifications.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFound("Notificación masiva no encontrada.")
		}
		list, err := b.FanOut(newID, time.Now())
		if err != nil {
			return err
		}
		if err := repos.Notifications.CreateMany(ctx, list); err != nil {
			return err
		}
		if err := repos.BulkNotifications.Update(ctx, b); err != nil {
			return err
		}
		bulk, sent = b, list
		return nil
	})
	if err != nil {
		return nil, err
	}
	if bulk.SendEmail {
		for _, n := range sent {
			uc.jobs.Publish(ctx, jobs.SendNotificationEmail, map[string]string{jobs.KeyNotificationID: n.ID})
		}
	}
	return toBulkResponse(bulk), nil
}

func toNotificationList(list []*entity.Notification) []dto.NotificationResponse {
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNotificationResponse(n))
	}
	return items
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:                   n.ID,
		SenderID:             n.SenderID,
		RecipientID:          n.RecipientID,
		BulkID:               n.BulkID,
		Type:                 string(n.Type),
		Subject:              n.Subject,
		Message:              n.Message,
		Status:               string(n.Status),
		SentAt:               n.SentAt,
		ReadAt:               n.ReadAt,
		SendEmail:            n.SendEmail,
		RequiresConfirmation: n.RequiresConfirmation,
		ConfirmedAt:          n.ConfirmedAt,
		CreatedAt:            n.CreatedAt,
	}
}

func toBulkResponse(b *entity.BulkNotification) *dto.BulkNotificationResponse {
	return &dto.BulkNotificationResponse{
		ID:                   b.ID,
		SenderID:             b.SenderID,
		RecipientIDs:         b.RecipientIDs,
		Type:                 string(b.Type),
		Subject:              b.Subject,
		Message:              b.Message,
		SendEmail:            b.SendEmail,
		RequiresConfirmation: b.RequiresConfirmation,
		Sent:                 b.Sent,
		SentAt:               b.SentAt,
		TotalRecipients:      b.TotalRecipients,
		CreatedAt:            b.CreatedAt,
	}
}
