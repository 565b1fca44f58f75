package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var (
	_ repository.NotificationRepository     = (*NotificationRepo)(nil)
	_ repository.BulkNotificationRepository = (*BulkNotificationRepo)(nil)
)

// NotificationRepo notificaciones individuales sobre PostgreSQL.
type NotificationRepo struct {
	db Querier
}

// NewNotificationRepository construye el repositorio de notificaciones.
func NewNotificationRepository(db Querier) *NotificationRepo {
	return &NotificationRepo{db: db}
}

var notificationColumnNames = []string{
	"id", "sender_id", "recipient_id", "bulk_id", "type", "subject", "message", "status", "sent_at", "read_at",
	"send_email", "requires_confirmation", "confirmed_at", "created_at", "updated_at",
}

const notificationColumns = `
	id, sender_id, recipient_id, bulk_id::text, type, subject, message, status, sent_at, read_at,
	send_email, requires_confirmation, confirmed_at, created_at, updated_at`

func notificationValues(n *entity.Notification) []any {
	return []any{
		n.ID, n.SenderID, n.RecipientID, n.BulkID, n.Type, n.Subject, n.Message, n.Status, n.SentAt, n.ReadAt,
		n.SendEmail, n.RequiresConfirmation, n.ConfirmedAt, n.CreatedAt, n.UpdatedAt,
	}
}

// copyValues igual que notificationValues con los UUID en binario, como los espera COPY.
func copyValues(n *entity.Notification) ([]any, error) {
	vals := notificationValues(n)
	for _, i := range []int{0, 1, 2} {
		id, err := uuid.Parse(vals[i].(string))
		if err != nil {
			return nil, domain.Validation("Identificador inválido en la notificación.")
		}
		vals[i] = id
	}
	if n.BulkID != nil {
		id, err := uuid.Parse(*n.BulkID)
		if err != nil {
			return nil, domain.Validation("Identificador inválido en la notificación.")
		}
		vals[3] = id
	}
	return vals, nil
}

func scanNotification(row scanner, extra ...any) (*entity.Notification, error) {
	var n entity.Notification
	dest := []any{
		&n.ID, &n.SenderID, &n.RecipientID, &n.BulkID, &n.Type, &n.Subject, &n.Message, &n.Status, &n.SentAt,
		&n.ReadAt, &n.SendEmail, &n.RequiresConfirmation, &n.ConfirmedAt, &n.CreatedAt, &n.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserta una notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, sender_id, recipient_id, bulk_id, type, subject, message, status, sent_at,
			read_at, send_email, requires_confirmation, confirmed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if _, err := r.db.Exec(ctx, query, notificationValues(n)...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ValidationField("recipient_id", "El destinatario no existe.")
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// CreateMany inserta con COPY; dentro de una transacción es todo o nada.
func (r *NotificationRepo) CreateMany(ctx context.Context, list []*entity.Notification) error {
	if len(list) == 0 {
		return nil
	}
	rows := make([][]any, len(list))
	for i, n := range list {
		row, err := copyValues(n)
		if err != nil {
			return err
		}
		rows[i] = row
	}
	_, err := r.db.CopyFrom(ctx, pgx.Identifier{"notifications"}, notificationColumnNames, pgx.CopyFromRows(rows))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ValidationField("recipient_ids", "Algún destinatario no existe.")
		}
		return fmt.Errorf("copy notifications: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := scanNotification(r.db.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// Update actualiza estado y marcas de tiempo.
func (r *NotificationRepo) Update(ctx context.Context, n *entity.Notification) error {
	query := `
		UPDATE notifications SET type = $2, subject = $3, message = $4, status = $5, sent_at = $6, read_at = $7,
			send_email = $8, requires_confirmation = $9, confirmed_at = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		n.ID, n.Type, n.Subject, n.Message, n.Status, n.SentAt, n.ReadAt, n.SendEmail, n.RequiresConfirmation,
		n.ConfirmedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return nil
}

// List lista notificaciones con filtros.
func (r *NotificationRepo) List(ctx context.Context, f repository.NotificationFilter) ([]*entity.Notification, int, error) {
	var w where
	w.addIf(f.RecipientID != "", "recipient_id = $%d", f.RecipientID)
	w.addIf(f.SenderID != "", "sender_id = $%d", f.SenderID)
	w.addIf(f.Status != "", "status = $%d", f.Status)
	w.addIf(f.Type != "", "type = $%d", f.Type)
	if f.UnreadOnly {
		w.conds = append(w.conds, "status IN ('PENDIENTE', 'ENVIADA')")
	}
	query := `SELECT ` + notificationColumns + `, COUNT(*) OVER() FROM notifications` + w.sql() +
		` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Notification
		total int
	)
	for rows.Next() {
		n, err := scanNotification(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, total, rows.Err()
}

// CountUnread notificaciones pendientes o enviadas del destinatario.
func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND status IN ('PENDIENTE', 'ENVIADA')`,
		recipientID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// BulkNotificationRepo notificaciones masivas sobre PostgreSQL.
type BulkNotificationRepo struct {
	db Querier
}

// NewBulkNotificationRepository construye el repositorio de notificaciones masivas.
func NewBulkNotificationRepository(db Querier) *BulkNotificationRepo {
	return &BulkNotificationRepo{db: db}
}

const bulkColumns = `
	id, sender_id, recipient_ids::text[], type, subject, message, send_email, requires_confirmation, sent,
	sent_at, total_recipients, created_at, updated_at`

func scanBulk(row scanner, extra ...any) (*entity.BulkNotification, error) {
	var b entity.BulkNotification
	dest := []any{
		&b.ID, &b.SenderID, &b.RecipientIDs, &b.Type, &b.Subject, &b.Message, &b.SendEmail,
		&b.RequiresConfirmation, &b.Sent, &b.SentAt, &b.TotalRecipients, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta una notificación masiva.
func (r *BulkNotificationRepo) Create(ctx context.Context, b *entity.BulkNotification) error {
	query := `
		INSERT INTO bulk_notifications (id, sender_id, recipient_ids, type, subject, message, send_email,
			requires_confirmation, sent, sent_at, total_recipients, created_at, updated_at)
		VALUES ($1, $2, $3::text[]::uuid[], $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.SenderID, b.RecipientIDs, b.Type, b.Subject, b.Message, b.SendEmail, b.RequiresConfirmation,
		b.Sent, b.SentAt, b.TotalRecipients, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bulk notification: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación masiva.
func (r *BulkNotificationRepo) GetByID(ctx context.Context, id string) (*entity.BulkNotification, error) {
	return r.getOne(ctx, `SELECT `+bulkColumns+` FROM bulk_notifications WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila para el envío.
func (r *BulkNotificationRepo) GetForUpdate(ctx context.Context, id string) (*entity.BulkNotification, error) {
	return r.getOne(ctx, `SELECT `+bulkColumns+` FROM bulk_notifications WHERE id = $1 FOR UPDATE`, id)
}

func (r *BulkNotificationRepo) getOne(ctx context.Context, query, id string) (*entity.BulkNotification, error) {
	b, err := scanBulk(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bulk notification: %w", err)
	}
	return b, nil
}

// Update actualiza la notificación masiva.
func (r *BulkNotificationRepo) Update(ctx context.Context, b *entity.BulkNotification) error {
	query := `
		UPDATE bulk_notifications SET recipient_ids = $2::text[]::uuid[], type = $3, subject = $4, message = $5,
			send_email = $6, requires_confirmation = $7, sent = $8, sent_at = $9, total_recipients = $10,
			updated_at = $11
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.RecipientIDs, b.Type, b.Subject, b.Message, b.SendEmail, b.RequiresConfirmation, b.Sent,
		b.SentAt, b.TotalRecipients, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bulk notification: %w", err)
	}
	return nil
}

// List lista notificaciones masivas del remitente (todas si senderID es vacío).
func (r *BulkNotificationRepo) List(ctx context.Context, senderID string, limit, offset int) ([]*entity.BulkNotification, int, error) {
	var w where
	w.addIf(senderID != "", "sender_id = $%d", senderID)
	query := `SELECT ` + bulkColumns + `, COUNT(*) OVER() FROM bulk_notifications` + w.sql() +
		` ORDER BY created_at DESC` + w.page(limit, offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bulk notifications: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.BulkNotification
		total int
	)
	for rows.Next() {
		b, err := scanBulk(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan bulk notification: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}
