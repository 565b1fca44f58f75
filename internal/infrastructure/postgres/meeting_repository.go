package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var _ repository.MeetingRepository = (*MeetingRepo)(nil)

// MeetingRepo reuniones sobre PostgreSQL.
type MeetingRepo struct {
	db Querier
}

// NewMeetingRepository construye el repositorio de reuniones.
func NewMeetingRepository(db Querier) *MeetingRepo {
	return &MeetingRepo{db: db}
}

const meetingColumns = `
	id, internship_id, advisor_id, student_id, type, title, description, scheduled_at, duration_minutes,
	location, virtual_link, status, notes, agreements, student_notified, notified_at, reminded_at,
	created_at, updated_at`

func scanMeeting(row scanner, extra ...any) (*entity.Meeting, error) {
	var m entity.Meeting
	dest := []any{
		&m.ID, &m.InternshipID, &m.AdvisorID, &m.StudentID, &m.Type, &m.Title, &m.Description, &m.ScheduledAt,
		&m.DurationMinutes, &m.Location, &m.VirtualLink, &m.Status, &m.Notes, &m.Agreements, &m.StudentNotified,
		&m.NotifiedAt, &m.RemindedAt, &m.CreatedAt, &m.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &m, nil
}

func mapMeetingErr(op string, err error) error {
	if isUniqueViolation(err) && constraintName(err) == "uq_meetings_defense" {
		return domain.Validation(entity.ErrDuplicateDefense)
	}
	return fmt.Errorf("%s meeting: %w", op, err)
}

// Create inserta una reunión.
func (r *MeetingRepo) Create(ctx context.Context, m *entity.Meeting) error {
	query := `
		INSERT INTO meetings (id, internship_id, advisor_id, student_id, type, title, description, scheduled_at,
			duration_minutes, location, virtual_link, status, notes, agreements, student_notified, notified_at,
			reminded_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.InternshipID, m.AdvisorID, m.StudentID, m.Type, m.Title, m.Description, m.ScheduledAt,
		m.DurationMinutes, m.Location, m.VirtualLink, m.Status, m.Notes, m.Agreements, m.StudentNotified,
		m.NotifiedAt, m.RemindedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return mapMeetingErr("insert", err)
	}
	return nil
}

// GetByID obtiene una reunión.
func (r *MeetingRepo) GetByID(ctx context.Context, id string) (*entity.Meeting, error) {
	return r.getOne(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id)
}

// GetDefense sustentación de la práctica, si existe.
func (r *MeetingRepo) GetDefense(ctx context.Context, internshipID string) (*entity.Meeting, error) {
	return r.getOne(ctx, `SELECT `+meetingColumns+` FROM meetings
		WHERE internship_id = $1 AND type = 'SUSTENTACION' LIMIT 1`, internshipID)
}

func (r *MeetingRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Meeting, error) {
	m, err := scanMeeting(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

// Update actualiza la reunión.
func (r *MeetingRepo) Update(ctx context.Context, m *entity.Meeting) error {
	query := `
		UPDATE meetings SET type = $2, title = $3, description = $4, scheduled_at = $5, duration_minutes = $6,
			location = $7, virtual_link = $8, status = $9, notes = $10, agreements = $11, student_notified = $12,
			notified_at = $13, reminded_at = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.Type, m.Title, m.Description, m.ScheduledAt, m.DurationMinutes, m.Location, m.VirtualLink,
		m.Status, m.Notes, m.Agreements, m.StudentNotified, m.NotifiedAt, m.RemindedAt, m.UpdatedAt,
	)
	if err != nil {
		return mapMeetingErr("update", err)
	}
	return nil
}

// Delete elimina una reunión.
func (r *MeetingRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	return nil
}

// List lista reuniones con filtros.
func (r *MeetingRepo) List(ctx context.Context, f repository.MeetingFilter) ([]*entity.Meeting, int, error) {
	var w where
	w.addIf(f.InternshipID != "", "internship_id = $%d", f.InternshipID)
	w.addIf(f.AdvisorID != "", "advisor_id = $%d", f.AdvisorID)
	w.addIf(f.StudentID != "", "student_id = $%d", f.StudentID)
	w.addIf(f.Type != "", "type = $%d", f.Type)
	w.addIf(f.Status != "", "status = $%d", f.Status)
	if f.From != nil {
		w.add("scheduled_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("scheduled_at <= $%d", *f.To)
	}
	query := `SELECT ` + meetingColumns + `, COUNT(*) OVER() FROM meetings` + w.sql() +
		` ORDER BY scheduled_at` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Meeting
		total int
	)
	for rows.Next() {
		m, err := scanMeeting(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan meeting: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ListDueForReminder reuniones programadas o reprogramadas en [from, to] sin recordatorio.
func (r *MeetingRepo) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*entity.Meeting, error) {
	rows, err := r.db.Query(ctx, `SELECT `+meetingColumns+` FROM meetings
		WHERE status IN ('PROGRAMADA', 'REPROGRAMADA') AND reminded_at IS NULL
		AND scheduled_at BETWEEN $1 AND $2
		ORDER BY scheduled_at`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list due meetings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
