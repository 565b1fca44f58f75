package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var _ repository.DeliverableRepository = (*DeliverableRepo)(nil)

// DeliverableRepo entregables sobre PostgreSQL.
type DeliverableRepo struct {
	db Querier
}

// NewDeliverableRepository construye el repositorio de entregables.
func NewDeliverableRepository(db Querier) *DeliverableRepo {
	return &DeliverableRepo{db: db}
}

const deliverableColumns = `
	d.id, d.internship_id, d.student_id, d.title, d.description, d.file_path, d.due_date, d.submitted_at,
	d.evaluated_at, d.evaluated_by::text, d.grade, d.feedback, d.status, d.created_at, d.updated_at`

func scanDeliverable(row scanner, extra ...any) (*entity.Deliverable, error) {
	var d entity.Deliverable
	dest := []any{
		&d.ID, &d.InternshipID, &d.StudentID, &d.Title, &d.Description, &d.FilePath, &d.DueDate, &d.SubmittedAt,
		&d.EvaluatedAt, &d.EvaluatedBy, &d.Grade, &d.Feedback, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta un entregable.
func (r *DeliverableRepo) Create(ctx context.Context, d *entity.Deliverable) error {
	query := `
		INSERT INTO deliverables (id, internship_id, student_id, title, description, file_path, due_date,
			submitted_at, evaluated_at, evaluated_by, grade, feedback, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.InternshipID, d.StudentID, d.Title, d.Description, d.FilePath, d.DueDate,
		d.SubmittedAt, d.EvaluatedAt, d.EvaluatedBy, d.Grade, d.Feedback, d.Status, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deliverable: %w", err)
	}
	return nil
}

// GetByID obtiene un entregable.
func (r *DeliverableRepo) GetByID(ctx context.Context, id string) (*entity.Deliverable, error) {
	return r.getOne(ctx, `SELECT `+deliverableColumns+` FROM deliverables d WHERE d.id = $1`, id)
}

// GetForUpdate obtiene el entregable bloqueando la fila.
func (r *DeliverableRepo) GetForUpdate(ctx context.Context, id string) (*entity.Deliverable, error) {
	return r.getOne(ctx, `SELECT `+deliverableColumns+` FROM deliverables d WHERE d.id = $1 FOR UPDATE`, id)
}

func (r *DeliverableRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Deliverable, error) {
	d, err := scanDeliverable(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deliverable: %w", err)
	}
	return d, nil
}

// Update actualiza el entregable.
func (r *DeliverableRepo) Update(ctx context.Context, d *entity.Deliverable) error {
	query := `
		UPDATE deliverables SET title = $2, description = $3, file_path = $4, due_date = $5, submitted_at = $6,
			evaluated_at = $7, evaluated_by = $8, grade = $9, feedback = $10, status = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.Title, d.Description, d.FilePath, d.DueDate, d.SubmittedAt, d.EvaluatedAt, d.EvaluatedBy,
		d.Grade, d.Feedback, d.Status, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deliverable: %w", err)
	}
	return nil
}

// Delete elimina un entregable.
func (r *DeliverableRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM deliverables WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete deliverable: %w", err)
	}
	return nil
}

// List lista entregables. TutorID y AdvisorID filtran por la práctica.
func (r *DeliverableRepo) List(ctx context.Context, f repository.DeliverableFilter) ([]*entity.Deliverable, int, error) {
	var w where
	w.addIf(f.InternshipID != "", "d.internship_id = $%d", f.InternshipID)
	w.addIf(f.StudentID != "", "d.student_id = $%d", f.StudentID)
	w.addIf(f.TutorID != "", "i.tutor_id = $%d", f.TutorID)
	w.addIf(f.AdvisorID != "", "i.advisor_id = $%d", f.AdvisorID)
	w.addIf(f.Status != "", "d.status = $%d", f.Status)
	query := `SELECT ` + deliverableColumns + `, COUNT(*) OVER()
		FROM deliverables d JOIN internships i ON i.id = d.internship_id` + w.sql() +
		` ORDER BY d.due_date` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list deliverables: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Deliverable
		total int
	)
	for rows.Next() {
		d, err := scanDeliverable(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan deliverable: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// CountByInternship total de entregables y cuántos tienen calificación.
func (r *DeliverableRepo) CountByInternship(ctx context.Context, internshipID string) (int, int, error) {
	var total, evaluated int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(grade) FROM deliverables WHERE internship_id = $1`, internshipID).Scan(&total, &evaluated)
	if err != nil {
		return 0, 0, fmt.Errorf("count deliverables: %w", err)
	}
	return total, evaluated, nil
}
