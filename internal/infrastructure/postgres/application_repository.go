package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo postulaciones sobre PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepository construye el repositorio de postulaciones.
func NewApplicationRepository(db Querier) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `
	a.id, a.student_id, a.posting_id, a.status, a.motivation, a.selected_at, a.selected_by::text,
	a.created_at, a.updated_at`

func scanApplication(row scanner, extra ...any) (*entity.Application, error) {
	var a entity.Application
	dest := []any{
		&a.ID, &a.StudentID, &a.PostingID, &a.Status, &a.Motivation, &a.SelectedAt, &a.SelectedBy,
		&a.CreatedAt, &a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta una postulación. Una por (estudiante, vacante).
func (r *ApplicationRepo) Create(ctx context.Context, a *entity.Application) error {
	query := `
		INSERT INTO applications (id, student_id, posting_id, status, motivation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query, a.ID, a.StudentID, a.PostingID, a.Status, a.Motivation, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("Ya te postulaste a esta vacante.")
		}
		if isForeignKeyViolation(err) {
			return domain.ValidationField("posting_id", "La vacante no existe.")
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetByID obtiene una postulación.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

// Update actualiza estado y selección.
func (r *ApplicationRepo) Update(ctx context.Context, a *entity.Application) error {
	query := `
		UPDATE applications SET status = $2, motivation = $3, selected_at = $4, selected_by = $5, updated_at = $6
		WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, a.ID, a.Status, a.Motivation, a.SelectedAt, a.SelectedBy, a.UpdatedAt); err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

// Delete elimina una postulación.
func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

// List lista postulaciones. CompanyID filtra por la empresa de la vacante.
func (r *ApplicationRepo) List(ctx context.Context, f repository.ApplicationFilter) ([]*entity.Application, int, error) {
	var w where
	w.addIf(f.StudentID != "", "a.student_id = $%d", f.StudentID)
	w.addIf(f.PostingID != "", "a.posting_id = $%d", f.PostingID)
	w.addIf(f.CompanyID != "", "p.company_id = $%d", f.CompanyID)
	w.addIf(f.Status != "", "a.status = $%d", f.Status)
	query := `SELECT ` + applicationColumns + `, COUNT(*) OVER()
		FROM applications a JOIN postings p ON p.id = a.posting_id` + w.sql() +
		` ORDER BY a.created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Application
		total int
	)
	for rows.Next() {
		a, err := scanApplication(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan application: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// Exists indica si el estudiante ya se postuló a la vacante.
func (r *ApplicationRepo) Exists(ctx context.Context, studentID, postingID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE student_id = $1 AND posting_id = $2)`,
		studentID, postingID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("application exists: %w", err)
	}
	return ok, nil
}
