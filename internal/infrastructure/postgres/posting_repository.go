package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var _ repository.PostingRepository = (*PostingRepo)(nil)

// PostingRepo vacantes sobre PostgreSQL.
type PostingRepo struct {
	db Querier
}

// NewPostingRepository construye el repositorio de vacantes.
func NewPostingRepository(db Querier) *PostingRepo {
	return &PostingRepo{db: db}
}

const postingColumns = `
	id, company_id, title, description, requirements, eligible_majors, min_semester, min_gpa, area,
	modality, location, schedule, duration_months, slots_available, slots_filled, start_date,
	application_deadline, paid, stipend_amount, benefits, status, closed_by_capacity,
	COALESCE(created_by::text, ''), created_at, updated_at`

func scanPosting(row scanner, extra ...any) (*entity.Posting, error) {
	var p entity.Posting
	dest := []any{
		&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Requirements, &p.EligibleMajors, &p.MinSemester,
		&p.MinGPA, &p.Area, &p.Modality, &p.Location, &p.Schedule, &p.DurationMonths, &p.SlotsAvailable,
		&p.SlotsFilled, &p.StartDate, &p.ApplicationDeadline, &p.Paid, &p.StipendAmount, &p.Benefits,
		&p.Status, &p.ClosedByCapacity, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta una vacante.
func (r *PostingRepo) Create(ctx context.Context, p *entity.Posting) error {
	query := `
		INSERT INTO postings (id, company_id, title, description, requirements, eligible_majors, min_semester,
			min_gpa, area, modality, location, schedule, duration_months, slots_available, slots_filled,
			start_date, application_deadline, paid, stipend_amount, benefits, status, closed_by_capacity,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.CompanyID, p.Title, p.Description, p.Requirements, p.EligibleMajors, p.MinSemester,
		p.MinGPA, p.Area, p.Modality, p.Location, p.Schedule, p.DurationMonths, p.SlotsAvailable, p.SlotsFilled,
		p.StartDate, p.ApplicationDeadline, p.Paid, p.StipendAmount, p.Benefits, p.Status, p.ClosedByCapacity,
		nullable(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ValidationField("company_id", "La empresa no existe.")
		}
		return fmt.Errorf("insert posting: %w", err)
	}
	return nil
}

// GetByID obtiene una vacante.
func (r *PostingRepo) GetByID(ctx context.Context, id string) (*entity.Posting, error) {
	return r.getOne(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1`, id)
}

// GetForUpdate obtiene la vacante bloqueando la fila.
func (r *PostingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Posting, error) {
	return r.getOne(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostingRepo) getOne(ctx context.Context, query, id string) (*entity.Posting, error) {
	p, err := scanPosting(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get posting: %w", err)
	}
	return p, nil
}

// Update actualiza la vacante completa, incluidos los cupos.
func (r *PostingRepo) Update(ctx context.Context, p *entity.Posting) error {
	query := `
		UPDATE postings SET title = $2, description = $3, requirements = $4, eligible_majors = $5,
			min_semester = $6, min_gpa = $7, area = $8, modality = $9, location = $10, schedule = $11,
			duration_months = $12, slots_available = $13, slots_filled = $14, start_date = $15,
			application_deadline = $16, paid = $17, stipend_amount = $18, benefits = $19, status = $20,
			closed_by_capacity = $21, updated_at = $22
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Requirements, p.EligibleMajors, p.MinSemester, p.MinGPA, p.Area,
		p.Modality, p.Location, p.Schedule, p.DurationMonths, p.SlotsAvailable, p.SlotsFilled, p.StartDate,
		p.ApplicationDeadline, p.Paid, p.StipendAmount, p.Benefits, p.Status, p.ClosedByCapacity, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update posting: %w", err)
	}
	return nil
}

// Delete elimina la vacante y sus postulaciones.
func (r *PostingRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM postings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete posting: %w", err)
	}
	return nil
}

// List lista vacantes con filtros.
func (r *PostingRepo) List(ctx context.Context, f repository.PostingFilter) ([]*entity.Posting, int, error) {
	var w where
	w.addIf(f.CompanyID != "", "company_id = $%d", f.CompanyID)
	w.addIf(f.Status != "", "status = $%d", f.Status)
	w.addIf(f.Modality != "", "modality = $%d", f.Modality)
	w.addIf(f.Area != "", "area ILIKE $%d", like(f.Area))
	w.addIf(f.Search != "", "(title ILIKE $%[1]d OR description ILIKE $%[1]d OR requirements ILIKE $%[1]d)", like(f.Search))
	if f.AvailableOnly {
		w.conds = append(w.conds, "status = 'ABIERTA' AND slots_filled < slots_available")
	}
	query := `SELECT ` + postingColumns + `, COUNT(*) OVER() FROM postings` + w.sql() +
		` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Posting
		total int
	)
	for rows.Next() {
		p, err := scanPosting(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan posting: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}
