package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var _ repository.InternshipRepository = (*InternshipRepo)(nil)

// InternshipRepo prácticas sobre PostgreSQL.
type InternshipRepo struct {
	db Querier
}

// NewInternshipRepository construye el repositorio de prácticas.
func NewInternshipRepository(db Querier) *InternshipRepo {
	return &InternshipRepo{db: db}
}

const internshipColumns = `
	id, student_id, advisor_id::text, tutor_id::text, company_id::text, posting_id::text, area, project,
	start_date, end_date, assigned_at, assigned_by::text, status, closed, closed_by::text, final_grade,
	defense_date, defense_place, defense_notes, created_at, updated_at`

func scanInternship(row scanner, extra ...any) (*entity.Internship, error) {
	var p entity.Internship
	dest := []any{
		&p.ID, &p.StudentID, &p.AdvisorID, &p.TutorID, &p.CompanyID, &p.PostingID, &p.Area, &p.Project,
		&p.StartDate, &p.EndDate, &p.AssignedAt, &p.AssignedBy, &p.Status, &p.Closed, &p.ClosedBy, &p.FinalGrade,
		&p.DefenseDate, &p.DefensePlace, &p.DefenseNotes, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// mapInternshipErr traduce la violación del índice de práctica activa única.
func mapInternshipErr(op string, err error) error {
	if isUniqueViolation(err) && constraintName(err) == "uq_internships_active_student" {
		return domain.Conflict("El estudiante ya tiene una práctica activa.")
	}
	if isForeignKeyViolation(err) {
		return domain.Validation("La práctica hace referencia a un registro inexistente.")
	}
	return fmt.Errorf("%s internship: %w", op, err)
}

// Create inserta una práctica.
func (r *InternshipRepo) Create(ctx context.Context, p *entity.Internship) error {
	query := `
		INSERT INTO internships (id, student_id, advisor_id, tutor_id, company_id, posting_id, area, project,
			start_date, end_date, assigned_at, assigned_by, status, closed, closed_by, final_grade, defense_date,
			defense_place, defense_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.StudentID, p.AdvisorID, p.TutorID, p.CompanyID, p.PostingID, p.Area, p.Project,
		p.StartDate, p.EndDate, p.AssignedAt, p.AssignedBy, p.Status, p.Closed, p.ClosedBy, p.FinalGrade,
		p.DefenseDate, p.DefensePlace, p.DefenseNotes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapInternshipErr("insert", err)
	}
	return nil
}

// GetByID obtiene una práctica.
func (r *InternshipRepo) GetByID(ctx context.Context, id string) (*entity.Internship, error) {
	return r.getOne(ctx, `SELECT `+internshipColumns+` FROM internships WHERE id = $1`, id)
}

// GetForUpdate obtiene la práctica bloqueando la fila.
func (r *InternshipRepo) GetForUpdate(ctx context.Context, id string) (*entity.Internship, error) {
	return r.getOne(ctx, `SELECT `+internshipColumns+` FROM internships WHERE id = $1 FOR UPDATE`, id)
}

func (r *InternshipRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Internship, error) {
	p, err := scanInternship(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get internship: %w", err)
	}
	return p, nil
}

// Update actualiza la práctica.
func (r *InternshipRepo) Update(ctx context.Context, p *entity.Internship) error {
	query := `
		UPDATE internships SET advisor_id = $2, tutor_id = $3, company_id = $4, posting_id = $5, area = $6,
			project = $7, start_date = $8, end_date = $9, assigned_at = $10, assigned_by = $11, status = $12,
			closed = $13, closed_by = $14, final_grade = $15, defense_date = $16, defense_place = $17,
			defense_notes = $18, updated_at = $19
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.AdvisorID, p.TutorID, p.CompanyID, p.PostingID, p.Area, p.Project, p.StartDate, p.EndDate,
		p.AssignedAt, p.AssignedBy, p.Status, p.Closed, p.ClosedBy, p.FinalGrade, p.DefenseDate,
		p.DefensePlace, p.DefenseNotes, p.UpdatedAt,
	)
	if err != nil {
		return mapInternshipErr("update", err)
	}
	return nil
}

// Delete elimina la práctica con sus entregables, reuniones y observaciones.
func (r *InternshipRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM internships WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete internship: %w", err)
	}
	return nil
}

// List lista prácticas con filtros.
func (r *InternshipRepo) List(ctx context.Context, f repository.InternshipFilter) ([]*entity.Internship, int, error) {
	var w where
	w.addIf(f.StudentID != "", "student_id = $%d", f.StudentID)
	w.addIf(f.AdvisorID != "", "advisor_id = $%d", f.AdvisorID)
	w.addIf(f.TutorID != "", "tutor_id = $%d", f.TutorID)
	w.addIf(f.CompanyID != "", "company_id = $%d", f.CompanyID)
	w.addIf(f.Status != "", "status = $%d", f.Status)
	query := `SELECT ` + internshipColumns + `, COUNT(*) OVER() FROM internships` + w.sql() +
		` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list internships: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Internship
		total int
	)
	for rows.Next() {
		p, err := scanInternship(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan internship: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// CountActiveByAdvisor prácticas ASIGNADA o EN_CURSO del docente, sin contar excludeID.
func (r *InternshipRepo) CountActiveByAdvisor(ctx context.Context, advisorID, excludeID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM internships
		WHERE advisor_id = $1 AND status IN ('ASIGNADA', 'EN_CURSO') AND id::text <> $2`,
		advisorID, excludeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count advisor internships: %w", err)
	}
	return n, nil
}

// GetActiveByStudent práctica activa del estudiante distinta de excludeID.
func (r *InternshipRepo) GetActiveByStudent(ctx context.Context, studentID, excludeID string) (*entity.Internship, error) {
	return r.getOne(ctx, `SELECT `+internshipColumns+` FROM internships
		WHERE student_id = $1 AND status IN ('ASIGNADA', 'EN_CURSO') AND id::text <> $2 LIMIT 1`,
		studentID, excludeID)
}
