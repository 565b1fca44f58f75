package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Cada rol guarda su perfil en su propia tabla; solo existe la del rol actual.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

const (
	userColumns = `
		u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone, u.role, u.active,
		u.created_at, u.updated_at,
		sp.enrollment_id, sp.major, sp.semester, sp.gpa,
		ap.department, ap.specialty,
		tp.company_id::text, tp.position`
	userFrom = `
		FROM users u
		LEFT JOIN student_profiles sp ON sp.user_id = u.id
		LEFT JOIN advisor_profiles ap ON ap.user_id = u.id
		LEFT JOIN tutor_profiles tp ON tp.user_id = u.id`
	userSelect = `SELECT ` + userColumns + userFrom
)

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner, extra ...any) (*entity.User, error) {
	var (
		u                     entity.User
		enrollment, major     *string
		semester              *int
		gpa                   decimal.NullDecimal
		department, specialty *string
		companyID, position   *string
	)
	dest := []any{
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
		&enrollment, &major, &semester, &gpa,
		&department, &specialty,
		&companyID, &position,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	switch u.Role {
	case entity.RoleStudent:
		p := &entity.StudentProfile{Semester: 1}
		if enrollment != nil {
			p.EnrollmentID = *enrollment
			p.Major = deref(major)
			if semester != nil {
				p.Semester = *semester
			}
			if gpa.Valid {
				p.GPA = gpa.Decimal
			}
		}
		u.Profile = p
	case entity.RoleAdvisor:
		u.Profile = &entity.AdvisorProfile{Department: deref(department), Specialty: deref(specialty)}
	case entity.RoleTutor:
		u.Profile = &entity.TutorProfile{CompanyID: deref(companyID), Position: deref(position)}
	default:
		u.Profile = entity.NewProfile(u.Role)
	}
	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste un nuevo usuario con su perfil.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.Role, user.Active,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return r.saveProfile(ctx, user)
}

// saveProfile guarda el perfil del rol y borra los de otros roles.
func (r *UserRepo) saveProfile(ctx context.Context, u *entity.User) error {
	var keep string
	var err error
	switch p := u.Profile.(type) {
	case *entity.StudentProfile:
		keep = "student_profiles"
		_, err = r.db.Exec(ctx, `
			INSERT INTO student_profiles (user_id, enrollment_id, major, semester, gpa)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id) DO UPDATE SET enrollment_id = EXCLUDED.enrollment_id,
				major = EXCLUDED.major, semester = EXCLUDED.semester, gpa = EXCLUDED.gpa`,
			u.ID, p.EnrollmentID, p.Major, p.Semester, p.GPA)
		if err != nil && isUniqueViolation(err) {
			return domain.Duplicate("La matrícula ya está registrada.")
		}
	case *entity.AdvisorProfile:
		keep = "advisor_profiles"
		_, err = r.db.Exec(ctx, `
			INSERT INTO advisor_profiles (user_id, department, specialty) VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE SET department = EXCLUDED.department, specialty = EXCLUDED.specialty`,
			u.ID, p.Department, p.Specialty)
	case *entity.TutorProfile:
		keep = "tutor_profiles"
		_, err = r.db.Exec(ctx, `
			INSERT INTO tutor_profiles (user_id, company_id, position) VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE SET company_id = EXCLUDED.company_id, position = EXCLUDED.position`,
			u.ID, nullable(p.CompanyID), p.Position)
		if err != nil && isForeignKeyViolation(err) {
			return domain.ValidationField("company_id", "La empresa no existe.")
		}
	}
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	for _, table := range []string{"student_profiles", "advisor_profiles", "tutor_profiles"} {
		if table == keep {
			continue
		}
		if _, err := r.db.Exec(ctx, "DELETE FROM "+table+" WHERE user_id = $1", u.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE u.id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE lower(u.email) = lower($1) LIMIT 1`, email)
}

// GetForUpdate bloquea la fila users del usuario.
func (r *UserRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE u.id = $1 FOR UPDATE OF u`, id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario y su perfil.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, first_name = $4, last_name = $5, phone = $6,
			role = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		user.Role, user.Active, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return r.saveProfile(ctx, user)
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// List lista usuarios con filtros y paginación. Devuelve también el total.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	var w where
	w.addIf(f.Role != "", "u.role = $%d", f.Role)
	if f.Active != nil {
		w.add("u.active = $%d", *f.Active)
	}
	w.addIf(f.Major != "", "sp.major ILIKE $%d", like(f.Major))
	if f.Search != "" {
		w.add("(u.first_name || ' ' || u.last_name ILIKE $%[1]d OR u.email ILIKE $%[1]d OR sp.enrollment_id ILIKE $%[1]d)", like(f.Search))
	}
	query := `SELECT ` + userColumns + `, COUNT(*) OVER()` + userFrom + w.sql() +
		` ORDER BY u.last_name, u.first_name` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.User
		total int
	)
	for rows.Next() {
		u, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// ListByIDs usuarios por lista de IDs.
func (r *UserRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, userSelect+` WHERE u.id::text = ANY($1::text[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("list users by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// CountActiveByRoles cuenta usuarios activos de los roles dados.
func (r *UserRepo) CountActiveByRoles(ctx context.Context, roles []entity.Role) (int, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE active AND role = ANY($1::text[])`, names).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
