package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `
	id, name, tax_id, legal_name, address, phone, email, website, contact_name, contact_email,
	contact_phone, sector, size, active, verified, COALESCE(created_by::text, ''), created_at, updated_at`

func scanCompany(row scanner, extra ...any) (*entity.Company, error) {
	var c entity.Company
	dest := []any{
		&c.ID, &c.Name, &c.TaxID, &c.LegalName, &c.Address, &c.Phone, &c.Email, &c.Website,
		&c.ContactName, &c.ContactEmail, &c.ContactPhone, &c.Sector, &c.Size, &c.Active, &c.Verified,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, tax_id, legal_name, address, phone, email, website, contact_name,
			contact_email, contact_phone, sector, size, active, verified, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.TaxID, c.LegalName, c.Address, c.Phone, c.Email, c.Website, c.ContactName,
		c.ContactEmail, c.ContactPhone, c.Sector, c.Size, c.Active, c.Verified, nullable(c.CreatedBy),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("Ya existe una empresa con ese RFC.")
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByTaxID obtiene una empresa por RFC.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE tax_id = upper($1)`, taxID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by tax id: %w", err)
	}
	return c, nil
}

// Update actualiza los datos de una empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, tax_id = $3, legal_name = $4, address = $5, phone = $6, email = $7,
			website = $8, contact_name = $9, contact_email = $10, contact_phone = $11, sector = $12, size = $13,
			active = $14, verified = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.TaxID, c.LegalName, c.Address, c.Phone, c.Email, c.Website, c.ContactName,
		c.ContactEmail, c.ContactPhone, c.Sector, c.Size, c.Active, c.Verified, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("Ya existe una empresa con ese RFC.")
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List lista empresas con filtros.
func (r *CompanyRepo) List(ctx context.Context, f repository.CompanyFilter) ([]*entity.Company, int, error) {
	var w where
	if f.Active != nil {
		w.add("active = $%d", *f.Active)
	}
	if f.Verified != nil {
		w.add("verified = $%d", *f.Verified)
	}
	w.addIf(f.Sector != "", "sector ILIKE $%d", like(f.Sector))
	w.addIf(f.Search != "", "(name ILIKE $%[1]d OR legal_name ILIKE $%[1]d OR tax_id ILIKE $%[1]d)", like(f.Search))
	query := `SELECT ` + companyColumns + `, COUNT(*) OVER() FROM companies` + w.sql() +
		` ORDER BY name` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Company
		total int
	)
	for rows.Next() {
		c, err := scanCompany(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Delete elimina una empresa. Falla si tiene vacantes (RESTRICT).
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("No se puede eliminar una empresa con vacantes registradas.")
		}
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// CountPostings cuenta las vacantes de la empresa.
func (r *CompanyRepo) CountPostings(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM postings WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count postings: %w", err)
	}
	return n, nil
}
