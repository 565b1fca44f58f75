package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

var (
	_ repository.DocumentRepository    = (*DocumentRepo)(nil)
	_ repository.ObservationRepository = (*ObservationRepo)(nil)
)

// DocumentRepo documentos sobre PostgreSQL.
type DocumentRepo struct {
	db Querier
}

// NewDocumentRepository construye el repositorio de documentos.
func NewDocumentRepository(db Querier) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = `
	id, owner_id, internship_id::text, type, name, file_path, hash, size, valid,
	COALESCE(uploaded_by::text, ''), created_at, updated_at`

func scanDocument(row scanner, extra ...any) (*entity.Document, error) {
	var d entity.Document
	dest := []any{
		&d.ID, &d.OwnerID, &d.InternshipID, &d.Type, &d.Name, &d.FilePath, &d.Hash, &d.Size, &d.Valid,
		&d.UploadedBy, &d.CreatedAt, &d.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta un documento.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (id, owner_id, internship_id, type, name, file_path, hash, size, valid, uploaded_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.OwnerID, d.InternshipID, d.Type, d.Name, d.FilePath, d.Hash, d.Size, d.Valid, nullable(d.UploadedBy),
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// Update actualiza tipo, práctica y validez.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	_, err := r.db.Exec(ctx, `
		UPDATE documents SET internship_id = $2, type = $3, name = $4, valid = $5, updated_at = $6 WHERE id = $1`,
		d.ID, d.InternshipID, d.Type, d.Name, d.Valid, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete elimina el registro del documento.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// List lista documentos con filtros.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	var w where
	w.addIf(f.OwnerID != "", "owner_id = $%d", f.OwnerID)
	w.addIf(f.InternshipID != "", "internship_id = $%d", f.InternshipID)
	w.addIf(f.Type != "", "type = $%d", f.Type)
	if f.Valid != nil {
		w.add("valid = $%d", *f.Valid)
	}
	query := `SELECT ` + documentColumns + `, COUNT(*) OVER() FROM documents` + w.sql() +
		` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Document
		total int
	)
	for rows.Next() {
		d, err := scanDocument(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// ObservationRepo observaciones sobre PostgreSQL.
type ObservationRepo struct {
	db Querier
}

// NewObservationRepository construye el repositorio de observaciones.
func NewObservationRepository(db Querier) *ObservationRepo {
	return &ObservationRepo{db: db}
}

// Create inserta una observación.
func (r *ObservationRepo) Create(ctx context.Context, o *entity.Observation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO observations (id, internship_id, author_id, text, created_at) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.InternshipID, o.AuthorID, o.Text, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// GetByID obtiene una observación.
func (r *ObservationRepo) GetByID(ctx context.Context, id string) (*entity.Observation, error) {
	var o entity.Observation
	err := r.db.QueryRow(ctx, `
		SELECT id, internship_id, author_id, text, created_at FROM observations WHERE id = $1`, id).
		Scan(&o.ID, &o.InternshipID, &o.AuthorID, &o.Text, &o.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get observation: %w", err)
	}
	return &o, nil
}

// Delete elimina una observación.
func (r *ObservationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM observations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete observation: %w", err)
	}
	return nil
}

// ListByInternship observaciones de una práctica, más recientes primero.
func (r *ObservationRepo) ListByInternship(ctx context.Context, internshipID string) ([]*entity.Observation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, internship_id, author_id, text, created_at FROM observations
		WHERE internship_id = $1 ORDER BY created_at DESC`, internshipID)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Observation
	for rows.Next() {
		var o entity.Observation
		if err := rows.Scan(&o.ID, &o.InternshipID, &o.AuthorID, &o.Text, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
