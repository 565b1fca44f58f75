package usecase

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

const documentsFolder = "documentos"

// DocumentUseCase documentos de estudiantes (CV, convenios, constancias...).
type DocumentUseCase struct {
	repos   repository.Registry
	storage ports.FileStorage
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repos repository.Registry, storage ports.FileStorage) *DocumentUseCase {
	return &DocumentUseCase{repos: repos, storage: storage}
}

// Upload guarda el archivo y registra el documento. Sin owner_id el dueño es
// el propio estudiante.
func (uc *DocumentUseCase) Upload(ctx context.Context, actor Actor, in dto.UploadDocumentRequest, filename string, r io.Reader) (*dto.DocumentResponse, error) {
	if err := actor.require(entity.CapUploadDocuments, "Tu rol no puede subir documentos."); err != nil {
		return nil, err
	}
	owner := in.OwnerID
	if owner == "" {
		owner = actor.UserID
	}
	now := time.Now()
	d := &entity.Document{
		ID:         newID(),
		OwnerID:    owner,
		Type:       in.Type,
		Name:       filename,
		UploadedBy: actor.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.checkOwner(ctx, actor, d, in.InternshipID); err != nil {
		return nil, err
	}
	stored, err := uc.storage.Save(ctx, documentsFolder, filename, r)
	if err != nil {
		return nil, err
	}
	d.FilePath, d.Hash, d.Size = stored.Path, stored.Hash, stored.Size
	if err := d.Validate(); err != nil {
		_ = uc.storage.Delete(ctx, stored.Path)
		return nil, err
	}
	if err := uc.repos.Documents.Create(ctx, d); err != nil {
		_ = uc.storage.Delete(ctx, stored.Path)
		return nil, err
	}
	return toDocumentResponse(d), nil
}

// checkOwner el dueño debe ser estudiante; si hay práctica, debe ser la suya y
// visible para el actor. Solo coordinación sube documentos sin práctica ajenos.
func (uc *DocumentUseCase) checkOwner(ctx context.Context, actor Actor, d *entity.Document, internshipID string) error {
	if d.OwnerID != actor.UserID && !actor.Is(entity.RoleCoordinator) && internshipID == "" {
		return domain.ValidationField("internship_id", "Indica la práctica del estudiante.")
	}
	owner, err := uc.repos.Users.GetByID(ctx, d.OwnerID)
	if err != nil {
		return err
	}
	if owner == nil || owner.Role != entity.RoleStudent {
		return domain.ValidationField("owner_id", "El dueño del documento debe ser un estudiante.")
	}
	if internshipID == "" {
		return nil
	}
	p, err := loadInternship(ctx, uc.repos.Internships, actor, internshipID)
	if err != nil {
		return err
	}
	if p.StudentID != d.OwnerID {
		return domain.ValidationField("internship_id", "La práctica no pertenece al estudiante.")
	}
	d.InternshipID = &p.ID
	return nil
}

func (uc *DocumentUseCase) load(ctx context.Context, actor Actor, id string) (*entity.Document, error) {
	d, err := uc.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NotFound("Documento no encontrado.")
	}
	if actor.Is(entity.RoleCoordinator) || d.OwnerID == actor.UserID || d.UploadedBy == actor.UserID {
		return d, nil
	}
	if d.InternshipID != nil {
		if _, err := loadInternship(ctx, uc.repos.Internships, actor, *d.InternshipID); err == nil {
			return d, nil
		}
	}
	return nil, domain.NotFound("Documento no encontrado.")
}

// GetByID obtiene un documento visible.
func (uc *DocumentUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.DocumentResponse, error) {
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(d), nil
}

// List estudiante ve los suyos; docente y tutor por práctica; coordinación todo.
func (uc *DocumentUseCase) List(ctx context.Context, actor Actor, in dto.DocumentFilterRequest) (*dto.DocumentListResponse, error) {
	in.DefaultPage()
	f := repository.DocumentFilter{
		OwnerID:      in.OwnerID,
		InternshipID: in.InternshipID,
		Type:         in.Type,
		Valid:        parseBool(in.Valid),
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
	switch actor.Role {
	case entity.RoleCoordinator:
	case entity.RoleStudent:
		f.OwnerID = actor.UserID
	default:
		if in.InternshipID == "" {
			return nil, domain.ValidationField("internship_id", "Indica la práctica.")
		}
		if _, err := loadInternship(ctx, uc.repos.Internships, actor, in.InternshipID); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.repos.Documents.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d))
	}
	return &dto.DocumentListResponse{Items: items, Page: page(in.Limit, in.Offset, total)}, nil
}

// Delete borra el registro y luego el archivo.
func (uc *DocumentUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if !actor.Is(entity.RoleCoordinator) && d.UploadedBy != actor.UserID {
		return domain.Forbidden("Solo quien subió el documento puede eliminarlo.")
	}
	if err := uc.repos.Documents.Delete(ctx, id); err != nil {
		return err
	}
	_ = uc.storage.Delete(ctx, d.FilePath)
	return nil
}

// SetValid coordinación marca el documento como válido o inválido.
func (uc *DocumentUseCase) SetValid(ctx context.Context, actor Actor, id string, valid bool) (*dto.DocumentResponse, error) {
	if err := actor.require(entity.CapValidateDocuments, "Solo coordinación puede validar documentos."); err != nil {
		return nil, err
	}
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	d.Valid = valid
	d.UpdatedAt = time.Now()
	if err := uc.repos.Documents.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDocumentResponse(d), nil
}

// OpenFile abre el archivo del documento. El llamador cierra el lector.
func (uc *DocumentUseCase) OpenFile(ctx context.Context, actor Actor, id string) (io.ReadCloser, string, error) {
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	rc, err := uc.storage.Open(ctx, d.FilePath)
	if err != nil {
		return nil, "", err
	}
	return rc, d.Name, nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:           d.ID,
		OwnerID:      d.OwnerID,
		InternshipID: d.InternshipID,
		Type:         d.Type,
		Name:         d.Name,
		Hash:         d.Hash,
		Size:         d.Size,
		Valid:        d.Valid,
		UploadedBy:   d.UploadedBy,
		CreatedAt:    d.CreatedAt,
	}
}

// ObservationUseCase notas del docente asesor o coordinación sobre una práctica.
type ObservationUseCase struct {
	observations repository.ObservationRepository
	internships  repository.InternshipRepository
}

// NewObservationUseCase construye el caso de uso.
func NewObservationUseCase(repos repository.Registry) *ObservationUseCase {
	return &ObservationUseCase{observations: repos.Observations, internships: repos.Internships}
}

// Create registra una observación.
func (uc *ObservationUseCase) Create(ctx context.Context, actor Actor, in dto.CreateObservationRequest) (*dto.ObservationResponse, error) {
	if err := actor.require(entity.CapWriteObservations, "Solo el docente asesor o coordinación pueden registrar observaciones."); err != nil {
		return nil, err
	}
	p, err := loadInternship(ctx, uc.internships, actor, in.InternshipID)
	if err != nil {
		return nil, err
	}
	o := &entity.Observation{
		ID:           newID(),
		InternshipID: p.ID,
		AuthorID:     actor.UserID,
		Text:         in.Text,
		CreatedAt:    time.Now(),
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := uc.observations.Create(ctx, o); err != nil {
		return nil, err
	}
	return toObservationResponse(o), nil
}

// ListByInternship observaciones de una práctica visible.
func (uc *ObservationUseCase) ListByInternship(ctx context.Context, actor Actor, internshipID string) ([]dto.ObservationResponse, error) {
	if _, err := loadInternship(ctx, uc.internships, actor, internshipID); err != nil {
		return nil, err
	}
	list, err := uc.observations.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ObservationResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toObservationResponse(o))
	}
	return out, nil
}

// Delete solo el autor o coordinación.
func (uc *ObservationUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	o, err := uc.observations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.NotFound("Observación no encontrada.")
	}
	if o.AuthorID != actor.UserID && !actor.Is(entity.RoleCoordinator) {
		return domain.Forbidden("Solo el autor puede eliminar la observación.")
	}
	return uc.observations.Delete(ctx, id)
}

func toObservationResponse(o *entity.Observation) *dto.ObservationResponse {
	return &dto.ObservationResponse{
		ID:           o.ID,
		InternshipID: o.InternshipID,
		AuthorID:     o.AuthorID,
		Text:         o.Text,
		CreatedAt:    o.CreatedAt,
	}
}
