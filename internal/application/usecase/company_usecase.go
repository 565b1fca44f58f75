package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	postings repository.PostingRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repos repository.Registry) *CompanyUseCase {
	return &CompanyUseCase{repo: repos.Companies, postings: repos.Postings}
}

// Create crea una nueva empresa. Devuelve un error de duplicado si el RFC ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, actor Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := actor.require(entity.CapManageCompanies, "Solo coordinación puede registrar empresas."); err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:           newID(),
		Name:         in.Name,
		TaxID:        in.TaxID,
		LegalName:    in.LegalName,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		Website:      in.Website,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Sector:       in.Sector,
		Size:         in.Size,
		Active:       true,
		CreatedBy:    actor.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByTaxID(ctx, company.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("Ya existe una empresa con ese RFC.")
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (uc *CompanyUseCase) get(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("Empresa no encontrada.")
	}
	return company, nil
}

// Update actualiza los datos de la empresa.
func (uc *CompanyUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := actor.require(entity.CapManageCompanies, "Solo coordinación puede modificar empresas."); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&c.Name, in.Name)
	setString(&c.LegalName, in.LegalName)
	setString(&c.Address, in.Address)
	setString(&c.Phone, in.Phone)
	setString(&c.Email, in.Email)
	setString(&c.Website, in.Website)
	setString(&c.ContactName, in.ContactName)
	setString(&c.ContactEmail, in.ContactEmail)
	setString(&c.ContactPhone, in.ContactPhone)
	setString(&c.Sector, in.Sector)
	setString(&c.Size, in.Size)
	if in.Active != nil {
		c.Active = *in.Active
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// Verify marca la empresa como verificada.
func (uc *CompanyUseCase) Verify(ctx context.Context, actor Actor, id string) (*dto.CompanyResponse, error) {
	if err := actor.require(entity.CapManageCompanies, "Solo coordinación puede verificar empresas."); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Verify(time.Now())
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// Delete elimina la empresa; falla si tiene vacantes registradas.
func (uc *CompanyUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.require(entity.CapManageCompanies, "Solo coordinación puede eliminar empresas."); err != nil {
		return err
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountPostings(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Conflict("No se puede eliminar una empresa con vacantes registradas.")
	}
	return uc.repo.Delete(ctx, id)
}

// List lista empresas con filtros y paginación.
func (uc *CompanyUseCase) List(ctx context.Context, in dto.CompanyFilterRequest) (*dto.CompanyListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.CompanyFilter{
		Active:   parseBool(in.Active),
		Verified: parseBool(in.Verified),
		Sector:   in.Sector,
		Search:   in.Search,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Page: page(in.Limit, in.Offset, total)}, nil
}

// Postings vacantes de la empresa. Estudiantes solo ven las abiertas.
func (uc *CompanyUseCase) Postings(ctx context.Context, actor Actor, id string, in dto.PageRequest) (*dto.PostingListResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	in.DefaultPage()
	f := repository.PostingFilter{CompanyID: id, Limit: in.Limit, Offset: in.Offset}
	if actor.Is(entity.RoleStudent) {
		f.Status = entity.PostingOpen
	}
	list, total, err := uc.postings.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toPostingList(list, in.Limit, in.Offset, total), nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		TaxID:        c.TaxID,
		LegalName:    c.LegalName,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		Website:      c.Website,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Sector:       c.Sector,
		Size:         c.Size,
		Active:       c.Active,
		Verified:     c.Verified,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
