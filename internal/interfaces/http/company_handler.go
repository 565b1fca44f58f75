package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	return ok(c, out, err)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        active    query  string  false  "true/false"
// @Param        verified  query  string  false  "true/false"
// @Param        sector    query  string  false  "Sector"
// @Param        search    query  string  false  "Nombre o RFC"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var in dto.CompanyFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	return ok(c, out, err)
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CompanyResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Verify godoc
// @Summary      Marcar empresa como verificada
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Router       /api/companies/{id}/verify [post]
func (h *CompanyHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Eliminar empresa sin vacantes
// @Tags         companies
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.uc.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// Postings godoc
// @Summary      Vacantes de la empresa
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   string  true   "ID de la empresa"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PostingListResponse
// @Router       /api/companies/{id}/postings [get]
func (h *CompanyHandler) Postings(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Postings(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}
