package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// ApplicationHandler maneja postulaciones a vacantes.
type ApplicationHandler struct {
	uc *usecase.ApplicationUseCase
}

// NewApplicationHandler construye el handler.
func NewApplicationHandler(uc *usecase.ApplicationUseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Create godoc
// @Summary      Postularse a una vacante
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateApplicationRequest  true  "Vacante y motivación"
// @Success      201   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApplicationRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar postulaciones
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        posting_id  query  string  false  "Vacante"
// @Param        status      query  string  false  "PENDIENTE, SELECCIONADO, RECHAZADO"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ApplicationListResponse
// @Router       /api/applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	var in dto.ApplicationFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener postulación
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la postulación"
// @Success      200  {object}  dto.ApplicationResponse
// @Router       /api/applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Retirar postulación pendiente
// @Tags         applications
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la postulación"
// @Success      204
// @Router       /api/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.uc.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// Select godoc
// @Summary      Seleccionar postulación
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la postulación"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/select [post]
func (h *ApplicationHandler) Select(c *fiber.Ctx) error {
	out, err := h.uc.Select(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Reject godoc
// @Summary      Rechazar postulación
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la postulación"
// @Success      200  {object}  dto.ApplicationResponse
// @Router       /api/applications/{id}/reject [post]
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}
