package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// PostingHandler maneja vacantes de práctica.
type PostingHandler struct {
	uc *usecase.PostingUseCase
}

// NewPostingHandler construye el handler.
func NewPostingHandler(uc *usecase.PostingUseCase) *PostingHandler {
	return &PostingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear vacante
// @Tags         postings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePostingRequest  true  "Datos de la vacante"
// @Success      201   {object}  dto.PostingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/postings [post]
func (h *PostingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePostingRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar vacantes
// @Description  Los estudiantes solo ven vacantes abiertas; los tutores las de su empresa.
// @Tags         postings
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  query  string  false  "Empresa"
// @Param        status      query  string  false  "ABIERTA, CERRADA, PAUSADA, CANCELADA"
// @Param        modality    query  string  false  "Modalidad"
// @Param        area        query  string  false  "Área"
// @Param        search      query  string  false  "Texto libre"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PostingListResponse
// @Router       /api/postings [get]
func (h *PostingHandler) List(c *fiber.Ctx) error {
	var in dto.PostingFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// Available godoc
// @Summary      Vacantes con lugares disponibles
// @Tags         postings
// @Produce      json
// @Security     BearerAuth
// @Param        area    query  string  false  "Área"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PostingListResponse
// @Router       /api/postings/available [get]
func (h *PostingHandler) Available(c *fiber.Ctx) error {
	var in dto.PostingFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Available(c.UserContext(), in)
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener vacante
// @Tags         postings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.PostingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/postings/{id} [get]
func (h *PostingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Update godoc
// @Summary      Actualizar vacante
// @Tags         postings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la vacante"
// @Param        body  body  dto.UpdatePostingRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PostingResponse
// @Router       /api/postings/{id} [put]
func (h *PostingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePostingRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Eliminar vacante sin postulaciones
// @Tags         postings
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      204
// @Router       /api/postings/{id} [delete]
func (h *PostingHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.uc.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// CheckEligibility godoc
// @Summary      Verificar elegibilidad del estudiante
// @Tags         postings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.EligibilityResponse
// @Router       /api/postings/{id}/check-eligibility [post]
func (h *PostingHandler) CheckEligibility(c *fiber.Ctx) error {
	out, err := h.uc.CheckEligibility(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Close godoc
// @Summary      Cerrar vacante
// @Tags         postings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.PostingResponse
// @Router       /api/postings/{id}/close [post]
func (h *PostingHandler) Close(c *fiber.Ctx) error {
	out, err := h.uc.Close(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Reopen godoc
// @Summary      Reabrir vacante
// @Tags         postings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.PostingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/postings/{id}/reopen [post]
func (h *PostingHandler) Reopen(c *fiber.Ctx) error {
	out, err := h.uc.Reopen(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Pause godoc
// @Summary      Pausar vacante
// @Tags         postings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.PostingResponse
// @Router       /api/postings/{id}/pause [post]
func (h *PostingHandler) Pause(c *fiber.Ctx) error {
	out, err := h.uc.Pause(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Cancel godoc
// @Summary      Cancelar vacante
// @Tags         postings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.PostingResponse
// @Router       /api/postings/{id}/cancel [post]
func (h *PostingHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}
