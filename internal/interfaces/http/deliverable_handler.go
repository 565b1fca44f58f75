package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// DeliverableHandler maneja entregables de una práctica.
type DeliverableHandler struct {
	uc        *usecase.DeliverableUseCase
	maxUpload int64
}

// NewDeliverableHandler construye el handler. maxUpload en bytes; 0 sin límite propio.
func NewDeliverableHandler(uc *usecase.DeliverableUseCase, maxUpload int64) *DeliverableHandler {
	return &DeliverableHandler{uc: uc, maxUpload: maxUpload}
}

// Create godoc
// @Summary      Crear entregable
// @Tags         deliverables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDeliverableRequest  true  "Práctica, título y fecha límite"
// @Success      201   {object}  dto.DeliverableResponse
// @Router       /api/deliverables [post]
func (h *DeliverableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliverableRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar entregables
// @Tags         deliverables
// @Produce      json
// @Security     BearerAuth
// @Param        internship_id  query  string  false  "Práctica"
// @Param        status         query  string  false  "Estado"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.DeliverableListResponse
// @Router       /api/deliverables [get]
func (h *DeliverableHandler) List(c *fiber.Ctx) error {
	var in dto.DeliverableFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener entregable
// @Tags         deliverables
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del entregable"
// @Success      200  {object}  dto.DeliverableResponse
// @Router       /api/deliverables/{id} [get]
func (h *DeliverableHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Update godoc
// @Summary      Actualizar entregable
// @Tags         deliverables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID del entregable"
// @Param        body  body  dto.UpdateDeliverableRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DeliverableResponse
// @Router       /api/deliverables/{id} [put]
func (h *DeliverableHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeliverableRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Eliminar entregable
// @Tags         deliverables
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del entregable"
// @Success      204
// @Router       /api/deliverables/{id} [delete]
func (h *DeliverableHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.uc.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// Submit godoc
// @Summary      Subir archivo del entregable
// @Tags         deliverables
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "ID del entregable"
// @Param        file  formData  file    true  "Archivo"
// @Success      200   {object}  dto.DeliverableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deliverables/{id}/submit [post]
func (h *DeliverableHandler) Submit(c *fiber.Ctx) error {
	f, name, err := uploadedFile(c, h.maxUpload)
	if err != nil {
		return err
	}
	defer f.Close()
	out, err := h.uc.Submit(c.UserContext(), actor(c), c.Params("id"), name, f)
	return ok(c, out, err)
}

// Evaluate godoc
// @Summary      Calificar entregable
// @Tags         deliverables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                          true  "ID del entregable"
// @Param        body  body  dto.EvaluateDeliverableRequest  true  "Calificación y comentarios"
// @Success      200   {object}  dto.DeliverableResponse
// @Router       /api/deliverables/{id}/evaluate [post]
func (h *DeliverableHandler) Evaluate(c *fiber.Ctx) error {
	var in dto.EvaluateDeliverableRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Evaluate(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// File godoc
// @Summary      Descargar archivo del entregable
// @Tags         deliverables
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del entregable"
// @Success      200  {file}  binary
// @Router       /api/deliverables/{id}/file [get]
func (h *DeliverableHandler) File(c *fiber.Ctx) error {
	rc, name, err := h.uc.OpenFile(c.UserContext(), actor(c), c.Params("id"))
	return sendFile(c, rc, name, err)
}
