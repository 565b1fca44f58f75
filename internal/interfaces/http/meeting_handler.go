package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// MeetingHandler maneja reuniones de seguimiento.
type MeetingHandler struct {
	uc *usecase.MeetingUseCase
}

// NewMeetingHandler construye el handler.
func NewMeetingHandler(uc *usecase.MeetingUseCase) *MeetingHandler {
	return &MeetingHandler{uc: uc}
}

// Create godoc
// @Summary      Programar reunión
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateMeetingRequest  true  "Datos de la reunión"
// @Success      201   {object}  dto.MeetingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/meetings [post]
func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMeetingRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar reuniones
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        internship_id  query  string  false  "Práctica"
// @Param        status         query  string  false  "Estado"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MeetingListResponse
// @Router       /api/meetings [get]
func (h *MeetingHandler) List(c *fiber.Ctx) error {
	var in dto.MeetingFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// Upcoming godoc
// @Summary      Próximas reuniones del usuario
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MeetingListResponse
// @Router       /api/meetings/upcoming [get]
func (h *MeetingHandler) Upcoming(c *fiber.Ctx) error {
	out, err := h.uc.Upcoming(c.UserContext(), actor(c))
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener reunión
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la reunión"
// @Success      200  {object}  dto.MeetingResponse
// @Router       /api/meetings/{id} [get]
func (h *MeetingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Update godoc
// @Summary      Actualizar reunión
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la reunión"
// @Param        body  body  dto.UpdateMeetingRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MeetingResponse
// @Router       /api/meetings/{id} [put]
func (h *MeetingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMeetingRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Eliminar reunión
// @Tags         meetings
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la reunión"
// @Success      204
// @Router       /api/meetings/{id} [delete]
func (h *MeetingHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.uc.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// MarkHeld godoc
// @Summary      Marcar reunión como realizada
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID de la reunión"
// @Param        body  body  dto.MarkHeldRequest  false "Notas y acuerdos"
// @Success      200   {object}  dto.MeetingResponse
// @Router       /api/meetings/{id}/mark-held [post]
func (h *MeetingHandler) MarkHeld(c *fiber.Ctx) error {
	var in dto.MarkHeldRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &in); err != nil {
			return err
		}
	}
	out, err := h.uc.MarkHeld(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Cancel godoc
// @Summary      Cancelar reunión
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la reunión"
// @Param        body  body  dto.CancelMeetingRequest  true  "Motivo"
// @Success      200   {object}  dto.MeetingResponse
// @Router       /api/meetings/{id}/cancel [post]
func (h *MeetingHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelMeetingRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Cancel(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Reschedule godoc
// @Summary      Reprogramar reunión
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID de la reunión"
// @Param        body  body  dto.RescheduleMeetingRequest  true  "Nueva fecha"
// @Success      200   {object}  dto.MeetingResponse
// @Router       /api/meetings/{id}/reschedule [post]
func (h *MeetingHandler) Reschedule(c *fiber.Ctx) error {
	var in dto.RescheduleMeetingRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Reschedule(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Notify godoc
// @Summary      Notificar reunión al estudiante
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la reunión"
// @Success      200  {object}  dto.MeetingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/meetings/{id}/notify [post]
func (h *MeetingHandler) Notify(c *fiber.Ctx) error {
	out, err := h.uc.Notify(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}
