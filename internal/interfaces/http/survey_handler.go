package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// SurveyHandler maneja encuestas, respuestas y resultados.
type SurveyHandler struct {
	uc *usecase.SurveyUseCase
}

// NewSurveyHandler construye el handler.
func NewSurveyHandler(uc *usecase.SurveyUseCase) *SurveyHandler {
	return &SurveyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear encuesta con preguntas
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSurveyRequest  true  "Encuesta"
// @Success      201   {object}  dto.SurveyResponse
// @Router       /api/surveys [post]
func (h *SurveyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSurveyRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar encuestas
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        status    query  string  false  "BORRADOR, ACTIVA, CERRADA"
// @Param        audience  query  string  false  "Destinatarios"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SurveyListResponse
// @Router       /api/surveys [get]
func (h *SurveyHandler) List(c *fiber.Ctx) error {
	var in dto.SurveyFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// Pending godoc
// @Summary      Encuestas pendientes de responder
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.SurveyResponse
// @Router       /api/surveys/pending [get]
func (h *SurveyHandler) Pending(c *fiber.Ctx) error {
	out, err := h.uc.Pending(c.UserContext(), actor(c))
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener encuesta
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      200  {object}  dto.SurveyResponse
// @Router       /api/surveys/{id} [get]
func (h *SurveyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Update godoc
// @Summary      Actualizar encuesta en borrador
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la encuesta"
// @Param        body  body  dto.UpdateSurveyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SurveyResponse
// @Router       /api/surveys/{id} [put]
func (h *SurveyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSurveyRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Eliminar encuesta
// @Tags         surveys
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      204
// @Router       /api/surveys/{id} [delete]
func (h *SurveyHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.uc.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// Publish godoc
// @Summary      Publicar encuesta
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      200  {object}  dto.SurveyResponse
// @Router       /api/surveys/{id}/publish [post]
func (h *SurveyHandler) Publish(c *fiber.Ctx) error {
	out, err := h.uc.Publish(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Close godoc
// @Summary      Cerrar encuesta
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      200  {object}  dto.SurveyResponse
// @Router       /api/surveys/{id}/close [post]
func (h *SurveyHandler) Close(c *fiber.Ctx) error {
	out, err := h.uc.Close(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Respond godoc
// @Summary      Responder encuesta
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la encuesta"
// @Param        body  body  dto.RespondSurveyRequest  true  "Respuestas"
// @Success      201   {object}  dto.SurveySubmissionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/surveys/{id}/responses [post]
func (h *SurveyHandler) Respond(c *fiber.Ctx) error {
	var in dto.RespondSurveyRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Respond(c.UserContext(), actor(c), c.Params("id"), in)
	return created(c, out, err)
}

// Results godoc
// @Summary      Resultados agregados
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      200  {object}  dto.SurveyResultsResponse
// @Router       /api/surveys/{id}/results [get]
func (h *SurveyHandler) Results(c *fiber.Ctx) error {
	out, err := h.uc.Results(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}
