package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// InternshipHandler maneja prácticas profesionales y su ciclo de vida.
type InternshipHandler struct {
	uc *usecase.InternshipUseCase
}

// NewInternshipHandler construye el handler.
func NewInternshipHandler(uc *usecase.InternshipUseCase) *InternshipHandler {
	return &InternshipHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar práctica
// @Tags         internships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInternshipRequest  true  "Estudiante y datos de la práctica"
// @Success      201   {object}  dto.InternshipResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/internships [post]
func (h *InternshipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInternshipRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar prácticas
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        student_id  query  string  false  "Estudiante"
// @Param        company_id  query  string  false  "Empresa"
// @Param        status      query  string  false  "Estado"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InternshipListResponse
// @Router       /api/internships [get]
func (h *InternshipHandler) List(c *fiber.Ctx) error {
	var in dto.InternshipFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener práctica
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la práctica"
// @Success      200  {object}  dto.InternshipResponse
// @Router       /api/internships/{id} [get]
func (h *InternshipHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Update godoc
// @Summary      Actualizar práctica
// @Tags         internships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID de la práctica"
// @Param        body  body  dto.UpdateInternshipRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.InternshipResponse
// @Router       /api/internships/{id} [put]
func (h *InternshipHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInternshipRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Eliminar práctica
// @Tags         internships
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la práctica"
// @Success      204
// @Router       /api/internships/{id} [delete]
func (h *InternshipHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.uc.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// Assign godoc
// @Summary      Asignar docente, tutor y empresa
// @Tags         internships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID de la práctica"
// @Param        body  body  dto.AssignInternshipRequest  true  "Asignación"
// @Success      200   {object}  dto.InternshipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/internships/{id}/assign [post]
func (h *InternshipHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignInternshipRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Assign(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Start godoc
// @Summary      Iniciar práctica
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la práctica"
// @Success      200  {object}  dto.InternshipResponse
// @Router       /api/internships/{id}/start [post]
func (h *InternshipHandler) Start(c *fiber.Ctx) error {
	out, err := h.uc.Start(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Complete godoc
// @Summary      Completar práctica
// @Tags         internships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                         true  "ID de la práctica"
// @Param        body  body  dto.CompleteInternshipRequest  false "Calificación final"
// @Success      200   {object}  dto.InternshipResponse
// @Router       /api/internships/{id}/complete [post]
func (h *InternshipHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteInternshipRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &in); err != nil {
			return err
		}
	}
	out, err := h.uc.Complete(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Cancel godoc
// @Summary      Cancelar práctica
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la práctica"
// @Success      200  {object}  dto.InternshipResponse
// @Router       /api/internships/{id}/cancel [post]
func (h *InternshipHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Close godoc
// @Summary      Cerrar expediente
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la práctica"
// @Success      200  {object}  dto.InternshipResponse
// @Router       /api/internships/{id}/close [post]
func (h *InternshipHandler) Close(c *fiber.Ctx) error {
	out, err := h.uc.CloseRecord(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Progress godoc
// @Summary      Avance de entregables
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la práctica"
// @Success      200  {object}  dto.ProgressResponse
// @Router       /api/internships/{id}/progress [get]
func (h *InternshipHandler) Progress(c *fiber.Ctx) error {
	out, err := h.uc.Progress(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Certificate godoc
// @Summary      Constancia de práctica en PDF
// @Tags         internships
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la práctica"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/internships/{id}/certificate [get]
func (h *InternshipHandler) Certificate(c *fiber.Ctx) error {
	pdf, name, err := h.uc.Certificate(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}
