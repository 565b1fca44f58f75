package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// DocumentHandler maneja documentos del expediente y observaciones.
type DocumentHandler struct {
	docs      *usecase.DocumentUseCase
	obs       *usecase.ObservationUseCase
	maxUpload int64
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(docs *usecase.DocumentUseCase, obs *usecase.ObservationUseCase, maxUpload int64) *DocumentHandler {
	return &DocumentHandler{docs: docs, obs: obs, maxUpload: maxUpload}
}

// Upload godoc
// @Summary      Subir documento
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file           formData  file    true   "Archivo"
// @Param        type           formData  string  true   "CV, CARTA_PRESENTACION, CONVENIO, CONSTANCIA, INFORME, OTRO"
// @Param        owner_id       formData  string  false  "Propietario (solo coordinación)"
// @Param        internship_id  formData  string  false  "Práctica"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	var in dto.UploadDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest("INVALID_BODY", "Formulario inválido.", nil)
	}
	if err := validate.Struct(in); err != nil {
		return validationError(err)
	}
	f, name, err := uploadedFile(c, h.maxUpload)
	if err != nil {
		return err
	}
	defer f.Close()
	out, err := h.docs.Upload(c.UserContext(), actor(c), in, name, f)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id       query  string  false  "Propietario"
// @Param        internship_id  query  string  false  "Práctica"
// @Param        type           query  string  false  "Tipo"
// @Param        valid          query  string  false  "true/false"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var in dto.DocumentFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.docs.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.docs.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Eliminar documento
// @Tags         documents
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      204
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.docs.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// Validate godoc
// @Summary      Validar o invalidar documento
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID del documento"
// @Param        body  body  dto.ValidateDocumentRequest  true  "Validez"
// @Success      200   {object}  dto.DocumentResponse
// @Router       /api/documents/{id}/validate [post]
func (h *DocumentHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateDocumentRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.docs.SetValid(c.UserContext(), actor(c), c.Params("id"), in.Valid)
	return ok(c, out, err)
}

// File godoc
// @Summary      Descargar documento
// @Tags         documents
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Router       /api/documents/{id}/file [get]
func (h *DocumentHandler) File(c *fiber.Ctx) error {
	rc, name, err := h.docs.OpenFile(c.UserContext(), actor(c), c.Params("id"))
	return sendFile(c, rc, name, err)
}

// CreateObservation godoc
// @Summary      Registrar observación del expediente
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateObservationRequest  true  "Observación"
// @Success      201   {object}  dto.ObservationResponse
// @Router       /api/observations [post]
func (h *DocumentHandler) CreateObservation(c *fiber.Ctx) error {
	var in dto.CreateObservationRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.obs.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// ListObservations godoc
// @Summary      Observaciones de una práctica
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        internship_id  query  string  true  "ID de la práctica"
// @Success      200  {array}  dto.ObservationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/observations [get]
func (h *DocumentHandler) ListObservations(c *fiber.Ctx) error {
	id := c.Params("id", c.Query("internship_id"))
	if id == "" {
		return badRequest("VALIDATION", "Datos inválidos.", map[string]string{"internship_id": "Este campo es obligatorio."})
	}
	out, err := h.obs.ListByInternship(c.UserContext(), actor(c), id)
	return ok(c, out, err)
}

// DeleteObservation godoc
// @Summary      Eliminar observación
// @Tags         documents
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la observación"
// @Success      204
// @Router       /api/observations/{id} [delete]
func (h *DocumentHandler) DeleteObservation(c *fiber.Ctx) error {
	return noContent(c, h.obs.Delete(c.UserContext(), actor(c), c.Params("id")))
}
