package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// NotificationHandler maneja notificaciones individuales y masivas.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear notificación
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateNotificationRequest  true  "Destinatario y mensaje"
// @Success      201   {object}  dto.NotificationResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar notificaciones
// @Description  El destinatario ve las suyas; coordinación y remitentes ven las que enviaron.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Estado"
// @Param        type    query  string  false  "Tipo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var in dto.NotificationFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// Unread godoc
// @Summary      Notificaciones no leídas
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UnreadResponse
// @Router       /api/notifications/unread [get]
func (h *NotificationHandler) Unread(c *fiber.Ctx) error {
	out, err := h.uc.Unread(c.UserContext(), actor(c))
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener notificación
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.NotificationResponse
// @Router       /api/notifications/{id} [get]
func (h *NotificationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Send godoc
// @Summary      Enviar notificación pendiente
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.NotificationResponse
// @Router       /api/notifications/{id}/send [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// MarkRead godoc
// @Summary      Marcar como leída
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.NotificationResponse
// @Router       /api/notifications/{id}/mark-read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkRead(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Confirm godoc
// @Summary      Confirmar lectura
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.NotificationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/confirm [post]
func (h *NotificationHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// CreateBulk godoc
// @Summary      Crear notificación masiva
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBulkNotificationRequest  true  "Destinatarios y mensaje"
// @Success      201   {object}  dto.BulkNotificationResponse
// @Router       /api/bulk-notifications [post]
func (h *NotificationHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.CreateBulkNotificationRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateBulk(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// ListBulk godoc
// @Summary      Listar notificaciones masivas
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.BulkNotificationListResponse
// @Router       /api/bulk-notifications [get]
func (h *NotificationHandler) ListBulk(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ListBulk(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// GetBulk godoc
// @Summary      Obtener notificación masiva
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación masiva"
// @Success      200  {object}  dto.BulkNotificationResponse
// @Router       /api/bulk-notifications/{id} [get]
func (h *NotificationHandler) GetBulk(c *fiber.Ctx) error {
	out, err := h.uc.GetBulk(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// SendBulk godoc
// @Summary      Enviar notificación masiva
// @Description  Genera una notificación por destinatario. Solo se envía una vez.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación masiva"
// @Success      200  {object}  dto.BulkNotificationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bulk-notifications/{id}/send [post]
func (h *NotificationHandler) SendBulk(c *fiber.Ctx) error {
	out, err := h.uc.SendBulk(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}
