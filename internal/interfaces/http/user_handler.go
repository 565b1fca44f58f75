package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
)

// UserHandler maneja usuarios y sus perfiles por rol.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario (coordinación)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario y su perfil"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	return created(c, out, err)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role    query  string  false  "Rol"
// @Param        active  query  string  false  "true/false"
// @Param        search  query  string  false  "Nombre, email o matrícula"
// @Param        major   query  string  false  "Carrera"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var in dto.UserFilterRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	return ok(c, out, err)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actor(c), c.Params("id"))
	return ok(c, out, err)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	return ok(c, out, err)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	return noContent(c, h.uc.Delete(c.UserContext(), actor(c), c.Params("id")))
}

// Activate godoc
// @Summary      Activar estudiante
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del estudiante"
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/{id}/activate [post]
func (h *UserHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.SetActive(c.UserContext(), actor(c), c.Params("id"), true)
	return ok(c, out, err)
}

// Deactivate godoc
// @Summary      Desactivar estudiante
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del estudiante"
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.SetActive(c.UserContext(), actor(c), c.Params("id"), false)
	return ok(c, out, err)
}

// Me godoc
// @Summary      Mi perfil
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), actor(c))
	return ok(c, out, err)
}

// MyStudents godoc
// @Summary      Estudiantes asesorados (docente)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.AdviseeResponse
// @Router       /api/users/me/students [get]
func (h *UserHandler) MyStudents(c *fiber.Ctx) error {
	out, err := h.uc.MyStudents(c.UserContext(), actor(c))
	return ok(c, out, err)
}

// Dashboard godoc
// @Summary      Panel del tutor empresarial
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TutorDashboardResponse
// @Router       /api/users/me/dashboard [get]
func (h *UserHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.TutorDashboard(c.UserContext(), actor(c))
	return ok(c, out, err)
}
