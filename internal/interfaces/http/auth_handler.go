package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Practicas-api/internal/application/auth"
	"github.com/jhoicas/Practicas-api/internal/application/dto"
)

// AuthHandler maneja login, renovación y verificación de tokens.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	return ok(c, out, err)
}

// Refresh godoc
// @Summary      Renovar tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh_token"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Refresh(c.UserContext(), in)
	return ok(c, out, err)
}

// Verify godoc
// @Summary      Verificar token de acceso
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyRequest  true  "token"
// @Success      200   {object}  dto.VerifyResponse
// @Router       /api/auth/verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	return c.JSON(h.uc.Verify(in))
}

// ChangePassword godoc
// @Summary      Cambiar mi contraseña
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ChangePasswordRequest  true  "old_password, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/me/password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña actualizada."})
}
