package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
	"github.com/jhoicas/Practicas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// AuthUseCase casos de uso de autenticación: login, refresco, verificación y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.ExpMinutes <= 0 {
		jwtCfg.ExpMinutes = 60
	}
	if jwtCfg.RefreshExpMinutes <= 0 {
		jwtCfg.RefreshExpMinutes = 7 * 24 * 60
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y devuelve el par de tokens con el usuario.
// Email desconocido y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrInactiveAccount
	}
	return uc.issue(user)
}

// Refresh emite un par nuevo a partir de un token de refresco válido. El rol
// y la empresa se releen del usuario por si cambiaron.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims, err := jwt.ParseRefresh(uc.jwtCfg.Secret, in.RefreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrInactiveAccount
	}
	return uc.issue(user)
}

// Verify indica si un token de acceso es válido; nunca devuelve error por token inválido.
func (uc *AuthUseCase) Verify(in dto.VerifyRequest) *dto.VerifyResponse {
	userID, _, role, err := jwt.Parse(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return &dto.VerifyResponse{Valid: false}
	}
	return &dto.VerifyResponse{Valid: true, UserID: userID, Role: role}
}

// ChangePassword cambia la contraseña comprobando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ValidationField("old_password", "La contraseña actual no es correcta.")
	}
	if len(in.NewPassword) < 8 {
		return domain.ValidationField("new_password", "La contraseña debe tener al menos 8 caracteres.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	role := string(user.Role)
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID(), role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, user.ID, user.CompanyID(), role, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    uc.jwtCfg.ExpMinutes * 60,
		User:         *usecase.ToUserResponse(user),
	}, nil
}
