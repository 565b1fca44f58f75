package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Practicas-api/internal/application/auth"
	"github.com/jhoicas/Practicas-api/internal/application/dto"
	"github.com/jhoicas/Practicas-api/internal/domain"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Practicas-api/pkg/jwt"
)

const secret = "test-secret"

// users repositorio mínimo: solo lo que usa auth.
type users struct {
	repository.UserRepository
	byID map[string]*entity.User
}

func (u *users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, x := range u.byID {
		if x.Email == email {
			c := *x
			return &c, nil
		}
	}
	return nil, nil
}

func (u *users) GetByID(_ context.Context, id string) (*entity.User, error) {
	if x, ok := u.byID[id]; ok {
		c := *x
		return &c, nil
	}
	return nil, nil
}

func (u *users) Update(_ context.Context, x *entity.User) error {
	c := *x
	u.byID[x.ID] = &c
	return nil
}

func setup(t *testing.T) (*auth.AuthUseCase, *users) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &users{byID: map[string]*entity.User{
		"tut-1": {
			ID: "tut-1", Email: "tutor@acme.mx", PasswordHash: string(hash), Role: entity.RoleTutor,
			Profile: &entity.TutorProfile{CompanyID: "comp-1"}, Active: true,
		},
		"est-1": {
			ID: "est-1", Email: "baja@uni.mx", PasswordHash: string(hash), Role: entity.RoleStudent,
			Profile: &entity.StudentProfile{Semester: 3}, Active: false,
		},
	}}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 15, Issuer: "practicas-test"})
	return uc, repo
}

func TestLogin_ParDeTokens(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "tutor@acme.mx", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, 15*60, out.ExpiresIn)
	assert.Equal(t, "TUTOR_EMPRESARIAL", out.User.Role)

	userID, companyID, role, err := pkgjwt.Parse(secret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tut-1", userID)
	assert.Equal(t, "comp-1", companyID)
	assert.Equal(t, "TUTOR_EMPRESARIAL", role)

	_, _, _, err = pkgjwt.Parse(secret, out.RefreshToken)
	assert.ErrorIs(t, err, pkgjwt.ErrWrongTokenType, "el refresh no sirve como token de acceso")

	again, err := uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: out.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, again.AccessToken)

	_, err = uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: out.AccessToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "tutor@acme.mx", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@acme.mx", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "email desconocido responde igual que contraseña incorrecta")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@uni.mx", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestVerify(t *testing.T) {
	uc, _ := setup(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "tutor@acme.mx", Password: "secreto123"})
	require.NoError(t, err)

	v := uc.Verify(dto.VerifyRequest{Token: out.AccessToken})
	assert.True(t, v.Valid)
	assert.Equal(t, "tut-1", v.UserID)

	assert.False(t, uc.Verify(dto.VerifyRequest{Token: "basura"}).Valid)
}

func TestChangePassword(t *testing.T) {
	uc, repo := setup(t)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, "tut-1", dto.ChangePasswordRequest{OldPassword: "mal", NewPassword: "nuevo12345"})
	assert.Equal(t, "old_password", domain.FieldOf(err))

	require.NoError(t, uc.ChangePassword(ctx, "tut-1", dto.ChangePasswordRequest{OldPassword: "secreto123", NewPassword: "nuevo12345"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.byID["tut-1"].PasswordHash), []byte("nuevo12345")))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "tutor@acme.mx", Password: "nuevo12345"})
	assert.NoError(t, err)
}
