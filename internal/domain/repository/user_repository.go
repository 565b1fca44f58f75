package repository

import (
	"context"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
)

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	Role   entity.Role
	Active *bool
	Search string // nombre, email o matrícula
	Major  string
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User (DIP).
// El perfil del rol se guarda junto con el usuario.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetForUpdate bloquea la fila del usuario hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
	CountActiveByRoles(ctx context.Context, roles []entity.Role) (int, error)
	// ListByIDs devuelve los usuarios existentes de ids, en cualquier orden.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
}
