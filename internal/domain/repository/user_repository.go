package repository

import (
	"context"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) si no existe el documento.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	// SetVerified marca al usuario como verificado; devuelve matched/modified.
	SetVerified(ctx context.Context, email string) (matched, modified int64, err error)
	Delete(ctx context.Context, id string) (int64, error)
}
