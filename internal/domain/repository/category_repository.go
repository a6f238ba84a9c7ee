package repository

import (
	"context"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
// Upsert solo lo usa el comando de seed.
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	Upsert(ctx context.Context, category *entity.Category) error
}
