package repository

import (
	"context"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
)

// ProductFilter filtros de listado. Campos vacíos no filtran.
type ProductFilter struct {
	Category     string
	OwnerEmail   string
	VerifiedOnly bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// VerifyByOwner propaga IsVerified=true a todos los productos del vendedor.
	VerifyByOwner(ctx context.Context, ownerEmail string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
