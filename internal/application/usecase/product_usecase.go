package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

// ProductUseCase publicación y listado de bicicletas.
type ProductUseCase struct {
	repo     repository.ProductRepository
	userRepo repository.UserRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, userRepo repository.UserRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, userRepo: userRepo}
}

// Create publica un producto. IsVerified se hereda del estado actual del vendedor.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.InsertResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ResalePrice.LessThan(decimal.Zero) || in.OriginalPrice.LessThan(decimal.Zero) || in.YearsOfUse < 0 {
		return nil, domain.ErrInvalidInput
	}
	owner, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("product: buscar vendedor: %w", err)
	}
	ts := now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		OwnerEmail:    email,
		OwnerName:     in.SellerName,
		Category:      strings.TrimSpace(in.Category),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Condition:     in.Condition,
		Location:      in.Location,
		Phone:         in.Phone,
		ImageURL:      in.Image,
		OriginalPrice: in.OriginalPrice,
		ResalePrice:   in.ResalePrice,
		YearsOfUse:    in.YearsOfUse,
		IsVerified:    owner != nil && owner.IsVerified,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.Inserted(product.ID), nil
}

// ListByCategory lista los productos de una categoría; verifiedOnly oculta vendedores sin verificar.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, category string, verifiedOnly bool) ([]dto.ProductResponse, error) {
	return uc.list(ctx, repository.ProductFilter{Category: category, VerifiedOnly: verifiedOnly})
}

// ListByOwner lista los productos de un vendedor (GET /products?email=).
func (uc *ProductUseCase) ListByOwner(ctx context.Context, email string) ([]dto.ProductResponse, error) {
	return uc.list(ctx, repository.ProductFilter{OwnerEmail: email})
}

func (uc *ProductUseCase) list(ctx context.Context, f repository.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto por ID (dueño o admin).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	n, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.Deleted(n), nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Email:         p.OwnerEmail,
		SellerName:    p.OwnerName,
		Category:      p.Category,
		Name:          p.Name,
		Description:   p.Description,
		Condition:     p.Condition,
		Location:      p.Location,
		Phone:         p.Phone,
		Image:         p.ImageURL,
		OriginalPrice: p.OriginalPrice,
		ResalePrice:   p.ResalePrice,
		YearsOfUse:    p.YearsOfUse,
		IsVerified:    p.IsVerified,
		CreatedAt:     p.CreatedAt,
	}
}
