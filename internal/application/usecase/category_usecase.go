package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

// CategoryUseCase lectura de categorías (dato de referencia).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// Seed inserta o actualiza las categorías por nombre.
func (uc *CategoryUseCase) Seed(ctx context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		if err := uc.repo.Upsert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCategoryNames categorías con las que arranca el marketplace.
var DefaultCategoryNames = []string{"Mountain Bike", "Road Bike", "BMX", "Vintage Cruiser"}

// SeedDefaults carga DefaultCategoryNames; las existentes se conservan.
func (uc *CategoryUseCase) SeedDefaults(ctx context.Context) error {
	categories := make([]*entity.Category, 0, len(DefaultCategoryNames))
	for _, name := range DefaultCategoryNames {
		categories = append(categories, &entity.Category{ID: uuid.New().String(), Name: name})
	}
	return uc.Seed(ctx, categories)
}
