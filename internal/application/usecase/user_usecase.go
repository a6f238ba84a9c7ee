package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

var now = time.Now

// UserUseCase registro y administración de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Register crea el usuario en su primer POST. El rol admin no se puede auto-asignar.
// Devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Register(ctx context.Context, in dto.CreateUserRequest) (*dto.InsertResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleBuyer
	}
	if role != entity.RoleBuyer && role != entity.RoleSeller {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	return uc.create(ctx, email, in.Name, role)
}

// CreateAdmin registra un admin (solo desde el comando de seed).
func (uc *UserUseCase) CreateAdmin(ctx context.Context, email, name string) (*dto.InsertResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.create(ctx, email, name, entity.RoleAdmin)
}

func (uc *UserUseCase) create(ctx context.Context, email, name, role string) (*dto.InsertResult, error) {
	ts := now()
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.Inserted(user.ID), nil
}

// ListByRole lista compradores o vendedores (GET /buyerseller?role=).
func (uc *UserUseCase) ListByRole(ctx context.Context, role string) ([]dto.UserResponse, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != "" && !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	n, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.Deleted(n), nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
