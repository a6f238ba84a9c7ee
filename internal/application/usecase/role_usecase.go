package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

// VerificationTxRunner ejecuta fn en una transacción con repos de usuarios y productos atados a ella.
type VerificationTxRunner interface {
	RunVerification(ctx context.Context, fn func(
		ctx context.Context,
		userRepo repository.UserRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// RoleGate responde preguntas de capacidad a partir del rol persistido del usuario.
// Es el único punto de la aplicación que conoce cómo se deriva un rol; nada se cachea.
type RoleGate struct {
	userRepo repository.UserRepository
	txRunner VerificationTxRunner
}

// NewRoleGate construye el servicio de roles.
func NewRoleGate(userRepo repository.UserRepository, txRunner VerificationTxRunner) *RoleGate {
	return &RoleGate{userRepo: userRepo, txRunner: txRunner}
}

// HasRole informa si el email tiene el rol indicado.
// Devuelve false (sin error) si no existe el usuario; error solo ante fallos de infraestructura.
func (g *RoleGate) HasRole(ctx context.Context, email, role string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	user, err := g.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("role: buscar usuario: %w", err)
	}
	return user.HasRole(role), nil
}

// IsAdmin informa si el email pertenece a un admin.
func (g *RoleGate) IsAdmin(ctx context.Context, email string) (bool, error) {
	return g.HasRole(ctx, email, entity.RoleAdmin)
}

// IsSeller informa si el email pertenece a un vendedor.
func (g *RoleGate) IsSeller(ctx context.Context, email string) (bool, error) {
	return g.HasRole(ctx, email, entity.RoleSeller)
}

// IsBuyer informa si el email pertenece a un comprador.
func (g *RoleGate) IsBuyer(ctx context.Context, email string) (bool, error) {
	return g.HasRole(ctx, email, entity.RoleBuyer)
}

// VerifySeller marca al vendedor como verificado y propaga la marca a todos sus productos,
// ambas escrituras en la misma transacción.
//
// Retorna:
//   - domain.ErrUserNotFound si el email no está registrado (no se crea el usuario).
//   - domain.ErrConflict si el usuario existe pero no es vendedor.
func (g *RoleGate) VerifySeller(ctx context.Context, email string) (*dto.VerifySellerResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	out := &dto.VerifySellerResponse{}
	err := g.txRunner.RunVerification(ctx, func(
		ctx context.Context,
		userRepo repository.UserRepository,
		productRepo repository.ProductRepository,
	) error {
		user, err := userRepo.GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("role: buscar vendedor: %w", err)
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if user.Role != entity.RoleSeller {
			return fmt.Errorf("%w: %s no es vendedor", domain.ErrConflict, email)
		}
		matched, modified, err := userRepo.SetVerified(ctx, email)
		if err != nil {
			return err
		}
		n, err := productRepo.VerifyByOwner(ctx, email)
		if err != nil {
			return err
		}
		out.Acknowledged = true
		out.MatchedCount = matched
		out.ModifiedCount = modified
		out.ProductsVerified = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
