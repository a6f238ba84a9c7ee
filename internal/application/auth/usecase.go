package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
	"github.com/jhoicas/bikehouse-api/pkg/jwt"
)

// JWTConfig configuración para generación y validación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens para usuarios registrados y valida los tokens entrantes.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// IssueToken firma un token para el email si ya existe como usuario.
// Devuelve domain.ErrUserNotFound cuando no está registrado; no hay refresh, al expirar se vuelve a pedir.
func (uc *AuthUseCase) IssueToken(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.ErrUserNotFound
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("auth: buscar usuario: %w", err)
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	ttl := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Email, uc.jwtCfg.Issuer, ttl)
	if err != nil {
		return "", fmt.Errorf("auth: firmar token: %w", err)
	}
	return token, nil
}

// VerifyToken valida firma y expiración. Token malformado, alterado o expirado
// son el mismo caso: domain.ErrForbidden.
func (uc *AuthUseCase) VerifyToken(token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrForbidden, err)
	}
	return claims, nil
}
