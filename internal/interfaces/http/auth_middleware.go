package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/pkg/jwt"
)

// LocalEmail clave en c.Locals con el email del token verificado.
const LocalEmail = "email"

// tokenVerifier contrato mínimo del verificador; lo implementa *auth.AuthUseCase.
type tokenVerifier interface {
	VerifyToken(token string) (*jwt.Claims, error)
}

// roleChecker lo implementa *usecase.RoleGate; la interfaz evita acoplar el middleware al caso de uso.
type roleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// AuthMiddleware valida el Bearer Token y deja el email en c.Locals.
//   - 401 MISSING_TOKEN → sin header o sin token.
//   - 403 INVALID_TOKEN → firma inválida, malformado o expirado.
func AuthMiddleware(verifier tokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "formato: Bearer <token>"})
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := verifier.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

// GetEmail devuelve el email del token (después de AuthMiddleware).
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// RequireAdmin exige que el email del token sea admin según el rol persistido.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 403 FORBIDDEN → el usuario no es admin (o no existe).
//   - 503 → fallo al consultar el rol.
func RequireAdmin(checker roleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := GetEmail(c)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "email no encontrado en el token"})
		}
		ok, err := checker.IsAdmin(c.UserContext(), email)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ROLE_CHECK_FAILED",
				Message: "no se pudo verificar el rol, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol admin"})
		}
		return c.Next()
	}
}
