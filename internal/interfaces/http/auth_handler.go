package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bikehouse-api/internal/application/auth"
	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/domain"
)

// AuthHandler emisión de tokens.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// IssueToken godoc
// @Summary      Emitir access token
// @Description  Solo para emails ya registrados; en otro caso responde 403 con accessToken vacío.
// @Tags         auth
// @Produce      json
// @Param        email  query  string  true  "Email del usuario"
// @Success      200    {object}  dto.TokenResponse
// @Failure      403    {object}  dto.TokenResponse
// @Router       /jwt [get]
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	token, err := h.uc.IssueToken(c.UserContext(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusForbidden).JSON(dto.TokenResponse{AccessToken: ""})
		}
		return writeError(c, err)
	}
	return c.JSON(dto.TokenResponse{AccessToken: token})
}
