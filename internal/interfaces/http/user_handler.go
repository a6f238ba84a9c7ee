package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
)

// UserHandler alta de usuarios, gestión por rol y consultas de capacidad.
type UserHandler struct {
	users *usecase.UserUseCase
	roles *usecase.RoleGate
}

// NewUserHandler construye el handler.
func NewUserHandler(users *usecase.UserUseCase, roles *usecase.RoleGate) *UserHandler {
	return &UserHandler{users: users, roles: roles}
}

// Create godoc
// @Summary      Registrar usuario
// @Description  Solo roles buyer y seller; el admin se crea con el comando seed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, name, role"
// @Success      201   {object}  dto.InsertResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByRole godoc
// @Summary      Listar compradores o vendedores
// @Tags         users
// @Produce      json
// @Param        role  query  string  false  "buyer | seller"
// @Success      200   {array}  dto.UserResponse
// @Router       /buyerseller [get]
func (h *UserHandler) ListByRole(c *fiber.Ctx) error {
	out, err := h.users.ListByRole(c.UserContext(), c.Query("role"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		out = []dto.UserResponse{}
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.DeleteResult
// @Router       /buyerseller/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	out, err := h.users.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// IsAdmin godoc
// @Summary      ¿Es admin?
// @Tags         users
// @Produce      json
// @Param        email  path  string  true  "Email"
// @Success      200    {object}  dto.IsAdminResponse
// @Router       /users/admin/{email} [get]
func (h *UserHandler) IsAdmin(c *fiber.Ctx) error {
	return h.predicate(c, h.roles.IsAdmin, func(v bool) any { return dto.IsAdminResponse{IsAdmin: v} })
}

// IsSeller godoc
// @Summary      ¿Es vendedor?
// @Tags         users
// @Produce      json
// @Param        email  path  string  true  "Email"
// @Success      200    {object}  dto.IsSellerResponse
// @Router       /users/seller/{email} [get]
func (h *UserHandler) IsSeller(c *fiber.Ctx) error {
	return h.predicate(c, h.roles.IsSeller, func(v bool) any { return dto.IsSellerResponse{IsSeller: v} })
}

// IsBuyer godoc
// @Summary      ¿Es comprador?
// @Tags         users
// @Produce      json
// @Param        email  path  string  true  "Email"
// @Success      200    {object}  dto.IsBuyerResponse
// @Router       /users/buyer/{email} [get]
func (h *UserHandler) IsBuyer(c *fiber.Ctx) error {
	return h.predicate(c, h.roles.IsBuyer, func(v bool) any { return dto.IsBuyerResponse{IsBuyer: v} })
}

func (h *UserHandler) predicate(
	c *fiber.Ctx,
	check func(ctx context.Context, email string) (bool, error),
	wrap func(bool) any,
) error {
	ok, err := check(c.UserContext(), c.Params("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(wrap(ok))
}

// VerifySeller godoc
// @Summary      Verificar vendedor
// @Description  Marca al vendedor como verificado y propaga la marca a todos sus productos.
// @Tags         users
// @Produce      json
// @Param        email  path  string  true  "Email del vendedor"
// @Success      200    {object}  dto.VerifySellerResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /verifySeller/{email} [put]
func (h *UserHandler) VerifySeller(c *fiber.Ctx) error {
	out, err := h.roles.VerifySeller(c.UserContext(), c.Params("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
