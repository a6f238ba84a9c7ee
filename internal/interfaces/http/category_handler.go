package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
)

// CategoryHandler navegación por categorías (público).
type CategoryHandler struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(categories *usecase.CategoryUseCase, products *usecase.ProductUseCase) *CategoryHandler {
	return &CategoryHandler{categories: categories, products: products}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Productos de una categoría
// @Tags         categories
// @Produce      json
// @Param        category  path   string  true   "Nombre de la categoría"
// @Param        verified  query  bool    false  "Solo vendedores verificados"
// @Success      200       {array}   dto.ProductResponse
// @Router       /categories/{category} [get]
func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	out, err := h.products.ListByCategory(c.UserContext(), c.Params("category"), c.QueryBool("verified", false))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		out = []dto.ProductResponse{}
	}
	return c.JSON(out)
}
