package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
)

// ReportHandler denuncias de productos.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Submit godoc
// @Summary      Denunciar producto
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReportRequest  true  "productId, email, reason"
// @Success      201   {object}  dto.InsertResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /reports [post]
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var in dto.CreateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Submit(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Productos denunciados
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.ReportResponse
// @Router       /reportedProducts [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		out = []dto.ReportResponse{}
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar denuncia
// @Tags         reports
// @Produce      json
// @Param        id   path  string  true  "ID de la denuncia"
// @Success      200  {object}  dto.DeleteResult
// @Router       /reportedProducts/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
