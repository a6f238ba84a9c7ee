package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/dto"
)

// BookingHandler reservas y recibos.
type BookingHandler struct {
	bookings *booking.BookingUseCase
	receipts *booking.ReceiptUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(bookings *booking.BookingUseCase, receipts *booking.ReceiptUseCase) *BookingHandler {
	return &BookingHandler{bookings: bookings, receipts: receipts}
}

// Create godoc
// @Summary      Crear reserva
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "Datos de la reserva"
// @Success      201   {object}  dto.InsertResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.bookings.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByBuyer godoc
// @Summary      Reservas del comprador
// @Description  El email consultado debe coincidir con el del token.
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        email  query  string  true  "Email del comprador"
// @Success      200    {array}   dto.BookingResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /bookings [get]
func (h *BookingHandler) ListByBuyer(c *fiber.Ctx) error {
	out, err := h.bookings.ListByBuyer(c.UserContext(), GetEmail(c), c.Query("email"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		out = []dto.BookingResponse{}
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener reserva
// @Description  Devuelve null si no existe.
// @Tags         bookings
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.BookingResponse
// @Router       /bookings/{id} [get]
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.bookings.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo PDF
// @Tags         bookings
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /bookings/{id}/receipt [get]
func (h *BookingHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.DownloadReceipt(c.UserContext(), GetEmail(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}
