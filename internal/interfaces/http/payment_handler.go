package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/dto"
)

// PaymentHandler intents y registro de pagos.
type PaymentHandler struct {
	uc *booking.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *booking.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// CreateIntent godoc
// @Summary      Crear payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentIntentRequest  true  "price en unidades de moneda"
// @Success      200   {object}  dto.PaymentIntentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var in dto.PaymentIntentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateIntent(c.UserContext(), in.Price)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Record godoc
// @Summary      Registrar pago
// @Description  Inserta el pago y marca la reserva como pagada en una transacción. Reenviar el mismo transactionId es idempotente.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPaymentRequest  true  "bookingId, transactionId, amount"
// @Success      201   {object}  dto.InsertResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordPayment(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
