package booking

import (
	"context"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

// PaymentTxRunner ejecuta fn dentro de una transacción con repos de reservas y pagos atados a ella.
// Garantiza que el pago y la marca de la reserva se confirman juntos o ninguno.
type PaymentTxRunner interface {
	RunPayment(ctx context.Context, fn func(
		ctx context.Context,
		bookingRepo repository.BookingRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// ReceiptPDFGenerator genera el comprobante de pago de una reserva pagada.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, booking *entity.Booking, payment *entity.Payment) ([]byte, error)
}
