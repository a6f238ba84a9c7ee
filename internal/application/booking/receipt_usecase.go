package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una reserva pagada.
type ReceiptUseCase struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{bookingRepo: bookingRepo, paymentRepo: paymentRepo, generator: generator}
}

// DownloadReceipt devuelve el PDF y su nombre de archivo.
//
// Retorna:
//   - domain.ErrNotFound  si la reserva o su pago no existen.
//   - domain.ErrForbidden si la reserva no es del comprador del token.
//   - domain.ErrConflict  si la reserva aún no está pagada.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, requesterEmail, bookingID string) ([]byte, string, error) {
	b, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener reserva: %w", err)
	}
	if b == nil {
		return nil, "", domain.ErrNotFound
	}
	if !strings.EqualFold(b.BuyerEmail, requesterEmail) {
		return nil, "", domain.ErrForbidden
	}
	if !b.Paid {
		return nil, "", fmt.Errorf("%w: la reserva %s no está pagada", domain.ErrConflict, b.ID)
	}
	p, err := uc.paymentRepo.GetByBookingID(ctx, b.ID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener pago: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, b, p)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("recibo-%s.pdf", b.ID), nil
}
