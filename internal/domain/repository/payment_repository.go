package repository

import (
	"context"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para Payment (solo inserción y lectura).
type PaymentRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe un pago para la misma reserva.
	Create(ctx context.Context, payment *entity.Payment) error
	GetByBookingID(ctx context.Context, bookingID string) (*entity.Payment, error)
}
