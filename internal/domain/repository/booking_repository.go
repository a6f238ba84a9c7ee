package repository

import (
	"context"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
)

// BookingRepository define el puerto de persistencia para Booking (DIP).
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]*entity.Booking, error)
	// MarkPaid fija paid=true y transactionId solo si la reserva sigue sin pagar.
	// Devuelve domain.ErrAlreadyPaid si la condición no se cumple.
	MarkPaid(ctx context.Context, booking *entity.Booking) error
}
