package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

var (
	_ booking.PaymentTxRunner      = (*TxRunner)(nil)
	_ usecase.VerificationTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx hace Begin, ejecuta fn y Commit; cualquier error deja la tx en Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPayment inserción del pago y marcado de la reserva en la misma transacción.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	ctx context.Context,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewBookingRepository(tx), NewPaymentRepository(tx))
	})
}

// RunVerification verificación del vendedor y propagación a sus productos.
func (r *TxRunner) RunVerification(ctx context.Context, fn func(
	ctx context.Context,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewUserRepository(tx), NewProductRepository(tx))
	})
}
