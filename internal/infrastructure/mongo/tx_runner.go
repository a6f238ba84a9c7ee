package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

var (
	_ booking.PaymentTxRunner      = (*TxRunner)(nil)
	_ usecase.VerificationTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks en una transacción multi-documento (requiere replica set o Atlas).
type TxRunner struct {
	db *mongo.Database
}

// NewTxRunner construye el runner sobre la base.
func NewTxRunner(db *mongo.Database) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("iniciar sesión: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	return err
}

// RunPayment inserta el pago y marca la reserva en la misma transacción.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	ctx context.Context,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.inTx(ctx, func(ctx context.Context) error {
		return fn(ctx, NewBookingRepository(r.db), NewPaymentRepository(r.db))
	})
}

// RunVerification verifica al vendedor y propaga a sus productos.
func (r *TxRunner) RunVerification(ctx context.Context, fn func(
	ctx context.Context,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(ctx context.Context) error {
		return fn(ctx, NewUserRepository(r.db), NewProductRepository(r.db))
	})
}
