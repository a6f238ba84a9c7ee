package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos sobre PostgreSQL. Solo inserta y lee.
type PaymentRepo struct {
	db Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(db Querier) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// Create inserta el pago; payments_booking_id_key garantiza uno por reserva.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (id, booking_id, transaction_id, amount, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.BookingID, p.TransactionID, p.Amount, p.Email, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByBookingID(ctx context.Context, bookingID string) (*entity.Payment, error) {
	var p entity.Payment
	err := r.db.QueryRow(ctx, `
		SELECT id, booking_id, transaction_id, amount, email, created_at
		FROM payments WHERE booking_id = $1`, bookingID,
	).Scan(&p.ID, &p.BookingID, &p.TransactionID, &p.Amount, &p.Email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}
