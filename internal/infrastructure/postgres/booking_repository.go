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

var _ repository.BookingRepository = (*BookingRepo)(nil)

const bookingColumns = `id, buyer_email, buyer_name, product_ref, product_name, price, phone,
	meet_location, paid, transaction_id, created_at, updated_at`

// BookingRepo reservas sobre PostgreSQL.
type BookingRepo struct {
	db Querier
}

// NewBookingRepository construye el adaptador.
func NewBookingRepository(db Querier) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create persiste una reserva nueva (siempre sin pagar).
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.BuyerEmail, b.BuyerName, b.ProductRef, b.ProductName, b.Price,
		nullIfEmpty(b.Phone), nullIfEmpty(b.MeetLocation), b.Paid, b.TransactionID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID obtiene la reserva; (nil, nil) si no existe.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// ListByBuyer reservas del comprador, más recientes primero.
func (r *BookingRepo) ListByBuyer(ctx context.Context, buyerEmail string) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE lower(buyer_email) = lower($1)
		ORDER BY created_at DESC`, buyerEmail)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// MarkPaid actualiza solo si la fila sigue con paid = false.
func (r *BookingRepo) MarkPaid(ctx context.Context, b *entity.Booking) error {
	if !b.Paid || b.TransactionID == nil {
		return domain.ErrInvalidInput
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET paid = TRUE, transaction_id = $2, updated_at = $3
		WHERE id = $1 AND paid = FALSE`,
		b.ID, *b.TransactionID, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("mark booking paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyPaid
	}
	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	var phone, meet *string
	err := row.Scan(
		&b.ID, &b.BuyerEmail, &b.BuyerName, &b.ProductRef, &b.ProductName, &b.Price,
		&phone, &meet, &b.Paid, &b.TransactionID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Phone = fromNull(phone)
	b.MeetLocation = fromNull(meet)
	return &b, nil
}
