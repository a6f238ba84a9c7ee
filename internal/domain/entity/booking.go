package entity

import (
	"time"

	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Booking es la reserva de un producto por un comprador, pendiente de pago.
// Estados: creada (Paid=false) -> pagada (Paid=true). No hay cancelación ni expiración.
// Paid y TransactionID se fijan juntos o ninguno.
type Booking struct {
	ID            string
	BuyerEmail    string
	BuyerName     string
	ProductRef    string
	ProductName   string
	Price         decimal.Decimal
	Phone         string
	MeetLocation  string
	Paid          bool
	TransactionID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MarkPaid aplica la única transición permitida (creada -> pagada).
func (b *Booking) MarkPaid(transactionID string, now time.Time) error {
	if transactionID == "" {
		return domain.ErrInvalidInput
	}
	if b.Paid {
		return domain.ErrAlreadyPaid
	}
	tx := transactionID
	b.Paid = true
	b.TransactionID = &tx
	b.UpdatedAt = now
	return nil
}

// PaidWith indica si la reserva ya fue pagada con ese transactionID exacto.
func (b *Booking) PaidWith(transactionID string) bool {
	return b.Paid && b.TransactionID != nil && *b.TransactionID == transactionID
}
