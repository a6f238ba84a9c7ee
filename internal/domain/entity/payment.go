package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment registra un cobro completado en el procesador externo. Inmutable; uno por Booking.
type Payment struct {
	ID            string
	BookingID     string
	TransactionID string
	Amount        decimal.Decimal
	Email         string
	CreatedAt     time.Time
}
