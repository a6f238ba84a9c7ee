package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookingRequest entrada para reservar un producto.
type CreateBookingRequest struct {
	Email        string          `json:"email" validate:"required,email"`
	BuyerName    string          `json:"buyerName"`
	ProductID    string          `json:"productId" validate:"required"`
	ProductName  string          `json:"productName"`
	Price        decimal.Decimal `json:"price"`
	Phone        string          `json:"phone"`
	MeetLocation string          `json:"meetLocation"`
}

// BookingResponse salida de una reserva. TransactionID es null hasta que se paga.
type BookingResponse struct {
	ID            string          `json:"_id"`
	Email         string          `json:"email"`
	BuyerName     string          `json:"buyerName"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Price         decimal.Decimal `json:"price"`
	Phone         string          `json:"phone"`
	MeetLocation  string          `json:"meetLocation"`
	Paid          bool            `json:"paid"`
	TransactionID *string         `json:"transactionId"`
	CreatedAt     time.Time       `json:"createdAt"`
}
