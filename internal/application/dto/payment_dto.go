package dto

import "github.com/shopspring/decimal"

// PaymentIntentRequest entrada de POST /create-payment-intent.
type PaymentIntentRequest struct {
	Price decimal.Decimal `json:"price"`
}

// PaymentIntentResponse client secret que el frontend usa para confirmar el cobro.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// RecordPaymentRequest entrada de POST /payments.
type RecordPaymentRequest struct {
	BookingID     string          `json:"bookingId" validate:"required"`
	TransactionID string          `json:"transactionId" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Email         string          `json:"email"`
}
