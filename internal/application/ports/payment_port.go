package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrPaymentProvider envuelve cualquier fallo del procesador de pagos (red, rechazo, credenciales).
var ErrPaymentProvider = errors.New("fallo del procesador de pagos")

// PaymentIntentService define el puerto de salida hacia el procesador de pagos.
// El adaptador convierte el monto a unidades menores (centavos) y devuelve el client secret
// que el frontend usa para completar el cobro. Sin reintentos.
type PaymentIntentService interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal) (clientSecret string, err error)
}
