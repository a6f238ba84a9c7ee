package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/jhoicas/bikehouse-api/internal/application/ports"
)

// Verificar en tiempo de compilación que StripeService implementa PaymentIntentService.
var _ ports.PaymentIntentService = (*StripeService)(nil)

const defaultCurrency = "usd"

var errSinClave = errors.New("STRIPE_SECRET_KEY no configurada")

// intentCreator es la parte del SDK que usamos; permite sustituirla en tests.
type intentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeService adaptador de PaymentIntentService sobre stripe-go.
// Si la clave está vacía las llamadas devuelven ErrPaymentProvider en lugar de ir a la red.
type StripeService struct {
	intents  intentCreator
	currency string
}

// NewStripeService construye el adaptador con la clave secreta del comercio.
func NewStripeService(secretKey string) *StripeService {
	if secretKey == "" {
		return &StripeService{currency: defaultCurrency}
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeService{intents: sc.PaymentIntents, currency: defaultCurrency}
}

// CreateIntent crea un PaymentIntent por el monto en unidades menores y devuelve su client secret.
func (s *StripeService) CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	if s.intents == nil {
		return "", fmt.Errorf("%w: %v", ports.ErrPaymentProvider, errSinClave)
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(ToMinorUnits(amount)),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrPaymentProvider, err)
	}
	if pi.ClientSecret == "" {
		return "", fmt.Errorf("%w: respuesta sin client_secret", ports.ErrPaymentProvider)
	}
	return pi.ClientSecret, nil
}

// ToMinorUnits convierte a centavos redondeando al entero más cercano (20.00 -> 2000, 19.999 -> 2000).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
