package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/application/ports"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
	"github.com/jhoicas/bikehouse-api/pkg/logger"
)

// PaymentUseCase ciclo de cobro: intent en el procesador externo y registro del pago.
type PaymentUseCase struct {
	txRunner PaymentTxRunner
	intents  ports.PaymentIntentService
	log      *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner PaymentTxRunner, intents ports.PaymentIntentService, log *logger.Logger) *PaymentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentUseCase{txRunner: txRunner, intents: intents, log: log}
}

// CreateIntent pide al procesador un client secret para el precio indicado. No modifica reservas.
func (uc *PaymentUseCase) CreateIntent(ctx context.Context, price decimal.Decimal) (*dto.PaymentIntentResponse, error) {
	if !price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	secret, err := uc.intents.CreateIntent(ctx, price)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentIntentResponse{ClientSecret: secret}, nil
}

// RecordPayment inserta el pago y marca la reserva como pagada en una sola transacción.
//
// Retorna:
//   - domain.ErrInvalidInput si falta bookingId/transactionId o el monto no es positivo.
//   - domain.ErrNotFound     si la reserva no existe.
//   - domain.ErrAlreadyPaid  si la reserva ya fue pagada con otra transacción.
//
// Repetir el mismo transactionId sobre una reserva ya pagada devuelve el pago existente sin escribir.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, in dto.RecordPaymentRequest) (*dto.InsertResult, error) {
	bookingID := strings.TrimSpace(in.BookingID)
	transactionID := strings.TrimSpace(in.TransactionID)
	if bookingID == "" || transactionID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result *dto.InsertResult
	err := uc.txRunner.RunPayment(ctx, func(
		ctx context.Context,
		bookingRepo repository.BookingRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		b, err := bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("payment: obtener reserva: %w", err)
		}
		if b == nil {
			return domain.ErrNotFound
		}

		if b.PaidWith(transactionID) {
			existing, err := paymentRepo.GetByBookingID(ctx, bookingID)
			if err != nil {
				return fmt.Errorf("payment: obtener pago existente: %w", err)
			}
			if existing != nil {
				result = &dto.InsertResult{Acknowledged: true, InsertedID: existing.ID}
				return nil
			}
		}

		ts := time.Now()
		if err := b.MarkPaid(transactionID, ts); err != nil {
			return err
		}
		if !in.Amount.Equal(b.Price) {
			uc.log.Warn().
				Str("booking_id", b.ID).
				Str("price", b.Price.String()).
				Str("amount", in.Amount.String()).
				Msg("monto del pago distinto al precio de la reserva")
		}

		payment := &entity.Payment{
			ID:            uuid.New().String(),
			BookingID:     b.ID,
			TransactionID: transactionID,
			Amount:        in.Amount,
			Email:         strings.TrimSpace(in.Email),
			CreatedAt:     ts,
		}
		if payment.Email == "" {
			payment.Email = b.BuyerEmail
		}
		if err := paymentRepo.Create(ctx, payment); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrAlreadyPaid
			}
			return err
		}
		if err := bookingRepo.MarkPaid(ctx, b); err != nil {
			return err
		}
		result = dto.Inserted(payment.ID)
		return nil
	})
	if errors.Is(err, domain.ErrAlreadyPaid) {
		// Un reenvío concurrente del mismo transactionId pudo ganar la carrera: lo tratamos como idempotente.
		existing, lookupErr := uc.paymentFor(ctx, bookingID, transactionID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing != nil {
			return dto.Inserted(existing.ID), nil
		}
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("booking_id", bookingID).
		Str("payment_id", result.InsertedID).
		Str("transaction_id", transactionID).
		Msg("pago registrado")
	return result, nil
}

// paymentFor devuelve el pago de la reserva si se registró con transactionID.
// Corre en una transacción nueva porque la anterior pudo quedar abortada por la violación de unicidad.
func (uc *PaymentUseCase) paymentFor(ctx context.Context, bookingID, transactionID string) (*entity.Payment, error) {
	var found *entity.Payment
	err := uc.txRunner.RunPayment(ctx, func(
		ctx context.Context,
		_ repository.BookingRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		p, err := paymentRepo.GetByBookingID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("payment: obtener pago existente: %w", err)
		}
		if p != nil && p.TransactionID == transactionID {
			found = p
		}
		return nil
	})
	return found, err
}
