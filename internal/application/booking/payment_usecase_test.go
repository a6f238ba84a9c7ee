package booking_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/application/ports"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/memory"
)

type stubIntents struct {
	got decimal.Decimal
	err error
}

func (s *stubIntents) CreateIntent(_ context.Context, amount decimal.Decimal) (string, error) {
	s.got = amount
	return "secret", s.err
}

// failingTx envuelve el runner en memoria y hace fallar la inserción del pago.
type failingTx struct {
	inner *memory.TxRunner
}

type failingPayments struct{ repository.PaymentRepository }

func (failingPayments) Create(context.Context, *entity.Payment) error {
	return errors.New("disco lleno")
}

func (f failingTx) RunPayment(ctx context.Context, fn func(
	ctx context.Context,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return f.inner.RunPayment(ctx, func(ctx context.Context, b repository.BookingRepository, p repository.PaymentRepository) error {
		return fn(ctx, b, failingPayments{p})
	})
}

// staleTx simula la lectura que hace un reenvío concurrente antes de que el otro confirme:
// la reserva se ve sin pagar aunque ya tenga pago.
type staleTx struct {
	inner *memory.TxRunner
}

type staleBookings struct{ repository.BookingRepository }

func (s staleBookings) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	b, err := s.BookingRepository.GetByID(ctx, id)
	if b != nil {
		b.Paid = false
		b.TransactionID = nil
	}
	return b, err
}

func (s staleTx) RunPayment(ctx context.Context, fn func(
	ctx context.Context,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return s.inner.RunPayment(ctx, func(ctx context.Context, b repository.BookingRepository, p repository.PaymentRepository) error {
		return fn(ctx, staleBookings{b}, p)
	})
}

func setup(t *testing.T) (*memory.Store, *booking.BookingUseCase, *booking.PaymentUseCase, *stubIntents) {
	t.Helper()
	store := memory.NewStore()
	intents := &stubIntents{}
	bookings := booking.NewBookingUseCase(memory.NewBookingRepository(store))
	payments := booking.NewPaymentUseCase(memory.NewTxRunner(store), intents, nil)
	return store, bookings, payments, intents
}

func newBooking(t *testing.T, uc *booking.BookingUseCase) string {
	t.Helper()
	res, err := uc.Create(context.Background(), dto.CreateBookingRequest{
		Email: "a@x.com", ProductID: "p-1", Price: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	return res.InsertedID
}

func TestRecordPayment_MarcaPagadaConTransaction(t *testing.T) {
	_, bookings, payments, _ := setup(t)
	id := newBooking(t, bookings)

	res, err := payments.RecordPayment(context.Background(), dto.RecordPaymentRequest{
		BookingID: id, TransactionID: "pi_1", Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	b, err := bookings.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, b.Paid)
	require.NotNil(t, b.TransactionID)
	assert.Equal(t, "pi_1", *b.TransactionID)
}

func TestRecordPayment_FallaInsercion_ReservaSigueSinPagar(t *testing.T) {
	store, bookings, _, _ := setup(t)
	id := newBooking(t, bookings)
	payments := booking.NewPaymentUseCase(failingTx{inner: memory.NewTxRunner(store)}, &stubIntents{}, nil)

	_, err := payments.RecordPayment(context.Background(), dto.RecordPaymentRequest{
		BookingID: id, TransactionID: "pi_1", Amount: decimal.NewFromInt(50),
	})
	require.Error(t, err)

	b, err := bookings.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, b.Paid, "ninguna de las dos escrituras queda aplicada")
	assert.Nil(t, b.TransactionID)

	p, err := memory.NewPaymentRepository(store).GetByBookingID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestRecordPayment_Concurrente_SoloUnoGana(t *testing.T) {
	_, bookings, payments, _ := setup(t)
	id := newBooking(t, bookings)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = payments.RecordPayment(context.Background(), dto.RecordPaymentRequest{
				BookingID: id, TransactionID: fmt.Sprintf("pi_%d", i), Amount: decimal.NewFromInt(50),
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	}
	assert.Equal(t, 1, ok)
}

func TestRecordPayment_EntradaInvalida(t *testing.T) {
	_, _, payments, _ := setup(t)
	cases := []dto.RecordPaymentRequest{
		{TransactionID: "pi_1", Amount: decimal.NewFromInt(1)},
		{BookingID: "b", Amount: decimal.NewFromInt(1)},
		{BookingID: "b", TransactionID: "pi_1"},
	}
	for _, in := range cases {
		_, err := payments.RecordPayment(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCreateIntent_PropagaErrorDelProcesador(t *testing.T) {
	_, _, payments, intents := setup(t)
	intents.err = fmt.Errorf("%w: timeout", ports.ErrPaymentProvider)

	_, err := payments.CreateIntent(context.Background(), decimal.RequireFromString("20.00"))

	assert.ErrorIs(t, err, ports.ErrPaymentProvider)
	assert.True(t, decimal.RequireFromString("20").Equal(intents.got))
}

func TestListByBuyer_EmailDistinto_Forbidden(t *testing.T) {
	_, bookings, _, _ := setup(t)
	newBooking(t, bookings)

	_, err := bookings.ListByBuyer(context.Background(), "b@x.com", "a@x.com")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := bookings.ListByBuyer(context.Background(), "A@X.com", "a@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecordPayment_ReenvioConcurrenteMismaTransaccion_Idempotente(t *testing.T) {
	store, bookings, payments, _ := setup(t)
	id := newBooking(t, bookings)
	ctx := context.Background()

	first, err := payments.RecordPayment(ctx, dto.RecordPaymentRequest{
		BookingID: id, TransactionID: "pi_1", Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	racing := booking.NewPaymentUseCase(staleTx{inner: memory.NewTxRunner(store)}, &stubIntents{}, nil)

	again, err := racing.RecordPayment(ctx, dto.RecordPaymentRequest{
		BookingID: id, TransactionID: "pi_1", Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err, "el choque con el índice único se resuelve como reenvío")
	assert.Equal(t, first.InsertedID, again.InsertedID)

	_, err = racing.RecordPayment(ctx, dto.RecordPaymentRequest{
		BookingID: id, TransactionID: "pi_2", Amount: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid, "otra transacción sigue siendo conflicto")
}
