package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/memory"
)

func TestBookingMarkPaid_Condicional(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBookingRepository(memory.NewStore())
	b := &entity.Booking{ID: "b-1", BuyerEmail: "a@x.com", Price: decimal.NewFromInt(10), CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, b.MarkPaid("pi_1", time.Now()))
	require.NoError(t, repo.MarkPaid(ctx, b))

	again := &entity.Booking{ID: "b-1"}
	require.NoError(t, again.MarkPaid("pi_2", time.Now()))
	assert.ErrorIs(t, repo.MarkPaid(ctx, again), domain.ErrAlreadyPaid)

	got, err := repo.GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", *got.TransactionID)
}

func TestPaymentCreate_UnoPorReserva(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPaymentRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, &entity.Payment{ID: "p-1", BookingID: "b-1"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Payment{ID: "p-2", BookingID: "b-1"}), domain.ErrDuplicate)
}

func TestUserCreate_EmailSinDistinguirMayusculas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u-1", Email: "a@x.com", Role: entity.RoleBuyer}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u-2", Email: "A@X.com", Role: entity.RoleSeller}), domain.ErrEmailAlreadyExists)

	u, err := repo.GetByEmail(ctx, "A@x.COM")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
}

func TestTxRunner_ErrorDeshaceEscrituras(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u-1", Email: "s@x.com", Role: entity.RoleSeller}))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).RunVerification(ctx, func(ctx context.Context, u repository.UserRepository, _ repository.ProductRepository) error {
		if _, _, err := u.SetVerified(ctx, "s@x.com"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := users.GetByEmail(ctx, "s@x.com")
	require.NoError(t, err)
	assert.False(t, got.IsVerified, "el cambio dentro de la tx fallida se descarta")
}

func TestTxRunner_RollbackConservaEscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	bookings := memory.NewBookingRepository(store)
	payments := memory.NewPaymentRepository(store)
	require.NoError(t, bookings.Create(ctx, &entity.Booking{ID: "b-1", BuyerEmail: "a@x.com", CreatedAt: time.Now()}))

	inTx := make(chan struct{})
	resume := make(chan struct{})
	boom := errors.New("boom")
	done := make(chan error, 1)
	go func() {
		done <- memory.NewTxRunner(store).RunPayment(ctx, func(ctx context.Context, b repository.BookingRepository, p repository.PaymentRepository) error {
			if err := p.Create(ctx, &entity.Payment{ID: "p-1", BookingID: "b-1", TransactionID: "pi_1"}); err != nil {
				return err
			}
			booking, err := b.GetByID(ctx, "b-1")
			if err != nil {
				return err
			}
			if err := booking.MarkPaid("pi_1", time.Now()); err != nil {
				return err
			}
			if err := b.MarkPaid(ctx, booking); err != nil {
				return err
			}
			close(inTx)
			<-resume
			return boom
		})
	}()

	<-inTx
	// Otra request escribe mientras la transacción sigue abierta.
	require.NoError(t, bookings.Create(ctx, &entity.Booking{ID: "otra", BuyerEmail: "c@x.com", CreatedAt: time.Now()}))
	close(resume)
	require.ErrorIs(t, <-done, boom)

	other, err := bookings.GetByID(ctx, "otra")
	require.NoError(t, err)
	require.NotNil(t, other, "la reserva creada fuera de la tx sobrevive al rollback")

	b1, err := bookings.GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.False(t, b1.Paid)
	assert.Nil(t, b1.TransactionID)

	p, err := payments.GetByBookingID(ctx, "b-1")
	require.NoError(t, err)
	assert.Nil(t, p, "el pago de la tx fallida se descarta")
}
