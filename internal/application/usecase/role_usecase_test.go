package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/memory"
)

func newRoleGate(t *testing.T) (*usecase.RoleGate, *usecase.UserUseCase, *usecase.ProductUseCase) {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	gate := usecase.NewRoleGate(users, memory.NewTxRunner(store))
	return gate, usecase.NewUserUseCase(users), usecase.NewProductUseCase(memory.NewProductRepository(store), users)
}

func TestRoleGate_UsuarioDesconocido_FalseSinError(t *testing.T) {
	gate, _, _ := newRoleGate(t)
	ctx := context.Background()

	for _, check := range []func(context.Context, string) (bool, error){gate.IsAdmin, gate.IsSeller, gate.IsBuyer} {
		ok, err := check(ctx, "ghost@x.com")
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestVerifySeller_UsuarioDesconocido_NoLoCrea(t *testing.T) {
	gate, users, _ := newRoleGate(t)

	_, err := gate.VerifySeller(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, err := users.ListByRole(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestVerifySeller_NoVendedor_Conflict(t *testing.T) {
	gate, users, _ := newRoleGate(t)
	_, err := users.Register(context.Background(), dto.CreateUserRequest{Email: "b@x.com", Role: "buyer"})
	require.NoError(t, err)

	_, err = gate.VerifySeller(context.Background(), "b@x.com")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestVerifySeller_ProductoNuevoHeredaVerificacion(t *testing.T) {
	gate, users, products := newRoleGate(t)
	ctx := context.Background()
	_, err := users.Register(ctx, dto.CreateUserRequest{Email: "s@x.com", Role: "seller"})
	require.NoError(t, err)

	_, err = gate.VerifySeller(ctx, "s@x.com")
	require.NoError(t, err)

	_, err = products.Create(ctx, dto.CreateProductRequest{Email: "s@x.com", Category: "road", Name: "Colnago"})
	require.NoError(t, err)

	list, err := products.ListByOwner(ctx, "s@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsVerified)

	again, err := gate.VerifySeller(ctx, "s@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.MatchedCount)
	assert.Equal(t, int64(0), again.ModifiedCount, "verificar dos veces no modifica")
}
