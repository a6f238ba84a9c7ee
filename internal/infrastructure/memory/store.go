// Package memory implementa los repositorios sobre mapas en proceso.
// Se usa con DB_DRIVER=memory (desarrollo local) y en los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

// Store guarda todas las colecciones. mu protege los mapas; txMu serializa las transacciones.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users      map[string]*entity.User // por ID
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	bookings   map[string]*entity.Booking
	payments   map[string]*entity.Payment
	reports    map[string]*entity.Report
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]*entity.User),
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
		bookings:   make(map[string]*entity.Booking),
		payments:   make(map[string]*entity.Payment),
		reports:    make(map[string]*entity.Report),
	}
}

// journal guarda el valor previo de cada clave escrita dentro de una transacción.
// El rollback solo toca esas claves; lo que otras requests escriban mientras tanto se conserva.
type journal struct {
	undo []func()
}

// remember se llama con s.mu tomado, antes de escribir m[key]. Con j nil (fuera de tx) no hace nada.
func remember[T any](j *journal, m map[string]*T, key string) {
	if j == nil {
		return
	}
	prev, existed := m[key]
	var saved T
	if existed {
		saved = *prev
	}
	j.undo = append(j.undo, func() {
		if !existed {
			delete(m, key)
			return
		}
		c := saved
		m[key] = &c
	})
}

func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

// TxRunner emula una transacción: serializa las transacciones y deshace sus escrituras si fn falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(fn func(j *journal) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	j := &journal{}
	if err := fn(j); err != nil {
		r.store.rollback(j)
		return err
	}
	return nil
}

// RunPayment ejecuta fn con los repos de reservas y pagos.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	ctx context.Context,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.run(func(j *journal) error {
		return fn(ctx, &BookingRepo{s: r.store, j: j}, &PaymentRepo{s: r.store, j: j})
	})
}

// RunVerification ejecuta fn con los repos de usuarios y productos.
func (r *TxRunner) RunVerification(ctx context.Context, fn func(
	ctx context.Context,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(func(j *journal) error {
		return fn(ctx, &UserRepo{s: r.store, j: j}, &ProductRepo{s: r.store, j: j})
	})
}
