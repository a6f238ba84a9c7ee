package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BookingRepository  = (*BookingRepo)(nil)
	_ repository.PaymentRepository  = (*PaymentRepo)(nil)
	_ repository.ReportRepository   = (*ReportRepo)(nil)
)

// Todos los repos devuelven copias para que el caller no mute el store sin pasar por el repo.

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
	j *journal // no nil solo dentro de TxRunner
}

// NewUserRepository construye el repo.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	remember(r.j, r.s.users, user.ID)
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if role == "" || u.Role == role {
			c := *u
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) SetVerified(_ context.Context, email string) (int64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched, modified int64
	for id, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			matched++
			if !u.IsVerified {
				remember(r.j, r.s.users, id)
				u.IsVerified = true
				modified++
			}
		}
	}
	return matched, modified, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return 0, nil
	}
	remember(r.j, r.s.users, id)
	delete(r.s.users, id)
	return 1, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
	j *journal // no nil solo dentro de TxRunner
}

// NewProductRepository construye el repo.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	remember(r.j, r.s.products, p.ID)
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.OwnerEmail != "" && !strings.EqualFold(p.OwnerEmail, f.OwnerEmail) {
			continue
		}
		if f.VerifiedOnly && !p.IsVerified {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProductRepo) VerifyByOwner(_ context.Context, ownerEmail string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, p := range r.s.products {
		if strings.EqualFold(p.OwnerEmail, ownerEmail) && !p.IsVerified {
			remember(r.j, r.s.products, id)
			p.IsVerified = true
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return 0, nil
	}
	remember(r.j, r.s.products, id)
	delete(r.s.products, id)
	return 1, nil
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

// NewCategoryRepository construye el repo.
func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Upsert(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			c.ID = existing.ID
			return nil
		}
	}
	cc := *c
	r.s.categories[c.ID] = &cc
	return nil
}

// BookingRepo reservas en memoria.
type BookingRepo struct {
	s *Store
	j *journal // no nil solo dentro de TxRunner
}

// NewBookingRepository construye el repo.
func NewBookingRepository(s *Store) *BookingRepo { return &BookingRepo{s: s} }

func (r *BookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; ok {
		return domain.ErrDuplicate
	}
	remember(r.j, r.s.bookings, b.ID)
	r.s.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(b), nil
}

func (r *BookingRepo) ListByBuyer(_ context.Context, email string) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if strings.EqualFold(b.BuyerEmail, email) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepo) MarkPaid(_ context.Context, b *entity.Booking) error {
	if !b.Paid || b.TransactionID == nil {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.bookings[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Paid {
		return domain.ErrAlreadyPaid
	}
	remember(r.j, r.s.bookings, b.ID)
	tx := *b.TransactionID
	stored.Paid = true
	stored.TransactionID = &tx
	stored.UpdatedAt = b.UpdatedAt
	return nil
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	if b.TransactionID != nil {
		tx := *b.TransactionID
		c.TransactionID = &tx
	}
	return &c
}

// PaymentRepo pagos en memoria.
type PaymentRepo struct {
	s *Store
	j *journal // no nil solo dentro de TxRunner
}

// NewPaymentRepository construye el repo.
func NewPaymentRepository(s *Store) *PaymentRepo { return &PaymentRepo{s: s} }

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.payments {
		if existing.BookingID == p.BookingID {
			return domain.ErrDuplicate
		}
	}
	remember(r.j, r.s.payments, p.ID)
	c := *p
	r.s.payments[p.ID] = &c
	return nil
}

func (r *PaymentRepo) GetByBookingID(_ context.Context, bookingID string) (*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.payments {
		if p.BookingID == bookingID {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

// ReportRepo denuncias en memoria.
type ReportRepo struct{ s *Store }

// NewReportRepository construye el repo.
func NewReportRepository(s *Store) *ReportRepo { return &ReportRepo{s: s} }

func (r *ReportRepo) Create(_ context.Context, rep *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *rep
	r.s.reports[rep.ID] = &c
	return nil
}

func (r *ReportRepo) List(_ context.Context) ([]*entity.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Report, 0, len(r.s.reports))
	for _, rep := range r.s.reports {
		c := *rep
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ReportRepo) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[id]; !ok {
		return 0, nil
	}
	delete(r.s.reports, id)
	return 1, nil
}
