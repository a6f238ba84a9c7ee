package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

// BookingUseCase creación y consulta de reservas.
type BookingUseCase struct {
	repo repository.BookingRepository
}

// NewBookingUseCase construye el caso de uso.
func NewBookingUseCase(repo repository.BookingRepository) *BookingUseCase {
	return &BookingUseCase{repo: repo}
}

// Create inserta una reserva sin pagar. No se controlan duplicados por producto/comprador:
// varios compradores pueden reservar el mismo producto antes de que uno pague.
func (uc *BookingUseCase) Create(ctx context.Context, in dto.CreateBookingRequest) (*dto.InsertResult, error) {
	email := strings.TrimSpace(in.Email)
	productID := strings.TrimSpace(in.ProductID)
	if email == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	ts := time.Now()
	b := &entity.Booking{
		ID:           uuid.New().String(),
		BuyerEmail:   email,
		BuyerName:    in.BuyerName,
		ProductRef:   productID,
		ProductName:  in.ProductName,
		Price:        in.Price,
		Phone:        in.Phone,
		MeetLocation: in.MeetLocation,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return dto.Inserted(b.ID), nil
}

// GetByID obtiene una reserva. Devuelve (nil, nil) si no existe.
func (uc *BookingUseCase) GetByID(ctx context.Context, id string) (*dto.BookingResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking: obtener reserva: %w", err)
	}
	if b == nil {
		return nil, nil
	}
	out := toBookingResponse(b)
	return &out, nil
}

// ListByBuyer lista las reservas del comprador. requesterEmail es la identidad del token
// y debe coincidir con email; si no, domain.ErrForbidden sin tocar la base.
func (uc *BookingUseCase) ListByBuyer(ctx context.Context, requesterEmail, email string) ([]dto.BookingResponse, error) {
	if requesterEmail == "" || !strings.EqualFold(strings.TrimSpace(requesterEmail), strings.TrimSpace(email)) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListByBuyer(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("booking: listar reservas: %w", err)
	}
	out := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b))
	}
	return out, nil
}

func toBookingResponse(b *entity.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:            b.ID,
		Email:         b.BuyerEmail,
		BuyerName:     b.BuyerName,
		ProductID:     b.ProductRef,
		ProductName:   b.ProductName,
		Price:         b.Price,
		Phone:         b.Phone,
		MeetLocation:  b.MeetLocation,
		Paid:          b.Paid,
		TransactionID: b.TransactionID,
		CreatedAt:     b.CreatedAt,
	}
}
