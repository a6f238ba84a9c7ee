package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

// ReportUseCase flujo de moderación: crear, listar y eliminar denuncias.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Submit registra una denuncia contra un producto.
func (uc *ReportUseCase) Submit(ctx context.Context, in dto.CreateReportRequest) (*dto.InsertResult, error) {
	if strings.TrimSpace(in.ProductID) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, domain.ErrInvalidInput
	}
	report := &entity.Report{
		ID:            uuid.New().String(),
		ProductRef:    strings.TrimSpace(in.ProductID),
		ProductName:   in.ProductName,
		ReporterEmail: strings.TrimSpace(in.Email),
		Reason:        in.Reason,
		CreatedAt:     now(),
	}
	if err := uc.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return dto.Inserted(report.ID), nil
}

// List devuelve todas las denuncias.
func (uc *ReportUseCase) List(ctx context.Context) ([]dto.ReportResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ReportResponse{
			ID:          r.ID,
			ProductID:   r.ProductRef,
			ProductName: r.ProductName,
			Email:       r.ReporterEmail,
			Reason:      r.Reason,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

// Delete elimina una denuncia por ID.
func (uc *ReportUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	n, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.Deleted(n), nil
}
