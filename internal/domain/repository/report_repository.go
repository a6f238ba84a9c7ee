package repository

import (
	"context"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
)

// ReportRepository define el puerto de persistencia para Report.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	List(ctx context.Context) ([]*entity.Report, error)
	Delete(ctx context.Context, id string) (int64, error)
}
