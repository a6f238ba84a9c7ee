package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo denuncias sobre PostgreSQL.
type ReportRepo struct {
	db Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(db Querier) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reports (id, product_ref, product_name, reporter_email, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rep.ID, rep.ProductRef, rep.ProductName, rep.ReporterEmail, nullIfEmpty(rep.Reason), rep.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepo) List(ctx context.Context) ([]*entity.Report, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_ref, product_name, reporter_email, reason, created_at
		FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.Report
	for rows.Next() {
		var rep entity.Report
		var reason *string
		if err := rows.Scan(&rep.ID, &rep.ProductRef, &rep.ProductName, &rep.ReporterEmail, &reason, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rep.Reason = fromNull(reason)
		list = append(list, &rep)
	}
	return list, rows.Err()
}

func (r *ReportRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete report: %w", err)
	}
	return tag.RowsAffected(), nil
}
