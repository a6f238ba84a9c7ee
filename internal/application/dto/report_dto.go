package dto

import "time"

// CreateReportRequest entrada de POST /reports.
type CreateReportRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	ProductName string `json:"productName"`
	Email       string `json:"email" validate:"required,email"`
	Reason      string `json:"reason"`
}

// ReportResponse salida de una denuncia.
type ReportResponse struct {
	ID          string    `json:"_id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Email       string    `json:"email"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
}
