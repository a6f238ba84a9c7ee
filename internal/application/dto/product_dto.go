package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para publicar una bicicleta.
type CreateProductRequest struct {
	Email         string          `json:"email" validate:"required,email"`
	SellerName    string          `json:"sellerName"`
	Category      string          `json:"category" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Condition     string          `json:"condition"`
	Location      string          `json:"location"`
	Phone         string          `json:"phone"`
	Image         string          `json:"image"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	ResalePrice   decimal.Decimal `json:"resalePrice"`
	YearsOfUse    int             `json:"yearsOfUse"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"_id"`
	Email         string          `json:"email"`
	SellerName    string          `json:"sellerName"`
	Category      string          `json:"category"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Condition     string          `json:"condition"`
	Location      string          `json:"location"`
	Phone         string          `json:"phone"`
	Image         string          `json:"image"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	ResalePrice   decimal.Decimal `json:"resalePrice"`
	YearsOfUse    int             `json:"yearsOfUse"`
	IsVerified    bool            `json:"isVerified"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
