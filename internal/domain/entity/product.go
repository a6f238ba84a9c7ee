package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es una bicicleta publicada por un vendedor.
// IsVerified se hereda de la verificación del vendedor (OwnerEmail).
type Product struct {
	ID            string
	OwnerEmail    string
	OwnerName     string
	Category      string
	Name          string
	Description   string
	Condition     string // excellent, good, fair
	Location      string
	Phone         string
	ImageURL      string
	OriginalPrice decimal.Decimal
	ResalePrice   decimal.Decimal
	YearsOfUse    int
	IsVerified    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
