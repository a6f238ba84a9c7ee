package dto

import "time"

// CreateUserRequest entrada de registro (POST /users). Solo buyer o seller.
type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Role  string `json:"role" validate:"omitempty,oneof=buyer seller"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID         string    `json:"_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TokenResponse salida de GET /jwt. AccessToken vacío cuando el email no está registrado.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// IsAdminResponse respuesta de GET /users/admin/:email.
type IsAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// IsSellerResponse respuesta de GET /users/seller/:email.
type IsSellerResponse struct {
	IsSeller bool `json:"isSeller"`
}

// IsBuyerResponse respuesta de GET /users/buyer/:email.
type IsBuyerResponse struct {
	IsBuyer bool `json:"isBuyer"`
}

// VerifySellerResponse resultado de PUT /verifySeller/:email.
type VerifySellerResponse struct {
	UpdateResult
	ProductsVerified int64 `json:"productsVerified"`
}
