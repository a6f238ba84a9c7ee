package entity

import "time"

// Roles válidos para User.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User representa un usuario del marketplace. El email es la identidad (único).
type User struct {
	ID         string
	Email      string
	Name       string
	Role       string // buyer, seller, admin
	IsVerified bool   // solo aplica a vendedores; lo activa un admin
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// HasRole compara el rol persistido. Un usuario nil no tiene ningún rol.
func (u *User) HasRole(role string) bool {
	return u != nil && u.Role == role
}
