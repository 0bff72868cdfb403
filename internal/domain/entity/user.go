package entity

import "time"

// Roles válidos para User.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Estados válidos para User.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User representa una cuenta de la tienda, local o creada vía Google.
// PasswordHash queda vacío solo si la cuenta nació por login externo;
// una cuenta sin hash nunca puede autenticarse con contraseña.
type User struct {
	ID           string
	Name         string
	Email        string // siempre en minúsculas; único a nivel de store
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // customer, admin
	Status       string // active, inactive
	GoogleID     string // subject id del proveedor; vacío si no está vinculada
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLoginWithPassword indica si la cuenta tiene credencial local.
func (u *User) CanLoginWithPassword() bool {
	return u.PasswordHash != ""
}

// IsAdmin indica si la cuenta tiene rol administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole valida el rol contra el enum.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}

// ValidStatus valida el estado contra el enum.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
