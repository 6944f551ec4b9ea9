package entity

import "time"

// Roles válidos para User. El rol contador solo puede registrar conteos de
// inventario; no opera el resto del sistema.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleContador  = "contador"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, contador
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
