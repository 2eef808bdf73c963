package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleStorekeeper = "storekeeper"
	RoleBuyer       = "buyer"
	RoleViewer      = "viewer"
)

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStorekeeper, RoleBuyer, RoleViewer:
		return true
	}
	return false
}

// User usuario de referencia (gestionado fuera del servicio). Puede recibir asignaciones.
type User struct {
	ID           string
	DisplayName  string
	Email        string
	Department   string
	Site         string
	Role         string // admin, storekeeper, buyer, viewer
	PasswordHash string // bcrypt; vacío = sin acceso por login
	CreatedAt    time.Time
}
