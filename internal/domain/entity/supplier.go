package entity

import "time"

// Supplier proveedor. Inmutable una vez creado.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}
