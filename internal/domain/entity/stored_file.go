package entity

import "time"

// Tipos de entidad que admiten adjuntos.
const (
	FileEntityOrder      = "order"
	FileEntityItem       = "item"
	FileEntitySerial     = "serial"
	FileEntityAssignment = "assignment"
)

// StoredFile documento adjunto a una entidad. Content solo se carga en la descarga.
type StoredFile struct {
	ID         string
	EntityType string
	EntityID   string
	Filename   string
	Mime       string
	Size       int64
	Content    []byte
	CreatedAt  time.Time
}
