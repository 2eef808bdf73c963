package entity

import (
	"encoding/json"
	"time"
)

// Tipos de entidad registrados en el log de actividad.
const (
	ActivityOrder      = "order"
	ActivityItem       = "item"
	ActivitySerial     = "serial"
	ActivityAssignment = "assignment"
	ActivitySupplier   = "supplier"
	ActivityFile       = "file"
)

// ActivityLog entrada de auditoría append-only.
type ActivityLog struct {
	ID          string
	EntityType  string
	EntityID    string
	Action      string
	ActorUserID string
	At          time.Time
	Payload     json.RawMessage
}
