package entity

import "time"

// Delivery recepción física contra una orden. Origen de los seriales nuevos.
type Delivery struct {
	ID              string
	OrderID         string
	DeliveryNoteRef string
	DeliveredAt     time.Time // fecha
	CreatedAt       time.Time
}
