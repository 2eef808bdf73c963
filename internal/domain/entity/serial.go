package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SerialStatus estado físico de una unidad serializada (valor persistido).
type SerialStatus string

const (
	SerialInStock  SerialStatus = "in_stock"
	SerialAssigned SerialStatus = "assigned"
	SerialInRepair SerialStatus = "in_repair"
	SerialRetired  SerialStatus = "retired"
)

// ParseSerialStatus valida un estado recibido desde fuera.
func ParseSerialStatus(s string) (SerialStatus, bool) {
	switch st := SerialStatus(s); st {
	case SerialInStock, SerialAssigned, SerialInRepair, SerialRetired:
		return st, true
	}
	return "", false
}

// SerialState estado de un serial como tipo suma cerrado:
// InStock | AssignedTo{UserID} | InRepair | Retired.
// El usuario asignado solo existe dentro de AssignedTo, así que estado y asignatario
// no pueden quedar desalineados.
type SerialState interface {
	Status() SerialStatus
	serialState()
}

// InStock disponible en almacén.
type InStock struct{}

// AssignedTo prestado al usuario UserID.
type AssignedTo struct {
	UserID string
}

// InRepair en reparación.
type InRepair struct{}

// Retired dado de baja.
type Retired struct{}

func (InStock) Status() SerialStatus    { return SerialInStock }
func (AssignedTo) Status() SerialStatus { return SerialAssigned }
func (InRepair) Status() SerialStatus   { return SerialInRepair }
func (Retired) Status() SerialStatus    { return SerialRetired }

func (InStock) serialState()    {}
func (AssignedTo) serialState() {}
func (InRepair) serialState()   {}
func (Retired) serialState()    {}

// StateFor construye el estado sin asignatario correspondiente a status.
// Para SerialAssigned usar AssignedTo directamente.
func StateFor(status SerialStatus) (SerialState, error) {
	switch status {
	case SerialInStock:
		return InStock{}, nil
	case SerialInRepair:
		return InRepair{}, nil
	case SerialRetired:
		return Retired{}, nil
	}
	return nil, fmt.Errorf("serial: el estado %q requiere asignatario", status)
}

// StateFromColumns reconstruye el estado desde las columnas (status, current_assignee_user_id).
func StateFromColumns(status string, assigneeID *string) (SerialState, error) {
	st, ok := ParseSerialStatus(status)
	if !ok {
		return nil, fmt.Errorf("serial: estado desconocido %q", status)
	}
	hasAssignee := assigneeID != nil && *assigneeID != ""
	if st == SerialAssigned {
		if !hasAssignee {
			return nil, fmt.Errorf("serial: estado assigned sin asignatario")
		}
		return AssignedTo{UserID: *assigneeID}, nil
	}
	if hasAssignee {
		return nil, fmt.Errorf("serial: estado %s con asignatario %s", st, *assigneeID)
	}
	return StateFor(st)
}

// StateColumns descompone el estado en las columnas persistidas.
func StateColumns(s SerialState) (SerialStatus, *string) {
	if a, ok := s.(AssignedTo); ok {
		id := a.UserID
		return SerialAssigned, &id
	}
	return s.Status(), nil
}

// Serial unidad física de un Item, identificada por un número de serie único.
type Serial struct {
	ID            string
	ItemID        string
	SerialNumber  string
	DeliveryID    string
	DeliveryDate  *time.Time
	WarrantyStart *time.Time
	WarrantyEnd   *time.Time
	SupplierID    string
	PurchasePrice *decimal.Decimal
	State         SerialState
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CurrentAssignee devuelve el usuario asignado o "" si no está asignado.
func (s *Serial) CurrentAssignee() string {
	if a, ok := s.State.(AssignedTo); ok {
		return a.UserID
	}
	return ""
}
