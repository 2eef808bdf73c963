package entity

import "time"

// Assignment préstamo de un serial a un usuario. EndDate nil mientras está activo.
type Assignment struct {
	ID                 string
	SerialID           string
	AssigneeUserID     string
	StartDate          time.Time
	ExpectedReturnDate *time.Time
	EndDate            *time.Time
	DocumentFileID     string
	Notes              string
	CreatedAt          time.Time
}

// Active indica si la asignación sigue abierta.
func (a *Assignment) Active() bool {
	return a.EndDate == nil
}
