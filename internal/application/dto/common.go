package dto

import (
	"fmt"
	"strconv"
	"time"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateLayout formato de fecha (sin hora) en la API.
const DateLayout = "2006-01-02"

// Date fecha de calendario serializada como "2006-01-02".
type Date struct {
	time.Time
}

// NewDate envuelve t (se asume ya truncada a fecha).
func NewDate(t time.Time) Date { return Date{Time: t} }

// DatePtr convierte un *time.Time opcional en *Date.
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := Date{Time: *t}
	return &d
}

// TimePtr devuelve el time.Time de un *Date opcional. La fecha cero cuenta como ausente.
func (d *Date) TimePtr() *time.Time {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// MarshalJSON implementa json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON acepta "2006-01-02" o RFC3339. El literal null deja la fecha intacta;
// una cadena vacía (o "null" entre comillas) es un error, no una fecha ausente.
// En RFC3339 la fecha es la del propio desfase, sin pasar antes a UTC.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("fecha inválida %s: se espera una cadena AAAA-MM-DD", b)
	}
	if s == "" || s == "null" {
		return fmt.Errorf("fecha vacía: se espera AAAA-MM-DD u omitir el campo")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("fecha inválida %q: se espera AAAA-MM-DD", s)
		}
	}
	y, m, day := t.Date()
	d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return nil
}
