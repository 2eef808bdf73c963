package inventory

import "time"

// DefaultWarrantyDays duración de garantía cuando la entrega no indica otra.
const DefaultWarrantyDays = 365

// DateOf trunca t a la fecha (medianoche UTC).
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WarrantyWindow calcula [inicio, fin] de la garantía anclada a la fecha de entrega.
// days <= 0 usa DefaultWarrantyDays.
func WarrantyWindow(deliveredAt time.Time, days int) (start, end time.Time) {
	if days <= 0 {
		days = DefaultWarrantyDays
	}
	start = DateOf(deliveredAt)
	return start, start.AddDate(0, 0, days)
}
