package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stocky-api/internal/domain/inventory"
)

func TestWarrantyWindow(t *testing.T) {
	delivered := time.Date(2026, 2, 1, 17, 45, 0, 0, time.UTC)

	start, end := inventory.WarrantyWindow(delivered, 0)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, start.AddDate(0, 0, inventory.DefaultWarrantyDays), end)

	_, end = inventory.WarrantyWindow(delivered, 30)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), end)
}
