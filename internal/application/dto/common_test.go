package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocky-api/internal/application/dto"
)

func TestDate_UnmarshalFormatos(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"fecha simple", `"2026-10-15"`, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 utc", `"2026-10-15T08:30:00Z"`, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 con desfase conserva el día local", `"2026-10-15T23:00:00-05:00"`, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 desfase positivo", `"2026-10-15T00:30:00+02:00"`, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d dto.Date
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, d.Time)
		})
	}
}

func TestDate_CadenaVaciaEsError(t *testing.T) {
	for _, body := range []string{
		`{"serial_numbers":["SN-1"],"item_id":"item-1","delivered_at":""}`,
		`{"serial_numbers":["SN-1"],"item_id":"item-1","delivered_at":"null"}`,
		`{"delivered_at":"15/10/2026"}`,
		`{"delivered_at":20261015}`,
	} {
		var req dto.RegisterDeliveryRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestDate_NullYAusenteSonNil(t *testing.T) {
	var req dto.RegisterDeliveryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"delivered_at":null}`), &req))
	assert.Nil(t, req.DeliveredAt)
	assert.Nil(t, req.DeliveredAt.TimePtr())

	var a dto.CreateAssignmentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"serial_id":"s-1","assignee_user_id":"u-1"}`), &a))
	assert.Nil(t, a.StartDate)
}

func TestDate_TimePtrIgnoraFechaCero(t *testing.T) {
	assert.Nil(t, (&dto.Date{}).TimePtr())

	d := dto.NewDate(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, d.TimePtr())
	assert.Equal(t, d.Time, *d.TimePtr())
}

func TestDate_MarshalSoloFecha(t *testing.T) {
	b, err := json.Marshal(dto.NewDate(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-15"`, string(b))
}
