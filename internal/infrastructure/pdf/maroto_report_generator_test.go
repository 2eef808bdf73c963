package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/infrastructure/pdf"
)

func TestMarotoReportGenerator_Generate(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("es")
	report := dto.ReportResponse{
		Title: "Stock por sede",
		Rows: []dto.ReportRow{
			{Key: "Madrid", Value: 1250},
			{Key: "", Value: 3},
		},
	}

	out, err := g.Generate(report, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoReportGenerator_SinFilas(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("")

	out, err := g.Generate(dto.ReportResponse{Title: "Vacío"}, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
