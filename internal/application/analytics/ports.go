package analytics

import (
	"time"

	"github.com/jhoicas/stocky-api/internal/application/dto"
)

// ReportPDFGenerator puerto de salida para renderizar un informe tabular en PDF.
// La implementación concreta vive en infrastructure/pdf.
type ReportPDFGenerator interface {
	Generate(report dto.ReportResponse, generatedAt time.Time) ([]byte, error)
}
