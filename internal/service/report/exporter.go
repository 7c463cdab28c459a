// Package report renders filtered service listings into downloadable
// spreadsheet files.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/internal/service/billing"
)

const sheetName = "Sheet1"

// ContentType is the MIME type of the produced spreadsheet.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column order of the exported sheet. The header row is always written,
// even when no record matches the filter.
var columns = []string{
	"Hospital",
	"Patient Name",
	"Patient Number",
	"Service Date",
	"Days of Service",
	"Amount Charged",
	"Anesthesia Type",
	"Medication Used",
	"Created At",
}

type Exporter struct {
	billing billing.ServiceServicer
	now     func() time.Time
}

func NewExporter(billingSvc billing.ServiceServicer) *Exporter {
	return &Exporter{billing: billingSvc, now: time.Now}
}

// Export runs the same filtering contract as the service listing and
// renders the result as an xlsx file. The suggested filename embeds a
// generation timestamp so repeated exports do not collide.
func (e *Exporter) Export(ctx context.Context, ownerID uuid.UUID, filter model.ServiceFilter) ([]byte, string, error) {
	services, err := e.billing.ListServices(ctx, ownerID, filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load services for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, "", fmt.Errorf("failed to write header row: %w", err)
	}

	for i, s := range services {
		medication := ""
		if s.MedicationUsed != nil {
			medication = *s.MedicationUsed
		}
		row := []interface{}{
			s.HospitalName,
			s.PatientName,
			s.PatientNumber,
			s.ServiceDate.Format("2006-01-02"),
			s.DaysOfService,
			s.AmountCharged,
			s.AnesthesiaType,
			medication,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	filename := fmt.Sprintf("anesthetist_services_%s.xlsx", e.now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
