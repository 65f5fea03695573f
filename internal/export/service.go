package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lkoehler/ladeplan/internal/entity"
	"github.com/lkoehler/ladeplan/internal/plan"
)

// Sheet names of the exported workbook.
const (
	ComponentsSheet = "Bauteile"
	SummarySheet    = "Summary"
)

// Service produces XLSX bytes for the currently filtered view of a plan.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportXLSX applies the filter to the plan and returns a workbook with a
// component sheet and a per-truck summary sheet. The rows match the
// filtered view exactly; missing weights stay blank cells.
func (s *Service) ExportXLSX(ctx context.Context, p *entity.LoadingPlan, f plan.Filter) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	visible := plan.Apply(p, f)
	bundles := plan.BundleRecords(p, f)
	sums := plan.Summarize(visible, bundles)

	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", ComponentsSheet); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(SummarySheet); err != nil {
		return nil, err
	}

	if err := writeComponents(wb, visible); err != nil {
		return nil, err
	}
	if err := writeSummary(wb, sums); err != nil {
		return nil, err
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"plan_id", p.ID.String(),
		"rows", len(visible),
		"trucks", len(sums),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeComponents(wb *excelize.File, records []entity.ComponentRecord) error {
	headers := []string{
		"Bauteil",
		"Pritsche",
		"Anhänger",
		"Gewicht [kg]",
		"Rohr",
		"Seite",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(ComponentsSheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, r := range records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = wb.SetCellValue(ComponentsSheet, cell, v)
		}

		write(1, r.ComponentID)
		write(2, r.TruckID)
		write(3, r.TrailerID)
		// 4) weight: blank when missing, never zero
		if r.Weight != nil {
			write(4, *r.Weight)
		}
		if r.IsPipe {
			write(5, "x")
		}
		write(6, r.Page)

		row++
	}

	// Widen a few columns
	_ = wb.SetColWidth(ComponentsSheet, "A", "A", 16) // component
	_ = wb.SetColWidth(ComponentsSheet, "B", "C", 12) // units
	_ = wb.SetColWidth(ComponentsSheet, "D", "D", 14) // weight
	return nil
}

func writeSummary(wb *excelize.File, sums []entity.TruckSummary) error {
	headers := []string{
		"Pritsche",
		"Anzahl Elemente",
		"Gesamtgewicht [kg]",
		"Info",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(SummarySheet, cell, h); err != nil {
			return err
		}
	}

	rows := append(append([]entity.TruckSummary{}, sums...), plan.Total(sums))
	for i, s := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, i+2)
			_ = wb.SetCellValue(SummarySheet, cell, v)
		}
		write(1, s.TruckID)
		write(2, s.Count)
		write(3, s.TotalWeightKg)
		write(4, s.Info)
	}

	_ = wb.SetColWidth(SummarySheet, "A", "A", 14)
	_ = wb.SetColWidth(SummarySheet, "B", "C", 18)
	_ = wb.SetColWidth(SummarySheet, "D", "D", 40)
	return nil
}
