package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/dmaresco/cellarscan/internal/repository"
)

// exportRowLimit bounds one workbook. Cellars past this size need paging the
// export has no UI for yet.
const exportRowLimit = 10000

// Service is a tiny façade over the wine repository that produces XLSX bytes
// for cellar exports.
type Service struct {
	wines  repository.WineRepository
	logger *slog.Logger
}

func NewService(wines repository.WineRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{wines: wines, logger: logger}
}

// ExportCellarXLSX returns an XLSX workbook (as bytes) listing the owner's
// wines in insertion order.
func (s *Service) ExportCellarXLSX(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	start := time.Now()

	recs, err := s.wines.ListByOwner(ctx, ownerID, exportRowLimit)
	if err != nil {
		return nil, fmt.Errorf("query wines: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Cellar"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Name",
		"Producer",
		"Vintage",
		"Type",
		"Region",
		"Country",
		"ABV %",
		"Grapes",
		"Added",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, w := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, w.Name)
		write(2, deref(w.Producer))
		write(3, deref(w.Vintage))
		write(4, w.Type)
		write(5, deref(w.Region))
		write(6, deref(w.Country))
		if w.AlcoholContent != nil {
			write(7, fmt.Sprintf("%.1f", *w.AlcoholContent))
		} else {
			write(7, "")
		}
		write(8, strings.Join(w.Grapes, ", "))
		if !w.CreatedAt.IsZero() {
			write(9, w.CreatedAt.Format("2006-01-02"))
		} else {
			write(9, "")
		}

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 32) // name
	_ = f.SetColWidth(sheet, "B", "B", 28) // producer
	_ = f.SetColWidth(sheet, "C", "C", 10) // vintage
	_ = f.SetColWidth(sheet, "D", "D", 12) // type
	_ = f.SetColWidth(sheet, "E", "F", 18) // region, country
	_ = f.SetColWidth(sheet, "G", "G", 8)  // abv
	_ = f.SetColWidth(sheet, "H", "H", 36) // grapes
	_ = f.SetColWidth(sheet, "I", "I", 12) // added

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"owner_id", ownerID.String(),
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
