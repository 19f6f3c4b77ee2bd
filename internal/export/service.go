// Package export produces XLSX snapshots of the page documents for offline
// review by the content team.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gdg-fisk/content-pipeline/internal/pages"
)

// Service is a tiny façade over the page store that produces XLSX bytes.
type Service struct {
	store  *pages.Store
	logger *slog.Logger
}

func NewService(store *pages.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportPagesXLSX returns an XLSX workbook with one sheet per catalog
// document. Scalar fields are written as-is; structured fields are written as
// compact JSON, truncated to keep cells readable.
func (s *Service) ExportPagesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	firstSheet := true
	docs := 0

	for _, entry := range s.store.Catalog() {
		fields, ok, err := s.store.GetDocument(ctx, entry.Name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name, err)
		}
		if !ok {
			s.logger.Warn("export.xlsx.missing_doc", "doc", entry.Name)
			continue
		}

		sheet := entry.Name
		if firstSheet {
			// Rename the workbook's default sheet instead of leaving it empty.
			defaultName := f.GetSheetName(0)
			if err := f.SetSheetName(defaultName, sheet); err != nil {
				return nil, err
			}
			firstSheet = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}

		headers := []string{"Field", "Value"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}

		row := 2
		for _, field := range sortedKeys(fields) {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			write(1, field)
			write(2, cellValue(fields[field]))
			row++
		}

		_ = f.SetColWidth(sheet, "A", "A", 24)
		_ = f.SetColWidth(sheet, "B", "B", 100)
		docs++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"docs", docs,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// cellValue flattens a field into one spreadsheet cell.
func cellValue(v any) string {
	switch t := v.(type) {
	case string:
		return truncate(t, 500)
	case nil:
		return ""
	case float64, bool, int, int64:
		return fmt.Sprintf("%v", t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return truncate(string(raw), 500)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
