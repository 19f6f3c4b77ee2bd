package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/pages"
)

func TestExportPagesXLSX(t *testing.T) {
	backend, err := pages.OpenSQLite(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := pages.NewStore(context.Background(), backend, pages.DefaultCatalog(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()

	svc := NewService(store, nil)
	out, err := svc.ExportPagesXLSX(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	for _, entry := range pages.DefaultCatalog() {
		if idx, _ := wb.GetSheetIndex(entry.Name); idx == -1 {
			t.Errorf("workbook missing sheet %s", entry.Name)
		}
	}

	// Home page sheet carries its bootstrap default value.
	rows, err := wb.GetRows(constants.HomePageDoc)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	found := false
	for _, row := range rows[1:] {
		if len(row) >= 2 && row[0] == "homeVideoUrl" && row[1] == pages.DefaultHomeVideoURL {
			found = true
		}
	}
	if !found {
		t.Error("homeVideoUrl row missing from home page sheet")
	}
}
