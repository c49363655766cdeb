package reporting

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// WorkbookSheet is the sheet name used by WriteWorkbook.
const WorkbookSheet = "Inventory"

// WriteWorkbook renders the same rows as the Sheets snapshot into an xlsx
// workbook and writes it to w.
func WriteWorkbook(w io.Writer, items []models.InventoryItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WorkbookSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range SnapshotRows(items) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(WorkbookSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(WorkbookSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
