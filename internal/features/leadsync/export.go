package leadsync

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"Client Name", "Mobile", "Email", "Area", "Enquiry For", "Configuration",
	"Budget", "Created Date", "Status", "Enquiry ID", "Error",
}

// ExportRunToExcel renders a run's per-lead outcomes as a single sheet.
func ExportRunToExcel(run *SyncRun) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leads"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, d := range run.Details {
		row := []interface{}{
			d.Lead.ClientName, d.Lead.Mobile, d.Lead.Email, d.Lead.Area, d.Lead.EnquiryFor,
			d.Lead.Configuration, d.Lead.Budget, d.Lead.CreatedDate, string(d.Status), d.ID, d.Error,
		}
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range exportColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buffer.Bytes(), fmt.Sprintf("lead-sync-%s.xlsx", run.RunID), nil
}
