package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Attendance Report"

var reportHeader = []any{
	"Date", "Employee ID", "Employee Name", "Department",
	"Check In", "Check Out", "Status", "Working Hours", "Permissions", "Remarks",
}

func (s *service) Export(ctx context.Context, q ReportQuery) ([]byte, string, error) {
	start, end := s.parseRange(q)

	days, perms, err := s.buildGrid(ctx, q, start, end)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", err
	}
	if err := f.SetSheetRow(sheetName, "A1", &reportHeader); err != nil {
		return nil, "", err
	}

	widths := headerWidths()
	for i, d := range days {
		row := s.renderRow(d, perms)
		cells := []any{
			row.Date, row.EmployeeCode, row.EmployeeName, row.Department,
			row.CheckIn, row.CheckOut, row.Status,
			workingHoursCell(row.WorkingHours), row.Permissions, row.Remarks,
		}
		axis := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheetName, axis, &cells); err != nil {
			return nil, "", err
		}
		trackWidths(widths, cells)
	}
	applyWidths(f, widths)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_report_%s_to_%s.xlsx",
		start.Format("20060102"), end.Format("20060102"))
	s.logger.Info("attendance report exported",
		zap.String("filename", filename),
		zap.Int("rows", len(days)),
	)
	return buf.Bytes(), filename, nil
}

func workingHoursCell(h *float64) any {
	if h == nil {
		return ""
	}
	return *h
}

func headerWidths() []float64 {
	widths := make([]float64, len(reportHeader))
	trackWidths(widths, reportHeader)
	return widths
}

func trackWidths(widths []float64, cells []any) {
	for i, cell := range cells {
		if w := float64(len(fmt.Sprint(cell))); w > widths[i] {
			widths[i] = w
		}
	}
}

func applyWidths(f *excelize.File, widths []float64) {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		f.SetColWidth(sheetName, col, col, w+5)
	}
}
