package export

import (
	"fmt"
	"io"
	"math"

	"github.com/frahmantamala/payroll-report/internal/payroll"
	"github.com/xuri/excelize/v2"
)

const (
	SheetEmployees = "Employees"
	SheetUnits     = "Units"
	SheetCompany   = "Company"
)

// XLSXExporter writes one worksheet per section.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXExporter) Extension() string {
	return ".xlsx"
}

func (e *XLSXExporter) Export(w io.Writer, report *payroll.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	employees := make([][]interface{}, 0, len(report.Rows))
	for _, row := range report.Rows {
		employees = append(employees, []interface{}{
			row.Unit, row.Name, row.Job, round2(row.MonthlySalary), round2(row.OvertimeHours),
		})
	}

	units := make([][]interface{}, 0, len(report.UnitRows))
	for _, row := range report.UnitRows {
		units = append(units, statsCells(row.Unit, row.Stats))
	}

	var company [][]interface{}
	if report.EmployeeCount > 0 {
		company = append(company, statsCells(CompanyScope, report.Company))
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]interface{}
	}{
		{SheetEmployees, EmployeeHeader, employees},
		{SheetUnits, UnitHeader, units},
		{SheetCompany, CompanyHeader, company},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}

		sw, err := f.NewStreamWriter(sheet.name)
		if err != nil {
			return fmt.Errorf("failed to create stream writer: %w", err)
		}

		header := make([]interface{}, len(sheet.header))
		for j, h := range sheet.header {
			header[j] = h
		}
		if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
			return err
		}

		for j, row := range sheet.rows {
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			if err := sw.SetRow(cell, row); err != nil {
				return err
			}
		}

		if err := sw.Flush(); err != nil {
			return fmt.Errorf("failed to flush stream: %w", err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func statsCells(label string, s payroll.Stats) []interface{} {
	return []interface{}{label, round2(s.Min), round2(s.Max), round2(s.Average)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
