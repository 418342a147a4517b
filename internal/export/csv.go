package export

import (
	"encoding/csv"
	"io"

	"github.com/frahmantamala/payroll-report/internal/payroll"
)

// CSVExporter writes the three-section comma separated layout: employee
// rows, unit statistics, company statistics, separated by blank lines.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (e *CSVExporter) Extension() string {
	return ".csv"
}

func (e *CSVExporter) Export(w io.Writer, report *payroll.Report) error {
	cw := csv.NewWriter(w)

	records := [][]string{{SectionEmployees}, EmployeeHeader}
	for _, row := range report.Rows {
		records = append(records, []string{
			row.Unit,
			row.Name,
			row.Job,
			FormatAmount(row.MonthlySalary),
			FormatAmount(row.OvertimeHours),
		})
	}

	records = append(records, []string{}, []string{SectionUnits}, UnitHeader)
	for _, row := range report.UnitRows {
		records = append(records, statsRecord(row.Unit, row.Stats))
	}

	records = append(records, []string{}, []string{SectionCompany}, CompanyHeader)
	if report.EmployeeCount > 0 {
		records = append(records, statsRecord(CompanyScope, report.Company))
	}

	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
