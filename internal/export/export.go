package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/payroll"
)

const (
	SectionEmployees = "--- Employee details ---"
	SectionUnits     = "--- Unit statistics ---"
	SectionCompany   = "--- Company statistics ---"

	CompanyScope = "Company (global)"
)

var (
	EmployeeHeader = []string{"Unit", "Name", "Job", "Monthly Salary", "Overtime Hours"}
	UnitHeader     = []string{"Unit", "Minimum Salary", "Maximum Salary", "Average Salary"}
	CompanyHeader  = []string{"Scope", "Minimum Salary", "Maximum Salary", "Average Salary"}
)

// Exporter serializes a report in one file format.
type Exporter interface {
	Export(w io.Writer, report *payroll.Report) error
	ContentType() string
	Extension() string
}

// ForFormat returns the exporter of a configured format.
func ForFormat(format string) (Exporter, error) {
	switch format {
	case internal.FormatCSV, "":
		return NewCSVExporter(), nil
	case internal.FormatXLSX:
		return NewXLSXExporter(), nil
	default:
		return nil, internal.ErrUnsupportedFormat.WithCause(fmt.Errorf("format %q", format))
	}
}

// WriteFile writes the report to path, replacing any existing file.
func WriteFile(exp Exporter, report *payroll.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return internal.ErrExportFailed.WithCause(err)
	}

	bw := bufio.NewWriter(f)
	if err := exp.Export(bw, report); err != nil {
		_ = f.Close()
		return internal.ErrExportFailed.WithCause(err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return internal.ErrExportFailed.WithCause(err)
	}
	if err := f.Close(); err != nil {
		return internal.ErrExportFailed.WithCause(err)
	}
	return nil
}

// FormatAmount renders a value with two decimals. Rounding only ever
// happens here, never on values used for further computation.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func statsRecord(label string, s payroll.Stats) []string {
	return []string{label, FormatAmount(s.Min), FormatAmount(s.Max), FormatAmount(s.Average)}
}
