package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/frahmantamala/payroll-report/internal/payroll"
)

const separator = "=================================================="

// WriteSummary prints the per-employee salaries of each unit followed by the
// unit and company statistics. Name and job columns are padded to the
// longest value across the whole report.
func WriteSummary(w io.Writer, r *payroll.Report) error {
	bw := bufio.NewWriter(w)

	nameWidth, jobWidth := 0, 0
	for _, u := range r.Units {
		for _, e := range u.Employees {
			nameWidth = max(nameWidth, utf8.RuneCountInString(e.Name))
			jobWidth = max(jobWidth, utf8.RuneCountInString(e.Job))
		}
	}

	for _, u := range r.Units {
		fmt.Fprintf(bw, "\nUnit: %s\n\n", u.Name)
		for _, e := range u.Employees {
			fmt.Fprintf(bw, "%s | %s | Monthly salary : %.2f€\n",
				pad(e.Name, nameWidth), pad(e.Job, jobWidth), e.MonthlySalary)
		}
		fmt.Fprintf(bw, "\n%s\n", separator)
		fmt.Fprintf(bw, "Salary statistics for %s\n", u.Name)
		writeStats(bw, u.Stats)
	}

	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw, "Company statistics:")
	writeStats(bw, r.Company)

	return bw.Flush()
}

func writeStats(w io.Writer, s payroll.Stats) {
	fmt.Fprintf(w, "Minimum salary : %.2f€\n", s.Min)
	fmt.Fprintf(w, "Maximum salary : %.2f€\n", s.Max)
	fmt.Fprintf(w, "Average salary : %.2f€\n\n", s.Average)
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
