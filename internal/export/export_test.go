package export_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/export"
	"github.com/frahmantamala/payroll-report/internal/payroll"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *payroll.Report {
	return payroll.Aggregate(payroll.Dataset{Units: []payroll.Unit{
		{Name: "North", Employees: []payroll.Employee{
			{Name: "Alice", Job: "Engineer", HourlyRate: 20, WeeklyHoursWorked: 42, ContractHours: 35},
			{Name: "Bob", Job: "Clerk", HourlyRate: 15, WeeklyHoursWorked: 30, ContractHours: 35},
		}},
		{Name: "South, East", Employees: []payroll.Employee{
			{Name: "Chloé", Job: "Manager", HourlyRate: 30, WeeklyHoursWorked: 39, ContractHours: 39},
		}},
	}})
}

const sampleCSV = `--- Employee details ---
Unit,Name,Job,Monthly Salary,Overtime Hours
North,Alice,Engineer,3640.00,7.00
North,Bob,Clerk,2100.00,-5.00
"South, East",Chloé,Manager,4680.00,0.00

--- Unit statistics ---
Unit,Minimum Salary,Maximum Salary,Average Salary
North,2100.00,3640.00,2870.00
"South, East",4680.00,4680.00,4680.00

--- Company statistics ---
Scope,Minimum Salary,Maximum Salary,Average Salary
Company (global),2100.00,4680.00,3473.33
`

const emptyCSV = `--- Employee details ---
Unit,Name,Job,Monthly Salary,Overtime Hours

--- Unit statistics ---
Unit,Minimum Salary,Maximum Salary,Average Salary

--- Company statistics ---
Scope,Minimum Salary,Maximum Salary,Average Salary
`

var _ = Describe("ForFormat", func() {
	It("should default to CSV", func() {
		exp, err := export.ForFormat("")
		Expect(err).NotTo(HaveOccurred())
		Expect(exp.Extension()).To(Equal(".csv"))
	})

	It("should return the XLSX exporter", func() {
		exp, err := export.ForFormat(internal.FormatXLSX)
		Expect(err).NotTo(HaveOccurred())
		Expect(exp.Extension()).To(Equal(".xlsx"))
	})

	It("should reject unknown formats", func() {
		_, err := export.ForFormat("pdf")
		Expect(errors.Is(err, internal.ErrUnsupportedFormat)).To(BeTrue())
	})
})

var _ = Describe("CSVExporter", func() {
	It("should write the three sections", func() {
		var buf bytes.Buffer
		Expect(export.NewCSVExporter().Export(&buf, sampleReport())).To(Succeed())

		Expect(buf.String()).To(Equal(sampleCSV))
	})

	It("should write headers only for an empty dataset", func() {
		var buf bytes.Buffer
		Expect(export.NewCSVExporter().Export(&buf, payroll.Aggregate(payroll.Dataset{}))).To(Succeed())

		Expect(buf.String()).To(Equal(emptyCSV))
	})

	It("should produce identical output for the same report", func() {
		var first, second bytes.Buffer
		report := sampleReport()
		Expect(export.NewCSVExporter().Export(&first, report)).To(Succeed())
		Expect(export.NewCSVExporter().Export(&second, report)).To(Succeed())

		Expect(first.Bytes()).To(Equal(second.Bytes()))
	})
})

var _ = Describe("XLSXExporter", func() {
	It("should write one sheet per section", func() {
		var buf bytes.Buffer
		Expect(export.NewXLSXExporter().Export(&buf, sampleReport())).To(Succeed())

		f, err := excelize.OpenReader(&buf)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		Expect(f.GetSheetList()).To(Equal([]string{export.SheetEmployees, export.SheetUnits, export.SheetCompany}))

		rows, err := f.GetRows(export.SheetEmployees)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(4))
		Expect(rows[0]).To(Equal(export.EmployeeHeader))
		Expect(rows[1][:3]).To(Equal([]string{"North", "Alice", "Engineer"}))
		salary, err := strconv.ParseFloat(rows[1][3], 64)
		Expect(err).NotTo(HaveOccurred())
		Expect(salary).To(Equal(3640.0))

		rows, err = f.GetRows(export.SheetCompany)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[1][0]).To(Equal(export.CompanyScope))
		avg, err := strconv.ParseFloat(rows[1][3], 64)
		Expect(err).NotTo(HaveOccurred())
		Expect(avg).To(Equal(3473.33))
	})

	It("should write header rows only for an empty dataset", func() {
		var buf bytes.Buffer
		Expect(export.NewXLSXExporter().Export(&buf, payroll.Aggregate(payroll.Dataset{}))).To(Succeed())

		f, err := excelize.OpenReader(&buf)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		for _, sheet := range []string{export.SheetEmployees, export.SheetUnits, export.SheetCompany} {
			rows, err := f.GetRows(sheet)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		}
	})
})

var _ = Describe("WriteFile", func() {
	It("should write and then overwrite the export file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "salaries_export.csv")
		Expect(os.WriteFile(path, []byte("stale content that is longer than nothing"), 0o600)).To(Succeed())

		Expect(export.WriteFile(export.NewCSVExporter(), payroll.Aggregate(payroll.Dataset{}), path)).To(Succeed())

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(Equal(emptyCSV))
	})

	It("should report an unwritable destination", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "salaries_export.csv")

		err := export.WriteFile(export.NewCSVExporter(), sampleReport(), path)
		Expect(errors.Is(err, internal.ErrExportFailed)).To(BeTrue())
	})
})

var _ = Describe("FormatAmount", func() {
	It("should round to two decimals", func() {
		Expect(export.FormatAmount(3473.3333)).To(Equal("3473.33"))
		Expect(export.FormatAmount(0)).To(Equal("0.00"))
	})
})
