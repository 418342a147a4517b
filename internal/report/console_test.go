package report_test

import (
	"bytes"

	"github.com/frahmantamala/payroll-report/internal/payroll"
	"github.com/frahmantamala/payroll-report/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WriteSummary", func() {
	It("should align names and jobs across units", func() {
		var buf bytes.Buffer
		Expect(report.WriteSummary(&buf, payroll.Aggregate(testDataset()))).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("Unit: North\n"))
		Expect(out).To(ContainSubstring("Alice | Engineer | Monthly salary : 3640.00€\n"))
		Expect(out).To(ContainSubstring("Bob   | Clerk    | Monthly salary : 2100.00€\n"))
		Expect(out).To(ContainSubstring("Chloé | Manager  | Monthly salary : 4680.00€\n"))
		Expect(out).To(ContainSubstring("Salary statistics for South East\n"))
		Expect(out).To(ContainSubstring("Company statistics:\nMinimum salary : 2100.00€\nMaximum salary : 4680.00€\nAverage salary : 3473.33€\n"))
	})

	It("should print zero company statistics for an empty report", func() {
		var buf bytes.Buffer
		Expect(report.WriteSummary(&buf, payroll.Aggregate(payroll.Dataset{}))).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("Average salary : 0.00€"))
		Expect(buf.String()).NotTo(ContainSubstring("Unit:"))
	})
})
