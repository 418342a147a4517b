package payroll_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/payroll"
	applog "github.com/frahmantamala/payroll-report/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockLoader implements payroll.Loader for testing
type MockLoader struct {
	result *payroll.LoadResult
	calls  int
}

func (m *MockLoader) Load(_ context.Context) *payroll.LoadResult {
	m.calls++
	// hand out a copy so the service cannot mutate the fixture
	res := *m.result
	return &res
}

func successLoader(ds payroll.Dataset) *MockLoader {
	return &MockLoader{result: &payroll.LoadResult{Status: payroll.StatusSuccess, Dataset: ds, Source: "test"}}
}

var _ = Describe("Payroll Service", func() {
	var (
		ctx     context.Context
		logger  *slog.Logger
		dataset payroll.Dataset
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dataset = payroll.Dataset{Units: []payroll.Unit{
			{Name: "North", Employees: []payroll.Employee{
				employeeEarning("a", "Clerk", 1000),
				employeeEarning("b", "Lead", 2000),
			}},
			{Name: "South", Employees: []payroll.Employee{employeeEarning("c", "Clerk", 3000)}},
		}}
	})

	Describe("Report", func() {
		It("should aggregate the loaded dataset", func() {
			svc := payroll.NewService(successLoader(dataset), nil, internal.NegativeReject, logger)

			res, err := svc.Report(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.RunID).NotTo(BeEmpty())
			Expect(res.Status).To(Equal(payroll.StatusSuccess))
			Expect(res.Fingerprint).To(Equal(dataset.Fingerprint()))
			Expect(res.Cached).To(BeFalse())
			Expect(res.Report.Company).To(Equal(payroll.Stats{Min: 1000, Max: 3000, Average: 2000}))
		})

		It("should log through the request logger carried by the context", func() {
			var buf bytes.Buffer
			requestLogger := slog.New(slog.NewTextHandler(&buf, nil)).With("traceID", "trace-123")
			svc := payroll.NewService(successLoader(dataset), nil, internal.NegativeReject, logger)

			res, err := svc.Report(applog.NewContext(ctx, requestLogger))
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("traceID=trace-123"))
			Expect(buf.String()).To(ContainSubstring("run_id=" + res.RunID))
		})

		It("should serve an unchanged dataset from the cache", func() {
			loader := successLoader(dataset)
			cache := payroll.NewReportCache(4, time.Minute)
			svc := payroll.NewService(loader, cache, internal.NegativeReject, logger)

			first, err := svc.Report(ctx)
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.Report(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(loader.calls).To(Equal(2))
			Expect(second.Cached).To(BeTrue())
			Expect(second.Report).To(BeIdenticalTo(first.Report))
			Expect(second.RunID).NotTo(Equal(first.RunID))
		})

		It("should degrade to an empty report when the source is missing", func() {
			loader := &MockLoader{result: &payroll.LoadResult{
				Status: payroll.StatusNotFound,
				Source: "missing.json",
				Err:    internal.ErrSourceNotFound,
			}}
			svc := payroll.NewService(loader, nil, internal.NegativeReject, logger)

			res, err := svc.Report(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(payroll.StatusNotFound))
			Expect(res.Report.Units).To(BeEmpty())
			Expect(res.Report.Company).To(Equal(payroll.Stats{}))
		})

		It("should degrade to an empty report when the source is malformed", func() {
			loader := &MockLoader{result: &payroll.LoadResult{
				Status:  payroll.StatusMalformed,
				Dataset: dataset,
				Err:     internal.ErrSourceMalformed,
			}}
			svc := payroll.NewService(loader, nil, internal.NegativeReject, logger)

			res, err := svc.Report(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Report.EmployeeCount).To(BeZero())
		})

		It("should fail on an invalid record", func() {
			loader := &MockLoader{result: &payroll.LoadResult{
				Status: payroll.StatusInvalidRecord,
				Err:    internal.ErrInvalidRecord,
			}}
			svc := payroll.NewService(loader, nil, internal.NegativeReject, logger)

			res, err := svc.Report(ctx)
			Expect(res).To(BeNil())
			Expect(errors.Is(err, internal.ErrInvalidRecord)).To(BeTrue())
		})

		Context("with negative values", func() {
			BeforeEach(func() {
				dataset.Units[1].Employees = append(dataset.Units[1].Employees, payroll.Employee{
					Name: "d", Job: "Clerk", HourlyRate: 10, WeeklyHoursWorked: 35, ContractHours: -5,
				})
			})

			It("should reject them by default", func() {
				svc := payroll.NewService(successLoader(dataset), nil, internal.NegativeReject, logger)

				_, err := svc.Report(ctx)
				Expect(errors.Is(err, internal.ErrNegativeValue)).To(BeTrue())
			})

			It("should propagate them arithmetically when configured", func() {
				svc := payroll.NewService(successLoader(dataset), nil, internal.NegativePropagate, logger)

				res, err := svc.Report(ctx)
				Expect(err).NotTo(HaveOccurred())

				south, ok := res.Report.Unit("South")
				Expect(ok).To(BeTrue())
				// base = -5*10*4, bonus = 40*10*1.5*4
				Expect(south.Employees[1].MonthlySalary).To(Equal(-200.0 + 2400.0))
			})
		})
	})

	Describe("UnitView", func() {
		It("should filter one unit of the report", func() {
			svc := payroll.NewService(successLoader(dataset), nil, internal.NegativeReject, logger)

			view, err := svc.UnitView(ctx, "North", payroll.Filter{MinSalary: bound(1500)})
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Visible).To(Equal(1))
			Expect(view.Total).To(Equal(2))
			Expect(view.Employees[0].Name).To(Equal("b"))
		})

		It("should return ErrUnitNotFound for an unknown unit", func() {
			svc := payroll.NewService(successLoader(dataset), nil, internal.NegativeReject, logger)

			_, err := svc.UnitView(ctx, "West", payroll.Filter{})
			Expect(errors.Is(err, internal.ErrUnitNotFound)).To(BeTrue())
		})
	})
})
