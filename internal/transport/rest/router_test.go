package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/payroll"
	"github.com/frahmantamala/payroll-report/internal/report"
	"github.com/frahmantamala/payroll-report/internal/transport"
	"github.com/frahmantamala/payroll-report/internal/transport/middleware"
	"github.com/frahmantamala/payroll-report/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// StaticLoader implements payroll.Loader for testing
type StaticLoader struct {
	result payroll.LoadResult
}

func (l *StaticLoader) Load(_ context.Context) *payroll.LoadResult {
	res := l.result
	return &res
}

var _ = Describe("Router", func() {
	var (
		loader *StaticLoader
		router *chi.Mux
	)

	serve := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		loader = &StaticLoader{result: payroll.LoadResult{
			Status: payroll.StatusSuccess,
			Source: "test.json",
			Dataset: payroll.Dataset{Units: []payroll.Unit{{
				Name: "North",
				Employees: []payroll.Employee{
					{Name: "Alice", Job: "Engineer", HourlyRate: 20, WeeklyHoursWorked: 42, ContractHours: 35},
				},
			}}},
		}}

		svc := payroll.NewService(loader, nil, internal.NegativeReject, slogger)
		handler := report.NewHandler(transport.NewBaseHandler(slogger), svc)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, loader, handler, slogger)
	})

	Describe("GET /api/v1/ping", func() {
		It("should answer OK", func() {
			w := serve("/api/v1/ping")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"status":"OK"`))
		})

		It("should echo the trace id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
			req.Header.Set(middleware.TraceHeader, "trace-123")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Header().Get(middleware.TraceHeader)).To(Equal("trace-123"))
		})

		It("should generate a trace id when none is sent", func() {
			w := serve("/api/v1/ping")
			Expect(w.Header().Get(middleware.TraceHeader)).NotTo(BeEmpty())
		})
	})

	Describe("GET /api/v1/health", func() {
		decode := func(w *httptest.ResponseRecorder) rest.HealthResponse {
			var response rest.HealthResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			return response
		}

		It("should be healthy when the source loads", func() {
			w := serve("/api/v1/health")
			Expect(w.Code).To(Equal(http.StatusOK))

			response := decode(w)
			Expect(response.Status).To(Equal(rest.HealthHealthy))
			Expect(response.Components).To(HaveKey("source"))
			Expect(response.Components["source"].Details).To(HaveKeyWithValue("load", "success"))
		})

		It("should be degraded when the source is missing", func() {
			loader.result = payroll.LoadResult{Status: payroll.StatusNotFound, Err: internal.ErrSourceNotFound}

			w := serve("/api/v1/health")
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(decode(w).Status).To(Equal(rest.HealthDegraded))
		})

		It("should be unhealthy on an invalid record", func() {
			loader.result = payroll.LoadResult{Status: payroll.StatusInvalidRecord, Err: internal.ErrInvalidRecord}

			w := serve("/api/v1/health")
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

			response := decode(w)
			Expect(response.Status).To(Equal(rest.HealthUnhealthy))
			Expect(response.Components["source"].Message).To(Equal(internal.ErrInvalidRecord.Error()))
		})
	})

	Describe("report routes", func() {
		It("should mount the report endpoints under /api/v1", func() {
			Expect(serve("/api/v1/units").Code).To(Equal(http.StatusOK))
			Expect(serve("/api/v1/units/North").Code).To(Equal(http.StatusOK))
			Expect(serve("/api/v1/company").Code).To(Equal(http.StatusOK))
			Expect(serve("/api/v1/export").Code).To(Equal(http.StatusOK))
		})

		It("should return 404 for unknown routes", func() {
			Expect(serve("/api/v1/branches").Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /openapi.yml", func() {
		It("should serve the embedded document", func() {
			w := serve("/openapi.yml")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/yaml"))
			Expect(w.Body.String()).To(ContainSubstring("openapi:"))
		})
	})
})
