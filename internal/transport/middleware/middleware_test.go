package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/payroll-report/internal/transport/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Middleware", func() {
	var (
		logs    *bytes.Buffer
		slogger *slog.Logger
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		slogger = slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	Describe("RecoveryMiddleware", func() {
		It("should turn a panic into a 500 response", func() {
			handler := middleware.RecoveryMiddleware(slogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("boom")
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/company", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(ContainSubstring("panic: boom"))
			Expect(logs.String()).To(ContainSubstring("panic recovered"))
		})
	})

	Describe("LoggingMiddleware", func() {
		It("should log the response status at warn for client errors", func() {
			handler := middleware.LoggingMiddleware(slogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte("nope"))
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/units/West", nil))

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(logs.String()).To(ContainSubstring("level=WARN msg=response"))
			Expect(logs.String()).To(ContainSubstring("status_code=404"))
			Expect(logs.String()).To(ContainSubstring("response_size=4"))
		})

		It("should default to 200 when the handler never writes a header", func() {
			handler := middleware.LoggingMiddleware(slogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

			Expect(logs.String()).To(ContainSubstring("status_code=200"))
		})
	})
})
