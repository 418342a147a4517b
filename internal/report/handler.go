package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/export"
	"github.com/frahmantamala/payroll-report/internal/payroll"
	"github.com/frahmantamala/payroll-report/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Report(ctx context.Context) (*payroll.Result, error)
	UnitView(ctx context.Context, unit string, f payroll.Filter) (*payroll.FilteredView, error)
}

// ExportFileName is the base name offered for export downloads.
const ExportFileName = "salaries_export"

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Report(r.Context())
	if err != nil {
		h.Logger.Error("ListUnits: failed to build report", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toUnitsResponse(res))
}

func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when the request carries one, and the param is
	// still escaped in that case only.
	unit := chi.URLParam(r, "unit")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(unit)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid unit name")
			return
		}
		unit = unescaped
	}

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	view, err := h.Service.UnitView(r.Context(), unit, filter)
	if err != nil {
		h.Logger.Warn("GetUnit: failed to build unit view", "unit", unit, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toUnitViewResponse(view))
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Report(r.Context())
	if err != nil {
		h.Logger.Error("GetCompany: failed to build report", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toCompanyResponse(res))
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	exp, err := export.ForFormat(format)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	res, err := h.Service.Report(r.Context())
	if err != nil {
		h.Logger.Error("Export: failed to build report", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := exp.Export(&buf, res.Report); err != nil {
		h.Logger.Error("Export: failed to serialize report", "error", err, "format", format)
		h.HandleServiceError(w, internal.ErrExportFailed.WithCause(err))
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, ExportFileName, exp.Extension()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Logger.Error("Export: failed to write response", "error", err)
	}
}

func parseFilter(q url.Values) (payroll.Filter, error) {
	var f payroll.Filter
	var err error

	if f.MinSalary, err = parseBound(q, "min_salary"); err != nil {
		return f, err
	}
	if f.MaxSalary, err = parseBound(q, "max_salary"); err != nil {
		return f, err
	}
	f.Job = q.Get("job")
	return f, nil
}

func parseBound(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, internal.ErrInvalidFilter.WithDetails(internal.ValidationErrors{
			Errors: []internal.ValidationError{{
				Field:   name,
				Message: fmt.Sprintf("%s must be a number", name),
				Code:    string(internal.ErrCodeInvalidFilter),
			}},
		})
	}
	return &v, nil
}
