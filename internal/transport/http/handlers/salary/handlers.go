package salaryhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/salary"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

type Handler struct {
	Service *salary.Service
}

func NewHandler(service *salary.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleMine)
		r.Get("/slip", h.handleSlip)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleHR))
			r.Get("/all", h.handleAll)
			r.Get("/stats", h.handleStats)
			r.Get("/employee/{employeeID}", h.handleEmployee)
			r.Put("/{employeeID}", h.handleSet)
		})
	})
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	record, err := h.Service.Get(r.Context(), user.EmployeeID)
	if err != nil {
		if errors.Is(err, salary.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "salary not set up", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "salary_failed", "failed to load salary", requestID)
		return
	}
	api.Success(w, record, requestID)
}

// handleSlip streams the current month's slip as a PDF download.
func (h *Handler) handleSlip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	var buf bytes.Buffer
	if err := h.Service.WriteSlipPDF(r.Context(), &buf, user.EmployeeID); err != nil {
		if errors.Is(err, salary.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "salary not set up", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "slip_failed", "failed to generate salary slip", requestID)
		return
	}

	filename := fmt.Sprintf("salary-slip-%s.pdf", time.Now().UTC().Format("2006-01"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("salary slip write failed",
			slog.String("employeeId", user.EmployeeID),
			slog.String("error", err.Error()))
	}
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	salaries, err := h.Service.All(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_failed", "failed to list salaries", requestID)
		return
	}
	api.Success(w, salaries, requestID)
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	record, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, salary.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "salary not set up", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "salary_failed", "failed to load salary", requestID)
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_failed", "failed to load payroll stats", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

type setRequest struct {
	BasicSalary float64 `json:"basicSalary"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
}

func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload setRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	updated, err := h.Service.Set(r.Context(), chi.URLParam(r, "employeeID"), salary.UpsertParams{
		BasicSalary: payload.BasicSalary,
		Allowances:  payload.Allowances,
		Deductions:  payload.Deductions,
	})
	if err != nil {
		if errors.Is(err, salary.ErrNegativeComponent) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "salary components must not be negative", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "salary_set_failed", "failed to set salary", requestID)
		return
	}
	api.Success(w, updated, requestID)
}
