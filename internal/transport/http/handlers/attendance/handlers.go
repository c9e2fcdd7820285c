package attendancehandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/attendance"
	"staffhub/internal/domain/auth"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/today", h.handleToday)
		r.Get("/history", h.handleHistory)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleHR))
			r.Get("/all", h.handleAllForDate)
			r.Get("/employee/{employeeID}", h.handleEmployeeHistory)
			r.Post("/mark", h.handleMark)
		})
	})
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	record, found, err := h.Service.Today(r.Context(), user.EmployeeID, time.Now().UTC())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to load attendance", requestID)
		return
	}
	if !found {
		api.Success(w, map[string]any{"marked": false}, requestID)
		return
	}
	api.Success(w, map[string]any{"marked": true, "record": record}, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	month, year := shared.ParseMonthYear(r)
	records, stats, err := h.Service.History(r.Context(), user.EmployeeID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to load history", requestID)
		return
	}
	api.Success(w, map[string]any{"records": records, "stats": stats}, requestID)
}

func (h *Handler) handleAllForDate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	date, err := shared.DateOrToday(r.URL.Query().Get("date"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid date", requestID)
		return
	}

	records, err := h.Service.AllForDate(r.Context(), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to load attendance", requestID)
		return
	}
	api.Success(w, map[string]any{"date": date.Format("2006-01-02"), "records": records}, requestID)
}

func (h *Handler) handleEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employeeID := chi.URLParam(r, "employeeID")
	month, year := shared.ParseMonthYear(r)
	records, stats, err := h.Service.EmployeeHistory(r.Context(), employeeID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to load history", requestID)
		return
	}
	api.Success(w, map[string]any{"records": records, "stats": stats}, requestID)
}

type markRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	LoginTime  string `json:"loginTime"`
}

// handleMark is the HR override path: set any employee's status for a day.
func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload markRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Require("employeeId", payload.EmployeeID)
	v.Require("status", payload.Status)
	v.OneOf("status", payload.Status, attendance.ValidStatuses)
	date := shared.Day(time.Now().UTC())
	if payload.Date != "" {
		if parsed, ok := v.Date("date", payload.Date); ok {
			date = shared.Day(parsed)
		}
	}
	var login *time.Time
	if payload.LoginTime != "" {
		parsed, err := time.Parse(time.RFC3339, payload.LoginTime)
		if err != nil {
			v.Fail("loginTime", "must be an RFC3339 timestamp")
		} else {
			login = &parsed
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Service.Mark(r.Context(), payload.EmployeeID, date, payload.Status, login); err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_mark_failed", "failed to mark attendance", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "marked"}, requestID)
}
