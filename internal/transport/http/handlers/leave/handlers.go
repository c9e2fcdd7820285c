package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/leave"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.handleApply)
		r.Get("/", h.handleHistory)
		r.Get("/balance", h.handleBalance)
		r.Get("/holidays", h.handleHolidays)
		r.Delete("/{leaveID}", h.handleCancel)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleHR))
			r.Get("/all", h.handleAll)
			r.Patch("/{leaveID}", h.handleDecide)
			r.Post("/holidays", h.handleAddHoliday)
		})
	})
}

type applyRequest struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	var payload applyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Require("leaveType", payload.LeaveType)
	v.OneOf("leaveType", payload.LeaveType, leave.ValidTypes)
	v.Require("reason", payload.Reason)
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.Span("startDate", start, "endDate", end)
	}
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.Apply(r.Context(), user.EmployeeID, payload.LeaveType,
		shared.Day(start), shared.Day(end), strings.TrimSpace(payload.Reason))
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrInsufficientBalance):
			api.Fail(w, http.StatusBadRequest, "insufficient_balance", "not enough leave balance", requestID)
		case errors.Is(err, leave.ErrOverlap):
			api.Fail(w, http.StatusConflict, "leave_overlap", "a leave request already covers this period", requestID)
		case errors.Is(err, leave.ErrInvalidRange):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "end date before start date", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_apply_failed", "failed to apply for leave", requestID)
		}
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	leaves, stats, err := h.Service.History(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leaves_failed", "failed to list leaves", requestID)
		return
	}
	api.Success(w, map[string]any{"leaves": leaves, "stats": stats}, requestID)
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	balance, err := h.Service.Balance(r.Context(), user.EmployeeID)
	if err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "leave balance not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leaves_failed", "failed to load balance", requestID)
		return
	}
	api.Success(w, balance, requestID)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	if err := h.Service.Cancel(r.Context(), chi.URLParam(r, "leaveID"), user.EmployeeID); err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "pending leave request not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leave_cancel_failed", "failed to cancel leave", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "cancelled"}, requestID)
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	leaves, err := h.Service.All(r.Context(), status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leaves_failed", "failed to list leaves", requestID)
		return
	}
	api.Success(w, leaves, requestID)
}

type decideRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload decideRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.Status != leave.StatusApproved && payload.Status != leave.StatusRejected {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "status must be Approved or Rejected", requestID)
		return
	}

	decided, err := h.Service.Decide(r.Context(), chi.URLParam(r, "leaveID"), payload.Status, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "pending leave request not found", requestID)
		case errors.Is(err, leave.ErrInsufficientBalance):
			api.Fail(w, http.StatusBadRequest, "insufficient_balance", "employee has not enough balance", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_decide_failed", "failed to update leave", requestID)
		}
		return
	}
	api.Success(w, decided, requestID)
}

func (h *Handler) handleHolidays(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	holidays, err := h.Service.Holidays(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holidays_failed", "failed to list holidays", requestID)
		return
	}
	api.Success(w, holidays, requestID)
}

type holidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

func (h *Handler) handleAddHoliday(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload holidayRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Require("name", payload.Name)
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.AddHoliday(r.Context(), strings.TrimSpace(payload.Name), shared.Day(date))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_create_failed", "failed to create holiday", requestID)
		return
	}
	api.Created(w, created, requestID)
}
