package scorehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/score"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *score.Service
}

func NewHandler(service *score.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/scores", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/today", h.handleToday)
		r.Get("/history", h.handleHistory)
		r.Get("/warnings", h.handleWarnings)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleHR))
			r.Get("/all", h.handleAllForDate)
			r.Get("/best-employee", h.handleBestEmployee)
			r.Get("/analytics/{employeeID}", h.handleAnalytics)
			r.Post("/recalculate", h.handleRecalculate)
		})
	})
}

// handleToday computes (or returns) the caller's score for today.
func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	sc, err := h.Service.GetOrCompute(r.Context(), user.EmployeeID, shared.Day(time.Now().UTC()))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to compute score", requestID)
		return
	}
	api.Success(w, sc, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	month, year := shared.ParseMonthYear(r)
	page := shared.ParsePagination(r, 30, 365)
	history, err := h.Service.History(r.Context(), user.EmployeeID, month, year, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to load score history", requestID)
		return
	}
	api.Success(w, history, requestID)
}

func (h *Handler) handleWarnings(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	warnings, err := h.Service.Warnings(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to load warnings", requestID)
		return
	}
	api.Success(w, warnings, requestID)
}

func (h *Handler) handleAllForDate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	date, err := shared.DateOrToday(r.URL.Query().Get("date"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid date", requestID)
		return
	}

	scores, err := h.Service.AllForDate(r.Context(), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to load scores", requestID)
		return
	}
	api.Success(w, map[string]any{"date": date.Format("2006-01-02"), "scores": scores}, requestID)
}

func (h *Handler) handleBestEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	month, year := shared.ParseMonthYear(r)
	if month == 0 || year == 0 {
		now := time.Now().UTC()
		month, year = int(now.Month()), now.Year()
	}

	best, err := h.Service.Best(r.Context(), month, year)
	if err != nil {
		// Nobody reaching the scored-day floor is a valid empty result.
		if errors.Is(err, score.ErrNoBestEmployee) {
			api.Success(w, map[string]any{
				"bestEmployee": nil,
				"message":      "no employee has enough scored days for this period",
			}, requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to determine best employee", requestID)
		return
	}
	api.Success(w, map[string]any{"bestEmployee": best}, requestID)
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	month, year := shared.ParseMonthYear(r)
	analytics, err := h.Service.Analytics(r.Context(), chi.URLParam(r, "employeeID"), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to load analytics", requestID)
		return
	}
	api.Success(w, analytics, requestID)
}

func (h *Handler) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Date string `json:"date"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
			return
		}
	}
	date, err := shared.DateOrToday(payload.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid date", requestID)
		return
	}

	summary, err := h.Service.RecalculateAll(r.Context(), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "recalculate_failed", "failed to recalculate scores", requestID)
		return
	}
	api.Success(w, summary, requestID)
}
