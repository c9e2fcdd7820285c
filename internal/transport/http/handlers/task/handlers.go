package taskhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/task"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *task.Service
}

func NewHandler(service *task.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleAssigned)
		r.Patch("/{taskID}", h.handleUpdateAssigned)

		r.Get("/personal", h.handleListPersonal)
		r.Post("/personal", h.handleCreatePersonal)
		r.Patch("/personal/{taskID}", h.handleUpdatePersonal)
		r.Delete("/personal/{taskID}", h.handleDeletePersonal)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleHR))
			r.Post("/", h.handleAssign)
			r.Get("/all", h.handleAll)
			r.Get("/employee/{employeeID}", h.handleEmployeeTasks)
			r.Delete("/{taskID}", h.handleDelete)
		})
	})
}

func (h *Handler) handleAssigned(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	tasks, stats, err := h.Service.Assigned(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "tasks_failed", "failed to list tasks", requestID)
		return
	}
	api.Success(w, map[string]any{"tasks": tasks, "stats": stats}, requestID)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateAssigned(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if !validStatus(payload.Status) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid task status", requestID)
		return
	}

	updated, err := h.Service.UpdateAssigned(r.Context(), chi.URLParam(r, "taskID"), user.EmployeeID, payload.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "task_update_failed", "failed to update task", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

type assignRequest struct {
	EmployeeID  string `json:"employeeId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload assignRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Require("employeeId", payload.EmployeeID)
	v.Require("title", payload.Title)
	var dueDate *time.Time
	if payload.DueDate != "" {
		if parsed, ok := v.Date("dueDate", payload.DueDate); ok {
			day := shared.Day(parsed)
			dueDate = &day
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.Assign(r.Context(), task.AssignParams{
		EmployeeID:  payload.EmployeeID,
		AssignedBy:  user.EmployeeID,
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Priority:    strings.TrimSpace(payload.Priority),
		DueDate:     dueDate,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "task_assign_failed", "failed to assign task", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	tasks, err := h.Service.All(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "tasks_failed", "failed to list tasks", requestID)
		return
	}
	api.Success(w, tasks, requestID)
}

func (h *Handler) handleEmployeeTasks(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	tasks, stats, err := h.Service.StatsForEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "tasks_failed", "failed to list tasks", requestID)
		return
	}
	api.Success(w, map[string]any{"tasks": tasks, "stats": stats}, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "task_delete_failed", "failed to delete task", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}

func (h *Handler) handleListPersonal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	tasks, err := h.Service.Personal(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "tasks_failed", "failed to list personal tasks", requestID)
		return
	}
	api.Success(w, tasks, requestID)
}

type personalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) handleCreatePersonal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee account required", requestID)
		return
	}

	var payload personalRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "title is required", requestID)
		return
	}

	created, err := h.Service.CreatePersonal(r.Context(), user.EmployeeID,
		strings.TrimSpace(payload.Title), strings.TrimSpace(payload.Description))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "task_create_failed", "failed to create personal task", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if !validStatus(payload.Status) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid task status", requestID)
		return
	}

	updated, err := h.Service.UpdatePersonal(r.Context(), chi.URLParam(r, "taskID"), user.EmployeeID, payload.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "task_update_failed", "failed to update personal task", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeletePersonal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Service.DeletePersonal(r.Context(), chi.URLParam(r, "taskID"), user.EmployeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "task_delete_failed", "failed to delete personal task", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}

func validStatus(status string) bool {
	for _, candidate := range task.ValidStatuses {
		if status == candidate {
			return true
		}
	}
	return false
}
