package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"staffhub/internal/domain/attendance"
	"staffhub/internal/domain/auth"
	"staffhub/internal/platform/config"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Store      *auth.Store
	Attendance *attendance.Service
	Config     *config.Config
}

func NewHandler(store *auth.Store, attendanceSvc *attendance.Service, cfg *config.Config) *Handler {
	return &Handler{Store: store, Attendance: attendanceSvc, Config: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/auth/logout", h.handleLogout)
		r.Get("/auth/profile", h.handleProfile)
		r.Post("/auth/mfa/setup", h.handleMFASetup)
		r.Post("/auth/mfa/enable", h.handleMFAEnable)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleHR))
		r.Post("/employees", h.handleRegisterEmployee)
		r.Get("/employees", h.handleListEmployees)
		r.Delete("/employees/{employeeID}", h.handleDeleteEmployee)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  auth.Profile `json:"user"`
}

// handleLogin authenticates, issues the JWT, and marks the employee's
// attendance for the day as a side effect of their first login.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password required", requestID)
		return
	}

	user, err := h.Store.FindUserByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", requestID)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}

	if user.MFAEnabled {
		if payload.MFACode == "" {
			api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", requestID)
			return
		}
		if !auth.VerifyTOTP(payload.MFACode, user.MFASecret) {
			api.Fail(w, http.StatusUnauthorized, "invalid_mfa_code", "invalid mfa code", requestID)
			return
		}
	}

	token, err := auth.GenerateToken(h.Config.JWTSecret, auth.Claims{
		UserID:     user.ID,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
		Name:       user.Name,
	}, h.Config.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to issue token", requestID)
		return
	}

	if user.Role == auth.RoleEmployee && user.EmployeeID != "" {
		if err := h.Attendance.MarkLogin(r.Context(), user.EmployeeID, user.OfficeStart, time.Now().UTC()); err != nil {
			slog.Warn("attendance login mark failed",
				slog.String("employeeId", user.EmployeeID),
				slog.String("error", err.Error()))
		}
	}

	profile, err := h.Store.GetProfile(r.Context(), user.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to load profile", requestID)
		return
	}

	api.Success(w, loginResponse{Token: token, User: profile}, requestID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if user.Role == auth.RoleEmployee && user.EmployeeID != "" {
		if err := h.Attendance.MarkLogout(r.Context(), user.EmployeeID, time.Now().UTC()); err != nil {
			slog.Warn("attendance logout mark failed",
				slog.String("employeeId", user.EmployeeID),
				slog.String("error", err.Error()))
		}
	}

	api.Success(w, map[string]string{"status": "logged out"}, requestID)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	profile, err := h.Store.GetProfile(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to load profile", requestID)
		return
	}
	api.Success(w, profile, requestID)
}

func (h *Handler) handleMFASetup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	profile, err := h.Store.GetProfile(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to set up mfa", requestID)
		return
	}

	secret, otpauthURL, err := auth.GenerateTOTPSecret("StaffHub", profile.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to generate secret", requestID)
		return
	}
	if err := h.Store.SetMFASecret(r.Context(), user.UserID, secret); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to store secret", requestID)
		return
	}

	api.Success(w, map[string]string{"secret": secret, "otpauthUrl": otpauthURL}, requestID)
}

type mfaEnableRequest struct {
	Code string `json:"code"`
}

func (h *Handler) handleMFAEnable(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload mfaEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	secret, err := h.Store.MFASecret(r.Context(), user.UserID)
	if err != nil || secret == "" {
		api.Fail(w, http.StatusBadRequest, "mfa_not_set_up", "run mfa setup first", requestID)
		return
	}
	if !auth.VerifyTOTP(payload.Code, secret) {
		api.Fail(w, http.StatusUnauthorized, "invalid_mfa_code", "invalid mfa code", requestID)
		return
	}
	if err := h.Store.EnableMFA(r.Context(), user.UserID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_enable_failed", "failed to enable mfa", requestID)
		return
	}

	api.Success(w, map[string]string{"status": "mfa enabled"}, requestID)
}

type registerRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	JoinDate    string  `json:"joinDate"`
	BasicSalary float64 `json:"basicSalary"`
}

func (h *Handler) handleRegisterEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	v := shared.NewValidator()
	v.Require("email", payload.Email)
	v.Require("name", payload.Name)
	if len(payload.Password) < 8 {
		v.Fail("password", "must be at least 8 characters")
	}
	joinDate := shared.Day(time.Now().UTC())
	if payload.JoinDate != "" {
		if parsed, ok := v.Date("joinDate", payload.JoinDate); ok {
			joinDate = shared.Day(parsed)
		}
	}
	if payload.BasicSalary < 0 {
		v.Fail("basicSalary", "must not be negative")
	}
	if v.Reject(w, requestID) {
		return
	}

	exists, err := h.Store.EmailExists(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register employee", requestID)
		return
	}
	if exists {
		api.Fail(w, http.StatusConflict, "email_taken", "email already registered", requestID)
		return
	}

	passwordHash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register employee", requestID)
		return
	}

	userID, employeeID, err := h.Store.CreateUserWithEmployee(r.Context(), auth.RegisterParams{
		Email:       payload.Email,
		Password:    payload.Password,
		Role:        auth.RoleEmployee,
		Name:        strings.TrimSpace(payload.Name),
		Department:  strings.TrimSpace(payload.Department),
		Designation: strings.TrimSpace(payload.Designation),
		JoinDate:    joinDate,
		BasicSalary: payload.BasicSalary,
	}, passwordHash, h.Config.OfficeStart)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			api.Fail(w, http.StatusConflict, "email_taken", "email already registered", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register employee", requestID)
		return
	}

	api.Created(w, map[string]string{"userId": userID, "employeeId": employeeID}, requestID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employeeID := chi.URLParam(r, "employeeID")
	if _, err := h.Store.DeleteEmployee(r.Context(), employeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}
