package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/app/server"
	"staffhub/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		SeedHRName:         "Test HR",
		SeedHREmail:        "hr@test.local",
		SeedHRPassword:     "ChangeMe123!",
		OfficeStart:        "09:00:00",
		TokenTTL:           time.Hour,
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
	}
}

func TestEmployeeScoreJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	hrToken := login(t, client, ts.URL, cfg.SeedHREmail, cfg.SeedHRPassword, "")

	employeeEmail := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	employeePassword := "Employee123!"
	employeeID := registerEmployee(t, client, ts.URL, hrToken, employeeEmail, employeePassword)

	// Logging in marks today's attendance.
	employeeToken := login(t, client, ts.URL, employeeEmail, employeePassword, "")

	today := getJSON(t, client, ts.URL+"/api/v1/attendance/today", employeeToken, http.StatusOK)
	var attendancePayload map[string]any
	if err := json.Unmarshal(today.Data, &attendancePayload); err != nil {
		t.Fatalf("failed to decode attendance response: %v", err)
	}
	if marked, _ := attendancePayload["marked"].(bool); !marked {
		t.Fatal("expected attendance to be marked after login")
	}

	// Assign a task due today and complete it.
	taskID := assignTask(t, client, ts.URL, hrToken, employeeID, time.Now().UTC().Format("2006-01-02"))
	patchJSON(t, client, ts.URL+"/api/v1/tasks/"+taskID, employeeToken, map[string]any{"status": "Completed"}, http.StatusOK)

	// The day's score reflects attendance and completed tasks.
	scoreResp := getJSON(t, client, ts.URL+"/api/v1/scores/today", employeeToken, http.StatusOK)
	var scorePayload map[string]any
	if err := json.Unmarshal(scoreResp.Data, &scorePayload); err != nil {
		t.Fatalf("failed to decode score response: %v", err)
	}
	total, _ := scorePayload["totalScore"].(float64)
	if total < 40 {
		t.Fatalf("expected present-with-completed-task total of at least 40, got %v", total)
	}

	// A second call returns the same stored score.
	scoreResp2 := getJSON(t, client, ts.URL+"/api/v1/scores/today", employeeToken, http.StatusOK)
	var scorePayload2 map[string]any
	if err := json.Unmarshal(scoreResp2.Data, &scorePayload2); err != nil {
		t.Fatalf("failed to decode score response: %v", err)
	}
	if scorePayload["id"] != scorePayload2["id"] {
		t.Fatal("expected the same stored score on repeated requests")
	}

	history := getJSON(t, client, ts.URL+"/api/v1/scores/history", employeeToken, http.StatusOK)
	var historyPayload struct {
		Scores  []map[string]any `json:"scores"`
		Average float64          `json:"average"`
	}
	if err := json.Unmarshal(history.Data, &historyPayload); err != nil {
		t.Fatalf("failed to decode history response: %v", err)
	}
	if len(historyPayload.Scores) == 0 || historyPayload.Average <= 0 {
		t.Fatalf("expected non-empty score history, got %+v", historyPayload)
	}
}

func TestLeaveAndSalaryJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	hrToken := login(t, client, ts.URL, cfg.SeedHREmail, cfg.SeedHRPassword, "")

	employeeEmail := fmt.Sprintf("leave-%d@example.com", time.Now().UnixNano())
	employeePassword := "Employee123!"
	employeeID := registerEmployee(t, client, ts.URL, hrToken, employeeEmail, employeePassword)
	employeeToken := login(t, client, ts.URL, employeeEmail, employeePassword, "")

	// Apply for 3 days of paid leave next month and approve it.
	start := time.Now().UTC().AddDate(0, 1, 0)
	end := start.AddDate(0, 0, 2)
	applyResp := postJSON(t, client, ts.URL+"/api/v1/leaves", employeeToken, map[string]any{
		"leaveType": "Paid",
		"startDate": start.Format("2006-01-02"),
		"endDate":   end.Format("2006-01-02"),
		"reason":    "Vacation",
	}, http.StatusCreated)
	var leavePayload map[string]any
	if err := json.Unmarshal(applyResp.Data, &leavePayload); err != nil {
		t.Fatalf("failed to decode leave response: %v", err)
	}
	leaveID, _ := leavePayload["id"].(string)
	if leaveID == "" {
		t.Fatal("expected leave id")
	}

	// An overlapping second request is rejected.
	postJSON(t, client, ts.URL+"/api/v1/leaves", employeeToken, map[string]any{
		"leaveType": "Paid",
		"startDate": start.Format("2006-01-02"),
		"endDate":   start.Format("2006-01-02"),
		"reason":    "Overlap",
	}, http.StatusConflict)

	patchJSON(t, client, ts.URL+"/api/v1/leaves/"+leaveID, hrToken, map[string]any{"status": "Approved"}, http.StatusOK)

	balanceResp := getJSON(t, client, ts.URL+"/api/v1/leaves/balance", employeeToken, http.StatusOK)
	var balance struct {
		PaidLeaves int `json:"paidLeaves"`
	}
	if err := json.Unmarshal(balanceResp.Data, &balance); err != nil {
		t.Fatalf("failed to decode balance response: %v", err)
	}
	if balance.PaidLeaves != 17 {
		t.Fatalf("expected 17 paid leaves after approving 3 days, got %d", balance.PaidLeaves)
	}

	// Salary structure and slip.
	putJSON(t, client, ts.URL+"/api/v1/salary/"+employeeID, hrToken, map[string]any{
		"basicSalary": 50000,
		"allowances":  5000,
		"deductions":  2500,
	}, http.StatusOK)

	salaryResp := getJSON(t, client, ts.URL+"/api/v1/salary", employeeToken, http.StatusOK)
	var salaryPayload struct {
		NetSalary float64 `json:"netSalary"`
	}
	if err := json.Unmarshal(salaryResp.Data, &salaryPayload); err != nil {
		t.Fatalf("failed to decode salary response: %v", err)
	}
	if salaryPayload.NetSalary != 52500 {
		t.Fatalf("expected net salary 52500, got %v", salaryPayload.NetSalary)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/salary/slip", nil)
	if err != nil {
		t.Fatalf("failed to build slip request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+employeeToken)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("slip request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected slip status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %s", ct)
	}
}

func TestBestEmployeeTieBreakJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	hrToken := login(t, client, ts.URL, cfg.SeedHREmail, cfg.SeedHRPassword, "")

	suffix := time.Now().UnixNano()
	firstID := registerEmployee(t, client, ts.URL, hrToken, fmt.Sprintf("tie-a-%d@example.com", suffix), "Employee123!")
	secondID := registerEmployee(t, client, ts.URL, hrToken, fmt.Sprintf("tie-b-%d@example.com", suffix), "Employee123!")

	// Backfill a past month so both employees clear the 15-day floor with
	// identical averages.
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	month, year := 1, 2024
	for day := 1; day <= 15; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		for _, employeeID := range []string{firstID, secondID} {
			_, err := pool.Exec(context.Background(), `
				INSERT INTO scores (employee_id, date, attendance_score, task_score, punctuality_score, total_score)
				VALUES ($1, $2, 40, 20, 20, 80)`, employeeID, date)
			if err != nil {
				t.Fatalf("failed to insert score: %v", err)
			}
		}
	}

	resp := getJSON(t, client, fmt.Sprintf("%s/api/v1/scores/best-employee?month=%d&year=%d", ts.URL, month, year), hrToken, http.StatusOK)
	var payload struct {
		BestEmployee *struct {
			EmployeeID string  `json:"employeeId"`
			Average    float64 `json:"average"`
			ScoredDays int     `json:"scoredDays"`
		} `json:"bestEmployee"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode best employee response: %v", err)
	}
	if payload.BestEmployee == nil {
		t.Fatal("expected a best employee")
	}

	// Equal averages break toward the lowest employee id. Postgres orders
	// uuids bytewise, which matches ordering their canonical text form.
	wantID := firstID
	if secondID < firstID {
		wantID = secondID
	}
	if payload.BestEmployee.EmployeeID != wantID {
		t.Fatalf("expected tie to break to %s, got %s", wantID, payload.BestEmployee.EmployeeID)
	}
	if payload.BestEmployee.Average != 80 || payload.BestEmployee.ScoredDays != 15 {
		t.Fatalf("unexpected best employee: %+v", payload.BestEmployee)
	}

	// A month with no scores is a valid empty result, not an error.
	empty := getJSON(t, client, ts.URL+"/api/v1/scores/best-employee?month=2&year=2002", hrToken, http.StatusOK)
	var emptyPayload struct {
		BestEmployee *json.RawMessage `json:"bestEmployee"`
	}
	if err := json.Unmarshal(empty.Data, &emptyPayload); err != nil {
		t.Fatalf("failed to decode empty response: %v", err)
	}
	if emptyPayload.BestEmployee != nil {
		t.Fatalf("expected no best employee, got %s", *emptyPayload.BestEmployee)
	}
}

func TestEmployeeCannotReachHRRoutes(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	hrToken := login(t, client, ts.URL, cfg.SeedHREmail, cfg.SeedHRPassword, "")
	employeeEmail := fmt.Sprintf("rbac-%d@example.com", time.Now().UnixNano())
	registerEmployee(t, client, ts.URL, hrToken, employeeEmail, "Employee123!")
	employeeToken := login(t, client, ts.URL, employeeEmail, "Employee123!", "")

	getJSON(t, client, ts.URL+"/api/v1/employees", employeeToken, http.StatusForbidden)
	getJSON(t, client, ts.URL+"/api/v1/scores/all", employeeToken, http.StatusForbidden)
	getJSON(t, client, ts.URL+"/api/v1/salary/all", employeeToken, http.StatusForbidden)
	getJSON(t, client, ts.URL+"/api/v1/employees", "", http.StatusUnauthorized)
}

func login(t *testing.T, client *http.Client, baseURL, email, password, mfaCode string) string {
	t.Helper()
	body := map[string]any{"email": email, "password": password}
	if mfaCode != "" {
		body["mfaCode"] = mfaCode
	}
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", body, http.StatusOK)
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("expected token")
	}
	return payload.Token
}

func registerEmployee(t *testing.T, client *http.Client, baseURL, hrToken, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", hrToken, map[string]any{
		"email":       email,
		"password":    password,
		"name":        "Journey Tester",
		"department":  "Engineering",
		"designation": "Developer",
		"basicSalary": 3500,
	}, http.StatusCreated)
	var payload struct {
		EmployeeID string `json:"employeeId"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	if payload.EmployeeID == "" {
		t.Fatal("expected employee id")
	}
	return payload.EmployeeID
}

func assignTask(t *testing.T, client *http.Client, baseURL, hrToken, employeeID, dueDate string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/tasks", hrToken, map[string]any{
		"employeeId":  employeeID,
		"title":       "Ship the release",
		"description": "Cut and deploy the weekly release",
		"priority":    "High",
		"dueDate":     dueDate,
	}, http.StatusCreated)
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode task response: %v", err)
	}
	if payload.ID == "" {
		t.Fatal("expected task id")
	}
	return payload.ID
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any, wantStatus int) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, token, body, wantStatus)
}

func patchJSON(t *testing.T, client *http.Client, url, token string, body any, wantStatus int) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPatch, url, token, body, wantStatus)
}

func putJSON(t *testing.T, client *http.Client, url, token string, body any, wantStatus int) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPut, url, token, body, wantStatus)
}

func getJSON(t *testing.T, client *http.Client, url, token string, wantStatus int) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodGet, url, token, nil, wantStatus)
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, wantStatus int) envelope {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, url, wantStatus, resp.StatusCode, string(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode envelope from %s: %v", url, err)
	}
	return env
}
