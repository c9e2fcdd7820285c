package shared

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"
)

func TestValidatorCollectsFieldErrorsInOrder(t *testing.T) {
	v := NewValidator()
	v.Require("name", "  ")
	v.Require("email", "hr@example.com")
	v.OneOf("status", "Overslept", []string{"Present", "Late", "Absent", "Leave"})
	v.OneOf("leaveType", "paid", []string{"Paid", "Sick", "Unpaid"})

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected validation to reject")
	}
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []FieldError `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error.Code)
	}
	fields := body.Error.Details.Fields
	if len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", fields)
	}
	if fields[0].Field != "name" || fields[1].Field != "status" {
		t.Fatalf("expected errors in check order, got %+v", fields)
	}
}

func TestValidatorDateAndSpan(t *testing.T) {
	v := NewValidator()
	start, ok := v.Date("startDate", "2026-03-10")
	if !ok {
		t.Fatal("expected start date to parse")
	}
	end, ok := v.Date("endDate", "2026-03-08")
	if !ok {
		t.Fatal("expected end date to parse")
	}
	v.Span("startDate", start, "endDate", end)

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected inverted range to reject")
	}

	if _, ok := NewValidator().Date("date", "not-a-date"); ok {
		t.Fatal("expected invalid date to fail")
	}
}

func TestValidatorSpanIgnoresZeroDates(t *testing.T) {
	v := NewValidator()
	v.Span("startDate", time.Time{}, "endDate", time.Time{})

	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("zero dates must not produce a range error")
	}
}
