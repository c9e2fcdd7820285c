package attendance

import (
	"testing"
	"time"
)

func TestIsLate(t *testing.T) {
	onTime := time.Date(2025, 3, 10, 8, 59, 59, 0, time.UTC)
	if IsLate(onTime, "09:00:00") {
		t.Fatal("login before office start must not be late")
	}

	exact := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	if IsLate(exact, "09:00:00") {
		t.Fatal("login exactly at office start must not be late")
	}

	late := time.Date(2025, 3, 10, 9, 0, 1, 0, time.UTC)
	if !IsLate(late, "09:00:00") {
		t.Fatal("login after office start must be late")
	}
}

func TestIsLateFallsBackToDefaultOfficeStart(t *testing.T) {
	late := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	if !IsLate(late, "") {
		t.Fatal("expected default office start of 09:00:00")
	}
}

func TestLoginStatus(t *testing.T) {
	status, late := LoginStatus(time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC), "09:00:00")
	if status != StatusPresent || late {
		t.Fatalf("expected on-time Present, got %s late=%v", status, late)
	}

	status, late = LoginStatus(time.Date(2025, 3, 10, 10, 15, 0, 0, time.UTC), "09:00:00")
	if status != StatusLate || !late {
		t.Fatalf("expected Late, got %s late=%v", status, late)
	}
}

func TestBuildStats(t *testing.T) {
	records := []Record{
		{Status: StatusPresent},
		{Status: StatusLate, IsLate: true},
		{Status: StatusAbsent},
		{Status: StatusLeave},
	}

	stats := BuildStats(records)
	if stats.Total != 4 {
		t.Fatalf("expected total 4, got %d", stats.Total)
	}
	if stats.Present != 2 {
		t.Fatalf("expected present 2 (on-time plus late), got %d", stats.Present)
	}
	if stats.Absent != 1 || stats.Late != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Percentage != 50 {
		t.Fatalf("expected 50%%, got %v", stats.Percentage)
	}
}

func TestBuildStatsEmpty(t *testing.T) {
	stats := BuildStats(nil)
	if stats.Total != 0 || stats.Percentage != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
