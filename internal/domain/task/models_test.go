package task

import "testing"

func TestBuildStats(t *testing.T) {
	tasks := []Task{
		{Status: StatusCompleted},
		{Status: StatusCompleted},
		{Status: StatusInProgress},
		{Status: StatusPending},
	}

	stats := BuildStats(tasks)
	if stats.Total != 4 || stats.Completed != 2 || stats.InProgress != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Pending != 2 {
		t.Fatalf("pending should count everything not completed, got %d", stats.Pending)
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
