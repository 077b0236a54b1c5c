package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/tasks-go/internal/task"
)

func fixedClock() func() time.Time {
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
}

func sampleStore(t *testing.T) *task.Store {
	t.Helper()
	s := task.NewStore(task.WithClock(fixedClock()))
	if _, err := s.Add("Buy milk", task.PriorityLow); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("Write the quarterly report for the finance team", task.PriorityHigh); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Complete(1); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestShortTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short", "Buy milk", "Buy milk"},
		{"exactly limit", strings.Repeat("a", 33), strings.Repeat("a", 33)},
		{"one over", strings.Repeat("a", 34), strings.Repeat("a", 30) + "..."},
		{"runes", strings.Repeat("é", 40), strings.Repeat("é", 30) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortTitle(tt.input); got != tt.want {
				t.Errorf("ShortTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrinterTasks(t *testing.T) {
	s := sampleStore(t)
	var buf bytes.Buffer
	p := NewPrinter(&buf, time.UTC)

	if err := p.Tasks(s.List(task.FilterAll), task.FilterAll); err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"ALL tasks",
		"ID", "Status", "Priority", "Title", "Created",
		"Buy milk", "✓ Done", "LOW",
		"○ Pending", "HIGH",
		"Write the quarterly report for...",
		"2026-10-19",
		"Total: 2 tasks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "finance team") {
		t.Errorf("long title should be truncated:\n%s", out)
	}
	if strings.Index(out, "Buy milk") > strings.Index(out, "Write the") {
		t.Errorf("tasks should be listed in insertion order:\n%s", out)
	}
}

func TestPrinterTasksFiltered(t *testing.T) {
	s := sampleStore(t)
	var buf bytes.Buffer
	p := NewPrinter(&buf, time.UTC)

	if err := p.Tasks(s.List(task.FilterPending), task.FilterPending); err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Buy milk") {
		t.Errorf("completed task shown under pending filter:\n%s", out)
	}
	if !strings.Contains(out, "PENDING tasks") || !strings.Contains(out, "Total: 1 tasks") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPrinterEmpty(t *testing.T) {
	tests := []struct {
		filter task.Filter
		want   string
	}{
		{task.FilterAll, "Your task list is empty."},
		{task.FilterPending, "No pending tasks found."},
		{task.FilterCompleted, "No completed tasks found."},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			var buf bytes.Buffer
			s := task.NewStore()
			if err := NewPrinter(&buf, nil).Tasks(s.List(tt.filter), tt.filter); err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinterStatistics(t *testing.T) {
	s := sampleStore(t)
	if _, err := s.Add("Call mom", task.PriorityHigh); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewPrinter(&buf, time.UTC).Statistics(s.Statistics()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total tasks:      3",
		"✓ Completed:      1",
		"○ Pending:        2",
		"Completion rate:  33.3%",
		"High:    2",
		"Medium:  0",
		"Low:     0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterStatisticsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, nil).Statistics(task.NewStore().Statistics()); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "No tasks to analyze." {
		t.Errorf("got %q", got)
	}
}
