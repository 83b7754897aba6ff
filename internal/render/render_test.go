package render

import (
	"strings"
	"testing"
	"time"

	"github.com/jgfrigo2/medtracker2/internal/model"
)

func TestMarkerFor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		entry model.SlotEntry
		want  Marker
	}{
		{"value only", model.SlotEntry{Value: model.SeverityOf(7)}, MarkerPlain},
		{"medications only", model.SlotEntry{Value: model.SeverityOf(7), Medications: []string{"Medicina A"}}, MarkerMedication},
		{"comment only", model.SlotEntry{Comments: "headache"}, MarkerComment},
		{"medications and comment", model.SlotEntry{Medications: []string{"Medicina A"}, Comments: "headache"}, MarkerBoth},
	}
	for _, tc := range cases {
		if got := MarkerFor(tc.entry); got != tc.want {
			t.Errorf("%s: MarkerFor = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDayRendersChartWhenValuesExist(t *testing.T) {
	t.Parallel()
	day := model.DayRecord{"08:00": {Value: model.SeverityOf(5), Medications: []string{"Medicina A"}}}
	out := Day("2024-06-01", day)
	if !strings.Contains(out, "█████") {
		t.Fatalf("expected a severity bar in:\n%s", out)
	}
	if !strings.Contains(out, "Medicina A") {
		t.Fatalf("expected medications in:\n%s", out)
	}
}

func TestDayFallsBackToListWithoutValues(t *testing.T) {
	t.Parallel()
	day := model.DayRecord{
		"08:00": {Medications: []string{"Medicina A"}},
		"12:30": {Comments: "tired"},
	}
	out := Day("2024-06-01", day)
	if strings.Contains(out, "█") {
		t.Fatalf("list view must not draw bars:\n%s", out)
	}
	for _, want := range []string{"08:00", "Medicina A", "12:30", "tired"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestDayWithNoEntries(t *testing.T) {
	t.Parallel()
	out := Day("2024-06-01", model.DayRecord{})
	if !strings.Contains(out, "no entries") {
		t.Fatalf("expected empty-day notice in:\n%s", out)
	}
}

func TestCalendarMarksAndLaysOutDays(t *testing.T) {
	t.Parallel()
	marked := map[string]bool{"2024-06-01": true}
	out := Calendar(2024, time.June, func(date string) bool { return marked[date] })
	if !strings.Contains(out, "June 2024") {
		t.Fatalf("missing title in:\n%s", out)
	}
	// June 2024 starts on a Saturday: five leading blanks on a Monday-first row.
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected layout:\n%s", out)
	}
	if !strings.HasPrefix(lines[2], strings.Repeat("   ", 5)) {
		t.Fatalf("first week not offset:\n%s", out)
	}
	if !strings.Contains(out, "30") {
		t.Fatalf("missing last day in:\n%s", out)
	}
}
