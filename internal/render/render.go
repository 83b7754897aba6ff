// Package render draws read-only views of store data for the terminal:
// a per-day severity chart, the plain list fallback, and a monthly
// calendar with has-data markers.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jgfrigo2/medtracker2/internal/model"
)

// Marker classifies how a charted point is decorated.
type Marker int

const (
	MarkerPlain      Marker = iota // value only
	MarkerMedication               // medications, no comment
	MarkerComment                  // comment, no medications
	MarkerBoth                     // medications and comment
)

// MarkerFor returns the decoration for a slot entry: medications only are
// green, comments only blue, both violet.
func MarkerFor(e model.SlotEntry) Marker {
	hasMeds := len(e.Medications) > 0
	hasComment := e.Comments != ""
	switch {
	case hasMeds && hasComment:
		return MarkerBoth
	case hasMeds:
		return MarkerMedication
	case hasComment:
		return MarkerComment
	default:
		return MarkerPlain
	}
}

var (
	labelStyle   = lipgloss.NewStyle().Faint(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	hasDataStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	markerStyles = map[Marker]lipgloss.Style{
		MarkerPlain:      lipgloss.NewStyle(),
		MarkerMedication: lipgloss.NewStyle().Foreground(lipgloss.Color("2")), // green
		MarkerComment:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")), // blue
		MarkerBoth:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")), // violet
	}
)

// Day renders the chart for one day, or the plain list when no slot has a
// recorded value.
func Day(date string, day model.DayRecord) string {
	for _, slot := range model.Slots() {
		if day.Entry(slot).Value.IsSet() {
			return chart(date, day)
		}
	}
	return list(date, day)
}

func chart(date string, day model.DayRecord) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(date) + "\n")
	for _, slot := range model.Slots() {
		e := day.Entry(slot)
		if e.Empty() {
			continue
		}
		b.WriteString(labelStyle.Render(slot) + "  ")
		if v, ok := e.Value.Get(); ok {
			b.WriteString(barStyle.Render(strings.Repeat("█", v)))
			b.WriteString(fmt.Sprintf(" %2d ", v))
		} else {
			b.WriteString(strings.Repeat(" ", model.MaxSeverity+4))
		}
		if m := MarkerFor(e); m != MarkerPlain {
			b.WriteString(markerStyles[m].Render("●") + " ")
		}
		b.WriteString(annotate(e))
		b.WriteString("\n")
	}
	return b.String()
}

func list(date string, day model.DayRecord) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(date) + "\n")
	empty := true
	for _, slot := range model.Slots() {
		e := day.Entry(slot)
		if e.Empty() {
			continue
		}
		empty = false
		b.WriteString(labelStyle.Render(slot) + "  " + annotate(e) + "\n")
	}
	if empty {
		b.WriteString(labelStyle.Render("no entries") + "\n")
	}
	return b.String()
}

func annotate(e model.SlotEntry) string {
	var parts []string
	if len(e.Medications) > 0 {
		parts = append(parts, strings.Join(e.Medications, ", "))
	}
	if e.Comments != "" {
		parts = append(parts, "— "+e.Comments)
	}
	return strings.Join(parts, "  ")
}

// Calendar renders one month, highlighting days that carry data.
func Calendar(year int, month time.Month, hasData func(date string) bool) string {
	var b strings.Builder
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	b.WriteString(titleStyle.Render(first.Format("January 2006")) + "\n")
	b.WriteString(labelStyle.Render("Mo Tu We Th Fr Sa Su") + "\n")

	// Monday-first offset of the month's first day.
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))
	col := offset
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", d.Day())
		if hasData(d.Format("2006-01-02")) {
			cell = hasDataStyle.Render(cell)
		}
		b.WriteString(cell)
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
