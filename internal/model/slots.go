package model

import "fmt"

// Day slots run in half-hour steps from 08:00 through 23:30 inclusive.
const (
	firstSlotHour = 8
	lastSlotHour  = 23
	SlotCount     = (lastSlotHour - firstSlotHour + 1) * 2
)

var slotLabels = buildSlotLabels()

func buildSlotLabels() []string {
	labels := make([]string, 0, SlotCount)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		labels = append(labels, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return labels
}

// Slots returns the canonical time-slot labels in day order.
// The returned slice is a copy; callers may modify it freely.
func Slots() []string {
	out := make([]string, len(slotLabels))
	copy(out, slotLabels)
	return out
}

// IsSlot reports whether label is one of the canonical half-hour labels.
func IsSlot(label string) bool {
	for _, l := range slotLabels {
		if l == label {
			return true
		}
	}
	return false
}
