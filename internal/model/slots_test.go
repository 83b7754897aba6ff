package model

import "testing"

func TestSlotsCoverTheDay(t *testing.T) {
	t.Parallel()
	slots := Slots()
	if len(slots) != SlotCount {
		t.Fatalf("got %d slots, want %d", len(slots), SlotCount)
	}
	if slots[0] != "08:00" {
		t.Fatalf("first slot %q, want 08:00", slots[0])
	}
	if slots[len(slots)-1] != "23:30" {
		t.Fatalf("last slot %q, want 23:30", slots[len(slots)-1])
	}
	seen := map[string]bool{}
	for _, s := range slots {
		if seen[s] {
			t.Fatalf("duplicate slot %q", s)
		}
		seen[s] = true
	}
}

func TestIsSlot(t *testing.T) {
	t.Parallel()
	for _, valid := range []string{"08:00", "12:30", "23:30"} {
		if !IsSlot(valid) {
			t.Errorf("IsSlot(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"07:30", "24:00", "08:15", "8:00", ""} {
		if IsSlot(invalid) {
			t.Errorf("IsSlot(%q) = true, want false", invalid)
		}
	}
}
