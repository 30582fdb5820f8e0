package validation

import "testing"

func TestValidateConfig_AcceptsDefaultWindow(t *testing.T) {
	validator := New()

	result := validator.ValidateConfig(1, "08:00", "22:00")

	if result.HasConflicts() {
		t.Errorf("Expected no conflicts for default window, got: %s", result.FormatReport())
	}
}

func TestValidateConfig_RejectsNonDivisibleWindow(t *testing.T) {
	validator := New()

	// 08:00-21:00 is 13 hours; not divisible by 2.
	result := validator.ValidateConfig(2, "08:00", "21:00")

	if !result.HasConflicts() {
		t.Fatal("Expected conflict for non-divisible window")
	}

	found := false
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictWindowNotDivisible {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected ConflictWindowNotDivisible conflict type")
	}
}

func TestValidateConfig_RejectsInvertedWindow(t *testing.T) {
	validator := New()

	result := validator.ValidateConfig(1, "22:00", "08:00")

	if !result.HasConflicts() {
		t.Fatal("Expected conflict for inverted window")
	}
	if result.Conflicts[0].Type != ConflictInvertedWindow {
		t.Errorf("Expected ConflictInvertedWindow, got %s", result.Conflicts[0].Type)
	}
}

func TestValidateConfig_RejectsIntervalOutOfRange(t *testing.T) {
	validator := New()

	for _, interval := range []int{0, -1, 5, 24} {
		result := validator.ValidateConfig(interval, "08:00", "22:00")
		if !result.HasConflicts() {
			t.Errorf("Expected conflict for interval %d", interval)
		}
	}
}

func TestValidateConfig_RejectsInvalidTimeFormat(t *testing.T) {
	validator := New()

	cases := []struct {
		start, end string
	}{
		{"25:00", "22:00"},
		{"08:00", "12:70"},
		{"not-a-time", "22:00"},
		{"8am", "10pm"},
	}

	for _, tc := range cases {
		result := validator.ValidateConfig(1, tc.start, tc.end)
		if !result.HasConflicts() {
			t.Errorf("Expected conflict for window %s-%s", tc.start, tc.end)
		}
		for _, conflict := range result.Conflicts {
			if conflict.Type != ConflictInvalidTimeFormat {
				t.Errorf("Expected only format conflicts for %s-%s, got %s", tc.start, tc.end, conflict.Type)
			}
		}
	}
}

func TestValidateConfig_SingleSlotWindow(t *testing.T) {
	validator := New()

	// A zero-length window is divisible by anything and yields one slot.
	result := validator.ValidateConfig(2, "12:00", "12:00")

	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
}
