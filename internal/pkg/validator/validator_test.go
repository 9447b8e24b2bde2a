package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0190e5a0-1b2c-7d3e-89ab-0123456789ab",
		"A1B2C3D4-E5F6-7A8B-9ABC-DEF012345678",
	}
	invalid := []string{"", "not-a-uuid", "0190e5a0-1b2c-7d3e-89ab", "zzze5a0-1b2c-7d3e-89ab-0123456789ab"}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-06-03"); !ok {
		t.Error("IsValidDate(2025-06-03) = false, want true")
	}
	for _, bad := range []string{"", "03-06-2025", "2025-13-01", "2025-06-32"} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_id", Message: "is required"},
		{Field: "event_date", Message: "is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 || m["employee_id"] != "is required" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
