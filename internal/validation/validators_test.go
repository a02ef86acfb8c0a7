package validation

import (
	"testing"
)

func TestValidateTaskStatus(t *testing.T) {
	for _, valid := range []string{"todo", "in_progress", "done"} {
		if err := ValidateTaskStatus(valid); err != nil {
			t.Errorf("Expected %q to be valid, got %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "pending", "TODO", "in-progress"} {
		if err := ValidateTaskStatus(invalid); err == nil {
			t.Errorf("Expected %q to be invalid", invalid)
		}
	}
}

func TestValidateHabitFrequency(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly"} {
		if err := ValidateHabitFrequency(valid); err != nil {
			t.Errorf("Expected %q to be valid, got %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "hourly", "DAILY", "yearly"} {
		if err := ValidateHabitFrequency(invalid); err == nil {
			t.Errorf("Expected %q to be invalid", invalid)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"keeps newline and tab", "line1\nline2\tend", "line1\nline2\tend"},
		{"strips control chars", "he\x00llo\x07", "hello"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   \t  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateStructWithCustomTags(t *testing.T) {
	type payload struct {
		Status    string `validate:"omitempty,task_status"`
		Frequency string `validate:"omitempty,habit_frequency"`
	}

	if err := Validate.Struct(payload{Status: "done", Frequency: "weekly"}); err != nil {
		t.Errorf("Expected valid payload, got %v", err)
	}
	if err := Validate.Struct(payload{Status: "archived"}); err == nil {
		t.Error("Expected invalid status to fail struct validation")
	}
	if err := Validate.Struct(payload{Frequency: "fortnightly"}); err == nil {
		t.Error("Expected invalid frequency to fail struct validation")
	}
	if err := Validate.Struct(payload{}); err != nil {
		t.Errorf("Expected empty payload to pass with omitempty, got %v", err)
	}
}
