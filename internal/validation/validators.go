package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/AlexTayron/task-habit/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	if err := Validate.RegisterValidation("task_status", validateTaskStatus); err != nil {
		panic(fmt.Sprintf("failed to register task_status validator: %v", err))
	}
	if err := Validate.RegisterValidation("habit_frequency", validateHabitFrequency); err != nil {
		panic(fmt.Sprintf("failed to register habit_frequency validator: %v", err))
	}
}

// validateTaskStatus validates that a string is a valid TaskStatus enum value
func validateTaskStatus(fl validator.FieldLevel) bool {
	return models.ValidTaskStatus(models.TaskStatus(fl.Field().String()))
}

// validateHabitFrequency validates that a string is a valid HabitFrequency enum value
func validateHabitFrequency(fl validator.FieldLevel) bool {
	return models.ValidHabitFrequency(models.HabitFrequency(fl.Field().String()))
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateTaskStatus validates a TaskStatus string value
func ValidateTaskStatus(value string) error {
	if models.ValidTaskStatus(models.TaskStatus(value)) {
		return nil
	}
	return fmt.Errorf("invalid status: %s (must be 'todo', 'in_progress', or 'done')", value)
}

// ValidateHabitFrequency validates a HabitFrequency string value
func ValidateHabitFrequency(value string) error {
	if models.ValidHabitFrequency(models.HabitFrequency(value)) {
		return nil
	}
	return fmt.Errorf("invalid frequency: %s (must be 'daily', 'weekly', or 'monthly')", value)
}
