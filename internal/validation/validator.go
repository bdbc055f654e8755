package validation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"todo-sync/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length, in characters, is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidLabelLength checks if a task label is within the configured limit
func (v *Validator) IsValidLabelLength(label string) bool {
	return v.IsValidStringLength(label, 1, v.getLabelMaxLength())
}

// HasControlCharacters reports whether s contains newlines, tabs or other control characters
func (v *Validator) HasControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// IsValidUserNameLength checks if a user name is within the configured limit
func (v *Validator) IsValidUserNameLength(name string) bool {
	return v.IsValidStringLength(name, 1, v.getUserNameMaxLength())
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// ParseID parses a decimal task id
func (v *Validator) ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) getLabelMaxLength() int {
	if v.config != nil && v.config.Validation.LabelMaxLength > 0 {
		return v.config.Validation.LabelMaxLength
	}
	return 255
}

func (v *Validator) getUserNameMaxLength() int {
	if v.config != nil && v.config.Validation.UserNameMaxLength > 0 {
		return v.config.Validation.UserNameMaxLength
	}
	return 64
}
