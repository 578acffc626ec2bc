package validation

import (
	"regexp"
	"strings"
	"time"

	"freelance-tracker/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	clientNameRegex *regexp.Regexp
	config          *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		clientNameRegex: regexp.MustCompile(`^[a-zA-Z0-9 \-_.,&'()/]+$`),
		config:          nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		clientNameRegex: regexp.MustCompile(`^[a-zA-Z0-9 \-_.,&'()/]+$`),
		config:          cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidClientNameLength checks if a client name length is within configured limits
func (v *Validator) IsValidClientNameLength(name string) bool {
	length := len(strings.TrimSpace(name))
	return length >= v.getClientNameMinLength() && length <= v.getClientNameMaxLength()
}

// IsValidClientName checks if a client name contains only allowed characters.
// Commas and quotes are rejected so names stay unambiguous in the data files.
func (v *Validator) IsValidClientName(name string) bool {
	if strings.ContainsAny(name, "\",\n\r\t") {
		return false
	}
	return v.clientNameRegex.MatchString(name)
}

// IsValidHours checks if an hours value is within reasonable bounds
func (v *Validator) IsValidHours(hours float64) bool {
	return hours > 0 && hours <= v.getMaxHoursPerDay()
}

// IsValidRate checks if an hourly rate is non-negative
func (v *Validator) IsValidRate(rate float64) bool {
	return rate >= 0
}

// IsValidAmount checks if a money amount is positive
func (v *Validator) IsValidAmount(amount float64) bool {
	return amount > 0
}

// IsReasonableDate checks if a date is within reasonable bounds
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := time.Now()
	// Allow dates from 10 years ago to 1 year in the future
	tenYearsAgo := now.AddDate(-10, 0, 0)
	oneYearFromNow := now.AddDate(1, 0, 0)

	return t.After(tenYearsAgo) && t.Before(oneYearFromNow)
}

// IsValidDateRange checks if a date range is logical
func (v *Validator) IsValidDateRange(from, to *time.Time) bool {
	if from == nil || to == nil {
		return true // Open-ended ranges are valid
	}
	return from.Before(*to) || from.Equal(*to)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getClientNameMinLength returns configured minimum client name length or default
func (v *Validator) getClientNameMinLength() int {
	if v.config != nil {
		return v.config.Validation.ClientNameMinLength
	}
	return 1 // Default minimum
}

// getClientNameMaxLength returns configured maximum client name length or default
func (v *Validator) getClientNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ClientNameMaxLength
	}
	return 255 // Default maximum
}

// getMaxHoursPerDay returns configured maximum hours per day or default
func (v *Validator) getMaxHoursPerDay() float64 {
	if v.config != nil {
		return v.config.Validation.MaxHoursPerDay
	}
	return 24 // Default maximum
}
