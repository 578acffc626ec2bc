package validation

import (
	"time"

	"freelance-tracker/internal/domain"
)

// TimeEntryValidator provides validation for TimeEntry-related operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// NewTimeEntryValidatorWithConfig creates a new time entry validator with configuration
func NewTimeEntryValidatorWithConfig(validator *Validator) *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: validator,
	}
}

// ValidateTimeEntry validates a domain.TimeEntry object
func (tv *TimeEntryValidator) ValidateTimeEntry(entry domain.TimeEntry) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(entry.ClientName) {
		validationError.AddRequiredError("client_name")
	}

	if entry.Date.IsZero() {
		validationError.AddRequiredError("date")
	} else if !tv.validator.IsReasonableDate(entry.Date) {
		validationError.AddInvalidRangeError("date", entry.Date, "must be within the last 10 years and not more than a year ahead")
	}

	if !tv.validator.IsValidHours(entry.Hours) {
		validationError.AddInvalidRangeError("hours", entry.Hours, "must be greater than 0 and at most 24")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateEntryID validates a time entry ID
func (tv *TimeEntryValidator) ValidateEntryID(id int64) error {
	if id <= 0 {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("entry_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateDateRange validates a from/to filter pair
func (tv *TimeEntryValidator) ValidateDateRange(from, to *time.Time) error {
	if !tv.validator.IsValidDateRange(from, to) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("date_range", nil, "from date must not be after to date")
		return validationError
	}
	return nil
}
