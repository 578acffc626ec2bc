package validation

import (
	"freelance-tracker/internal/domain"
)

// ClientValidator provides validation for Client-related operations
type ClientValidator struct {
	validator *Validator
}

// NewClientValidator creates a new client validator
func NewClientValidator() *ClientValidator {
	return &ClientValidator{
		validator: NewValidator(),
	}
}

// NewClientValidatorWithConfig creates a new client validator with configuration
func NewClientValidatorWithConfig(validator *Validator) *ClientValidator {
	return &ClientValidator{
		validator: validator,
	}
}

// ValidateClientName validates a client name for creation or update
func (cv *ClientValidator) ValidateClientName(name string) error {
	validationError := NewValidationError()

	trimmedName := cv.validator.TrimAndValidateString(name)

	if !cv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("client_name")
		return validationError
	}

	if !cv.validator.IsValidClientNameLength(trimmedName) {
		validationError.AddInvalidLengthError("client_name", trimmedName, 1, 255)
	}

	if !cv.validator.IsValidClientName(trimmedName) {
		validationError.AddInvalidCharacterError("client_name", trimmedName)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateClient validates a domain.Client object
func (cv *ClientValidator) ValidateClient(client domain.Client) error {
	validationError := NewValidationError()

	if nameErr := cv.ValidateClientName(client.Name); nameErr != nil {
		if nameValidationErr, ok := nameErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, nameValidationErr.Errors...)
		}
	}

	if !cv.validator.IsValidRate(client.HourlyRate) {
		validationError.AddInvalidValueError("hourly_rate", client.HourlyRate, "must not be negative")
	}

	switch client.BillingType {
	case domain.BillingHourly, domain.BillingRetainer:
	default:
		validationError.AddInvalidValueError("billing_type", string(client.BillingType), "must be Hourly or Retainer/Flat Fee")
	}

	if client.HasHourLimit {
		if client.HourLimit <= 0 {
			validationError.AddInvalidValueError("hour_limit", client.HourLimit, "must be positive when an hour limit is set")
		}
		switch client.EffectiveLimitType() {
		case domain.LimitMonthly:
		case domain.LimitContractTotal:
			if client.ContractStart == nil {
				validationError.AddRequiredError("contract_start_date")
			}
		default:
			validationError.AddInvalidValueError("limit_type", string(client.LimitType), "must be Monthly or Contract Total")
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// GetValidClientName returns a cleaned client name if valid
func (cv *ClientValidator) GetValidClientName(name string) (string, error) {
	if err := cv.ValidateClientName(name); err != nil {
		return "", err
	}
	return cv.validator.TrimAndValidateString(name), nil
}
