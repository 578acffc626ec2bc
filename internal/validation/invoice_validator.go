package validation

import (
	"freelance-tracker/internal/domain"
)

// InvoiceValidator provides validation for Invoice-related operations
type InvoiceValidator struct {
	validator *Validator
}

// NewInvoiceValidator creates a new invoice validator
func NewInvoiceValidator() *InvoiceValidator {
	return &InvoiceValidator{
		validator: NewValidator(),
	}
}

// NewInvoiceValidatorWithConfig creates a new invoice validator with configuration
func NewInvoiceValidatorWithConfig(validator *Validator) *InvoiceValidator {
	return &InvoiceValidator{
		validator: validator,
	}
}

// ValidateInvoice validates a domain.Invoice object
func (iv *InvoiceValidator) ValidateInvoice(invoice domain.Invoice) error {
	validationError := NewValidationError()

	if !iv.validator.IsNonEmptyString(invoice.ClientName) {
		validationError.AddRequiredError("client_name")
	}

	if invoice.Date.IsZero() {
		validationError.AddRequiredError("date")
	} else if !iv.validator.IsReasonableDate(invoice.Date) {
		validationError.AddInvalidRangeError("date", invoice.Date, "must be within the last 10 years and not more than a year ahead")
	}

	if !iv.validator.IsValidAmount(invoice.Amount) {
		validationError.AddInvalidValueError("amount", invoice.Amount, "must be greater than 0")
	}

	switch invoice.Type {
	case domain.IncomeRetainer, domain.IncomeFlatFee, domain.IncomeBonus, domain.IncomeOther:
	default:
		validationError.AddInvalidValueError("type", string(invoice.Type), "must be Retainer, Flat Fee, Bonus or Other")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateInvoiceID validates an invoice ID
func (iv *InvoiceValidator) ValidateInvoiceID(id int64) error {
	if id <= 0 {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("invoice_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
