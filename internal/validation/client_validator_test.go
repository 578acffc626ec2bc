package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-tracker/internal/domain"
)

func TestClientValidator_ValidateClientName(t *testing.T) {
	cv := NewClientValidator()

	tests := []struct {
		name          string
		input         string
		expectError   bool
		expectedField string
	}{
		{name: "should accept valid name", input: "Acme Corp"},
		{name: "should accept name with surrounding whitespace", input: "  Acme Corp  "},
		{name: "should reject empty name", input: "", expectError: true, expectedField: "client_name"},
		{name: "should reject whitespace-only name", input: "   ", expectError: true, expectedField: "client_name"},
		{name: "should reject name with comma", input: "Acme, Inc", expectError: true, expectedField: "client_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.ValidateClientName(tt.input)

			if tt.expectError {
				require.Error(t, err)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.GetFieldErrors(tt.expectedField))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientValidator_ValidateClient(t *testing.T) {
	cv := NewClientValidator()
	contractStart := time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name          string
		client        domain.Client
		expectError   bool
		expectedField string
	}{
		{
			name:   "should accept hourly client",
			client: domain.NewClient("Acme Corp", 85.5, domain.BillingHourly),
		},
		{
			name:   "should accept retainer client",
			client: domain.NewClient("Retainer Client", 0, domain.BillingRetainer),
		},
		{
			name: "should accept monthly limit",
			client: domain.Client{
				Name: "Limited", HourlyRate: 50, BillingType: domain.BillingHourly,
				Active: true, HasHourLimit: true, LimitType: domain.LimitMonthly, HourLimit: 40,
			},
		},
		{
			name: "should accept contract total limit with start date",
			client: domain.Client{
				Name: "Contract", HourlyRate: 50, BillingType: domain.BillingHourly,
				Active: true, HasHourLimit: true, LimitType: domain.LimitContractTotal,
				HourLimit: 120, ContractStart: &contractStart,
			},
		},
		{
			name:          "should reject negative rate",
			client:        domain.NewClient("Acme Corp", -5, domain.BillingHourly),
			expectError:   true,
			expectedField: "hourly_rate",
		},
		{
			name:          "should reject unknown billing type",
			client:        domain.Client{Name: "Acme Corp", BillingType: "Barter"},
			expectError:   true,
			expectedField: "billing_type",
		},
		{
			name: "should reject zero hour limit when limit enabled",
			client: domain.Client{
				Name: "Limited", HourlyRate: 50, BillingType: domain.BillingHourly,
				HasHourLimit: true, LimitType: domain.LimitMonthly,
			},
			expectError:   true,
			expectedField: "hour_limit",
		},
		{
			name: "should require contract start for contract total limit",
			client: domain.Client{
				Name: "Contract", HourlyRate: 50, BillingType: domain.BillingHourly,
				HasHourLimit: true, LimitType: domain.LimitContractTotal, HourLimit: 120,
			},
			expectError:   true,
			expectedField: "contract_start_date",
		},
		{
			name: "should reject unknown limit type",
			client: domain.Client{
				Name: "Limited", HourlyRate: 50, BillingType: domain.BillingHourly,
				HasHourLimit: true, LimitType: "Weekly", HourLimit: 10,
			},
			expectError:   true,
			expectedField: "limit_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.ValidateClient(tt.client)

			if tt.expectError {
				require.Error(t, err)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.GetFieldErrors(tt.expectedField))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientValidator_GetValidClientName(t *testing.T) {
	cv := NewClientValidator()

	name, err := cv.GetValidClientName("  Acme Corp  ")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", name)

	_, err = cv.GetValidClientName("")
	assert.Error(t, err)
}
