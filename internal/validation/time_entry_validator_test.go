package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-tracker/internal/domain"
)

func TestTimeEntryValidator_ValidateTimeEntry(t *testing.T) {
	tv := NewTimeEntryValidator()
	today := time.Now()

	tests := []struct {
		name          string
		entry         domain.TimeEntry
		expectError   bool
		expectedField string
	}{
		{
			name:  "should accept valid entry",
			entry: domain.NewTimeEntry(today, "Acme Corp", 3.5),
		},
		{
			name:          "should require client name",
			entry:         domain.NewTimeEntry(today, "", 3.5),
			expectError:   true,
			expectedField: "client_name",
		},
		{
			name:          "should require date",
			entry:         domain.TimeEntry{ClientName: "Acme Corp", Hours: 3.5},
			expectError:   true,
			expectedField: "date",
		},
		{
			name:          "should reject date far in the past",
			entry:         domain.NewTimeEntry(today.AddDate(-11, 0, 0), "Acme Corp", 3.5),
			expectError:   true,
			expectedField: "date",
		},
		{
			name:          "should reject date far in the future",
			entry:         domain.NewTimeEntry(today.AddDate(2, 0, 0), "Acme Corp", 3.5),
			expectError:   true,
			expectedField: "date",
		},
		{
			name:          "should reject zero hours",
			entry:         domain.NewTimeEntry(today, "Acme Corp", 0),
			expectError:   true,
			expectedField: "hours",
		},
		{
			name:          "should reject hours above a day",
			entry:         domain.NewTimeEntry(today, "Acme Corp", 25),
			expectError:   true,
			expectedField: "hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateTimeEntry(tt.entry)

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

func TestTimeEntryValidator_ValidateEntryID(t *testing.T) {
	tv := NewTimeEntryValidator()

	assert.NoError(t, tv.ValidateEntryID(1))
	assert.NoError(t, tv.ValidateEntryID(42))
	assert.Error(t, tv.ValidateEntryID(0))
	assert.Error(t, tv.ValidateEntryID(-1))
}

func TestTimeEntryValidator_ValidateDateRange(t *testing.T) {
	tv := NewTimeEntryValidator()
	earlier := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	later := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)

	assert.NoError(t, tv.ValidateDateRange(&earlier, &later))
	assert.NoError(t, tv.ValidateDateRange(nil, nil))
	assert.Error(t, tv.ValidateDateRange(&later, &earlier))
}
