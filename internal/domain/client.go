package domain

import "time"

// BillingType describes how a client is billed.
type BillingType string

const (
	BillingHourly   BillingType = "Hourly"
	BillingRetainer BillingType = "Retainer/Flat Fee"
)

// IsValid checks if the billing type is one of the known values.
func (bt BillingType) IsValid() bool {
	return bt == BillingHourly || bt == BillingRetainer
}

// LimitType describes how a client's hour limit is accounted.
type LimitType string

const (
	LimitNone          LimitType = "None"
	LimitMonthly       LimitType = "Monthly"
	LimitContractTotal LimitType = "Contract Total"
)

// Client represents a customer in the domain model.
// This is a pure domain model without storage-specific concerns.
// Clients are identified by name; time entries and invoices reference
// clients by this name.
type Client struct {
	Name          string
	HourlyRate    float64
	BillingType   BillingType
	Active        bool
	HasHourLimit  bool
	LimitType     LimitType
	HourLimit     float64
	ContractStart *time.Time
}

// NewClient creates a new active client with the given name, rate and
// billing type and no hour limit.
func NewClient(name string, rate float64, billing BillingType) Client {
	return Client{
		Name:        name,
		HourlyRate:  rate,
		BillingType: billing,
		Active:      true,
		LimitType:   LimitNone,
	}
}

// IsHourly returns true if the client is billed by the hour.
func (c Client) IsHourly() bool {
	return c.BillingType == BillingHourly
}

// EffectiveLimitType returns the limit type used for hour accounting.
// An empty or None limit type falls back to Monthly, matching how
// limits behave for clients created before limit types existed.
func (c Client) EffectiveLimitType() LimitType {
	if c.LimitType == "" || c.LimitType == LimitNone {
		return LimitMonthly
	}
	return c.LimitType
}

// IsValid checks if the client has valid data.
func (c Client) IsValid() bool {
	if c.Name == "" {
		return false
	}
	if c.HourlyRate < 0 {
		return false
	}
	if !c.BillingType.IsValid() {
		return false
	}
	if c.HasHourLimit && c.HourLimit <= 0 {
		return false
	}
	return true
}

// String returns the client name for display purposes.
func (c Client) String() string {
	return c.Name
}
