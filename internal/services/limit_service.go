package services

import (
	"context"
	"time"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/repository/csvfile"
)

const (
	// warningThreshold is the limit usage fraction that triggers a warning
	warningThreshold = 0.75
	// criticalThreshold is the limit usage fraction that triggers a critical alert
	criticalThreshold = 0.90
)

// limitServiceImpl implements the LimitService interface
type limitServiceImpl struct {
	repo csvfile.Repository
}

// NewLimitService creates a new LimitService instance
func NewLimitService(repo csvfile.Repository) LimitService {
	return &limitServiceImpl{repo: repo}
}

// CheckClient evaluates one client's limit usage for the given month.
// Monthly limits count the hours logged inside the month; contract
// total limits count every hour from the contract start date onward.
// Clients without a limit get a nil usage.
func (l *limitServiceImpl) CheckClient(ctx context.Context, client *domain.Client, month time.Time) (*LimitUsage, error) {
	if !client.HasHourLimit || client.HourLimit <= 0 {
		return nil, nil
	}

	opts := domain.SearchOptions{ClientName: &client.Name}
	entries, err := l.repo.SearchTimeEntries(ctx, opts)
	if err != nil {
		return nil, err
	}
	return limitUsageFor(client, entries, month), nil
}

// limitUsageFor evaluates a client's limit against a set of entries.
// Monthly limits count the entries inside the month; contract total
// limits count everything from the contract start date onward. Returns
// nil when the client has no limit.
func limitUsageFor(client *domain.Client, entries []*domain.TimeEntry, month time.Time) *LimitUsage {
	if !client.HasHourLimit || client.HourLimit <= 0 {
		return nil
	}

	limitType := client.EffectiveLimitType()
	opts := domain.SearchOptions{ClientName: &client.Name}
	switch limitType {
	case domain.LimitContractTotal:
		if client.ContractStart != nil {
			from := domain.DateOnly(*client.ContractStart)
			opts.From = &from
		}
	default:
		from, to := monthBounds(month)
		opts.From = &from
		opts.To = &to
	}

	used := 0.0
	for _, e := range entries {
		if opts.Matches(domain.DateOnly(e.Date), e.ClientName) {
			used += e.Hours
		}
	}

	usage := &LimitUsage{
		ClientName: client.Name,
		LimitType:  limitType,
		Limit:      client.HourLimit,
		Used:       used,
		Remaining:  client.HourLimit - used,
		Percent:    used / client.HourLimit * 100,
	}
	usage.Status = statusForUsage(used / client.HourLimit)
	return usage
}

// CheckAll evaluates every active client that carries an hour limit.
func (l *limitServiceImpl) CheckAll(ctx context.Context, month time.Time) ([]*LimitUsage, error) {
	clients, err := l.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	var usages []*LimitUsage
	for _, client := range clients {
		if !client.Active {
			continue
		}
		usage, err := l.CheckClient(ctx, client, month)
		if err != nil {
			return nil, err
		}
		if usage != nil {
			usages = append(usages, usage)
		}
	}
	return usages, nil
}

// statusForUsage classifies a used/limit fraction.
func statusForUsage(fraction float64) LimitStatus {
	switch {
	case fraction >= criticalThreshold:
		return LimitStatusCritical
	case fraction >= warningThreshold:
		return LimitStatusWarning
	default:
		return LimitStatusOK
	}
}
