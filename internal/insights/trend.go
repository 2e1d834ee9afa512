package insights

import "github.com/spec-kit/partner-desk/internal/domain"

// Trend is the direction of a partner's health between two observations.
type Trend string

const (
	TrendNone      Trend = ""
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// HealthTrend compares current with previous by severity rank. A nil
// previous yields TrendNone.
func HealthTrend(current domain.PartnerHealth, previous *domain.PartnerHealth) Trend {
	if previous == nil {
		return TrendNone
	}
	switch cur, prev := current.Rank(), previous.Rank(); {
	case cur > prev:
		return TrendImproving
	case cur < prev:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// PartnerHealthTrend compares the partner's current health with the entry
// preceding the newest one in a newest-first history.
func PartnerHealthTrend(partner domain.Partner, history []domain.HealthHistoryEntry) Trend {
	if len(history) < 2 {
		return TrendNone
	}
	previous := history[1].Health
	return HealthTrend(partner.Health, &previous)
}
