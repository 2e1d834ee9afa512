// Package insights holds the read-side aggregation rules behind the dashboard:
// metrics, health ring and trend, filters, sorts, grouping and focus items.
// Every function is pure and recomputed from the collections it is given.
package insights

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
)

const (
	day          = 24 * time.Hour
	weeklyWindow = 7
)

// DashboardMetrics are the headline numbers of the dashboard.
type DashboardMetrics struct {
	ActivePartners     int
	OpenThreads        int
	OverdueFollowUps   int
	WeeklyInteractions int
	Ring               HealthRing
}

// HealthRing counts partners per displayed health bucket. Neutral partners
// are reported but excluded from Total.
type HealthRing struct {
	Healthy   int
	Attention int
	Critical  int
	Neutral   int
	Total     int
}

// Fraction returns the share of the ring taken by h, or 0 for an empty ring
// or a health that is not drawn.
func (r HealthRing) Fraction(h domain.PartnerHealth) float64 {
	if r.Total == 0 {
		return 0
	}
	switch h {
	case domain.HealthHealthy:
		return float64(r.Healthy) / float64(r.Total)
	case domain.HealthAttention:
		return float64(r.Attention) / float64(r.Total)
	case domain.HealthCritical:
		return float64(r.Critical) / float64(r.Total)
	}
	return 0
}

// ComputeDashboard derives the dashboard metrics at instant now.
func ComputeDashboard(partners []domain.Partner, interactions []domain.Interaction, threads []domain.Thread, now time.Time) DashboardMetrics {
	return DashboardMetrics{
		ActivePartners:     len(partners),
		OpenThreads:        CountOpenThreads(threads),
		OverdueFollowUps:   CountOverdueFollowUps(interactions, now),
		WeeklyInteractions: CountWeeklyInteractions(interactions, now),
		Ring:               ComputeHealthRing(partners),
	}
}

// CountOpenThreads counts threads that are not resolved.
func CountOpenThreads(threads []domain.Thread) int {
	n := 0
	for _, t := range threads {
		if t.Status.Open() {
			n++
		}
	}
	return n
}

// CountOverdueFollowUps counts unresolved interactions whose follow-up date
// falls before the start of today in now's location.
func CountOverdueFollowUps(interactions []domain.Interaction, now time.Time) int {
	n := 0
	for _, i := range interactions {
		if IsOverdue(i, now) {
			n++
		}
	}
	return n
}

// IsOverdue reports whether an interaction's follow-up is past due.
func IsOverdue(i domain.Interaction, now time.Time) bool {
	if !i.FollowUpRequired || i.Resolved || i.FollowUpDate == nil {
		return false
	}
	return i.FollowUpDate.Before(StartOfDay(now))
}

// CountWeeklyInteractions counts interactions no more than seven days old.
func CountWeeklyInteractions(interactions []domain.Interaction, now time.Time) int {
	n := 0
	for _, i := range interactions {
		if float64(now.Sub(i.Date))/float64(day) <= weeklyWindow {
			n++
		}
	}
	return n
}

// ComputeHealthRing buckets partners by health.
func ComputeHealthRing(partners []domain.Partner) HealthRing {
	var ring HealthRing
	for _, p := range partners {
		switch p.Health {
		case domain.HealthHealthy:
			ring.Healthy++
		case domain.HealthAttention:
			ring.Attention++
		case domain.HealthCritical:
			ring.Critical++
		case domain.HealthNeutral:
			ring.Neutral++
		}
	}
	ring.Total = ring.Healthy + ring.Attention + ring.Critical
	return ring
}

// HealthCounts counts partners per health value, neutral included.
func HealthCounts(partners []domain.Partner) map[domain.PartnerHealth]int {
	counts := make(map[domain.PartnerHealth]int)
	for _, p := range partners {
		counts[p.Health]++
	}
	return counts
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
