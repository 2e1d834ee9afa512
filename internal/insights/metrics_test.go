package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/partner-desk/internal/domain"
)

var now = time.Date(2025, 1, 20, 15, 30, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestOverdueFollowUps(t *testing.T) {
	yesterday := at(-24 * time.Hour)
	tomorrow := at(24 * time.Hour)
	earlierToday := at(-time.Hour)

	cases := []struct {
		name string
		in   domain.Interaction
		want bool
	}{
		{"yesterday unresolved", domain.Interaction{FollowUpRequired: true, FollowUpDate: yesterday}, true},
		{"tomorrow unresolved", domain.Interaction{FollowUpRequired: true, FollowUpDate: tomorrow}, false},
		{"earlier today is not overdue", domain.Interaction{FollowUpRequired: true, FollowUpDate: earlierToday}, false},
		{"yesterday resolved", domain.Interaction{FollowUpRequired: true, Resolved: true, FollowUpDate: yesterday}, false},
		{"no follow up required", domain.Interaction{FollowUpDate: yesterday}, false},
		{"missing date", domain.Interaction{FollowUpRequired: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsOverdue(tc.in, now))
		})
	}
}

func TestComputeDashboard(t *testing.T) {
	partners := []domain.Partner{
		{ID: "a", Health: domain.HealthHealthy},
		{ID: "b", Health: domain.HealthHealthy},
		{ID: "c", Health: domain.HealthAttention},
		{ID: "d", Health: domain.HealthCritical},
		{ID: "e", Health: domain.HealthNeutral},
	}
	interactions := []domain.Interaction{
		{Date: now.Add(-time.Hour), FollowUpRequired: true, FollowUpDate: at(-48 * time.Hour)},
		{Date: now.Add(-7 * 24 * time.Hour)},
		{Date: now.Add(-7*24*time.Hour - time.Minute)},
		{Date: now.Add(-30 * 24 * time.Hour), FollowUpRequired: true, Resolved: true, FollowUpDate: at(-48 * time.Hour)},
	}
	threads := []domain.Thread{
		{Status: domain.ThreadStatusOpen},
		{Status: domain.ThreadStatusInProgress},
		{Status: domain.ThreadStatusAwaitingResponse},
		{Status: domain.ThreadStatusResolved},
	}

	got := ComputeDashboard(partners, interactions, threads, now)

	assert.Equal(t, 5, got.ActivePartners)
	assert.Equal(t, 3, got.OpenThreads)
	assert.Equal(t, 1, got.OverdueFollowUps)
	assert.Equal(t, 2, got.WeeklyInteractions)
	assert.Equal(t, HealthRing{Healthy: 2, Attention: 1, Critical: 1, Neutral: 1, Total: 4}, got.Ring)
	assert.InDelta(t, 0.5, got.Ring.Fraction(domain.HealthHealthy), 1e-9)
	assert.Zero(t, got.Ring.Fraction(domain.HealthNeutral))
	assert.Zero(t, HealthRing{}.Fraction(domain.HealthHealthy))
}

func TestHealthCounts(t *testing.T) {
	counts := HealthCounts([]domain.Partner{
		{Health: domain.HealthHealthy},
		{Health: domain.HealthNeutral},
		{Health: domain.HealthNeutral},
	})
	assert.Equal(t, 1, counts[domain.HealthHealthy])
	assert.Equal(t, 2, counts[domain.HealthNeutral])
	assert.Zero(t, counts[domain.HealthCritical])
}
