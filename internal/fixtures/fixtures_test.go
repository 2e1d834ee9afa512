package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/insights"
	"github.com/spec-kit/partner-desk/internal/store"
)

var loadTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestParseDerivesDenormalizedFields(t *testing.T) {
	raw := []byte(`
partners:
  - id: p1
    name: Acme
    tier: gold
    health: healthy
    last_activity: -2h
  - id: p2
    name: Bolt
    tier: bronze
    health: neutral
    open_threads: 7
    last_activity: 2024-04-01T09:00:00Z
interactions:
  - id: i1
    partner_id: p1
    channel: support
    interaction_type: support_ticket
    summary: "  Password reset  "
    date: -1h
    follow_up_required: true
    follow_up_date: -48h
  - id: i2
    partner_id: ghost
    channel: call
    interaction_type: pricing
    summary: Orphan
threads:
  - id: t1
    partner_id: p1
    title: Open
    status: open
    visibility: owned
    priority: high
    created_at: -3h
  - id: t2
    partner_id: p1
    title: Done
    status: resolved
    visibility: fyi
    priority: low
`)
	snap, err := Parse(raw, loadTime)
	require.NoError(t, err)

	require.Len(t, snap.Partners, 2)
	assert.Equal(t, loadTime.Add(-2*time.Hour), snap.Partners[0].LastActivity)
	assert.Equal(t, 1, snap.Partners[0].OpenThreads)
	assert.Equal(t, 7, snap.Partners[1].OpenThreads, "pinned counts are kept")
	assert.Equal(t, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), snap.Partners[1].LastActivity)

	require.Len(t, snap.Interactions, 2)
	assert.Equal(t, domain.KindIndirect, snap.Interactions[0].Kind)
	assert.Equal(t, "Password reset", snap.Interactions[0].Summary)
	assert.Equal(t, "Acme", snap.Interactions[0].PartnerName)
	assert.Equal(t, domain.UnknownPartnerName, snap.Interactions[1].PartnerName)
	assert.Equal(t, domain.TeamOther, snap.Interactions[0].Owner)
	require.NotNil(t, snap.Interactions[0].FollowUpDate)
	assert.True(t, insights.IsOverdue(snap.Interactions[0], loadTime))

	assert.Equal(t, snap.Threads[0].CreatedAt, snap.Threads[0].UpdatedAt)
	assert.Equal(t, "Acme", snap.Threads[1].PartnerName)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"bad yaml":       "partners: [",
		"missing id":     "partners:\n  - name: x\n    tier: gold\n    health: healthy\n",
		"unknown tier":   "partners:\n  - id: p1\n    tier: diamond\n    health: healthy\n",
		"duplicate id":   "partners:\n  - id: p1\n    tier: gold\n    health: healthy\n  - id: p1\n    tier: gold\n    health: healthy\n",
		"bad time":       "partners:\n  - id: p1\n    tier: gold\n    health: healthy\n    last_activity: yesterday\n",
		"orphan contact": "contacts:\n  - id: c1\n    partner_id: nope\n",
		"bad status":     "threads:\n  - id: t1\n    status: stuck\n    visibility: owned\n    priority: low\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw), loadTime)
			assert.Error(t, err)
		})
	}
}

func TestDemoFixtureSeedsStore(t *testing.T) {
	snap, err := Load("../../fixtures/demo.yaml", loadTime)
	require.NoError(t, err)

	st := store.New()
	st.Seed(snap)

	partners := st.Partners()
	require.Len(t, partners, 5)
	initech, ok := st.Partner("partner_initech")
	require.True(t, ok)
	assert.Equal(t, 1, initech.OpenThreads)
	assert.Equal(t, insights.TrendDeclining, insights.PartnerHealthTrend(initech, st.HealthHistory(initech.ID)))

	metrics := insights.ComputeDashboard(partners, st.Interactions(), st.Threads(), loadTime)
	assert.Equal(t, 5, metrics.ActivePartners)
	assert.Equal(t, 2, metrics.OpenThreads)
	assert.Equal(t, 1, metrics.OverdueFollowUps)
	assert.Equal(t, 4, metrics.WeeklyInteractions)
}
