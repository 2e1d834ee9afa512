package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/partner-desk/internal/domain"
)

func TestGroupThreadsByVisibility(t *testing.T) {
	threads := []domain.Thread{
		{ID: "1", Visibility: domain.VisibilityFYI},
		{ID: "2", Visibility: domain.VisibilityOwned},
		{ID: "3", Visibility: domain.VisibilityActionRequired},
		{ID: "4", Visibility: domain.VisibilityOwned},
	}

	groups := GroupThreadsByVisibility(threads)
	require.Len(t, groups.Owned, 2)
	assert.Equal(t, "2", groups.Owned[0].ID)
	assert.Equal(t, "4", groups.Owned[1].ID)
	assert.Len(t, groups.ActionRequired, 1)
	assert.Len(t, groups.FYI, 1)

	counts := VisibilityCounts(threads)
	assert.Equal(t, 2, counts[domain.VisibilityOwned])
	assert.Equal(t, 1, counts[domain.VisibilityFYI])
}

func TestGroupInteractionsByDay(t *testing.T) {
	interactions := []domain.Interaction{
		{ID: "old", Date: now.Add(-26 * time.Hour)},
		{ID: "new", Date: now},
		{ID: "mid", Date: now.Add(-time.Hour)},
	}

	groups := GroupInteractionsByDay(interactions)
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-01-20", groups[0].Day)
	assert.Equal(t, "new", groups[0].Interactions[0].ID)
	assert.Equal(t, "mid", groups[0].Interactions[1].ID)
	assert.Equal(t, "2025-01-19", groups[1].Day)

	counts := KindCounts([]domain.Interaction{{Kind: domain.KindDirect}, {Kind: domain.KindIndirect}, {Kind: domain.KindDirect}})
	assert.Equal(t, 2, counts[domain.KindDirect])
	assert.Equal(t, 1, counts[domain.KindIndirect])
}

func TestRecentOwnedThreads(t *testing.T) {
	threads := []domain.Thread{
		{ID: "fyi", Visibility: domain.VisibilityFYI, UpdatedAt: now},
		{ID: "a", Visibility: domain.VisibilityOwned, UpdatedAt: now.Add(-4 * time.Hour)},
		{ID: "b", Visibility: domain.VisibilityOwned, UpdatedAt: now.Add(-time.Hour)},
		{ID: "c", Visibility: domain.VisibilityOwned, UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "d", Visibility: domain.VisibilityOwned, UpdatedAt: now.Add(-3 * time.Hour)},
	}

	got := RecentOwnedThreads(threads, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "c", "d"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "fyi", threads[0].ID)
}

func TestPartnerProfileHelpers(t *testing.T) {
	threads := []domain.Thread{
		{ID: "1", PartnerID: "p", Status: domain.ThreadStatusOpen},
		{ID: "2", PartnerID: "p", Status: domain.ThreadStatusResolved},
		{ID: "3", PartnerID: "q", Status: domain.ThreadStatusOpen},
	}
	active, resolved := SplitPartnerThreads(threads, "p")
	assert.Len(t, active, 1)
	assert.Len(t, resolved, 1)

	timeline := PartnerTimeline([]domain.Interaction{
		{ID: "x", PartnerID: "p", Date: now.Add(-time.Hour)},
		{ID: "y", PartnerID: "q", Date: now},
		{ID: "z", PartnerID: "p", Date: now},
	}, "p")
	require.Len(t, timeline, 2)
	assert.Equal(t, "z", timeline[0].ID)

	primary, others := SplitContacts([]domain.Contact{{ID: "c1"}, {ID: "c2", IsPrimary: true}})
	require.NotNil(t, primary)
	assert.Equal(t, "c2", primary.ID)
	assert.Len(t, others, 1)
}
