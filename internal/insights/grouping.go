package insights

import (
	"slices"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// VisibilityGroups buckets threads for grouped display.
type VisibilityGroups struct {
	Owned          []domain.Thread
	ActionRequired []domain.Thread
	FYI            []domain.Thread
}

// GroupThreadsByVisibility splits threads into owned, action required and FYI
// buckets, keeping the input order inside each bucket.
func GroupThreadsByVisibility(threads []domain.Thread) VisibilityGroups {
	groups := VisibilityGroups{
		Owned:          []domain.Thread{},
		ActionRequired: []domain.Thread{},
		FYI:            []domain.Thread{},
	}
	for _, t := range threads {
		switch t.Visibility {
		case domain.VisibilityOwned:
			groups.Owned = append(groups.Owned, t)
		case domain.VisibilityActionRequired:
			groups.ActionRequired = append(groups.ActionRequired, t)
		case domain.VisibilityFYI:
			groups.FYI = append(groups.FYI, t)
		}
	}
	return groups
}

// VisibilityCounts counts threads per visibility.
func VisibilityCounts(threads []domain.Thread) map[domain.ThreadVisibility]int {
	counts := make(map[domain.ThreadVisibility]int, len(domain.Visibilities))
	for _, v := range domain.Visibilities {
		counts[v] = 0
	}
	for _, t := range threads {
		counts[t.Visibility]++
	}
	return counts
}

// KindCounts counts interactions per kind.
func KindCounts(interactions []domain.Interaction) map[domain.InteractionKind]int {
	counts := map[domain.InteractionKind]int{
		domain.KindDirect:   0,
		domain.KindIndirect: 0,
	}
	for _, i := range interactions {
		counts[i.Kind]++
	}
	return counts
}

// DayGroup holds the interactions that happened on one calendar day.
type DayGroup struct {
	Day          string
	Interactions []domain.Interaction
}

// GroupInteractionsByDay groups interactions by calendar day (YYYY-MM-DD in
// each date's own location), newest day first, newest interaction first.
func GroupInteractionsByDay(interactions []domain.Interaction) []DayGroup {
	groups := []DayGroup{}
	index := map[string]int{}
	for _, i := range SortInteractions(interactions) {
		key := i.Date.Format("2006-01-02")
		idx, ok := index[key]
		if !ok {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, DayGroup{Day: key})
		}
		groups[idx].Interactions = append(groups[idx].Interactions, i)
	}
	return groups
}

// RecentOwnedThreads returns at most n owned threads, most recently updated first.
func RecentOwnedThreads(threads []domain.Thread, n int) []domain.Thread {
	owned := slices.DeleteFunc(slices.Clone(threads), func(t domain.Thread) bool {
		return t.Visibility != domain.VisibilityOwned
	})
	owned = SortThreads(owned)
	if n >= 0 && len(owned) > n {
		owned = owned[:n]
	}
	return owned
}
