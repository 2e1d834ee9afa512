package insights

import (
	"cmp"
	"slices"
	"strings"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// PartnerSortField selects the partner ordering.
type PartnerSortField string

const (
	SortByName         PartnerSortField = "name"
	SortByHealth       PartnerSortField = "health"
	SortByRevenue      PartnerSortField = "revenue"
	SortByLastActivity PartnerSortField = "lastActivity"
)

// Valid reports whether f names a known ordering. Empty means the default.
func (f PartnerSortField) Valid() bool {
	switch f {
	case "", SortByName, SortByHealth, SortByRevenue, SortByLastActivity:
		return true
	}
	return false
}

// SortPartners returns a sorted copy: name ascending (case-insensitive),
// health by severity (critical first), revenue descending, or last activity
// descending, which is also the default.
func SortPartners(partners []domain.Partner, field PartnerSortField) []domain.Partner {
	sorted := slices.Clone(partners)
	var compare func(a, b domain.Partner) int
	switch field {
	case SortByName:
		compare = func(a, b domain.Partner) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortByHealth:
		compare = func(a, b domain.Partner) int {
			return cmp.Compare(a.Health.Rank(), b.Health.Rank())
		}
	case SortByRevenue:
		compare = func(a, b domain.Partner) int {
			return cmp.Compare(b.Revenue, a.Revenue)
		}
	default:
		compare = func(a, b domain.Partner) int {
			return b.LastActivity.Compare(a.LastActivity)
		}
	}
	slices.SortStableFunc(sorted, compare)
	return sorted
}

// SortInteractions returns a copy ordered by date, newest first.
func SortInteractions(interactions []domain.Interaction) []domain.Interaction {
	sorted := slices.Clone(interactions)
	slices.SortStableFunc(sorted, func(a, b domain.Interaction) int {
		return b.Date.Compare(a.Date)
	})
	return sorted
}

// SortThreads returns a copy ordered by UpdatedAt, newest first.
func SortThreads(threads []domain.Thread) []domain.Thread {
	sorted := slices.Clone(threads)
	slices.SortStableFunc(sorted, func(a, b domain.Thread) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return sorted
}

// QueryPartners filters then sorts partners.
func QueryPartners(partners []domain.Partner, q PartnerQuery) []domain.Partner {
	return SortPartners(FilterPartners(partners, q), q.Sort)
}

// QueryInteractions filters then sorts interactions.
func QueryInteractions(interactions []domain.Interaction, q InteractionQuery) []domain.Interaction {
	return SortInteractions(FilterInteractions(interactions, q))
}

// QueryThreads filters then sorts threads.
func QueryThreads(threads []domain.Thread, q ThreadQuery) []domain.Thread {
	return SortThreads(FilterThreads(threads, q))
}
