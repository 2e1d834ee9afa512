package insights

import (
	"strings"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// FilterAll disables an enum filter.
const FilterAll = "all"

// PartnerQuery filters the partner list.
type PartnerQuery struct {
	Search string
	Health string
	Sort   PartnerSortField
}

// InteractionQuery filters the interaction list.
type InteractionQuery struct {
	Search string
	Kind   string
}

// ThreadQuery filters the thread list.
type ThreadQuery struct {
	Search     string
	Visibility string
	Status     string
}

// FilterPartners keeps partners whose name contains the search text and whose
// health matches the health filter.
func FilterPartners(partners []domain.Partner, q PartnerQuery) []domain.Partner {
	result := []domain.Partner{}
	for _, p := range partners {
		if containsFold(p.Name, q.Search) && matchesEnum(string(p.Health), q.Health) {
			result = append(result, p)
		}
	}
	return result
}

// FilterInteractions keeps interactions whose partner name or summary contains
// the search text and whose kind matches the kind filter.
func FilterInteractions(interactions []domain.Interaction, q InteractionQuery) []domain.Interaction {
	result := []domain.Interaction{}
	for _, i := range interactions {
		search := containsFold(i.PartnerName, q.Search) || containsFold(i.Summary, q.Search)
		if search && matchesEnum(string(i.Kind), q.Kind) {
			result = append(result, i)
		}
	}
	return result
}

// FilterThreads keeps threads whose title or partner name contains the search
// text and that match both the visibility and status filters.
func FilterThreads(threads []domain.Thread, q ThreadQuery) []domain.Thread {
	result := []domain.Thread{}
	for _, t := range threads {
		search := containsFold(t.Title, q.Search) || containsFold(t.PartnerName, q.Search)
		if search && matchesEnum(string(t.Visibility), q.Visibility) && matchesEnum(string(t.Status), q.Status) {
			result = append(result, t)
		}
	}
	return result
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchesEnum(value, filter string) bool {
	return filter == "" || filter == FilterAll || value == filter
}
