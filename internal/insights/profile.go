package insights

import "github.com/spec-kit/partner-desk/internal/domain"

// PartnerTimeline returns a partner's interactions, newest first.
func PartnerTimeline(interactions []domain.Interaction, partnerID string) []domain.Interaction {
	own := []domain.Interaction{}
	for _, i := range interactions {
		if i.PartnerID == partnerID {
			own = append(own, i)
		}
	}
	return SortInteractions(own)
}

// SplitPartnerThreads returns a partner's active and resolved threads, each
// most recently updated first.
func SplitPartnerThreads(threads []domain.Thread, partnerID string) (active, resolved []domain.Thread) {
	active, resolved = []domain.Thread{}, []domain.Thread{}
	for _, t := range SortThreads(threads) {
		if t.PartnerID != partnerID {
			continue
		}
		if t.Status.Open() {
			active = append(active, t)
		} else {
			resolved = append(resolved, t)
		}
	}
	return active, resolved
}

// SplitContacts separates the primary contact from the rest.
func SplitContacts(contacts []domain.Contact) (primary *domain.Contact, others []domain.Contact) {
	others = []domain.Contact{}
	for i := range contacts {
		if contacts[i].IsPrimary && primary == nil {
			c := contacts[i]
			primary = &c
			continue
		}
		others = append(others, contacts[i])
	}
	return primary, others
}
