package insights

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
)

const (
	silentPartnerAfter = 30 * day
	escalationWindow   = 7 * day
)

// ClassifyFocus partitions focus items into urgent attention (urgent or high
// priority) and other focus, keeping input order in each part.
func ClassifyFocus(items []domain.FocusItem) (urgent, other []domain.FocusItem) {
	urgent, other = []domain.FocusItem{}, []domain.FocusItem{}
	for _, item := range items {
		if IsUrgentFocus(item) {
			urgent = append(urgent, item)
		} else {
			other = append(other, item)
		}
	}
	return urgent, other
}

// IsUrgentFocus reports whether an item belongs in the urgent attention bucket.
func IsUrgentFocus(item domain.FocusItem) bool {
	return item.Priority == domain.PriorityUrgent || item.Priority == domain.PriorityHigh
}

// BuildFocusItems derives the daily focus list at instant now:
//
//   - follow-ups that are overdue (high) or due today (medium)
//   - escalations logged in the last seven days and not resolved (urgent)
//   - open threads that require action from us (thread priority)
//   - partners silent for thirty days (high when at risk, medium otherwise)
//   - healthy platinum or gold partners without open threads (low, upsell)
//
// Items are ordered by priority, highest first, then by due date.
func BuildFocusItems(partners []domain.Partner, interactions []domain.Interaction, threads []domain.Thread, now time.Time) []domain.FocusItem {
	items := []domain.FocusItem{}
	endOfToday := StartOfDay(now).Add(day)

	for _, i := range interactions {
		if i.Resolved {
			continue
		}
		if i.FollowUpRequired && i.FollowUpDate != nil && i.FollowUpDate.Before(endOfToday) {
			priority, reason := domain.PriorityMedium, "Follow-up due today"
			if IsOverdue(i, now) {
				priority, reason = domain.PriorityHigh, "Follow-up overdue"
			}
			due := *i.FollowUpDate
			items = append(items, domain.FocusItem{
				ID:             "focus_followup_" + i.ID,
				Type:           domain.FocusFollowUp,
				PartnerID:      i.PartnerID,
				PartnerName:    i.PartnerName,
				Title:          i.Summary,
				Reason:         reason,
				Owner:          i.Owner,
				Priority:       priority,
				DueDate:        &due,
				ActionRequired: true,
			})
		}
		if i.InteractionType == domain.InteractionEscalation && now.Sub(i.Date) <= escalationWindow {
			items = append(items, domain.FocusItem{
				ID:             "focus_escalation_" + i.ID,
				Type:           domain.FocusEscalation,
				PartnerID:      i.PartnerID,
				PartnerName:    i.PartnerName,
				Title:          i.Summary,
				Reason:         "Unresolved escalation",
				Owner:          i.Owner,
				Priority:       domain.PriorityUrgent,
				ActionRequired: true,
			})
		}
	}

	for _, t := range threads {
		if !t.Status.Open() || t.Visibility != domain.VisibilityActionRequired {
			continue
		}
		items = append(items, domain.FocusItem{
			ID:             "focus_thread_" + t.ID,
			Type:           domain.FocusThread,
			PartnerID:      t.PartnerID,
			PartnerName:    t.PartnerName,
			Title:          t.Title,
			Reason:         fmt.Sprintf("Action required from %s", t.Owner),
			Owner:          t.Owner,
			Priority:       t.Priority,
			ActionRequired: true,
		})
	}

	for _, p := range partners {
		switch {
		case now.Sub(p.LastActivity) >= silentPartnerAfter:
			priority := domain.PriorityMedium
			if p.Health == domain.HealthAttention || p.Health == domain.HealthCritical {
				priority = domain.PriorityHigh
			}
			days := int(now.Sub(p.LastActivity) / day)
			items = append(items, domain.FocusItem{
				ID:             "focus_silent_" + p.ID,
				Type:           domain.FocusSilentPartner,
				PartnerID:      p.ID,
				PartnerName:    p.Name,
				Title:          "Check in with " + p.Name,
				Reason:         fmt.Sprintf("No activity for %d days", days),
				Owner:          domain.TeamCAM,
				Priority:       priority,
				ActionRequired: true,
			})
		case p.Health == domain.HealthHealthy && p.OpenThreads == 0 &&
			(p.Tier == domain.TierPlatinum || p.Tier == domain.TierGold):
			items = append(items, domain.FocusItem{
				ID:          "focus_upsell_" + p.ID,
				Type:        domain.FocusUpsell,
				PartnerID:   p.ID,
				PartnerName: p.Name,
				Title:       "Explore expansion with " + p.Name,
				Reason:      "Healthy account with no open threads",
				Owner:       domain.TeamCAM,
				Priority:    domain.PriorityLow,
			})
		}
	}

	slices.SortStableFunc(items, func(a, b domain.FocusItem) int {
		if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
			return c
		}
		return compareDue(a.DueDate, b.DueDate)
	})
	return items
}

// compareDue orders earlier due dates first and undated items last.
func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}
