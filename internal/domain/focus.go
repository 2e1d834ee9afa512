package domain

import "time"

// FocusType identifies why an item surfaced in the daily focus list.
type FocusType string

const (
	FocusFollowUp      FocusType = "follow_up"
	FocusThread        FocusType = "thread"
	FocusSilentPartner FocusType = "silent_partner"
	FocusEscalation    FocusType = "escalation"
	FocusUpsell        FocusType = "upsell"
)

// FocusItem is a daily-priority task derived from threads, interactions and partners.
type FocusItem struct {
	ID             string
	Type           FocusType
	PartnerID      string
	PartnerName    string
	Title          string
	Reason         string
	Owner          Team
	Priority       Priority
	DueDate        *time.Time
	ActionRequired bool
}
