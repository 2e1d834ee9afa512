package store

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// PartnerCreateInput describes a partner supplied by the caller.
type PartnerCreateInput struct {
	Name           string
	Tier           domain.PartnerTier
	Health         domain.PartnerHealth
	Revenue        float64
	Segment        string
	AccountManager string
}

// InteractionCreateInput describes an interaction to log.
type InteractionCreateInput struct {
	PartnerID        string
	Channel          domain.InteractionChannel
	InteractionType  domain.InteractionType
	Summary          string
	FollowUpRequired bool
	FollowUpDate     *time.Time
	Owner            domain.Team
}

// ThreadCreateInput describes a thread to open.
type ThreadCreateInput struct {
	PartnerID    string
	Title        string
	Status       domain.ThreadStatus
	Visibility   domain.ThreadVisibility
	Priority     domain.Priority
	Owner        domain.Team
	LastActivity string
}

// HealthUpdate replaces a partner's health. Reason is optional.
type HealthUpdate struct {
	PartnerID string
	Health    domain.PartnerHealth
	Reason    string
}

// ContactCreateInput describes a stakeholder to attach to a partner.
type ContactCreateInput struct {
	PartnerID string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      domain.ContactRole
	IsPrimary bool
	Notes     string
}

// Snapshot is a point-in-time copy of every collection, newest first.
type Snapshot struct {
	Partners      []domain.Partner
	Interactions  []domain.Interaction
	Threads       []domain.Thread
	Contacts      []domain.Contact
	HealthHistory []domain.HealthHistoryEntry
}
