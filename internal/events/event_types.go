package events

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPartnerCreated       EventType = "partner_created"
	EventPartnerHealthChanged EventType = "partner_health_changed"
	EventInteractionLogged    EventType = "interaction_logged"
	EventThreadCreated        EventType = "thread_created"
	EventThreadStatusChanged  EventType = "thread_status_changed"
	EventContactAdded         EventType = "contact_added"
)

// Event represents a domain event emitted by the store after a mutation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	PartnerID string      `json:"partner_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PartnerCreatedPayload payload.
type PartnerCreatedPayload struct {
	Partner domain.Partner            `json:"partner"`
	History domain.HealthHistoryEntry `json:"history"`
}

// PartnerHealthChangedPayload payload.
type PartnerHealthChangedPayload struct {
	OldHealth domain.PartnerHealth      `json:"old_health"`
	NewHealth domain.PartnerHealth      `json:"new_health"`
	Partner   domain.Partner            `json:"partner"`
	History   domain.HealthHistoryEntry `json:"history"`
}

// InteractionLoggedPayload payload. Partner is nil when the referenced partner is unknown.
type InteractionLoggedPayload struct {
	Interaction domain.Interaction `json:"interaction"`
	Partner     *domain.Partner    `json:"partner,omitempty"`
}

// ThreadCreatedPayload payload. Partner is nil when the referenced partner is unknown.
type ThreadCreatedPayload struct {
	Thread  domain.Thread   `json:"thread"`
	Partner *domain.Partner `json:"partner,omitempty"`
}

// ThreadStatusChangedPayload payload.
type ThreadStatusChangedPayload struct {
	OldStatus domain.ThreadStatus `json:"old_status"`
	NewStatus domain.ThreadStatus `json:"new_status"`
	Thread    domain.Thread       `json:"thread"`
	Partner   *domain.Partner     `json:"partner,omitempty"`
}

// ContactAddedPayload payload.
type ContactAddedPayload struct {
	Contact domain.Contact `json:"contact"`
}

// PartnerSnapshot returns the post-mutation partner carried by the event, if any.
func (e Event) PartnerSnapshot() (domain.Partner, bool) {
	switch p := e.Payload.(type) {
	case PartnerCreatedPayload:
		return p.Partner, true
	case PartnerHealthChangedPayload:
		return p.Partner, true
	case InteractionLoggedPayload:
		if p.Partner != nil {
			return *p.Partner, true
		}
	case ThreadCreatedPayload:
		if p.Partner != nil {
			return *p.Partner, true
		}
	case ThreadStatusChangedPayload:
		if p.Partner != nil {
			return *p.Partner, true
		}
	}
	return domain.Partner{}, false
}
