package domain

import "time"

// InteractionChannel is the medium a contact event happened on.
type InteractionChannel string

const (
	ChannelCall    InteractionChannel = "call"
	ChannelEmail   InteractionChannel = "email"
	ChannelSlack   InteractionChannel = "slack"
	ChannelMeeting InteractionChannel = "meeting"
	ChannelSupport InteractionChannel = "support"
	ChannelSystem  InteractionChannel = "system"
)

// Valid reports whether c is a known channel.
func (c InteractionChannel) Valid() bool {
	switch c {
	case ChannelCall, ChannelEmail, ChannelSlack, ChannelMeeting, ChannelSupport, ChannelSystem:
		return true
	}
	return false
}

// InteractionKind separates direct contact from contact mediated by support or systems.
type InteractionKind string

const (
	KindDirect   InteractionKind = "direct"
	KindIndirect InteractionKind = "indirect"
)

// KindForChannel derives the interaction kind from its channel.
func KindForChannel(channel InteractionChannel) InteractionKind {
	if channel == ChannelSupport || channel == ChannelSystem {
		return KindIndirect
	}
	return KindDirect
}

// InteractionType categorizes what an interaction was about.
type InteractionType string

const (
	InteractionTechQuery       InteractionType = "tech_query"
	InteractionPricing         InteractionType = "pricing"
	InteractionMeetingRequest  InteractionType = "meeting_request"
	InteractionIntegrationHelp InteractionType = "integration_help"
	InteractionAccountClosure  InteractionType = "account_closure"
	InteractionProcessAdvice   InteractionType = "process_advice"
	InteractionEscalation      InteractionType = "escalation"
	InteractionSupportTicket   InteractionType = "support_ticket"
	InteractionSystemAlert     InteractionType = "system_alert"
)

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionTechQuery, InteractionPricing, InteractionMeetingRequest, InteractionIntegrationHelp,
		InteractionAccountClosure, InteractionProcessAdvice, InteractionEscalation,
		InteractionSupportTicket, InteractionSystemAlert:
		return true
	}
	return false
}

// Team identifies the internal team owning an interaction or thread.
type Team string

const (
	TeamCAM     Team = "cam"
	TeamSupport Team = "support"
	TeamRisk    Team = "risk"
	TeamOps     Team = "ops"
	TeamFinance Team = "finance"
	TeamOther   Team = "other"
)

// Valid reports whether t is a known team.
func (t Team) Valid() bool {
	switch t {
	case TeamCAM, TeamSupport, TeamRisk, TeamOps, TeamFinance, TeamOther:
		return true
	}
	return false
}

// Interaction is a single logged contact event with a partner.
// PartnerName is a snapshot taken at creation and is not kept in sync.
type Interaction struct {
	ID               string
	PartnerID        string
	PartnerName      string
	Kind             InteractionKind
	Channel          InteractionChannel
	InteractionType  InteractionType
	Summary          string
	Date             time.Time
	Resolved         bool
	FollowUpRequired bool
	FollowUpDate     *time.Time
	Owner            Team
}
