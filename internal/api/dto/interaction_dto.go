package dto

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// CreateInteractionRequest payload.
type CreateInteractionRequest struct {
	PartnerID        string                    `json:"partner_id"`
	Channel          domain.InteractionChannel `json:"channel"`
	InteractionType  domain.InteractionType    `json:"interaction_type"`
	Summary          string                    `json:"summary"`
	FollowUpRequired bool                      `json:"follow_up_required"`
	FollowUpDate     *time.Time                `json:"follow_up_date"`
	Owner            domain.Team               `json:"owner"`
}

// InteractionResponse represents a logged interaction.
type InteractionResponse struct {
	ID               string                    `json:"id"`
	PartnerID        string                    `json:"partner_id"`
	PartnerName      string                    `json:"partner_name"`
	Type             domain.InteractionKind    `json:"type"`
	Channel          domain.InteractionChannel `json:"channel"`
	InteractionType  domain.InteractionType    `json:"interaction_type"`
	Summary          string                    `json:"summary"`
	Date             time.Time                 `json:"date"`
	Resolved         bool                      `json:"resolved"`
	FollowUpRequired bool                      `json:"follow_up_required"`
	FollowUpDate     *time.Time                `json:"follow_up_date"`
	Overdue          bool                      `json:"overdue"`
	Owner            domain.Team               `json:"owner"`
}

// InteractionDayGroup is one calendar day of the feed.
type InteractionDayGroup struct {
	Day          string                `json:"day"`
	Interactions []InteractionResponse `json:"interactions"`
}

// InteractionFeedResponse is the filtered interaction feed.
type InteractionFeedResponse struct {
	Counts map[string]int        `json:"counts"`
	Days   []InteractionDayGroup `json:"days"`
}
