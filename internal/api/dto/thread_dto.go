package dto

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// CreateThreadRequest payload.
type CreateThreadRequest struct {
	PartnerID    string                  `json:"partner_id"`
	Title        string                  `json:"title"`
	Status       domain.ThreadStatus     `json:"status"`
	Visibility   domain.ThreadVisibility `json:"visibility"`
	Priority     domain.Priority         `json:"priority"`
	Owner        domain.Team             `json:"owner"`
	LastActivity string                  `json:"last_activity"`
}

// UpdateThreadStatusRequest payload.
type UpdateThreadStatusRequest struct {
	Status domain.ThreadStatus `json:"status"`
}

// ThreadResponse represents a thread.
type ThreadResponse struct {
	ID               string                  `json:"id"`
	PartnerID        string                  `json:"partner_id"`
	PartnerName      string                  `json:"partner_name"`
	Title            string                  `json:"title"`
	Status           domain.ThreadStatus     `json:"status"`
	Owner            domain.Team             `json:"owner"`
	Visibility       domain.ThreadVisibility `json:"visibility"`
	Priority         domain.Priority         `json:"priority"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
	InteractionCount int                     `json:"interaction_count"`
	LastActivity     string                  `json:"last_activity"`
}

// ThreadBoardResponse groups threads by visibility.
type ThreadBoardResponse struct {
	Counts         map[string]int   `json:"counts"`
	Owned          []ThreadResponse `json:"owned"`
	ActionRequired []ThreadResponse `json:"action_required"`
	FYI            []ThreadResponse `json:"fyi"`
}
