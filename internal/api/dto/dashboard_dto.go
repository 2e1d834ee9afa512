package dto

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// HealthRingResponse describes the health ring widget.
type HealthRingResponse struct {
	Healthy   int                `json:"healthy"`
	Attention int                `json:"attention"`
	Critical  int                `json:"critical"`
	Neutral   int                `json:"neutral"`
	Total     int                `json:"total"`
	Fractions map[string]float64 `json:"fractions"`
}

// MetricsResponse holds the headline numbers.
type MetricsResponse struct {
	ActivePartners     int `json:"active_partners"`
	OpenThreads        int `json:"open_threads"`
	OverdueFollowUps   int `json:"overdue_follow_ups"`
	WeeklyInteractions int `json:"weekly_interactions"`
}

// FocusItemResponse represents a derived to-do.
type FocusItemResponse struct {
	ID             string           `json:"id"`
	Type           domain.FocusType `json:"type"`
	PartnerID      string           `json:"partner_id"`
	PartnerName    string           `json:"partner_name"`
	Title          string           `json:"title"`
	Reason         string           `json:"reason"`
	Owner          domain.Team      `json:"owner"`
	Priority       domain.Priority  `json:"priority"`
	DueDate        *time.Time       `json:"due_date"`
	ActionRequired bool             `json:"action_required"`
}

// DashboardResponse is the landing view.
type DashboardResponse struct {
	Metrics       MetricsResponse     `json:"metrics"`
	HealthRing    HealthRingResponse  `json:"health_ring"`
	UrgentFocus   []FocusItemResponse `json:"urgent_focus"`
	OtherFocus    []FocusItemResponse `json:"other_focus"`
	RecentThreads []ThreadResponse    `json:"recent_threads"`
}
