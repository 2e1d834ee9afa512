package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/partner-desk/internal/api/dto"
	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/insights"
	"github.com/spec-kit/partner-desk/internal/store"
)

const recentThreadsOnDashboard = 5

// DashboardHandler serves the landing view.
type DashboardHandler struct {
	store *store.Store
	now   Clock
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(st *store.Store, clock Clock) *DashboardHandler {
	return &DashboardHandler{store: st, now: clockOrNow(clock)}
}

// GetDashboard GET /api/dashboard.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	now := h.now()
	snap := h.store.Snapshot()

	metrics := insights.ComputeDashboard(snap.Partners, snap.Interactions, snap.Threads, now)
	urgent, other := insights.ClassifyFocus(insights.BuildFocusItems(snap.Partners, snap.Interactions, snap.Threads, now))

	ring := metrics.Ring
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		Metrics: dto.MetricsResponse{
			ActivePartners:     metrics.ActivePartners,
			OpenThreads:        metrics.OpenThreads,
			OverdueFollowUps:   metrics.OverdueFollowUps,
			WeeklyInteractions: metrics.WeeklyInteractions,
		},
		HealthRing: dto.HealthRingResponse{
			Healthy:   ring.Healthy,
			Attention: ring.Attention,
			Critical:  ring.Critical,
			Neutral:   ring.Neutral,
			Total:     ring.Total,
			Fractions: map[string]float64{
				string(domain.HealthHealthy):   ring.Fraction(domain.HealthHealthy),
				string(domain.HealthAttention): ring.Fraction(domain.HealthAttention),
				string(domain.HealthCritical):  ring.Fraction(domain.HealthCritical),
			},
		},
		UrgentFocus:   focusResponses(urgent),
		OtherFocus:    focusResponses(other),
		RecentThreads: threadResponses(insights.RecentOwnedThreads(snap.Threads, recentThreadsOnDashboard)),
	}})
}
