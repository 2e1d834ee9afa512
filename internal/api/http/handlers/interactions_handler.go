package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/partner-desk/internal/api/dto"
	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/insights"
	"github.com/spec-kit/partner-desk/internal/store"
	"github.com/spec-kit/partner-desk/pkg/util/errorutil"
)

const minSummaryLength = 3

// InteractionsHandler exposes the interaction feed.
type InteractionsHandler struct {
	store *store.Store
	now   Clock
}

// NewInteractionsHandler constructs handler.
func NewInteractionsHandler(st *store.Store, clock Clock) *InteractionsHandler {
	return &InteractionsHandler{store: st, now: clockOrNow(clock)}
}

// ListInteractions GET /api/interactions?search=&type=.
// Counts cover the search-filtered feed before the kind filter applies.
func (h *InteractionsHandler) ListInteractions(c *fiber.Ctx) error {
	query := insights.InteractionQuery{
		Search: c.Query("search"),
		Kind:   c.Query("type", insights.FilterAll),
	}
	if !validEnumFilter(query.Kind, func(v string) bool {
		return v == string(domain.KindDirect) || v == string(domain.KindIndirect)
	}) {
		return errorutil.NewValidationError("invalid type filter", map[string]any{"type": query.Kind})
	}

	searched := insights.FilterInteractions(h.store.Interactions(), insights.InteractionQuery{Search: query.Search})
	counts := stringCounts(insights.KindCounts(searched))
	counts[insights.FilterAll] = len(searched)

	now := h.now()
	result := insights.QueryInteractions(searched, query)
	days := []dto.InteractionDayGroup{}
	for _, group := range insights.GroupInteractionsByDay(result) {
		days = append(days, dto.InteractionDayGroup{
			Day:          group.Day,
			Interactions: interactionResponses(group.Interactions, now),
		})
	}
	return c.JSON(fiber.Map{"data": dto.InteractionFeedResponse{Counts: counts, Days: days}})
}

// CreateInteraction POST /api/interactions.
func (h *InteractionsHandler) CreateInteraction(c *fiber.Ctx) error {
	var req dto.CreateInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	if req.PartnerID == "" {
		details["partner_id"] = "required"
	}
	if !req.Channel.Valid() {
		details["channel"] = "unknown channel"
	}
	if !req.InteractionType.Valid() {
		details["interaction_type"] = "unknown interaction type"
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Summary)) < minSummaryLength {
		details["summary"] = "must be at least 3 characters"
	}
	if req.Owner != "" && !req.Owner.Valid() {
		details["owner"] = "unknown team"
	}
	if req.FollowUpRequired && req.FollowUpDate == nil {
		details["follow_up_date"] = "required when follow_up_required is set"
	}
	if len(details) > 0 {
		return errorutil.NewValidationError("invalid interaction", details)
	}
	if _, ok := h.store.Partner(req.PartnerID); !ok {
		return errorutil.NewNotFound("partner", map[string]any{"partner_id": req.PartnerID})
	}

	followUpDate := req.FollowUpDate
	if !req.FollowUpRequired {
		followUpDate = nil
	}
	interaction := h.store.LogInteraction(c.UserContext(), store.InteractionCreateInput{
		PartnerID:        req.PartnerID,
		Channel:          req.Channel,
		InteractionType:  req.InteractionType,
		Summary:          req.Summary,
		FollowUpRequired: req.FollowUpRequired,
		FollowUpDate:     followUpDate,
		Owner:            req.Owner,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": interactionResponse(interaction, h.now())})
}
