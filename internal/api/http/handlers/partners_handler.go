package handlers

import (
	"math"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/partner-desk/internal/api/dto"
	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/insights"
	"github.com/spec-kit/partner-desk/internal/store"
	"github.com/spec-kit/partner-desk/pkg/util/errorutil"
)

// PartnersHandler exposes the partner directory and profile.
type PartnersHandler struct {
	store *store.Store
	now   Clock
}

// NewPartnersHandler constructs handler.
func NewPartnersHandler(st *store.Store, clock Clock) *PartnersHandler {
	return &PartnersHandler{store: st, now: clockOrNow(clock)}
}

// ListPartners GET /api/partners?search=&health=&sort=.
func (h *PartnersHandler) ListPartners(c *fiber.Ctx) error {
	query := insights.PartnerQuery{
		Search: c.Query("search"),
		Health: c.Query("health", insights.FilterAll),
		Sort:   insights.PartnerSortField(c.Query("sort")),
	}
	if !query.Sort.Valid() {
		return errorutil.NewValidationError("invalid sort", map[string]any{"sort": string(query.Sort)})
	}
	if !validEnumFilter(query.Health, func(v string) bool { return domain.PartnerHealth(v).Valid() }) {
		return errorutil.NewValidationError("invalid health filter", map[string]any{"health": query.Health})
	}

	partners := h.store.Partners()
	result := insights.QueryPartners(partners, query)
	return c.JSON(fiber.Map{
		"data": partnerResponses(result),
		"meta": fiber.Map{
			"total":         len(partners),
			"health_counts": stringCounts(insights.HealthCounts(partners)),
		},
	})
}

// CreatePartner POST /api/partners.
func (h *PartnersHandler) CreatePartner(c *fiber.Ctx) error {
	var req dto.CreatePartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "required"
	}
	if req.Tier != "" && !req.Tier.Valid() {
		details["tier"] = "unknown tier"
	}
	if req.Health != "" && !req.Health.Valid() {
		details["health"] = "unknown health"
	}
	if req.Revenue < 0 || math.IsNaN(req.Revenue) || math.IsInf(req.Revenue, 0) {
		details["revenue"] = "must be a non-negative number"
	}
	if len(details) > 0 {
		return errorutil.NewValidationError("invalid partner", details)
	}

	partner := h.store.AddPartner(c.UserContext(), store.PartnerCreateInput{
		Name:           req.Name,
		Tier:           req.Tier,
		Health:         req.Health,
		Revenue:        req.Revenue,
		Segment:        req.Segment,
		AccountManager: req.AccountManager,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": partnerResponse(partner)})
}

// GetPartner GET /api/partners/:id.
func (h *PartnersHandler) GetPartner(c *fiber.Ctx) error {
	id := c.Params("id")
	partner, ok := h.store.Partner(id)
	if !ok {
		return errorutil.NewNotFound("partner", map[string]any{"partner_id": id})
	}

	history := h.store.HealthHistory(id)
	active, resolved := insights.SplitPartnerThreads(h.store.Threads(), id)
	primary, others := insights.SplitContacts(h.store.Contacts(id))

	profile := dto.PartnerProfileResponse{
		Partner:         partnerResponse(partner),
		Trend:           string(insights.PartnerHealthTrend(partner, history)),
		HealthHistory:   historyResponses(history),
		Timeline:        interactionResponses(insights.PartnerTimeline(h.store.Interactions(), id), h.now()),
		ActiveThreads:   threadResponses(active),
		ResolvedThreads: threadResponses(resolved),
		OtherContacts:   make([]dto.ContactResponse, 0, len(others)),
	}
	if primary != nil {
		resp := contactResponse(*primary)
		profile.PrimaryContact = &resp
	}
	for _, contact := range others {
		profile.OtherContacts = append(profile.OtherContacts, contactResponse(contact))
	}
	return c.JSON(fiber.Map{"data": profile})
}

// UpdateHealth PATCH /api/partners/:id/health.
func (h *PartnersHandler) UpdateHealth(c *fiber.Ctx) error {
	var req dto.UpdatePartnerHealthRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if !req.Health.Valid() {
		return errorutil.NewValidationError("invalid health", map[string]any{"health": string(req.Health)})
	}

	id := c.Params("id")
	partner, ok := h.store.UpdatePartnerHealth(c.UserContext(), store.HealthUpdate{
		PartnerID: id,
		Health:    req.Health,
		Reason:    req.Reason,
	})
	if !ok {
		return errorutil.NewNotFound("partner", map[string]any{"partner_id": id})
	}
	return c.JSON(fiber.Map{"data": partnerResponse(partner)})
}

// AddContact POST /api/partners/:id/contacts.
func (h *PartnersHandler) AddContact(c *fiber.Ctx) error {
	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	if strings.TrimSpace(req.FirstName) == "" {
		details["first_name"] = "required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		details["last_name"] = "required"
	}
	if req.Role != "" && !req.Role.Valid() {
		details["role"] = "unknown role"
	}
	if len(details) > 0 {
		return errorutil.NewValidationError("invalid contact", details)
	}

	id := c.Params("id")
	contact, ok := h.store.AddContact(c.UserContext(), store.ContactCreateInput{
		PartnerID: id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		IsPrimary: req.IsPrimary,
		Notes:     req.Notes,
	})
	if !ok {
		return errorutil.NewNotFound("partner", map[string]any{"partner_id": id})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": contactResponse(contact)})
}
