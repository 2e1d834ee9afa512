package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/partner-desk/internal/api/dto"
	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/insights"
	"github.com/spec-kit/partner-desk/internal/store"
	"github.com/spec-kit/partner-desk/pkg/util/errorutil"
)

// ThreadsHandler exposes the thread board.
type ThreadsHandler struct {
	store *store.Store
}

// NewThreadsHandler constructs handler.
func NewThreadsHandler(st *store.Store) *ThreadsHandler {
	return &ThreadsHandler{store: st}
}

// ListThreads GET /api/threads?search=&visibility=&status=.
// Counts cover every thread; groups honour the filters.
func (h *ThreadsHandler) ListThreads(c *fiber.Ctx) error {
	query := insights.ThreadQuery{
		Search:     c.Query("search"),
		Visibility: c.Query("visibility", insights.FilterAll),
		Status:     c.Query("status", insights.FilterAll),
	}
	if !validEnumFilter(query.Visibility, func(v string) bool { return domain.ThreadVisibility(v).Valid() }) {
		return errorutil.NewValidationError("invalid visibility filter", map[string]any{"visibility": query.Visibility})
	}
	if !validEnumFilter(query.Status, func(v string) bool { return domain.ThreadStatus(v).Valid() }) {
		return errorutil.NewValidationError("invalid status filter", map[string]any{"status": query.Status})
	}

	threads := h.store.Threads()
	groups := insights.GroupThreadsByVisibility(insights.QueryThreads(threads, query))
	return c.JSON(fiber.Map{"data": dto.ThreadBoardResponse{
		Counts:         stringCounts(insights.VisibilityCounts(threads)),
		Owned:          threadResponses(groups.Owned),
		ActionRequired: threadResponses(groups.ActionRequired),
		FYI:            threadResponses(groups.FYI),
	}})
}

// CreateThread POST /api/threads.
func (h *ThreadsHandler) CreateThread(c *fiber.Ctx) error {
	var req dto.CreateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		req.Status = domain.ThreadStatusOpen
	}
	if req.Visibility == "" {
		req.Visibility = domain.VisibilityOwned
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityMedium
	}

	details := map[string]any{}
	if req.PartnerID == "" {
		details["partner_id"] = "required"
	}
	if strings.TrimSpace(req.Title) == "" {
		details["title"] = "required"
	}
	if !req.Status.Valid() {
		details["status"] = "unknown status"
	}
	if !req.Visibility.Valid() {
		details["visibility"] = "unknown visibility"
	}
	if !req.Priority.Valid() {
		details["priority"] = "unknown priority"
	}
	if req.Owner != "" && !req.Owner.Valid() {
		details["owner"] = "unknown team"
	}
	if len(details) > 0 {
		return errorutil.NewValidationError("invalid thread", details)
	}
	if _, ok := h.store.Partner(req.PartnerID); !ok {
		return errorutil.NewNotFound("partner", map[string]any{"partner_id": req.PartnerID})
	}

	thread := h.store.AddThread(c.UserContext(), store.ThreadCreateInput{
		PartnerID:    req.PartnerID,
		Title:        req.Title,
		Status:       req.Status,
		Visibility:   req.Visibility,
		Priority:     req.Priority,
		Owner:        req.Owner,
		LastActivity: req.LastActivity,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": threadResponse(thread)})
}

// UpdateStatus PATCH /api/threads/:id/status.
func (h *ThreadsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateThreadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if !req.Status.Valid() {
		return errorutil.NewValidationError("invalid status", map[string]any{"status": string(req.Status)})
	}

	id := c.Params("id")
	thread, ok := h.store.UpdateThreadStatus(c.UserContext(), id, req.Status)
	if !ok {
		return errorutil.NewNotFound("thread", map[string]any{"thread_id": id})
	}
	return c.JSON(fiber.Map{"data": threadResponse(thread)})
}
