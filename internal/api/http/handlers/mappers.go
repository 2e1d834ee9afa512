package handlers

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/api/dto"
	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/insights"
)

func partnerResponse(p domain.Partner) dto.PartnerResponse {
	return dto.PartnerResponse{
		ID:             p.ID,
		Name:           p.Name,
		Tier:           p.Tier,
		Health:         p.Health,
		LastActivity:   p.LastActivity,
		OpenThreads:    p.OpenThreads,
		Revenue:        p.Revenue,
		Segment:        p.Segment,
		AccountManager: p.AccountManager,
	}
}

func partnerResponses(partners []domain.Partner) []dto.PartnerResponse {
	items := make([]dto.PartnerResponse, 0, len(partners))
	for _, p := range partners {
		items = append(items, partnerResponse(p))
	}
	return items
}

func interactionResponse(i domain.Interaction, now time.Time) dto.InteractionResponse {
	return dto.InteractionResponse{
		ID:               i.ID,
		PartnerID:        i.PartnerID,
		PartnerName:      i.PartnerName,
		Type:             i.Kind,
		Channel:          i.Channel,
		InteractionType:  i.InteractionType,
		Summary:          i.Summary,
		Date:             i.Date,
		Resolved:         i.Resolved,
		FollowUpRequired: i.FollowUpRequired,
		FollowUpDate:     i.FollowUpDate,
		Overdue:          insights.IsOverdue(i, now),
		Owner:            i.Owner,
	}
}

func interactionResponses(interactions []domain.Interaction, now time.Time) []dto.InteractionResponse {
	items := make([]dto.InteractionResponse, 0, len(interactions))
	for _, i := range interactions {
		items = append(items, interactionResponse(i, now))
	}
	return items
}

func threadResponse(t domain.Thread) dto.ThreadResponse {
	return dto.ThreadResponse{
		ID:               t.ID,
		PartnerID:        t.PartnerID,
		PartnerName:      t.PartnerName,
		Title:            t.Title,
		Status:           t.Status,
		Owner:            t.Owner,
		Visibility:       t.Visibility,
		Priority:         t.Priority,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
		InteractionCount: t.InteractionCount,
		LastActivity:     t.LastActivity,
	}
}

func threadResponses(threads []domain.Thread) []dto.ThreadResponse {
	items := make([]dto.ThreadResponse, 0, len(threads))
	for _, t := range threads {
		items = append(items, threadResponse(t))
	}
	return items
}

func contactResponse(c domain.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:        c.ID,
		PartnerID: c.PartnerID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Role:      c.Role,
		IsPrimary: c.IsPrimary,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func historyResponses(entries []domain.HealthHistoryEntry) []dto.HealthHistoryResponse {
	items := make([]dto.HealthHistoryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.HealthHistoryResponse{
			ID:         e.ID,
			Health:     e.Health,
			Reason:     e.Reason,
			RecordedAt: e.RecordedAt,
		})
	}
	return items
}

func focusResponses(items []domain.FocusItem) []dto.FocusItemResponse {
	result := make([]dto.FocusItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, dto.FocusItemResponse{
			ID:             item.ID,
			Type:           item.Type,
			PartnerID:      item.PartnerID,
			PartnerName:    item.PartnerName,
			Title:          item.Title,
			Reason:         item.Reason,
			Owner:          item.Owner,
			Priority:       item.Priority,
			DueDate:        item.DueDate,
			ActionRequired: item.ActionRequired,
		})
	}
	return result
}

func stringCounts[K ~string](counts map[K]int) map[string]int {
	result := make(map[string]int, len(counts))
	for k, v := range counts {
		result[string(k)] = v
	}
	return result
}
