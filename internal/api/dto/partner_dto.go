package dto

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// CreatePartnerRequest payload.
type CreatePartnerRequest struct {
	Name           string               `json:"name"`
	Tier           domain.PartnerTier   `json:"tier"`
	Health         domain.PartnerHealth `json:"health"`
	Revenue        float64              `json:"revenue"`
	Segment        string               `json:"segment"`
	AccountManager string               `json:"account_manager"`
}

// UpdatePartnerHealthRequest payload.
type UpdatePartnerHealthRequest struct {
	Health domain.PartnerHealth `json:"health"`
	Reason string               `json:"reason"`
}

// CreateContactRequest payload.
type CreateContactRequest struct {
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone"`
	Role      domain.ContactRole `json:"role"`
	IsPrimary bool               `json:"is_primary"`
	Notes     string             `json:"notes"`
}

// PartnerResponse represents a partner row.
type PartnerResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Tier           domain.PartnerTier   `json:"tier"`
	Health         domain.PartnerHealth `json:"health"`
	LastActivity   time.Time            `json:"last_activity"`
	OpenThreads    int                  `json:"open_threads"`
	Revenue        float64              `json:"revenue"`
	Segment        string               `json:"segment"`
	AccountManager string               `json:"account_manager"`
}

// HealthHistoryResponse represents one health change.
type HealthHistoryResponse struct {
	ID         string               `json:"id"`
	Health     domain.PartnerHealth `json:"health"`
	Reason     string               `json:"reason"`
	RecordedAt time.Time            `json:"recorded_at"`
}

// ContactResponse represents a partner stakeholder.
type ContactResponse struct {
	ID        string             `json:"id"`
	PartnerID string             `json:"partner_id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone"`
	Role      domain.ContactRole `json:"role"`
	IsPrimary bool               `json:"is_primary"`
	Notes     string             `json:"notes"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// PartnerProfileResponse is the partner detail view.
type PartnerProfileResponse struct {
	Partner         PartnerResponse         `json:"partner"`
	Trend           string                  `json:"trend"`
	HealthHistory   []HealthHistoryResponse `json:"health_history"`
	Timeline        []InteractionResponse   `json:"timeline"`
	ActiveThreads   []ThreadResponse        `json:"active_threads"`
	ResolvedThreads []ThreadResponse        `json:"resolved_threads"`
	PrimaryContact  *ContactResponse        `json:"primary_contact"`
	OtherContacts   []ContactResponse       `json:"other_contacts"`
}
