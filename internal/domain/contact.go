package domain

import "time"

// ContactRole describes a stakeholder's function at the partner.
type ContactRole string

const (
	ContactRoleFinance    ContactRole = "finance"
	ContactRoleMarketing  ContactRole = "marketing"
	ContactRoleTechnical  ContactRole = "technical"
	ContactRoleOperations ContactRole = "operations"
	ContactRoleExecutive  ContactRole = "executive"
	ContactRoleOther      ContactRole = "other"
)

// Valid reports whether r is a known role.
func (r ContactRole) Valid() bool {
	switch r {
	case ContactRoleFinance, ContactRoleMarketing, ContactRoleTechnical,
		ContactRoleOperations, ContactRoleExecutive, ContactRoleOther:
		return true
	}
	return false
}

// Contact is a stakeholder at a partner.
type Contact struct {
	ID        string
	PartnerID string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      ContactRole
	IsPrimary bool
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
