// Package fixtures loads demo data for the desk from YAML.
//
// Timestamps are either RFC 3339 values or signed Go durations relative to
// the load time ("-36h" is a day and a half ago), so a fixture stays fresh.
package fixtures

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/store"
)

// File is the YAML document layout.
type File struct {
	Partners      []Partner       `yaml:"partners"`
	Interactions  []Interaction   `yaml:"interactions"`
	Threads       []Thread        `yaml:"threads"`
	Contacts      []Contact       `yaml:"contacts"`
	HealthHistory []HealthHistory `yaml:"health_history"`
}

// Partner is a fixture partner. OpenThreads is derived from the threads
// unless set explicitly.
type Partner struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Tier           string  `yaml:"tier"`
	Health         string  `yaml:"health"`
	LastActivity   string  `yaml:"last_activity"`
	OpenThreads    *int    `yaml:"open_threads"`
	Revenue        float64 `yaml:"revenue"`
	Segment        string  `yaml:"segment"`
	AccountManager string  `yaml:"account_manager"`
}

// Interaction is a fixture interaction; its kind follows from Channel.
type Interaction struct {
	ID               string `yaml:"id"`
	PartnerID        string `yaml:"partner_id"`
	Channel          string `yaml:"channel"`
	InteractionType  string `yaml:"interaction_type"`
	Summary          string `yaml:"summary"`
	Date             string `yaml:"date"`
	Resolved         bool   `yaml:"resolved"`
	FollowUpRequired bool   `yaml:"follow_up_required"`
	FollowUpDate     string `yaml:"follow_up_date"`
	Owner            string `yaml:"owner"`
}

// Thread is a fixture thread.
type Thread struct {
	ID               string `yaml:"id"`
	PartnerID        string `yaml:"partner_id"`
	Title            string `yaml:"title"`
	Status           string `yaml:"status"`
	Owner            string `yaml:"owner"`
	Visibility       string `yaml:"visibility"`
	Priority         string `yaml:"priority"`
	CreatedAt        string `yaml:"created_at"`
	UpdatedAt        string `yaml:"updated_at"`
	InteractionCount int    `yaml:"interaction_count"`
	LastActivity     string `yaml:"last_activity"`
}

// Contact is a fixture stakeholder.
type Contact struct {
	ID        string `yaml:"id"`
	PartnerID string `yaml:"partner_id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Role      string `yaml:"role"`
	IsPrimary bool   `yaml:"is_primary"`
	Notes     string `yaml:"notes"`
}

// HealthHistory is one fixture health history entry.
type HealthHistory struct {
	ID         string `yaml:"id"`
	PartnerID  string `yaml:"partner_id"`
	Health     string `yaml:"health"`
	Reason     string `yaml:"reason"`
	RecordedAt string `yaml:"recorded_at"`
}

// Load reads and converts a fixture file.
func Load(path string, now time.Time) (store.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read fixture: %w", err)
	}
	snap, err := Parse(raw, now)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	return snap, nil
}

// Parse converts fixture YAML into a store snapshot. Denormalized partner
// names and interaction kinds are derived; a partner's open thread count is
// derived from its threads unless the fixture pins it.
func Parse(raw []byte, now time.Time) (store.Snapshot, error) {
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode yaml: %w", err)
	}
	return file.Snapshot(now)
}

// Snapshot validates the document and resolves relative timestamps against now.
func (f File) Snapshot(now time.Time) (store.Snapshot, error) {
	snap := store.Snapshot{
		Partners:      make([]domain.Partner, 0, len(f.Partners)),
		Interactions:  make([]domain.Interaction, 0, len(f.Interactions)),
		Threads:       make([]domain.Thread, 0, len(f.Threads)),
		Contacts:      make([]domain.Contact, 0, len(f.Contacts)),
		HealthHistory: make([]domain.HealthHistoryEntry, 0, len(f.HealthHistory)),
	}
	names := make(map[string]string, len(f.Partners))
	openThreads := map[string]int{}

	for i, t := range f.Threads {
		thread, err := t.toDomain(now)
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("threads[%d]: %w", i, err)
		}
		if thread.Status.Open() {
			openThreads[thread.PartnerID]++
		}
		snap.Threads = append(snap.Threads, thread)
	}

	for i, p := range f.Partners {
		partner, err := p.toDomain(now)
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("partners[%d]: %w", i, err)
		}
		if _, dup := names[partner.ID]; dup {
			return store.Snapshot{}, fmt.Errorf("partners[%d]: duplicate id %q", i, partner.ID)
		}
		if p.OpenThreads == nil {
			partner.OpenThreads = openThreads[partner.ID]
		}
		names[partner.ID] = partner.Name
		snap.Partners = append(snap.Partners, partner)
	}

	for i := range snap.Threads {
		snap.Threads[i].PartnerName = partnerName(names, snap.Threads[i].PartnerID)
	}

	for i, in := range f.Interactions {
		interaction, err := in.toDomain(now)
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("interactions[%d]: %w", i, err)
		}
		interaction.PartnerName = partnerName(names, interaction.PartnerID)
		snap.Interactions = append(snap.Interactions, interaction)
	}

	for i, c := range f.Contacts {
		if _, ok := names[c.PartnerID]; !ok {
			return store.Snapshot{}, fmt.Errorf("contacts[%d]: unknown partner %q", i, c.PartnerID)
		}
		snap.Contacts = append(snap.Contacts, c.toDomain(now))
	}

	for i, h := range f.HealthHistory {
		entry, err := h.toDomain(now)
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("health_history[%d]: %w", i, err)
		}
		if _, ok := names[entry.PartnerID]; !ok {
			return store.Snapshot{}, fmt.Errorf("health_history[%d]: unknown partner %q", i, entry.PartnerID)
		}
		snap.HealthHistory = append(snap.HealthHistory, entry)
	}
	return snap, nil
}

func (p Partner) toDomain(now time.Time) (domain.Partner, error) {
	if p.ID == "" {
		return domain.Partner{}, fmt.Errorf("id required")
	}
	tier := domain.PartnerTier(p.Tier)
	if !tier.Valid() {
		return domain.Partner{}, fmt.Errorf("unknown tier %q", p.Tier)
	}
	health := domain.PartnerHealth(p.Health)
	if !health.Valid() {
		return domain.Partner{}, fmt.Errorf("unknown health %q", p.Health)
	}
	lastActivity, err := resolveTime(p.LastActivity, now)
	if err != nil {
		return domain.Partner{}, fmt.Errorf("last_activity: %w", err)
	}
	partner := domain.Partner{
		ID:             p.ID,
		Name:           p.Name,
		Tier:           tier,
		Health:         health,
		LastActivity:   lastActivity,
		Revenue:        p.Revenue,
		Segment:        p.Segment,
		AccountManager: p.AccountManager,
	}
	if p.OpenThreads != nil {
		partner.OpenThreads = *p.OpenThreads
	}
	return partner, nil
}

func (in Interaction) toDomain(now time.Time) (domain.Interaction, error) {
	if in.ID == "" {
		return domain.Interaction{}, fmt.Errorf("id required")
	}
	channel := domain.InteractionChannel(in.Channel)
	if !channel.Valid() {
		return domain.Interaction{}, fmt.Errorf("unknown channel %q", in.Channel)
	}
	interactionType := domain.InteractionType(in.InteractionType)
	if !interactionType.Valid() {
		return domain.Interaction{}, fmt.Errorf("unknown interaction_type %q", in.InteractionType)
	}
	date, err := resolveTime(in.Date, now)
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("date: %w", err)
	}
	interaction := domain.Interaction{
		ID:               in.ID,
		PartnerID:        in.PartnerID,
		Kind:             domain.KindForChannel(channel),
		Channel:          channel,
		InteractionType:  interactionType,
		Summary:          strings.TrimSpace(in.Summary),
		Date:             date,
		Resolved:         in.Resolved,
		FollowUpRequired: in.FollowUpRequired,
		Owner:            teamOrOther(in.Owner),
	}
	if in.FollowUpDate != "" {
		due, err := resolveTime(in.FollowUpDate, now)
		if err != nil {
			return domain.Interaction{}, fmt.Errorf("follow_up_date: %w", err)
		}
		interaction.FollowUpDate = &due
	}
	return interaction, nil
}

func (t Thread) toDomain(now time.Time) (domain.Thread, error) {
	if t.ID == "" {
		return domain.Thread{}, fmt.Errorf("id required")
	}
	thread := domain.Thread{
		ID:               t.ID,
		PartnerID:        t.PartnerID,
		Title:            t.Title,
		Status:           domain.ThreadStatus(t.Status),
		Owner:            teamOrOther(t.Owner),
		Visibility:       domain.ThreadVisibility(t.Visibility),
		Priority:         domain.Priority(t.Priority),
		InteractionCount: t.InteractionCount,
		LastActivity:     t.LastActivity,
	}
	if !thread.Status.Valid() {
		return domain.Thread{}, fmt.Errorf("unknown status %q", t.Status)
	}
	if !thread.Visibility.Valid() {
		return domain.Thread{}, fmt.Errorf("unknown visibility %q", t.Visibility)
	}
	if !thread.Priority.Valid() {
		return domain.Thread{}, fmt.Errorf("unknown priority %q", t.Priority)
	}
	var err error
	if thread.CreatedAt, err = resolveTime(t.CreatedAt, now); err != nil {
		return domain.Thread{}, fmt.Errorf("created_at: %w", err)
	}
	if t.UpdatedAt == "" {
		thread.UpdatedAt = thread.CreatedAt
	} else if thread.UpdatedAt, err = resolveTime(t.UpdatedAt, now); err != nil {
		return domain.Thread{}, fmt.Errorf("updated_at: %w", err)
	}
	return thread, nil
}

func (c Contact) toDomain(now time.Time) domain.Contact {
	role := domain.ContactRole(c.Role)
	if !role.Valid() {
		role = domain.ContactRoleOther
	}
	return domain.Contact{
		ID:        c.ID,
		PartnerID: c.PartnerID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Role:      role,
		IsPrimary: c.IsPrimary,
		Notes:     c.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (h HealthHistory) toDomain(now time.Time) (domain.HealthHistoryEntry, error) {
	health := domain.PartnerHealth(h.Health)
	if !health.Valid() {
		return domain.HealthHistoryEntry{}, fmt.Errorf("unknown health %q", h.Health)
	}
	recordedAt, err := resolveTime(h.RecordedAt, now)
	if err != nil {
		return domain.HealthHistoryEntry{}, fmt.Errorf("recorded_at: %w", err)
	}
	return domain.HealthHistoryEntry{
		ID:         h.ID,
		PartnerID:  h.PartnerID,
		Health:     health,
		Reason:     h.Reason,
		RecordedAt: recordedAt,
	}, nil
}

// resolveTime accepts "", "now", an RFC 3339 timestamp or a duration offset from now.
func resolveTime(value string, now time.Time) (time.Time, error) {
	switch value = strings.TrimSpace(value); value {
	case "", "now":
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	offset, err := time.ParseDuration(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC 3339 or a duration such as -48h", value)
	}
	return now.Add(offset), nil
}

func teamOrOther(value string) domain.Team {
	team := domain.Team(value)
	if !team.Valid() {
		return domain.TeamOther
	}
	return team
}

func partnerName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return domain.UnknownPartnerName
}
