// Package store owns the partner, interaction and thread collections and is
// their only write path. Derived partner fields (LastActivity, OpenThreads)
// are maintained incrementally by the mutations defined here; anything that
// bypasses the store can desynchronize them.
package store

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/events"
)

const (
	defaultPartnerName    = "Unnamed Partner"
	defaultSegment        = "SMB"
	defaultAccountManager = "You"
	defaultThreadActivity = "Thread created"
	createdHealthReason   = "Partner created"
)

// Store is the in-memory state container behind the dashboard.
type Store struct {
	mu           sync.RWMutex
	partners     []domain.Partner
	interactions []domain.Interaction
	threads      []domain.Thread
	contacts     []domain.Contact
	history      map[string][]domain.HealthHistoryEntry

	now        func() time.Time
	newID      func(prefix string) string
	dispatcher events.Dispatcher
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides identity generation.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithDispatcher publishes an event after every local mutation.
func WithDispatcher(dispatcher events.Dispatcher) Option {
	return func(s *Store) {
		s.dispatcher = dispatcher
	}
}

// New constructs an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		history: make(map[string][]domain.HealthHistoryEntry),
		now:     time.Now,
		newID:   makeID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func makeID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// AddPartner creates a partner from caller input, coercing instead of rejecting.
func (s *Store) AddPartner(ctx context.Context, input PartnerCreateInput) domain.Partner {
	s.mu.Lock()
	now := s.now()
	partner := domain.Partner{
		ID:             s.newID("partner"),
		Name:           orDefault(input.Name, defaultPartnerName),
		Tier:           input.Tier,
		Health:         input.Health,
		LastActivity:   now,
		OpenThreads:    0,
		Revenue:        coerceRevenue(input.Revenue),
		Segment:        orDefault(input.Segment, defaultSegment),
		AccountManager: orDefault(input.AccountManager, defaultAccountManager),
		Version:        1,
	}
	if !partner.Tier.Valid() {
		partner.Tier = domain.TierBronze
	}
	if !partner.Health.Valid() {
		partner.Health = domain.HealthNeutral
	}
	entry := s.recordHealthLocked(partner.ID, partner.Health, createdHealthReason, now)
	s.partners = append([]domain.Partner{partner}, s.partners...)
	s.mu.Unlock()

	s.publish(ctx, events.EventPartnerCreated, partner.ID, events.PartnerCreatedPayload{
		Partner: partner,
		History: entry,
	})
	return partner
}

// LogInteraction records an interaction and bumps the partner's last activity.
// An unknown partner still yields a record carrying the fallback name.
func (s *Store) LogInteraction(ctx context.Context, input InteractionCreateInput) domain.Interaction {
	s.mu.Lock()
	now := s.now()
	idx := s.partnerIndexLocked(input.PartnerID)
	interaction := domain.Interaction{
		ID:               s.newID("interaction"),
		PartnerID:        input.PartnerID,
		PartnerName:      s.partnerNameLocked(idx),
		Kind:             domain.KindForChannel(input.Channel),
		Channel:          input.Channel,
		InteractionType:  input.InteractionType,
		Summary:          strings.TrimSpace(input.Summary),
		Date:             now,
		Resolved:         false,
		FollowUpRequired: input.FollowUpRequired,
		FollowUpDate:     cloneTime(input.FollowUpDate),
		Owner:            input.Owner,
	}
	if !interaction.Owner.Valid() {
		interaction.Owner = domain.TeamOther
	}
	s.interactions = append([]domain.Interaction{interaction}, s.interactions...)
	partner := s.touchPartnerLocked(idx, now, 0)
	s.mu.Unlock()

	s.publish(ctx, events.EventInteractionLogged, input.PartnerID, events.InteractionLoggedPayload{
		Interaction: cloneInteraction(interaction),
		Partner:     partner,
	})
	return cloneInteraction(interaction)
}

// AddThread opens a thread. The partner's open thread counter grows by one
// unless the thread is created already resolved.
func (s *Store) AddThread(ctx context.Context, input ThreadCreateInput) domain.Thread {
	s.mu.Lock()
	now := s.now()
	idx := s.partnerIndexLocked(input.PartnerID)
	thread := domain.Thread{
		ID:               s.newID("thread"),
		PartnerID:        input.PartnerID,
		PartnerName:      s.partnerNameLocked(idx),
		Title:            strings.TrimSpace(input.Title),
		Status:           input.Status,
		Owner:            input.Owner,
		Visibility:       input.Visibility,
		Priority:         input.Priority,
		CreatedAt:        now,
		UpdatedAt:        now,
		InteractionCount: 0,
		LastActivity:     orDefault(input.LastActivity, defaultThreadActivity),
	}
	if !thread.Owner.Valid() {
		thread.Owner = domain.TeamOther
	}
	s.threads = append([]domain.Thread{thread}, s.threads...)
	increment := 1
	if input.Status == domain.ThreadStatusResolved {
		increment = 0
	}
	partner := s.touchPartnerLocked(idx, now, increment)
	s.mu.Unlock()

	s.publish(ctx, events.EventThreadCreated, input.PartnerID, events.ThreadCreatedPayload{
		Thread:  thread,
		Partner: partner,
	})
	return thread
}

// UpdatePartnerHealth replaces a partner's health. It reports false when the
// partner does not exist. A change of value appends a history entry.
func (s *Store) UpdatePartnerHealth(ctx context.Context, update HealthUpdate) (domain.Partner, bool) {
	s.mu.Lock()
	idx := s.partnerIndexLocked(update.PartnerID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Partner{}, false
	}
	old := s.partners[idx].Health
	if old == update.Health {
		partner := s.partners[idx]
		s.mu.Unlock()
		return partner, true
	}
	s.partners[idx].Health = update.Health
	s.partners[idx].Version++
	partner := s.partners[idx]
	reason := strings.TrimSpace(update.Reason)
	if reason == "" {
		reason = fmt.Sprintf("Health changed to %s", update.Health)
	}
	entry := s.recordHealthLocked(partner.ID, update.Health, reason, s.now())
	s.mu.Unlock()

	s.publish(ctx, events.EventPartnerHealthChanged, partner.ID, events.PartnerHealthChangedPayload{
		OldHealth: old,
		NewHealth: update.Health,
		Partner:   partner,
		History:   entry,
	})
	return partner, true
}

// UpdateThreadStatus moves a thread to any status and keeps the partner's
// open thread counter in step. It reports false when the thread does not exist.
func (s *Store) UpdateThreadStatus(ctx context.Context, threadID string, status domain.ThreadStatus) (domain.Thread, bool) {
	s.mu.Lock()
	tIdx := slices.IndexFunc(s.threads, func(t domain.Thread) bool { return t.ID == threadID })
	if tIdx < 0 {
		s.mu.Unlock()
		return domain.Thread{}, false
	}
	old := s.threads[tIdx].Status
	if old == status {
		thread := s.threads[tIdx]
		s.mu.Unlock()
		return thread, true
	}
	now := s.now()
	s.threads[tIdx].Status = status
	s.threads[tIdx].UpdatedAt = now
	thread := s.threads[tIdx]

	var partner *domain.Partner
	if pIdx := s.partnerIndexLocked(thread.PartnerID); pIdx >= 0 {
		p := &s.partners[pIdx]
		switch {
		case old.Open() && !status.Open():
			if p.OpenThreads > 0 {
				p.OpenThreads--
			}
		case !old.Open() && status.Open():
			p.OpenThreads++
		}
		p.Version++
		snapshot := *p
		partner = &snapshot
	}
	s.mu.Unlock()

	s.publish(ctx, events.EventThreadStatusChanged, thread.PartnerID, events.ThreadStatusChangedPayload{
		OldStatus: old,
		NewStatus: status,
		Thread:    thread,
		Partner:   partner,
	})
	return thread, true
}

// AddContact attaches a stakeholder to an existing partner. A new primary
// contact demotes the previous one. It reports false when the partner is unknown.
func (s *Store) AddContact(ctx context.Context, input ContactCreateInput) (domain.Contact, bool) {
	s.mu.Lock()
	if s.partnerIndexLocked(input.PartnerID) < 0 {
		s.mu.Unlock()
		return domain.Contact{}, false
	}
	now := s.now()
	contact := domain.Contact{
		ID:        s.newID("contact"),
		PartnerID: input.PartnerID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Role:      input.Role,
		IsPrimary: input.IsPrimary,
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !contact.Role.Valid() {
		contact.Role = domain.ContactRoleOther
	}
	if contact.IsPrimary {
		for i := range s.contacts {
			if s.contacts[i].PartnerID == contact.PartnerID && s.contacts[i].IsPrimary {
				s.contacts[i].IsPrimary = false
				s.contacts[i].UpdatedAt = now
			}
		}
	}
	s.contacts = append([]domain.Contact{contact}, s.contacts...)
	s.mu.Unlock()

	s.publish(ctx, events.EventContactAdded, contact.PartnerID, events.ContactAddedPayload{Contact: contact})
	return contact, true
}

// Partners returns the partner collection, most recently created first.
func (s *Store) Partners() []domain.Partner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.partners)
}

// Interactions returns the interaction collection, most recent first.
func (s *Store) Interactions() []domain.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneInteractions(s.interactions)
}

// Threads returns the thread collection, most recently created first.
func (s *Store) Threads() []domain.Thread {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.threads)
}

// Contacts returns the contacts of one partner, most recent first.
func (s *Store) Contacts(partnerID string) []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.Contact{}
	for _, c := range s.contacts {
		if c.PartnerID == partnerID {
			result = append(result, c)
		}
	}
	return result
}

// Partner looks up a partner by id.
func (s *Store) Partner(id string) (domain.Partner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.partnerIndexLocked(id)
	if idx < 0 {
		return domain.Partner{}, false
	}
	return s.partners[idx], true
}

// Thread looks up a thread by id.
func (s *Store) Thread(id string) (domain.Thread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.threads {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Thread{}, false
}

// HealthHistory returns a partner's health history, newest first.
func (s *Store) HealthHistory(partnerID string) []domain.HealthHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history[partnerID])
}

// Snapshot copies every collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Partners:     slices.Clone(s.partners),
		Interactions: cloneInteractions(s.interactions),
		Threads:      slices.Clone(s.threads),
		Contacts:     slices.Clone(s.contacts),
	}
	for _, p := range s.partners {
		snap.HealthHistory = append(snap.HealthHistory, s.history[p.ID]...)
	}
	return snap
}

// Seed replaces every collection with the snapshot. Derived fields are taken
// as given; history entries are regrouped per partner, newest first.
func (s *Store) Seed(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners = slices.Clone(snap.Partners)
	s.interactions = cloneInteractions(snap.Interactions)
	s.threads = slices.Clone(snap.Threads)
	s.contacts = slices.Clone(snap.Contacts)
	s.history = groupHistory(snap.HealthHistory)
}

// ReplaceHealthHistory swaps the whole health history for entries, regrouped
// per partner, newest first. Partners and other collections are untouched.
func (s *Store) ReplaceHealthHistory(entries []domain.HealthHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = groupHistory(entries)
}

func groupHistory(entries []domain.HealthHistoryEntry) map[string][]domain.HealthHistoryEntry {
	history := make(map[string][]domain.HealthHistoryEntry)
	for _, entry := range entries {
		history[entry.PartnerID] = append(history[entry.PartnerID], entry)
	}
	for id := range history {
		slices.SortStableFunc(history[id], func(a, b domain.HealthHistoryEntry) int {
			return b.RecordedAt.Compare(a.RecordedAt)
		})
	}
	return history
}

func (s *Store) partnerIndexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.partners, func(p domain.Partner) bool { return p.ID == id })
}

func (s *Store) partnerNameLocked(idx int) string {
	if idx < 0 {
		return domain.UnknownPartnerName
	}
	return s.partners[idx].Name
}

// touchPartnerLocked moves LastActivity forward (never backward), adds
// openDelta to OpenThreads and bumps the version. It returns a copy of the partner, or nil when idx
// does not reference one.
func (s *Store) touchPartnerLocked(idx int, now time.Time, openDelta int) *domain.Partner {
	if idx < 0 {
		return nil
	}
	p := &s.partners[idx]
	if now.After(p.LastActivity) {
		p.LastActivity = now
	}
	p.OpenThreads += openDelta
	p.Version++
	snapshot := *p
	return &snapshot
}

func (s *Store) recordHealthLocked(partnerID string, health domain.PartnerHealth, reason string, at time.Time) domain.HealthHistoryEntry {
	entry := domain.HealthHistoryEntry{
		ID:         s.newID("health"),
		PartnerID:  partnerID,
		Health:     health,
		Reason:     reason,
		RecordedAt: at,
	}
	s.history[partnerID] = append([]domain.HealthHistoryEntry{entry}, s.history[partnerID]...)
	return entry
}

func (s *Store) publish(ctx context.Context, eventType events.EventType, partnerID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		PartnerID: partnerID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func coerceRevenue(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneInteraction(i domain.Interaction) domain.Interaction {
	i.FollowUpDate = cloneTime(i.FollowUpDate)
	return i
}

func cloneInteractions(src []domain.Interaction) []domain.Interaction {
	if src == nil {
		return nil
	}
	out := make([]domain.Interaction, len(src))
	for i := range src {
		out[i] = cloneInteraction(src[i])
	}
	return out
}
