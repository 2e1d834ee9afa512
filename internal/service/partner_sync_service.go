package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/events"
	"github.com/spec-kit/partner-desk/internal/observability"
	"github.com/spec-kit/partner-desk/internal/repository"
	"github.com/spec-kit/partner-desk/internal/store"
)

// Publisher broadcasts a payload on a pub/sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// PartnerSyncService mirrors local partner changes to Postgres and Redis and
// reconciles remote changes back into the store.
type PartnerSyncService struct {
	store      *store.Store
	partners   repository.PartnerRepository
	history    repository.HealthHistoryRepository
	publisher  Publisher
	dispatcher events.Dispatcher
	channel    string
	source     string
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// SyncDependencies bundles collaborators for the sync service. Partners,
// History and Publisher are optional; a nil collaborator is skipped.
type SyncDependencies struct {
	Store       *store.Store
	PartnerRepo repository.PartnerRepository
	HistoryRepo repository.HealthHistoryRepository
	Publisher   Publisher
	Dispatcher  events.Dispatcher
	Channel     string
	Source      string
	Logger      *zap.Logger
	Metrics     *observability.Metrics
}

// NewPartnerSyncService builds the service.
func NewPartnerSyncService(deps SyncDependencies) *PartnerSyncService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartnerSyncService{
		store:      deps.Store,
		partners:   deps.PartnerRepo,
		history:    deps.HistoryRepo,
		publisher:  deps.Publisher,
		dispatcher: deps.Dispatcher,
		channel:    deps.Channel,
		source:     deps.Source,
		logger:     logger,
		metrics:    deps.Metrics,
	}
}

// RegisterHandlers subscribes to every event that changes a partner row.
func (s *PartnerSyncService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventPartnerCreated,
		events.EventPartnerHealthChanged,
		events.EventInteractionLogged,
		events.EventThreadCreated,
		events.EventThreadStatusChanged,
	} {
		s.dispatcher.Subscribe(eventType, s.handlePartnerEvent)
	}
}

func (s *PartnerSyncService) handlePartnerEvent(ctx context.Context, event events.Event) error {
	partner, ok := event.PartnerSnapshot()
	if !ok {
		return nil
	}
	if err := s.pushPartner(ctx, event, partner); err != nil {
		s.metrics.RecordSync("outbound", "error")
		return err
	}
	s.metrics.RecordSync("outbound", "ok")
	return nil
}

func (s *PartnerSyncService) pushPartner(ctx context.Context, event events.Event, partner domain.Partner) error {
	if s.partners != nil {
		if err := s.partners.Upsert(ctx, partner); err != nil {
			return fmt.Errorf("upsert partner %s: %w", partner.ID, err)
		}
	}
	if entry, ok := historyEntry(event); ok && s.history != nil {
		if err := s.history.Create(ctx, entry); err != nil {
			return fmt.Errorf("record health history %s: %w", partner.ID, err)
		}
	}
	if s.publisher == nil {
		return nil
	}

	changeType := store.ChangeUpdated
	if event.Type == events.EventPartnerCreated {
		changeType = store.ChangeInserted
	}
	record := NewPartnerRecord(partner)
	payload, err := EncodeSyncMessage(SyncMessage{Source: s.source, Type: changeType, Partner: &record})
	if err != nil {
		return fmt.Errorf("encode partner %s: %w", partner.ID, err)
	}
	if err := s.publisher.Publish(ctx, s.channel, payload); err != nil {
		return fmt.Errorf("publish partner %s: %w", partner.ID, err)
	}
	return nil
}

func historyEntry(event events.Event) (domain.HealthHistoryEntry, bool) {
	switch p := event.Payload.(type) {
	case events.PartnerCreatedPayload:
		return p.History, true
	case events.PartnerHealthChangedPayload:
		return p.History, true
	}
	return domain.HealthHistoryEntry{}, false
}

// Bootstrap loads the persisted partners and their health history into the
// store. When the database holds no partners yet, the store's current
// partners and history (for example a seeded fixture) are written through
// instead of being replaced.
func (s *PartnerSyncService) Bootstrap(ctx context.Context) error {
	if s.partners == nil {
		return nil
	}
	persisted, err := s.partners.List(ctx)
	if err != nil {
		return fmt.Errorf("list partners: %w", err)
	}

	if len(persisted) == 0 {
		return s.seedDatabase(ctx)
	}

	var history []domain.HealthHistoryEntry
	if s.history != nil {
		for _, partner := range persisted {
			entries, err := s.history.ListByPartner(ctx, partner.ID)
			if err != nil {
				return fmt.Errorf("list health history %s: %w", partner.ID, err)
			}
			history = append(history, entries...)
		}
	}

	if err := s.store.ApplyRemoteChange(store.RemoteChange{Type: store.ChangeSnapshot, Partners: persisted}); err != nil {
		return err
	}
	if s.history != nil {
		s.store.ReplaceHealthHistory(history)
	}
	s.logger.Info("loaded partners from postgres",
		zap.Int("count", len(persisted)),
		zap.Int("history", len(history)))
	return nil
}

// seedDatabase writes the store's partners oldest first so creation order
// survives a reload, then their health history.
func (s *PartnerSyncService) seedDatabase(ctx context.Context) error {
	snap := s.store.Snapshot()
	for _, partner := range slices.Backward(snap.Partners) {
		if err := s.partners.Upsert(ctx, partner); err != nil {
			return fmt.Errorf("upsert partner %s: %w", partner.ID, err)
		}
	}
	if s.history != nil {
		for _, entry := range snap.HealthHistory {
			if err := s.history.Create(ctx, entry); err != nil {
				return fmt.Errorf("record health history %s: %w", entry.PartnerID, err)
			}
		}
	}
	s.logger.Info("seeded partner table from store",
		zap.Int("count", len(snap.Partners)),
		zap.Int("history", len(snap.HealthHistory)))
	return nil
}

// HandleRemoteMessage applies a message received from another desk instance.
// Messages this instance published itself are ignored. On failure the store
// is left untouched and the message is dropped.
func (s *PartnerSyncService) HandleRemoteMessage(_ context.Context, payload []byte) error {
	msg, change, err := DecodeSyncMessage(payload)
	if err != nil {
		s.metrics.RecordSync("inbound", "error")
		s.logger.Warn("dropping malformed sync message", zap.Error(err))
		return err
	}
	if msg.Source != "" && msg.Source == s.source {
		s.metrics.RecordSync("inbound", "skipped")
		return nil
	}
	err = s.store.ApplyRemoteChange(change)
	if errors.Is(err, store.ErrStaleChange) {
		s.metrics.RecordSync("inbound", "stale")
		s.logger.Debug("dropping stale partner change", zap.String("source", msg.Source), zap.Error(err))
		return nil
	}
	if err != nil {
		s.metrics.RecordSync("inbound", "error")
		s.logger.Warn("failed to apply remote partner change",
			zap.String("source", msg.Source),
			zap.String("type", string(msg.Type)),
			zap.Error(err))
		return err
	}
	s.metrics.RecordSync("inbound", "ok")
	s.logger.Debug("applied remote partner change",
		zap.String("source", msg.Source),
		zap.String("type", string(msg.Type)))
	return nil
}
