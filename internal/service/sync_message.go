package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/store"
)

// SyncMessage is the JSON envelope exchanged between desk instances over Redis.
type SyncMessage struct {
	Source   string           `json:"source"`
	Type     store.ChangeType `json:"type"`
	Partner  *PartnerRecord   `json:"partner,omitempty"`
	Partners []PartnerRecord  `json:"partners,omitempty"`
}

// PartnerRecord is the wire form of a partner row.
type PartnerRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Tier           string    `json:"tier"`
	Health         string    `json:"health"`
	LastActivity   time.Time `json:"last_activity"`
	OpenThreads    int       `json:"open_threads"`
	Revenue        float64   `json:"revenue"`
	Segment        string    `json:"segment"`
	AccountManager string    `json:"account_manager"`
	Version        int64     `json:"version"`
}

// NewPartnerRecord converts a domain partner to its wire form.
func NewPartnerRecord(p domain.Partner) PartnerRecord {
	return PartnerRecord{
		ID:             p.ID,
		Name:           p.Name,
		Tier:           string(p.Tier),
		Health:         string(p.Health),
		LastActivity:   p.LastActivity,
		OpenThreads:    p.OpenThreads,
		Revenue:        p.Revenue,
		Segment:        p.Segment,
		AccountManager: p.AccountManager,
		Version:        p.Version,
	}
}

// Partner converts the record back to a domain partner.
func (r PartnerRecord) Partner() domain.Partner {
	return domain.Partner{
		ID:             r.ID,
		Name:           r.Name,
		Tier:           domain.PartnerTier(r.Tier),
		Health:         domain.PartnerHealth(r.Health),
		LastActivity:   r.LastActivity,
		OpenThreads:    r.OpenThreads,
		Revenue:        r.Revenue,
		Segment:        r.Segment,
		AccountManager: r.AccountManager,
		Version:        r.Version,
	}
}

// EncodeSyncMessage marshals a message for publishing.
func EncodeSyncMessage(msg SyncMessage) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeSyncMessage parses a published payload and converts it to a store change.
func DecodeSyncMessage(payload []byte) (SyncMessage, store.RemoteChange, error) {
	var msg SyncMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return SyncMessage{}, store.RemoteChange{}, fmt.Errorf("decode sync message: %w", err)
	}

	change := store.RemoteChange{Type: msg.Type}
	switch msg.Type {
	case store.ChangeInserted, store.ChangeUpdated, store.ChangeDeleted:
		if msg.Partner == nil || msg.Partner.ID == "" {
			return msg, change, fmt.Errorf("decode sync message: %s without partner id", msg.Type)
		}
		change.Partner = msg.Partner.Partner()
	case store.ChangeSnapshot:
		change.Partners = make([]domain.Partner, 0, len(msg.Partners))
		for _, record := range msg.Partners {
			change.Partners = append(change.Partners, record.Partner())
		}
	default:
		return msg, change, fmt.Errorf("decode sync message: %w: %q", store.ErrUnknownChangeType, msg.Type)
	}
	return msg, change, nil
}
