package store

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// ChangeType enumerates remote partner notifications.
type ChangeType string

const (
	ChangeInserted ChangeType = "inserted"
	ChangeUpdated  ChangeType = "updated"
	ChangeDeleted  ChangeType = "deleted"
	ChangeSnapshot ChangeType = "snapshot"
)

// ErrUnknownChangeType is returned for notifications the store cannot apply.
var ErrUnknownChangeType = errors.New("unknown remote change type")

// ErrStaleChange is returned when an insert or update carries an older
// partner version than the one already held. The store is left unchanged.
var ErrStaleChange = errors.New("stale remote change")

// RemoteChange is a single notification from the partner sync collaborator.
// Partner is used by inserted/updated/deleted, Partners by snapshot.
type RemoteChange struct {
	Type     ChangeType
	Partner  domain.Partner
	Partners []domain.Partner
}

// ApplyRemoteChange reconciles one remote notification into the partner
// collection. Inserts and updates replace by id or prepend when the id is new.
// Equal versions resolve last writer wins; an older version is rejected with
// ErrStaleChange. Deletes of unknown ids are no-ops. Interactions, threads
// and contacts are never touched, and no local events are published.
func (s *Store) ApplyRemoteChange(change RemoteChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch change.Type {
	case ChangeInserted, ChangeUpdated:
		if change.Partner.ID == "" {
			return fmt.Errorf("apply %s: partner id required", change.Type)
		}
		if idx := s.partnerIndexLocked(change.Partner.ID); idx >= 0 {
			if change.Partner.Version < s.partners[idx].Version {
				return fmt.Errorf("%w: partner %s version %d < %d", ErrStaleChange,
					change.Partner.ID, change.Partner.Version, s.partners[idx].Version)
			}
			s.partners[idx] = change.Partner
			return nil
		}
		s.partners = append([]domain.Partner{change.Partner}, s.partners...)
	case ChangeDeleted:
		if idx := s.partnerIndexLocked(change.Partner.ID); idx >= 0 {
			s.partners = slices.Delete(slices.Clone(s.partners), idx, idx+1)
		}
	case ChangeSnapshot:
		s.partners = slices.Clone(change.Partners)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChangeType, change.Type)
	}
	return nil
}
