package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/partner-desk/internal/domain"
)

func TestApplyRemoteChange(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	local := s.AddPartner(ctx, PartnerCreateInput{Name: "Local"})
	s.AddThread(ctx, ThreadCreateInput{PartnerID: local.ID, Title: "t", Status: domain.ThreadStatusOpen})

	require.NoError(t, s.ApplyRemoteChange(RemoteChange{Type: ChangeInserted, Partner: domain.Partner{ID: "remote", Name: "Remote"}}))
	partners := s.Partners()
	require.Len(t, partners, 2)
	assert.Equal(t, "remote", partners[0].ID)

	require.NoError(t, s.ApplyRemoteChange(RemoteChange{Type: ChangeUpdated, Partner: domain.Partner{ID: "remote", Name: "Renamed"}}))
	require.NoError(t, s.ApplyRemoteChange(RemoteChange{Type: ChangeUpdated, Partner: domain.Partner{ID: "remote", Name: "Renamed again"}}))
	got, ok := s.Partner("remote")
	require.True(t, ok)
	assert.Equal(t, "Renamed again", got.Name)
	assert.Len(t, s.Partners(), 2)

	require.NoError(t, s.ApplyRemoteChange(RemoteChange{Type: ChangeDeleted, Partner: domain.Partner{ID: "remote"}}))
	require.NoError(t, s.ApplyRemoteChange(RemoteChange{Type: ChangeDeleted, Partner: domain.Partner{ID: "never-existed"}}))
	partners = s.Partners()
	require.Len(t, partners, 1)
	assert.Equal(t, local.ID, partners[0].ID)
	assert.Len(t, s.Threads(), 1)
}

func TestApplyRemoteSnapshotLeavesOtherEntities(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := s.AddPartner(ctx, PartnerCreateInput{Name: "Local"})
	s.LogInteraction(ctx, InteractionCreateInput{PartnerID: p.ID, Channel: domain.ChannelCall, Summary: "x"})

	require.NoError(t, s.ApplyRemoteChange(RemoteChange{
		Type:     ChangeSnapshot,
		Partners: []domain.Partner{{ID: "a"}, {ID: "b"}},
	}))

	assert.Len(t, s.Partners(), 2)
	assert.Len(t, s.Interactions(), 1)
}

func TestApplyRemoteChangeRejectsBadInput(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddPartner(context.Background(), PartnerCreateInput{Name: "Local"})

	err := s.ApplyRemoteChange(RemoteChange{Type: "merged"})
	require.ErrorIs(t, err, ErrUnknownChangeType)

	err = s.ApplyRemoteChange(RemoteChange{Type: ChangeInserted})
	require.Error(t, err)
	assert.Len(t, s.Partners(), 1)
}

func TestApplyRemoteChangeDropsOlderVersions(t *testing.T) {
	s, _ := newTestStore(t)
	newer := domain.Partner{ID: "p1", Name: "Acme", OpenThreads: 2, Version: 4}
	require.NoError(t, s.ApplyRemoteChange(RemoteChange{Type: ChangeUpdated, Partner: newer}))

	older := domain.Partner{ID: "p1", Name: "Acme", OpenThreads: 1, Version: 3}
	err := s.ApplyRemoteChange(RemoteChange{Type: ChangeUpdated, Partner: older})
	require.ErrorIs(t, err, ErrStaleChange)

	got, ok := s.Partner("p1")
	require.True(t, ok)
	assert.Equal(t, newer, got)

	same := domain.Partner{ID: "p1", Name: "Acme Corp", OpenThreads: 2, Version: 4}
	require.NoError(t, s.ApplyRemoteChange(RemoteChange{Type: ChangeUpdated, Partner: same}))
	got, _ = s.Partner("p1")
	assert.Equal(t, "Acme Corp", got.Name)
}
