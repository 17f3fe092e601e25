package service

import (
	"context"
	"testing"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePartnershipStore struct {
	listings map[int64]*types.Partnership
	created  []*types.Partnership
}

func newFakePartnershipStore() *fakePartnershipStore {
	return &fakePartnershipStore{listings: make(map[int64]*types.Partnership)}
}

func (f *fakePartnershipStore) CreatePartnership(_ context.Context, p *types.Partnership) error {
	p.ID = int64(len(f.created) + 1)
	f.created = append(f.created, p)
	f.listings[p.ID] = p

	return nil
}

func (f *fakePartnershipStore) UpdatePartnership(_ context.Context, p *types.Partnership) error {
	existing, ok := f.listings[p.ID]
	if !ok || existing.OwnerID != p.OwnerID {
		return types.ErrPartnershipNotFound
	}

	f.listings[p.ID] = p

	return nil
}

func (f *fakePartnershipStore) DeletePartnership(_ context.Context, id int64, ownerID uuid.UUID) error {
	existing, ok := f.listings[id]
	if !ok || existing.OwnerID != ownerID {
		return types.ErrPartnershipNotFound
	}

	delete(f.listings, id)

	return nil
}

func (f *fakePartnershipStore) GetPartnership(_ context.Context, id int64) (*types.Partnership, error) {
	p, ok := f.listings[id]
	if !ok {
		return nil, types.ErrPartnershipNotFound
	}

	return p, nil
}

func (f *fakePartnershipStore) GetActivePartnerships(context.Context) ([]*types.Partnership, error) {
	active := make([]*types.Partnership, 0, len(f.listings))
	for _, p := range f.listings {
		if p.Active {
			active = append(active, p)
		}
	}

	return active, nil
}

func (f *fakePartnershipStore) GetOwnerPartnerships(_ context.Context, ownerID uuid.UUID) ([]*types.Partnership, error) {
	owned := make([]*types.Partnership, 0)
	for _, p := range f.listings {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}

	return owned, nil
}

type fakeProfileStore struct {
	profiles map[uuid.UUID]*types.Profile
}

func (f *fakeProfileStore) GetProfile(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, types.ErrProfileNotFound
	}

	return profile, nil
}

type capturingNotifier struct {
	queued []*types.Notification
}

func (c *capturingNotifier) Enqueue(_ context.Context, n *types.Notification) error {
	c.queued = append(c.queued, n)

	return nil
}

func newPartnershipFixture() (*PartnershipService, *fakePartnershipStore, *capturingNotifier) {
	store := newFakePartnershipStore()
	profiles := &fakeProfileStore{profiles: make(map[uuid.UUID]*types.Profile)}
	notifier := &capturingNotifier{}

	svc := NewPartnership(store, profiles, zap.NewNop())
	svc.SetNotifier(notifier)

	return svc, store, notifier
}

func TestCreatePartnershipSetsOwner(t *testing.T) {
	t.Parallel()

	svc, store, _ := newPartnershipFixture()
	ownerID := uuid.New()

	listing := &types.Partnership{
		Type:        enum.PartnershipTypeResell,
		Name:        "Alpha Revendas",
		Description: "Procuramos revendedores.",
	}

	require.NoError(t, svc.Create(context.Background(), ownerID, listing))
	require.Len(t, store.created, 1)
	assert.Equal(t, ownerID, store.created[0].OwnerID)
}

func TestCreatePartnershipRejectsUnknownType(t *testing.T) {
	t.Parallel()

	svc, store, _ := newPartnershipFixture()

	err := svc.Create(context.Background(), uuid.New(), &types.Partnership{
		Type: enum.PartnershipType("franchise"),
		Name: "Beta",
	})

	require.ErrorIs(t, err, types.ErrInvalidPartnershipType)
	assert.Empty(t, store.created)
}

func TestDeletePartnershipGuardsOwner(t *testing.T) {
	t.Parallel()

	svc, store, _ := newPartnershipFixture()
	ownerID := uuid.New()

	listing := &types.Partnership{Type: enum.PartnershipTypeResell, Name: "Alpha"}
	require.NoError(t, svc.Create(context.Background(), ownerID, listing))

	err := svc.Delete(context.Background(), uuid.New(), listing.ID)
	require.ErrorIs(t, err, types.ErrPartnershipNotFound)
	assert.Len(t, store.listings, 1)

	require.NoError(t, svc.Delete(context.Background(), ownerID, listing.ID))
	assert.Empty(t, store.listings)
}

func TestRequestContactNotifiesOwner(t *testing.T) {
	t.Parallel()

	svc, _, notifier := newPartnershipFixture()
	ownerID := uuid.New()

	listing := &types.Partnership{
		Type: enum.PartnershipTypeImplementation,
		Name: "Beta Consultoria",
	}
	require.NoError(t, svc.Create(context.Background(), ownerID, listing))

	requesterID := uuid.New()

	returned, err := svc.RequestContact(context.Background(), requesterID, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, returned.ID)

	require.Len(t, notifier.queued, 1)
	queued := notifier.queued[0]
	assert.Equal(t, ownerID, queued.UserID)
	assert.Equal(t, enum.NotificationTypePartnership, queued.Type)
	assert.Contains(t, queued.Message, "Beta Consultoria")
	assert.Equal(t, listing.ID, queued.Metadata["partnership_id"])
}

func TestRequestContactRejectsOwnListing(t *testing.T) {
	t.Parallel()

	svc, _, notifier := newPartnershipFixture()
	ownerID := uuid.New()

	listing := &types.Partnership{Type: enum.PartnershipTypeResell, Name: "Alpha"}
	require.NoError(t, svc.Create(context.Background(), ownerID, listing))

	_, err := svc.RequestContact(context.Background(), ownerID, listing.ID)
	require.ErrorIs(t, err, ErrSelfContact)
	assert.Empty(t, notifier.queued)
}

func TestRequestContactUnknownListing(t *testing.T) {
	t.Parallel()

	svc, _, notifier := newPartnershipFixture()

	_, err := svc.RequestContact(context.Background(), uuid.New(), 99)
	require.ErrorIs(t, err, types.ErrPartnershipNotFound)
	assert.Empty(t, notifier.queued)
}
