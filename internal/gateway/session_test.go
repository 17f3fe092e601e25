package gateway_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/internal/gateway"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupSessionTest(t *testing.T, ttl time.Duration) (*gateway.SessionCache, *miniredis.Miniredis) {
	t.Helper()

	// Start miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Create Redis client
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return gateway.NewSessionCache(client, ttl, zap.NewNop()), mr
}

func testProfile() *types.Profile {
	return &types.Profile{
		ID:    uuid.New(),
		Name:  "Ana Souza",
		Email: "ana@example.com",
		Role:  enum.ProfileRoleBuyer,
	}
}

func TestSessionCreateAndGet(t *testing.T) {
	t.Parallel()

	cache, _ := setupSessionTest(t, 30*time.Minute)
	ctx := context.Background()
	profile := testProfile()

	session, err := cache.Create(ctx, profile)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, profile.ID, session.UserID)
	assert.Equal(t, profile.Email, session.Email)
	assert.Equal(t, profile.Role, session.Role)
	assert.WithinDuration(t, session.CreatedAt.Add(30*time.Minute), session.ExpiresAt, time.Second)

	loaded, err := cache.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, loaded.UserID)
	assert.Equal(t, session.Name, loaded.Name)
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()

	cache, mr := setupSessionTest(t, 30*time.Minute)
	ctx := context.Background()

	session, err := cache.Create(ctx, testProfile())
	require.NoError(t, err)

	// Still valid just before the lifetime ends
	mr.FastForward(29 * time.Minute)
	_, err = cache.Get(ctx, session.Token)
	require.NoError(t, err)

	// Evicted once the lifetime passes
	mr.FastForward(2 * time.Minute)
	_, err = cache.Get(ctx, session.Token)
	assert.ErrorIs(t, err, gateway.ErrSessionExpired)
}

func TestSessionUnknownToken(t *testing.T) {
	t.Parallel()

	cache, _ := setupSessionTest(t, 30*time.Minute)

	_, err := cache.Get(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, gateway.ErrSessionExpired)
}

func TestSessionDelete(t *testing.T) {
	t.Parallel()

	cache, _ := setupSessionTest(t, 30*time.Minute)
	ctx := context.Background()

	session, err := cache.Create(ctx, testProfile())
	require.NoError(t, err)

	require.NoError(t, cache.Delete(ctx, session.Token))

	_, err = cache.Get(ctx, session.Token)
	assert.ErrorIs(t, err, gateway.ErrSessionExpired)
}

func TestResetTokenIsSingleUse(t *testing.T) {
	t.Parallel()

	cache, _ := setupSessionTest(t, 30*time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	token, err := cache.CreateResetToken(ctx, userID)
	require.NoError(t, err)

	redeemed, err := cache.ConsumeResetToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, redeemed)

	// A second redemption finds nothing
	_, err = cache.ConsumeResetToken(ctx, token)
	assert.ErrorIs(t, err, gateway.ErrResetTokenInvalid)
}

func TestResetTokenExpires(t *testing.T) {
	t.Parallel()

	cache, mr := setupSessionTest(t, 30*time.Minute)
	ctx := context.Background()

	token, err := cache.CreateResetToken(ctx, uuid.New())
	require.NoError(t, err)

	mr.FastForward(61 * time.Minute)

	_, err = cache.ConsumeResetToken(ctx, token)
	assert.ErrorIs(t, err, gateway.ErrResetTokenInvalid)
}

func TestResetTokenUnknown(t *testing.T) {
	t.Parallel()

	cache, _ := setupSessionTest(t, 30*time.Minute)

	_, err := cache.ConsumeResetToken(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, gateway.ErrResetTokenInvalid)
}
