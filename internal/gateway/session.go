package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// ErrSessionExpired is returned when a session token is unknown or past
// its lifetime.
var ErrSessionExpired = errors.New("session expired or not found")

// ErrResetTokenInvalid is returned when a password reset token is
// unknown, already used, or expired.
var ErrResetTokenInvalid = errors.New("reset token invalid or expired")

const (
	// sessionKeyPrefix namespaces cached sessions in Redis.
	sessionKeyPrefix = "belgahub_user_cache:"
	// resetKeyPrefix namespaces single-use password reset tokens.
	resetKeyPrefix = "belgahub_reset_token:"
	// resetTokenTTL bounds how long a reset link stays usable.
	resetTokenTTL = time.Hour
)

// Session is the cached identity snapshot handed out after sign-in.
// Pages read it instead of hitting the database on every request.
type Session struct {
	Token     string           `json:"token"`
	UserID    uuid.UUID        `json:"userId"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Role      enum.ProfileRole `json:"role"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// SessionCache stores sessions in Redis with a fixed lifetime.
type SessionCache struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionCache creates a session cache with the given lifetime.
func NewSessionCache(client rueidis.Client, ttl time.Duration, logger *zap.Logger) *SessionCache {
	return &SessionCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("session_cache"),
	}
}

// Create stores a fresh session for the profile and returns it.
func (c *SessionCache) Create(ctx context.Context, profile *types.Profile) (*Session, error) {
	now := time.Now()
	session := &Session{
		Token:     uuid.New().String(),
		UserID:    profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		Role:      profile.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	payload, err := sonic.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	err = c.client.Do(ctx,
		c.client.B().Set().Key(sessionKeyPrefix+session.Token).
			Value(string(payload)).
			Ex(c.ttl).
			Build(),
	).Error()
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

// Get retrieves a session by token.
// Returns ErrSessionExpired when the token is unknown, which also
// covers sessions Redis already evicted at end of life.
func (c *SessionCache) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := c.client.Do(ctx,
		c.client.B().Get().Key(sessionKeyPrefix+token).Build(),
	).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrSessionExpired
		}

		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := sonic.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// CreateResetToken issues a single-use password reset token for the
// user, valid for one hour.
func (c *SessionCache) CreateResetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.New().String()

	err := c.client.Do(ctx,
		c.client.B().Set().Key(resetKeyPrefix+token).
			Value(userID.String()).
			Ex(resetTokenTTL).
			Build(),
	).Error()
	if err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return token, nil
}

// ConsumeResetToken redeems a reset token and returns the user it was
// issued for. The token is deleted atomically so it works only once.
func (c *SessionCache) ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := c.client.Do(ctx,
		c.client.B().Getdel().Key(resetKeyPrefix+token).Build(),
	).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return uuid.Nil, ErrResetTokenInvalid
		}

		return uuid.Nil, fmt.Errorf("failed to redeem reset token: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed reset token payload: %w", err)
	}

	return userID, nil
}

// Delete removes a session, ending it immediately.
func (c *SessionCache) Delete(ctx context.Context, token string) error {
	err := c.client.Do(ctx,
		c.client.B().Del().Key(sessionKeyPrefix+token).Build(),
	).Error()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
