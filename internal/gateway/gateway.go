// Package gateway bundles the remote data access surface: authentication,
// session caching, and the live notification subscription, on top of the
// database services.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/redis"
	"github.com/belgahub/hub/internal/setup/config"
	"go.uber.org/zap"
)

// Gateway is the single entry point pages use for remote data.
type Gateway struct {
	db         database.Client
	auth       *Auth
	sessions   *SessionCache
	subscriber *Subscriber
	logger     *zap.Logger
}

// New wires the gateway from the shared database client and Redis manager.
func New(
	db database.Client, redisManager *redis.Manager, cfg *config.HubConfig, logger *zap.Logger,
) (*Gateway, error) {
	sessionClient, err := redisManager.GetClient(redis.SessionDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get session Redis client: %w", err)
	}

	dispatchClient, err := redisManager.GetClient(redis.DispatchDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch Redis client: %w", err)
	}

	sessions := NewSessionCache(
		sessionClient,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		logger,
	)

	return &Gateway{
		db:         db,
		auth:       NewAuth(db, sessions, logger),
		sessions:   sessions,
		subscriber: NewSubscriber(dispatchClient, logger),
		logger:     logger.Named("gateway"),
	}, nil
}

// WaitReady blocks until the database answers a ping or the timeout
// elapses. Callers get a bounded startup wait instead of hanging on an
// unreachable dependency.
func (g *Gateway) WaitReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := g.db.DB().PingContext(ctx); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("dependencies not ready after %s: %w", timeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

// DB exposes the underlying database client.
func (g *Gateway) DB() database.Client {
	return g.db
}

// Auth returns the authentication component.
func (g *Gateway) Auth() *Auth {
	return g.auth
}

// Sessions returns the session cache.
func (g *Gateway) Sessions() *SessionCache {
	return g.sessions
}

// Subscriber returns the live notification subscriber.
func (g *Gateway) Subscriber() *Subscriber {
	return g.subscriber
}
