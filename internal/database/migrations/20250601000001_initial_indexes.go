package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- Notification feed reads newest-first per user
			CREATE INDEX IF NOT EXISTS idx_notifications_user_time
			ON notifications (user_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_notifications_user_unread
			ON notifications (user_id)
			WHERE read = false;

			-- Catalog listing orders featured-first then newest
			CREATE INDEX IF NOT EXISTS idx_softwares_listing
			ON softwares (status, featured DESC, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_softwares_vendor
			ON softwares (vendor_id);

			-- Vote totals are aggregated per software
			CREATE INDEX IF NOT EXISTS idx_votes_software
			ON votes (software_id);

			-- Partnerships page lists active offers featured-first
			CREATE INDEX IF NOT EXISTS idx_partnerships_active
			ON partnerships (featured DESC, created_at DESC)
			WHERE active = true;

			CREATE INDEX IF NOT EXISTS idx_partnerships_owner
			ON partnerships (owner_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_external_clicks_software
			ON external_clicks (software_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_reviews_software
			ON reviews (software_id, created_at DESC);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_notifications_user_time;
			DROP INDEX IF EXISTS idx_notifications_user_unread;
			DROP INDEX IF EXISTS idx_softwares_listing;
			DROP INDEX IF EXISTS idx_softwares_vendor;
			DROP INDEX IF EXISTS idx_votes_software;
			DROP INDEX IF EXISTS idx_partnerships_active;
			DROP INDEX IF EXISTS idx_partnerships_owner;
			DROP INDEX IF EXISTS idx_external_clicks_software;
			DROP INDEX IF EXISTS idx_reviews_software;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}
