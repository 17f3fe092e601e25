package migrations

import (
	"context"
	"fmt"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		db.RegisterModel((*types.SoftwareCategory)(nil))

		tables := []struct {
			model any
			name  string
		}{
			{(*types.Identity)(nil), "identities"},
			{(*types.Profile)(nil), "profiles"},
			{(*types.Category)(nil), "categories"},
			{(*types.Software)(nil), "softwares"},
			{(*types.SoftwareCategory)(nil), "software_categories"},
			{(*types.Review)(nil), "reviews"},
			{(*types.Vote)(nil), "votes"},
			{(*types.Partnership)(nil), "partnerships"},
			{(*types.Notification)(nil), "notifications"},
			{(*types.ExternalClick)(nil), "external_clicks"},
		}

		for _, table := range tables {
			_, err := db.NewCreateTable().
				Model(table.model).
				ModelTableExpr(table.name).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{
			"external_clicks", "notifications", "partnerships", "votes",
			"reviews", "software_categories", "softwares", "categories",
			"profiles", "identities",
		}

		for _, table := range tables {
			if _, err := db.NewDropTable().Table(table).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
