package migrations

import (
	"context"
	"fmt"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		categories := []*types.Category{
			{Name: "CRM", Slug: "crm"},
			{Name: "ERP", Slug: "erp"},
			{Name: "Marketing", Slug: "marketing"},
			{Name: "Financeiro", Slug: "financeiro"},
			{Name: "Recursos Humanos", Slug: "recursos-humanos"},
			{Name: "Atendimento", Slug: "atendimento"},
			{Name: "Vendas", Slug: "vendas"},
			{Name: "Gestão de Projetos", Slug: "gestao-de-projetos"},
		}

		_, err := db.NewInsert().
			Model(&categories).
			On("CONFLICT (slug) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDelete().
			Model((*types.Category)(nil)).
			Where("1=1").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove seeded categories: %w", err)
		}

		return nil
	})
}
