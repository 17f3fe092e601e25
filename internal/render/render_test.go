package render_test

import (
	"testing"
	"time"

	"github.com/belgahub/hub/internal/database/service"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftwareCard(t *testing.T) {
	t.Parallel()

	r, err := render.New()
	require.NoError(t, err)

	detail := &service.SoftwareDetail{
		Software: &types.Software{
			Name:        "Alpha",
			Slug:        "alpha",
			Company:     "Alpha Tecnologia",
			Description: "Gestão de vendas",
			Pricing:     "R$ 50/mês",
			Categories:  []*types.Category{{Name: "CRM", Slug: "crm"}},
		},
		Votes:         &types.VoteCounts{Up: 12, Down: 3},
		AverageRating: 4.2,
		Reviews:       []*types.Review{{Rating: 4}, {Rating: 5}},
	}

	out, err := r.SoftwareCard(detail)
	require.NoError(t, err)

	assert.Contains(t, out, "Alpha Tecnologia")
	assert.Contains(t, out, "★★★★☆")
	assert.Contains(t, out, "data-slug=")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, ">12<")
	assert.Contains(t, out, ">3<")
}

func TestSoftwareCardWithoutCategories(t *testing.T) {
	t.Parallel()

	r, err := render.New()
	require.NoError(t, err)

	detail := &service.SoftwareDetail{
		Software: &types.Software{Name: "Beta", Slug: "beta"},
		Votes:    &types.VoteCounts{},
	}

	out, err := r.SoftwareCard(detail)
	require.NoError(t, err)
	assert.NotContains(t, out, "software-category")
	assert.Contains(t, out, "Empresa não especificada")
}

func TestSoftwareCardEscapesInput(t *testing.T) {
	t.Parallel()

	r, err := render.New()
	require.NoError(t, err)

	detail := &service.SoftwareDetail{
		Software: &types.Software{
			Name: "<script>alert(1)</script>",
			Slug: "x",
		},
		Votes: &types.VoteCounts{},
	}

	out, err := r.SoftwareCard(detail)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestNotificationItem(t *testing.T) {
	t.Parallel()

	r, err := render.New()
	require.NoError(t, err)

	out, err := r.NotificationItem(&types.Notification{
		ID:        7,
		Type:      enum.NotificationTypePartnership,
		Title:     "Nova solicitação de parceria",
		Message:   "Ana deseja ser seu parceiro.",
		CreatedAt: time.Now().Add(-5 * time.Minute),
	})
	require.NoError(t, err)

	assert.Contains(t, out, "fa-handshake")
	assert.Contains(t, out, "unread")
	assert.Contains(t, out, "5min atrás")
	assert.Contains(t, out, "Marcar como lida")

	// Read items lose the unread marker and the action button
	read, err := r.NotificationItem(&types.Notification{
		ID:   8,
		Type: enum.NotificationTypeInfo,
		Read: true,
	})
	require.NoError(t, err)
	assert.NotContains(t, read, "unread")
	assert.NotContains(t, read, "Marcar como lida")
}

func TestToast(t *testing.T) {
	t.Parallel()

	r, err := render.New()
	require.NoError(t, err)

	out, err := r.Toast(&types.Notification{
		ID:      3,
		Type:    enum.NotificationTypeView,
		Title:   "Seu software foi visualizado",
		Message: "Um comprador viu seu perfil.",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "notification-toast")
	assert.Contains(t, out, "fa-eye")
}

func TestStars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "☆☆☆☆☆", render.Stars(0))
	assert.Equal(t, "★★★☆☆", render.Stars(2.6))
	assert.Equal(t, "★★★★★", render.Stars(5))
	assert.Equal(t, "★★★★★", render.Stars(9))
}

func TestTimeAgo(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.Equal(t, "Agora mesmo", render.TimeAgo(now))
	assert.Equal(t, "10min atrás", render.TimeAgo(now.Add(-10*time.Minute)))
	assert.Equal(t, "3h atrás", render.TimeAgo(now.Add(-3*time.Hour)))
	assert.Equal(t, "2d atrás", render.TimeAgo(now.Add(-48*time.Hour)))

	old := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "15/01/2025", render.TimeAgo(old))
}

func TestNotificationIconFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fa-bell", render.NotificationIcon(enum.NotificationType("unknown")))
}

func TestPartnershipCard(t *testing.T) {
	t.Parallel()

	r, err := render.New()
	require.NoError(t, err)

	rate := 15.0
	out, err := r.PartnershipCard(&types.Partnership{
		ID:               4,
		Type:             enum.PartnershipTypeResell,
		Name:             "Alpha Revendas",
		Description:      "Procuramos revendedores em todo o Brasil.",
		Location:         "São Paulo",
		CommissionRate:   &rate,
		TrainingProvided: true,
		Featured:         true,
		CreatedAt:        time.Now().Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Alpha Revendas")
	assert.Contains(t, out, "Revenda")
	assert.Contains(t, out, "Comissão de 15%")
	assert.Contains(t, out, "Treinamento")
	assert.NotContains(t, out, "Suporte")
	assert.Contains(t, out, "Destaque")
	assert.Contains(t, out, "São Paulo")
	assert.Contains(t, out, "Entrar em contato")
}

func TestPartnershipCardWithoutExtras(t *testing.T) {
	t.Parallel()

	r, err := render.New()
	require.NoError(t, err)

	out, err := r.PartnershipCard(&types.Partnership{
		ID:          5,
		Type:        enum.PartnershipTypeLeadGeneration,
		Name:        "Gamma Leads",
		Description: "Indique clientes e ganhe por lead qualificado.",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Geração de Leads")
	assert.NotContains(t, out, "Comissão")
	assert.NotContains(t, out, "Destaque")
	assert.NotContains(t, out, "partnership-location")
}

func TestPartnershipTypeNameFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Parceria", render.PartnershipTypeName(enum.PartnershipType("other")))
	assert.Equal(t, "Implementação", render.PartnershipTypeName(enum.PartnershipTypeImplementation))
}

func TestCommission(t *testing.T) {
	t.Parallel()

	rate := 12.5
	assert.Equal(t, "12.5%", render.Commission(&rate))
	assert.Empty(t, render.Commission(nil))
}
