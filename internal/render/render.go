// Package render turns catalog and feed records into HTML fragments.
// Fragments are pure functions of their input, escaped by
// html/template, and minified before leaving the package.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/belgahub/hub/internal/database/service"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/belgahub/hub/pkg/utils"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const textHTML = "text/html"

// Renderer builds the markup fragments pages embed.
type Renderer struct {
	templates *template.Template
	minify    *minify.M
}

// New parses the fragment templates and sets up the minifier.
func New() (*Renderer, error) {
	templates, err := template.New("fragments").Funcs(template.FuncMap{
		"stars":           Stars,
		"timeAgo":         TimeAgo,
		"icon":            NotificationIcon,
		"truncate":        utils.Truncate,
		"partnershipType": PartnershipTypeName,
		"commission":      Commission,
	}).Parse(fragmentTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment templates: %w", err)
	}

	m := minify.New()
	m.AddFunc(textHTML, html.Minify)

	return &Renderer{
		templates: templates,
		minify:    m,
	}, nil
}

// SoftwareCard renders a catalog card with rating stars and vote tallies.
func (r *Renderer) SoftwareCard(detail *service.SoftwareDetail) (string, error) {
	return r.render("software_card", detail)
}

// PartnershipCard renders one partnership offer.
func (r *Renderer) PartnershipCard(partnership *types.Partnership) (string, error) {
	return r.render("partnership_card", partnership)
}

// NotificationItem renders one feed entry.
func (r *Renderer) NotificationItem(notification *types.Notification) (string, error) {
	return r.render("notification_item", notification)
}

// Toast renders the transient popup for a live notification.
func (r *Renderer) Toast(notification *types.Notification) (string, error) {
	return r.render("toast", notification)
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	minified, err := r.minify.String(textHTML, buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to minify %s: %w", name, err)
	}

	return minified, nil
}

// Stars renders a five-star rating string, rounding to the nearest star.
func Stars(rating float64) string {
	filled := int(rating + 0.5)
	if filled < 0 {
		filled = 0
	} else if filled > 5 {
		filled = 5
	}

	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

// TimeAgo formats an event time relative to now, in pt-BR.
func TimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "Agora mesmo"
	case diff < time.Hour:
		return fmt.Sprintf("%dmin atrás", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh atrás", int(diff.Hours()))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd atrás", int(diff.Hours()/24))
	default:
		return t.Format("02/01/2006")
	}
}

// Commission formats an optional commission rate as a percentage.
// A nil rate means the offer does not advertise one.
func Commission(rate *float64) string {
	if rate == nil {
		return ""
	}

	return strconv.FormatFloat(*rate, 'f', -1, 64) + "%"
}

// PartnershipTypeName maps an offer type to its pt-BR display name.
func PartnershipTypeName(partnershipType enum.PartnershipType) string {
	switch partnershipType {
	case enum.PartnershipTypeResell:
		return "Revenda"
	case enum.PartnershipTypeImplementation:
		return "Implementação"
	case enum.PartnershipTypeLeadGeneration:
		return "Geração de Leads"
	default:
		return "Parceria"
	}
}

// NotificationIcon maps a notification type to its Font Awesome icon.
func NotificationIcon(notificationType enum.NotificationType) string {
	switch notificationType {
	case enum.NotificationTypeInfo:
		return "fa-info-circle"
	case enum.NotificationTypeSuccess:
		return "fa-check-circle"
	case enum.NotificationTypeWarning:
		return "fa-exclamation-triangle"
	case enum.NotificationTypeError:
		return "fa-times-circle"
	case enum.NotificationTypePartnership:
		return "fa-handshake"
	case enum.NotificationTypeMessage:
		return "fa-envelope"
	case enum.NotificationTypeLead:
		return "fa-user-plus"
	case enum.NotificationTypeView:
		return "fa-eye"
	case enum.NotificationTypeSoftware:
		return "fa-code"
	default:
		return "fa-bell"
	}
}
