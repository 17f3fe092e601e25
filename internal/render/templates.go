package render

// fragmentTemplates holds every HTML fragment the pages embed.
// Markup mirrors the marketplace card and feed layouts.
const fragmentTemplates = `
{{define "software_card"}}
<div class="software-card" data-slug="{{.Software.Slug}}">
  <div class="software-card-content">
    <h3 class="software-name">{{.Software.Name}}</h3>
    <p class="software-company">{{if .Software.Company}}{{.Software.Company}}{{else}}Empresa não especificada{{end}}</p>
    <p class="software-description">{{truncate .Software.Description 200}}</p>
    <div class="software-meta">
      {{if .Software.Categories}}<span class="software-category">{{(index .Software.Categories 0).Name}}</span>{{end}}
      <div class="software-rating">
        <span class="rating-stars">{{stars .AverageRating}}</span>
        <span class="rating-count">({{len .Reviews}})</span>
      </div>
    </div>
    <p class="software-pricing">{{.Software.Pricing}}</p>
    <div class="software-card-footer">
      <a href="#" class="view-details" data-slug="{{.Software.Slug}}">Ver detalhes</a>
      <div class="vote-buttons">
        <button class="vote-button upvote" data-type="up">
          <i class="fa fa-thumbs-up"></i>
          <span class="vote-count">{{.Votes.Up}}</span>
        </button>
        <button class="vote-button downvote" data-type="down">
          <i class="fa fa-thumbs-down"></i>
          <span class="vote-count">{{.Votes.Down}}</span>
        </button>
      </div>
    </div>
  </div>
</div>
{{end}}

{{define "partnership_card"}}
<div class="partnership-card{{if .Featured}} featured{{end}}" data-id="{{.ID}}" data-type="{{.Type}}">
  {{if .Featured}}<span class="partnership-featured-badge"><i class="fas fa-star"></i> Destaque</span>{{end}}
  <div class="partnership-company">
    <i class="fas fa-building partnership-company-icon"></i>
    <h3>{{.Name}}</h3>
  </div>
  <span class="partnership-type {{.Type}}">{{partnershipType .Type}}</span>
  <p class="partnership-description">{{truncate .Description 160}}</p>
  <div class="partnership-meta">
    {{if .CommissionRate}}<span class="partnership-commission"><i class="fas fa-percent"></i> Comissão de {{commission .CommissionRate}}</span>{{end}}
    {{if .TrainingProvided}}<span class="partnership-training"><i class="fas fa-graduation-cap"></i> Treinamento</span>{{end}}
    {{if .SupportProvided}}<span class="partnership-support"><i class="fas fa-headset"></i> Suporte</span>{{end}}
    {{if .Location}}<span class="partnership-location"><i class="fas fa-map-marker-alt"></i> {{.Location}}</span>{{end}}
    <span class="partnership-time">{{timeAgo .CreatedAt}}</span>
  </div>
  <button class="btn-primary partnership-contact" data-id="{{.ID}}">
    <i class="fab fa-whatsapp"></i> Entrar em contato
  </button>
</div>
{{end}}

{{define "notification_item"}}
<div class="notification-item{{if not .Read}} unread{{end}}" data-id="{{.ID}}">
  <div class="notification-icon {{.Type}}">
    <i class="fas {{icon .Type}}"></i>
  </div>
  <div class="notification-content">
    <h4>{{.Title}}</h4>
    <p>{{.Message}}</p>
    <span class="notification-time">{{timeAgo .CreatedAt}}</span>
  </div>
  {{if not .Read}}
  <div class="notification-actions">
    <button class="btn-primary mark-read" data-id="{{.ID}}">Marcar como lida</button>
  </div>
  {{end}}
</div>
{{end}}

{{define "toast"}}
<div class="notification-toast" data-id="{{.ID}}">
  <div class="notification-toast-icon {{.Type}}">
    <i class="fas {{icon .Type}}"></i>
  </div>
  <div class="notification-toast-content">
    <h4>{{.Title}}</h4>
    <p>{{.Message}}</p>
  </div>
  <button class="notification-toast-close">&times;</button>
</div>
{{end}}
`
