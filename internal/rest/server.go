// Package rest exposes the marketplace over HTTP.
package rest

import (
	"net/http"

	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/gateway"
	"github.com/belgahub/hub/internal/postal"
	"github.com/belgahub/hub/internal/render"
	"github.com/belgahub/hub/internal/rest/handler"
	"github.com/belgahub/hub/internal/rest/middleware/session"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/klauspost/compress/gzhttp"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the marketplace REST API.
type Server struct {
	authHandler         *handler.AuthHandler
	catalogHandler      *handler.CatalogHandler
	partnershipHandler  *handler.PartnershipHandler
	notificationHandler *handler.NotificationHandler
	profileHandler      *handler.ProfileHandler
	fragmentHandler     *handler.FragmentHandler
	streamHandler       *handler.StreamHandler
}

// NewServer creates the REST API server with all routes wired.
func NewServer(
	db database.Client,
	gw *gateway.Gateway,
	postalClient *postal.Client,
	cfg *config.HubConfig,
	logger *zap.Logger,
) (http.Handler, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	server := &Server{
		authHandler:         handler.NewAuthHandler(gw.Auth(), logger),
		catalogHandler:      handler.NewCatalogHandler(db, logger),
		partnershipHandler:  handler.NewPartnershipHandler(db, logger),
		notificationHandler: handler.NewNotificationHandler(db, &cfg.Feed, logger),
		profileHandler:      handler.NewProfileHandler(db, postalClient, logger),
		fragmentHandler:     handler.NewFragmentHandler(db, renderer, &cfg.Feed, logger),
		streamHandler:       handler.NewStreamHandler(db, gw.Subscriber(), &cfg.Feed, logger),
	}

	sessions := session.New(gw.Sessions(), logger)

	router := bunrouter.New()

	router.WithGroup("/v1", func(g *bunrouter.Group) {
		// Open endpoints
		g.POST("/auth/signup", server.authHandler.SignUp)
		g.POST("/auth/signin", server.authHandler.SignIn)
		g.POST("/auth/reset", server.authHandler.ResetPassword)
		g.POST("/auth/reset/confirm", server.authHandler.ConfirmReset)
		g.GET("/postal/:cep", server.profileHandler.LookupPostal)

		// Catalog reads work anonymously but attribute views and
		// clicks when a session is present
		g.Use(sessions.Optional).WithGroup("", func(g *bunrouter.Group) {
			g.GET("/softwares", server.catalogHandler.List)
			g.GET("/softwares/:slug", server.catalogHandler.Detail)
			g.GET("/partnerships", server.partnershipHandler.List)
			g.POST("/clicks", server.catalogHandler.Click)
			g.GET("/fragments/softwares/:slug", server.fragmentHandler.SoftwareCard)
			g.GET("/fragments/partnerships", server.fragmentHandler.PartnershipList)
		})

		// Everything else requires a session
		g.Use(sessions.Required).WithGroup("", func(g *bunrouter.Group) {
			g.POST("/auth/signout", server.authHandler.SignOut)
			g.GET("/auth/session", server.authHandler.GetSession)
			g.PUT("/auth/password", server.authHandler.UpdatePassword)

			g.POST("/votes", server.catalogHandler.Vote)

			// Vendor listing management lives under /me because the
			// public detail route owns the /softwares/:slug segment
			g.POST("/softwares", server.catalogHandler.Create)
			g.GET("/me/softwares", server.catalogHandler.ListMine)
			g.PUT("/me/softwares/:id", server.catalogHandler.Update)
			g.DELETE("/me/softwares/:id", server.catalogHandler.Delete)
			g.GET("/me/votes", server.catalogHandler.ListMyVotes)

			g.POST("/partnerships", server.partnershipHandler.Create)
			g.PUT("/partnerships/:id", server.partnershipHandler.Update)
			g.DELETE("/partnerships/:id", server.partnershipHandler.Delete)
			g.POST("/partnerships/:id/contact", server.partnershipHandler.Contact)
			g.GET("/me/partnerships", server.partnershipHandler.ListMine)

			g.GET("/notifications", server.notificationHandler.Feed)
			g.POST("/notifications/read-all", server.notificationHandler.MarkAllRead)
			g.POST("/notifications/:id/read", server.notificationHandler.MarkRead)
			g.GET("/notifications/badge", server.notificationHandler.Badge)
			g.GET("/notifications/stream", server.streamHandler.Stream)

			g.GET("/profiles/me", server.profileHandler.Get)
			g.PUT("/profiles/me", server.profileHandler.Update)

			g.GET("/fragments/notifications", server.fragmentHandler.NotificationList)
		})
	})

	return gzhttp.GzipHandler(router), nil
}
