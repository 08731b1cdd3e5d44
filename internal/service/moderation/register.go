package moderation

import (
	"github.com/go-chi/chi/v5"

	"github.com/Mikheydazz/starmatch-bot/internal/app"
	"github.com/Mikheydazz/starmatch-bot/internal/server"
)

// Registrar ties the moderation service into the HTTP router.
type Registrar struct {
	appCtx   *app.AppContext
	notifier ModeratorNotifier
}

// NewRegistrar creates a new Registrar for the moderation service.
func NewRegistrar(appCtx *app.AppContext, notifier ModeratorNotifier) *Registrar {
	return &Registrar{appCtx: appCtx, notifier: notifier}
}

// Register attaches the moderation routes. Ban management and report review
// sit behind the admin token; reporting and visibility are open to the
// front-end.
func (r *Registrar) Register(router chi.Router) {
	svc := NewService(r.appCtx, r.notifier)

	router.Post("/reports", svc.handleAddReport)
	router.Get("/users/{userID}/visibility", svc.handleVisibility)

	router.Route("/admin", func(ar chi.Router) {
		ar.Use(server.AdminAuth(r.appCtx.Cfg.Admin.TokenHash))
		ar.Post("/bans", svc.handleBan)
		ar.Delete("/bans/{userID}", svc.handleUnban)
		ar.Get("/bans", svc.handleBannedUsers)
		ar.Get("/reports", svc.handleMostReported)
		ar.Get("/users/{userID}/reports", svc.handleUserReports)
	})
}
