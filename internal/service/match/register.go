package match

import (
	"github.com/go-chi/chi/v5"

	"github.com/Mikheydazz/starmatch-bot/internal/app"
)

// Registrar ties the match service into the HTTP router.
type Registrar struct {
	appCtx   *app.AppContext
	notifier MatchNotifier
}

// NewRegistrar creates a new Registrar for the match service.
func NewRegistrar(appCtx *app.AppContext, notifier MatchNotifier) *Registrar {
	return &Registrar{appCtx: appCtx, notifier: notifier}
}

// Register attaches the match routes to the router.
func (r *Registrar) Register(router chi.Router) {
	svc := NewService(r.appCtx, r.notifier)

	router.Post("/likes", svc.handleLike)
	router.Get("/compatibility", svc.handleScoreDates)

	router.Route("/users/{userID}", func(ur chi.Router) {
		ur.Put("/", svc.handleSaveProfile)
		ur.Get("/", svc.handleProfile)
		ur.Get("/browse", svc.handleBrowse)
		ur.Get("/matches", svc.handleMatches)
		ur.Get("/likes/count", svc.handleLikeCount)
		ur.Post("/payments", svc.handleTopUp)
		ur.Post("/compatibility/{targetID}", svc.handleCheckCompatibility)
	})
}
