package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bidboard/internal/ratelimit"
)

// Routes builds the router. Auth endpoints are limited by IP before a
// session exists; everything else sits behind Authenticate so limits key on
// the user id. Reads and mutations carry separate budgets.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.RequestLogger)
	r.Use(h.Recoverer)
	r.Use(h.OriginCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)

		r.Group(func(r chi.Router) {
			r.Use(h.RateLimit(ratelimit.Auth))
			r.Post("/auth/register", h.RegisterHandler)
			r.Post("/auth/login", h.LoginHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Group(func(r chi.Router) {
				r.Use(h.RateLimit(ratelimit.Query))
				r.Get("/projects", h.ListProjectsHandler)
				r.Get("/projects/{projectId}", h.GetProjectHandler)
				r.Get("/subcontractors", h.ListSubcontractorsHandler)
				r.Get("/subcontractors/{subcontractorId}", h.GetSubcontractorHandler)
				r.Get("/bid-invitations", h.ListBidInvitationsHandler)
				r.Get("/bid-invitations-for-bids", h.ListInvitationsForBidsHandler)
				r.Get("/bids", h.ListBidsHandler)
				r.Get("/divisions", h.ListDivisionsHandler)
				r.Get("/dashboard", h.DashboardHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(h.RateLimit(ratelimit.Mutation))
				r.Post("/auth/logout", h.LogoutHandler)
				r.Post("/projects", h.CreateProjectHandler)
				r.Put("/projects/{projectId}", h.UpdateProjectHandler)
				r.Delete("/projects/{projectId}", h.DeleteProjectHandler)
				r.Post("/subcontractors", h.CreateSubcontractorHandler)
				r.Put("/subcontractors/{subcontractorId}", h.UpdateSubcontractorHandler)
				r.Delete("/subcontractors/{subcontractorId}", h.DeleteSubcontractorHandler)
				r.Post("/bid-invitations", h.CreateBidInvitationHandler)
				r.Put("/bid-invitations/{invitationId}", h.UpdateBidInvitationHandler)
				r.Delete("/bid-invitations/{invitationId}", h.DeleteBidInvitationHandler)
				r.Post("/bids", h.CreateBidHandler)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	return r
}
