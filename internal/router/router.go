// Package router sets up all HTTP routes and middleware chains for the
// newsdesk server. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	sessionStore *session.Store,
	auth *handlers.Auth,
	drafts *handlers.Drafts,
	mod *handlers.Moderation,
	pub *handlers.Publication,
	public *handlers.Public,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Authentication — rate limited to slow down credential stuffing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
		r.Get("/me", auth.Me)

		// 2FA — requires auth but NOT completed verification.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", auth.TwoFASetup)
			r.With(loginLimiter.Middleware).Post("/2fa/verify", auth.TwoFAVerify)
		})
	})

	// Admin routes — authenticated, 2FA-verified, CSRF-protected.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)

		// Draft composition — any authenticated role may submit.
		r.Post("/drafts/extract", drafts.Extract)
		r.Post("/articles", drafts.Submit)

		// Notices for the current user.
		r.Get("/notices", pub.Notices)

		// Moderation queue — editors and admins only.
		r.Route("/moderation", func(r chi.Router) {
			r.Use(middleware.RequireEditor)
			r.Get("/", mod.Queue)
			r.Post("/{id}/approve", mod.Approve)
			r.Post("/{id}/reject", mod.Reject)
		})

		// Publication management — editors and admins only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEditor)
			r.Get("/articles", pub.List)
			r.Post("/articles/{id}/publish", pub.TogglePublish)
			r.Put("/articles/{id}", pub.Edit)
			r.Post("/articles/{id}/delete", pub.ConfirmDelete)
			r.Delete("/articles/{id}", pub.Delete)
		})
	})

	// Public read surface — approved articles only.
	r.Route("/news", func(r chi.Router) {
		r.Get("/", public.List)
		r.Get("/cover", public.Cover)
		r.Get("/{id}", public.Show)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
