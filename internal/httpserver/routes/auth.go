package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver/deps"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver/handlers"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	credLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.LoginBurst,
		RefillPerIPPerMin: d.LoginRefillPerMin,
		TrustProxy:        d.TrustProxy,
	})
	authed := mw.Authenticate(d.Auth, d.Logger)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(credLimit).Post("/register", handlers.Register(d))
		r.With(credLimit).Post("/login", handlers.Login(d))
		r.With(authed).Post("/logout", handlers.Logout(d))
		r.With(authed).Post("/logout_all", handlers.LogoutAll(d))
		r.With(authed).Get("/me", handlers.Me(d))
	})
}
