package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/yatube/internal/setup"
	mw "github.com/itchan-dev/yatube/shared/middleware"
	"github.com/itchan-dev/yatube/shared/middleware/metrics"
	rl "github.com/itchan-dev/yatube/shared/middleware/ratelimiter"
)

// New creates and configures the application router.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints in that group combined
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Strict CSP: JSON API only, no scripts/styles needed
	csp := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, csp))

	r.Use(mw.RequestId)
	r.Use(metrics.Middleware)

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Auth routes
	r.Route("/auth", func(auth chi.Router) {
		// Signup and login are brute-force targets, limit by username and by IP
		auth.Group(func(limited chi.Router) {
			limited.Use(mw.RateLimit(rl.New(5.0/600.0, 5, 1*time.Hour), mw.GetUsernameFromBody)) // 5 attempts per 10 minutes by username
			limited.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
			limited.Use(mw.GlobalRateLimit(rl.Rps100()))
			limited.Post("/signup", h.Signup)
			limited.Post("/login", h.Login)
		})
		auth.Post("/logout", h.Logout)
	})

	// Admin routes
	r.Route("/v1/admin", func(admin chi.Router) {
		admin.Use(authMw.AdminOnly())
		admin.Post("/groups", h.CreateGroup)
		admin.Delete("/groups/{slug}", h.DeleteGroup)
	})

	// Public pages. Auth is optional: anonymous users read everything,
	// mutating handlers guard themselves and redirect to login.
	r.Group(func(pages chi.Router) {
		pages.Use(authMw.OptionalAuth())
		pages.Use(mw.GlobalRateLimit(rl.Rps1000()))

		pages.Get("/", h.Index)
		pages.Get("/groups/", h.Groups)
		pages.Get("/group/{slug}/", h.GroupPosts)
		pages.Get("/profile/{username}/", h.Profile)
		pages.Get("/posts/{id:[0-9]+}/", h.PostDetail)

		pages.Get("/create/", h.PostCreate)
		// CreatePost: 1 per second per user
		pages.With(mw.RateLimit(rl.OnceInSecond(), mw.GetUserIDOrIP)).Post("/create/", h.PostCreate)

		pages.Get("/posts/{id:[0-9]+}/edit/", h.PostEdit)
		pages.With(mw.RateLimit(rl.OnceInSecond(), mw.GetUserIDOrIP)).Post("/posts/{id:[0-9]+}/edit/", h.PostEdit)
	})

	r.MethodFunc("OPTIONS", "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
