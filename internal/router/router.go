package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/studydock/studydock-go/internal/handler"
	"github.com/studydock/studydock-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Document *handler.DocumentHandler
	Vote     *handler.VoteHandler
	Access   *handler.AccessHandler
	Bookmark *handler.BookmarkHandler
	User     *handler.UserHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(middleware.WithIdentity())

	// Probes and metrics (no auth, no identity sync)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	readLimit := middleware.NewReadRateLimiter().Handler()
	voteLimit := middleware.NewVoteRateLimiter().Handler()
	uploadLimit := middleware.NewUploadRateLimiter().Handler()
	viewLimit := middleware.NewViewRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()

	authed := middleware.RequireIdentity()

	// API routes. Every authenticated request refreshes the caller's profile
	// row before the handler touches the ledger.
	api := app.Group("/api", h.User.SyncIdentity())

	// Document routes
	api.Post("/documents", uploadLimit, authed, h.Document.Create)
	api.Post("/documents/upload-url", uploadLimit, authed, h.Document.UploadURL)
	api.Get("/documents", readLimit, h.Document.List)
	api.Get("/documents/:id", readLimit, h.Document.Get)
	api.Patch("/documents/:id", uploadLimit, authed, h.Document.Update)
	api.Delete("/documents/:id", uploadLimit, authed, h.Document.Delete)

	// Engine routes: votes, views, time tracking
	api.Post("/documents/:id/vote", voteLimit, authed, h.Vote.VoteDocument)
	api.Post("/comments/:id/vote", voteLimit, authed, h.Vote.VoteComment)
	api.Post("/documents/:id/view", viewLimit, h.Access.RecordView)
	api.Post("/documents/:id/log-time", viewLimit, authed, h.Access.LogTime)

	// Bookmark routes
	api.Post("/documents/:id/bookmark", voteLimit, authed, h.Bookmark.Toggle)
	api.Get("/bookmarks", readLimit, authed, h.Bookmark.List)

	// User routes
	api.Get("/users/me", readLimit, authed, h.User.Me)
	api.Get("/users/:userId", readLimit, h.User.GetByUserID)
	api.Get("/leaderboard", readLimit, h.User.Leaderboard)

	// Stats routes
	api.Get("/stats", statsLimit, h.Stats.GetStats)
}
