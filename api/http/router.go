package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobsearch/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	Jobs        *handlers.JobsHandler
	JobFile     *handlers.JobFileHandler
	Profile     *handlers.ProfileHandler
	CV          *handlers.CVHandler
	Documents   *handlers.DocumentHandler
	CoverLetter *handlers.CoverLetterHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")

	// Local job-file lookup, public and outside the versioned API
	api.Get("/jobs", h.JobFile.Get)

	v1 := api.Group("/v1")

	// Health and readiness endpoints for orchestrators and monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Post("/logout", authMW, h.Auth.Logout)

	v1.Get("/cv/templates", h.CV.Templates)

	jobs := v1.Group("/jobs", authMW)
	jobs.Post("/search", h.Jobs.Search)
	jobs.Get("/", h.Jobs.View)
	jobs.Put("/page", h.Jobs.SetPage)
	jobs.Post("/filters/toggle", h.Jobs.Toggle)
	jobs.Delete("/filters", h.Jobs.ClearFilters)
	jobs.Put("/query", h.Jobs.SetQuery)
	jobs.Get("/:id", h.Jobs.GetByID)

	p := v1.Group("/profile", authMW)
	p.Get("/", h.Profile.Get)
	p.Put("/", h.Profile.Update)
	p.Post("/import", h.Profile.Import)

	d := v1.Group("/cv/dialogs", authMW)
	d.Post("/", h.CV.Open)
	d.Get("/:id", h.CV.Get)
	d.Post("/:id/reload", h.CV.Reload)
	d.Put("/:id/viewport", h.CV.Viewport)
	d.Post("/:id/submit", h.CV.Submit)
	d.Delete("/:id", h.CV.Close)

	// capability link: the random id is the credential
	v1.Get("/documents/:id", h.Documents.Get)
	v1.Post("/cover-letters/draft", authMW, h.CoverLetter.Draft)
}
