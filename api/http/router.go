package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/handlers"
)

// Handlers groups everything the router wires.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	Company     *handlers.CompanyHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	Bookmark    *handlers.BookmarkHandler
	Resume      *handlers.ResumeHandler
}

// Register wires all HTTP routes onto given Fiber app. Reads on companies,
// offices and jobs are public; everything else requires a valid token.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Get("/me", authMW, h.Auth.Me)

	companies := v1.Group("/companies")
	companies.Get("/", h.Company.List)
	companies.Get("/:id", h.Company.GetByID)
	companies.Get("/:id/offices", h.Company.ListOffices)
	companies.Post("/", authMW, h.Company.Create)
	companies.Patch("/:id", authMW, h.Company.Update)
	companies.Post("/:id/offices", authMW, h.Company.CreateOffice)
	companies.Post("/:id/managers", authMW, h.Company.AddManager)

	jobs := v1.Group("/jobs")
	jobs.Get("/", h.Job.List)
	jobs.Get("/:id", h.Job.GetByID)
	jobs.Post("/", authMW, h.Job.Create)
	jobs.Patch("/:id", authMW, h.Job.Update)
	jobs.Get("/:id/applications", authMW, h.Application.ListByJob)

	apps := v1.Group("/applications", authMW)
	apps.Post("/", h.Application.Apply)
	apps.Get("/", h.Application.ListMine)
	apps.Get("/:id", h.Application.GetByID)
	apps.Patch("/:id", h.Application.UpdateStatus)

	bookmarks := v1.Group("/bookmarks", authMW)
	bookmarks.Post("/", h.Bookmark.Create)
	bookmarks.Get("/", h.Bookmark.List)
	bookmarks.Delete("/:id", h.Bookmark.Delete)

	resumes := v1.Group("/resumes", authMW)
	resumes.Post("/", h.Resume.Upload)
	resumes.Get("/", h.Resume.List)
	resumes.Delete("/:id", h.Resume.Delete)
}
