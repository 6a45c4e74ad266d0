package handler

import (
	"github.com/gofiber/fiber/v2"

	"fileview/internal/service"
)

// Dependencies groups what the HTTP routes need.
type Dependencies struct {
	// Backend is pinged by /health. It may be nil.
	Backend Pinger
	Opener  service.FileOpener
	Recent  service.RecentFilesStore
	// Staging is the materialization cache. It is nil when caching is off.
	Staging StagingPurger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate HTTP to service calls.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", HealthCheck(deps.Backend))
	app.Get("/healthz", LivenessProbe())

	app.Get("/file-types", ListFileTypes())
	app.Get("/file-types/classify", ClassifyFile())

	app.Post("/files/describe", DescribeFile())
	app.Post("/files/open", OpenFile(deps.Opener, deps.Recent))
	if deps.Staging != nil {
		app.Delete("/files/staged", PurgeStagedFiles(deps.Staging))
	}

	app.Get("/recent-files", ListRecentFiles(deps.Recent))
	app.Post("/recent-files", SaveRecentFile(deps.Recent))
	app.Delete("/recent-files/all", ClearAllRecentFiles(deps.Recent))
	app.Delete("/recent-files", ClearRecentFile(deps.Recent))
}
