package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Post("/api/login", handler.Login)
	app.Post("/api/logout", handler.Logout)

	protected := app.Group("/api", handler.RequireAuth)
	protected.Get("/dreams", handler.ListDreams)
	protected.Post("/dreams", handler.CreateDream)
	protected.Get("/dreams/:id", handler.GetDream)
	protected.Put("/dreams/:id", handler.UpdateDream)

	protected.Get("/stats", handler.Stats)
	protected.Get("/export", handler.Export)

	protected.Get("/theme", handler.GetTheme)
	protected.Post("/theme/toggle", handler.ToggleTheme)

	protected.Get("/settings", handler.GetSettings)
	protected.Put("/settings/journal", handler.UpdateJournalReminder)
	protected.Put("/settings/reality-checks", handler.UpdateRealityChecks)
}
