package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetTheme(c *fiber.Ctx) error {
	return c.JSON(handler.theme.Current())
}

// ToggleTheme flips light/dark process-wide. The flip is in-memory only; a
// restart re-derives the mode from the configured platform preference.
func (handler *Handler) ToggleTheme(c *fiber.Ctx) error {
	handler.theme.Toggle()
	return c.JSON(handler.theme.Current())
}
