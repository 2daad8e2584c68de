package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velvetash/somnia/internal/journal"
)

type statsResponse struct {
	EntryCount      int       `json:"entryCount"`
	AverageLucidity float64   `json:"averageLucidity"`
	AverageClarity  float64   `json:"averageClarity"`
	LucidityHistory []float64 `json:"lucidityHistory"`
	ClarityHistory  []float64 `json:"clarityHistory"`
}

func (handler *Handler) Stats(c *fiber.Ctx) error {
	entries, err := handler.store.LoadAll(c.Context())
	if err != nil {
		handler.logger.Error().Err(err).Msg("load entries failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load stats")
	}

	return c.JSON(statsResponse{
		EntryCount:      len(entries),
		AverageLucidity: journal.Average(entries, journal.FieldLucidity),
		AverageClarity:  journal.Average(entries, journal.FieldClarity),
		LucidityHistory: journal.History(entries, journal.FieldLucidity),
		ClarityHistory:  journal.History(entries, journal.FieldClarity),
	})
}

// Export streams the whole journal as a JSON download.
func (handler *Handler) Export(c *fiber.Ctx) error {
	entries, err := handler.store.LoadAll(c.Context())
	if err != nil {
		handler.logger.Error().Err(err).Msg("load entries failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to export dreams")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="dreams.json"`)
	return c.JSON(entries)
}
