package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velvetash/somnia/internal/journal"
)

// ListDreams returns the journal, newest first, optionally narrowed by the
// q parameter (case-insensitive match on text and tag names).
func (handler *Handler) ListDreams(c *fiber.Ctx) error {
	entries, err := handler.store.LoadAll(c.Context())
	if err != nil {
		handler.logger.Error().Err(err).Msg("load entries failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load dreams")
	}

	return c.JSON(journal.Filter(entries, c.Query("q")))
}

func (handler *Handler) CreateDream(c *fiber.Ctx) error {
	input := entryDraftInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if input.Text == "" {
		return apiError(c, fiber.StatusBadRequest, "text is required")
	}
	if !validRating(input.Lucidity) || !validRating(input.Clarity) {
		return apiError(c, fiber.StatusBadRequest, "ratings must be between 0 and 10")
	}

	entry, err := handler.store.Create(c.Context(), journal.Draft{
		Text:     input.Text,
		Lucidity: input.Lucidity,
		Clarity:  input.Clarity,
		TagNames: input.Tags,
	})
	if err != nil {
		handler.logger.Error().Err(err).Msg("create entry failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save dream")
	}

	handler.metrics.IncEntriesCreated()
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetDream(c *fiber.Ctx) error {
	entry, found, err := handler.store.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		handler.logger.Error().Err(err).Msg("find entry failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load dream")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "dream not found")
	}

	return c.JSON(entry)
}

// UpdateDream edits the mutable fields of one entry. Only text and the two
// ratings can change; id, date and tags are immutable here.
func (handler *Handler) UpdateDream(c *fiber.Ctx) error {
	id := c.Params("id")

	input := entryPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if input.Lucidity != nil && !validRating(*input.Lucidity) {
		return apiError(c, fiber.StatusBadRequest, "ratings must be between 0 and 10")
	}
	if input.Clarity != nil && !validRating(*input.Clarity) {
		return apiError(c, fiber.StatusBadRequest, "ratings must be between 0 and 10")
	}

	_, found, err := handler.store.FindByID(c.Context(), id)
	if err != nil {
		handler.logger.Error().Err(err).Msg("find entry failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load dream")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "dream not found")
	}

	patch := journal.Patch{
		Text:     input.Text,
		Lucidity: input.Lucidity,
		Clarity:  input.Clarity,
	}
	if err := handler.store.Update(c.Context(), id, patch); err != nil {
		handler.logger.Error().Err(err).Msg("update entry failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save dream")
	}

	handler.metrics.IncEntriesUpdated()
	entry, _, err := handler.store.FindByID(c.Context(), id)
	if err != nil {
		handler.logger.Error().Err(err).Msg("reload entry failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load dream")
	}
	return c.JSON(entry)
}

func validRating(value float64) bool {
	return value >= 0 && value <= 10
}
