package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/velvetash/somnia/internal/notify"
	"github.com/velvetash/somnia/internal/scheduler"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.scheduler.Settings(c.Context())
	if err != nil {
		handler.logger.Error().Err(err).Msg("load settings failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(settings)
}

// UpdateJournalReminder enables or disables the daily journal reminder.
// Enabling reschedules from scratch, so a time change never leaves a
// duplicate trigger behind.
func (handler *Handler) UpdateJournalReminder(c *fiber.Ctx) error {
	input := journalReminderInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if !input.Enabled {
		if err := handler.scheduler.DisableJournal(c.Context()); err != nil {
			handler.logger.Error().Err(err).Msg("disable journal reminder failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to save settings")
		}
		return handler.GetSettings(c)
	}

	at, err := parseTimeOfDay(input.Time, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid time")
	}

	if err := handler.scheduler.EnableJournal(c.Context(), at); err != nil {
		return handler.scheduleError(c, err, "enable journal reminder failed")
	}
	return handler.GetSettings(c)
}

func (handler *Handler) UpdateRealityChecks(c *fiber.Ctx) error {
	input := realityCheckInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if !input.Enabled {
		if err := handler.scheduler.DisableRealityChecks(c.Context()); err != nil {
			handler.logger.Error().Err(err).Msg("disable reality checks failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to save settings")
		}
		return handler.GetSettings(c)
	}

	start, err := parseTimeOfDay(input.Start, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start time")
	}
	end, err := parseTimeOfDay(input.End, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid end time")
	}

	if err := handler.scheduler.EnableRealityChecks(c.Context(), start, end); err != nil {
		return handler.scheduleError(c, err, "enable reality checks failed")
	}
	return handler.GetSettings(c)
}

// scheduleError maps scheduler failures onto the alert the settings screen
// shows: invalid ranges and denied permissions are user-facing, everything
// else is a generic failure.
func (handler *Handler) scheduleError(c *fiber.Ctx, err error, logMessage string) error {
	if errors.Is(err, scheduler.ErrInvalidRange) {
		return apiError(c, fiber.StatusUnprocessableEntity, "end time must not precede start time")
	}
	if errors.Is(err, notify.ErrPermissionDenied) {
		return apiError(c, fiber.StatusForbidden, "notification permission denied")
	}
	handler.logger.Error().Err(err).Msg(logMessage)
	return apiError(c, fiber.StatusInternalServerError, "failed to schedule notifications")
}

// parseTimeOfDay accepts either a bare HH:MM clock value or a full
// RFC3339 timestamp, the shape the settings record persists.
func parseTimeOfDay(value string, location *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if parsed, err := time.ParseInLocation("15:04", value, location); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	return parsed.In(location), nil
}
