package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/velvetash/somnia/internal/journal"
	"github.com/velvetash/somnia/internal/metrics"
	"github.com/velvetash/somnia/internal/models"
	"github.com/velvetash/somnia/internal/notify"
)

// ErrInvalidRange rejects a reality-check window whose end hour precedes
// its start hour. Rejecting (rather than silently producing no triggers)
// is the product decision this service ships with.
var ErrInvalidRange = errors.New("end time must not precede start time")

const (
	journalTitle = "🌙 Dream Journal Reminder"
	journalBody  = "Don't forget to write down your dream!"

	dreamCheckTitle = "🌀 Dream Reality Check"
	dreamCheckBody  = "Are you dreaming right now?"
)

// Scheduler turns reminder settings into recurring triggers on the
// notification platform. Every change is a full cancel-then-recreate of
// the affected category, never an incremental diff, so stale triggers
// cannot accumulate. The cancel and recreate steps are ordered within one
// call but two overlapping calls for the same category are not atomic.
type Scheduler struct {
	settings *journal.SettingsStore
	notifier notify.Notifier
	logger   zerolog.Logger
	metrics  metrics.ProviderInterface
}

func New(settings *journal.SettingsStore, notifier notify.Notifier, logger zerolog.Logger, provider metrics.ProviderInterface) *Scheduler {
	return &Scheduler{
		settings: settings,
		notifier: notifier,
		logger:   logger,
		metrics:  provider,
	}
}

func (scheduler *Scheduler) Settings(ctx context.Context) (models.NotificationSettings, error) {
	return scheduler.settings.Load(ctx)
}

// EnableJournal schedules exactly one daily trigger at the hour/minute of
// the given time and persists the settings. A permission denial abandons
// the transition and force-disables the category.
func (scheduler *Scheduler) EnableJournal(ctx context.Context, at time.Time) error {
	if err := scheduler.notifier.RequestPermission(ctx); err != nil {
		scheduler.forceDisable(ctx, notify.CategoryJournal)
		return err
	}

	if err := scheduler.notifier.CancelCategory(ctx, notify.CategoryJournal); err != nil {
		return fmt.Errorf("cancel journal triggers: %w", err)
	}

	_, err := scheduler.notifier.Schedule(ctx, notify.Trigger{
		Category: notify.CategoryJournal,
		Hour:     at.Hour(),
		Minute:   at.Minute(),
		Title:    journalTitle,
		Body:     journalBody,
	})
	if err != nil {
		return fmt.Errorf("schedule journal trigger: %w", err)
	}

	scheduler.metrics.IncScheduleRebuilds(string(notify.CategoryJournal))
	return scheduler.persist(ctx, func(settings *models.NotificationSettings) {
		settings.JournalEnabled = true
		settings.JournalTime = at
	})
}

func (scheduler *Scheduler) DisableJournal(ctx context.Context) error {
	if err := scheduler.notifier.CancelCategory(ctx, notify.CategoryJournal); err != nil {
		return fmt.Errorf("cancel journal triggers: %w", err)
	}

	return scheduler.persist(ctx, func(settings *models.NotificationSettings) {
		settings.JournalEnabled = false
	})
}

// EnableRealityChecks schedules one daily trigger per whole hour from the
// start hour through the end hour inclusive, minute zero. An inverted
// window is rejected before anything is canceled or persisted.
func (scheduler *Scheduler) EnableRealityChecks(ctx context.Context, start time.Time, end time.Time) error {
	if end.Hour() < start.Hour() {
		return ErrInvalidRange
	}

	if err := scheduler.notifier.RequestPermission(ctx); err != nil {
		scheduler.forceDisable(ctx, notify.CategoryDreamCheck)
		return err
	}

	if err := scheduler.notifier.CancelCategory(ctx, notify.CategoryDreamCheck); err != nil {
		return fmt.Errorf("cancel reality-check triggers: %w", err)
	}

	for hour := start.Hour(); hour <= end.Hour(); hour++ {
		_, err := scheduler.notifier.Schedule(ctx, notify.Trigger{
			Category: notify.CategoryDreamCheck,
			Hour:     hour,
			Minute:   0,
			Title:    dreamCheckTitle,
			Body:     dreamCheckBody,
		})
		if err != nil {
			return fmt.Errorf("schedule reality check at %02d:00: %w", hour, err)
		}
	}

	scheduler.metrics.IncScheduleRebuilds(string(notify.CategoryDreamCheck))
	return scheduler.persist(ctx, func(settings *models.NotificationSettings) {
		settings.DreamCheckEnabled = true
		settings.StartTime = start
		settings.EndTime = end
	})
}

func (scheduler *Scheduler) DisableRealityChecks(ctx context.Context) error {
	if err := scheduler.notifier.CancelCategory(ctx, notify.CategoryDreamCheck); err != nil {
		return fmt.Errorf("cancel reality-check triggers: %w", err)
	}

	return scheduler.persist(ctx, func(settings *models.NotificationSettings) {
		settings.DreamCheckEnabled = false
	})
}

// Restore re-applies the schedules of every enabled category from the
// persisted settings. Failures are logged, not fatal: a denied permission
// at boot simply leaves the category disabled.
func (scheduler *Scheduler) Restore(ctx context.Context) {
	settings, err := scheduler.settings.Load(ctx)
	if err != nil {
		scheduler.logger.Error().Err(err).Msg("restore reminder settings failed")
		return
	}

	if settings.JournalEnabled {
		if err := scheduler.EnableJournal(ctx, settings.JournalTime); err != nil {
			scheduler.logger.Warn().Err(err).Msg("restore journal reminder failed")
		}
	}
	if settings.DreamCheckEnabled {
		if err := scheduler.EnableRealityChecks(ctx, settings.StartTime, settings.EndTime); err != nil {
			scheduler.logger.Warn().Err(err).Msg("restore reality checks failed")
		}
	}
}

func (scheduler *Scheduler) persist(ctx context.Context, apply func(*models.NotificationSettings)) error {
	settings, err := scheduler.settings.Load(ctx)
	if err != nil {
		return err
	}
	apply(&settings)
	return scheduler.settings.Save(ctx, settings)
}

func (scheduler *Scheduler) forceDisable(ctx context.Context, category notify.Category) {
	err := scheduler.persist(ctx, func(settings *models.NotificationSettings) {
		switch category {
		case notify.CategoryJournal:
			settings.JournalEnabled = false
		case notify.CategoryDreamCheck:
			settings.DreamCheckEnabled = false
		}
	})
	if err != nil {
		scheduler.logger.Error().Err(err).
			Str("category", string(category)).
			Msg("force-disable after permission denial failed")
	}
}
