package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velvetash/somnia/internal/api"
	"github.com/velvetash/somnia/internal/config"
	"github.com/velvetash/somnia/internal/journal"
	"github.com/velvetash/somnia/internal/logging"
	"github.com/velvetash/somnia/internal/metrics"
	"github.com/velvetash/somnia/internal/notify"
	"github.com/velvetash/somnia/internal/scheduler"
	"github.com/velvetash/somnia/internal/security"
	"github.com/velvetash/somnia/internal/storage"
	"github.com/velvetash/somnia/internal/theme"
)

func runServe(ctx context.Context) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(conf.Logger.Level)

	location, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		logger.Warn().Str("tz", conf.Timezone).Msg("invalid timezone, falling back to UTC")
		location = time.UTC
	}
	time.Local = location

	kv, err := openStorage(conf)
	if err != nil {
		return err
	}

	secretKey := conf.Auth.SecretKey
	if secretKey == "" {
		secretKey, err = security.SessionSecret()
		if err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
		logger.Warn().Msg("no secret key configured, sessions will not survive a restart")
	}

	provider := metrics.NewProvider(prometheus.DefaultRegisterer)

	store := journal.NewStore(kv)
	settings := journal.NewSettingsStore(kv)
	themeManager := theme.NewManager(theme.Mode(conf.Theme.Default))

	notifier := notify.NewTelegramNotifier(conf.Telegram.BotToken, conf.Telegram.ChatID, location, logger)
	notifier.OnDeliver(func(trigger notify.Trigger) {
		provider.IncRemindersSent(string(trigger.Category))
	})

	reminders := scheduler.New(settings, notifier, logger, provider)

	handler, err := api.NewHandler(api.Options{
		Store:     store,
		Scheduler: reminders,
		Theme:     themeManager,
		SecretKey: secretKey,
		Password:  conf.Auth.Password,
		Location:  location,
		Logger:    logger,
		Metrics:   provider,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               conf.AppName,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if conf.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(ctx)
	defer cancelLifecycle()
	notifier.Start(lifecycleCtx)
	reminders.Restore(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	address := fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port)
	logger.Info().
		Str("addr", address).
		Str("storage", conf.Storage.Driver).
		Str("tz", location.String()).
		Msg("somnia listening")
	if err := app.Listen(address); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func openStorage(conf *config.Config) (storage.KV, error) {
	switch conf.Storage.Driver {
	case "disk":
		return storage.NewDiskKV(conf.Storage.DataDir), nil
	default:
		database, err := storage.OpenSQLite(conf.Storage.DBPath)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		return storage.NewSQLiteKV(database), nil
	}
}
