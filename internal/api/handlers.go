package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/velvetash/somnia/internal/journal"
	"github.com/velvetash/somnia/internal/metrics"
	"github.com/velvetash/somnia/internal/scheduler"
	"github.com/velvetash/somnia/internal/theme"
)

const (
	authCookieName = "somnia_auth"
	authTokenTTL   = 7 * 24 * time.Hour
)

type Handler struct {
	store        *journal.Store
	scheduler    *scheduler.Scheduler
	theme        *theme.Manager
	secretKey    []byte
	passwordHash []byte
	location     *time.Location
	logger       zerolog.Logger
	metrics      metrics.ProviderInterface
}

type Options struct {
	Store     *journal.Store
	Scheduler *scheduler.Scheduler
	Theme     *theme.Manager
	SecretKey string
	// Password guards the API when non-empty.
	Password string
	Location *time.Location
	Logger   zerolog.Logger
	Metrics  metrics.ProviderInterface
}

func NewHandler(options Options) (*Handler, error) {
	location := options.Location
	if location == nil {
		location = time.Local
	}

	var passwordHash []byte
	if options.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(options.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	}

	return &Handler{
		store:        options.Store,
		scheduler:    options.Scheduler,
		theme:        options.Theme,
		secretKey:    []byte(options.SecretKey),
		passwordHash: passwordHash,
		location:     location,
		logger:       options.Logger,
		metrics:      options.Metrics,
	}, nil
}

type loginInput struct {
	Password string `json:"password" form:"password"`
}

type entryDraftInput struct {
	Text     string   `json:"text"`
	Lucidity float64  `json:"lucidity"`
	Clarity  float64  `json:"clarity"`
	Tags     []string `json:"tags"`
}

type entryPatchInput struct {
	Text     *string  `json:"text"`
	Lucidity *float64 `json:"lucidity"`
	Clarity  *float64 `json:"clarity"`
}

type journalReminderInput struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

type realityCheckInput struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
