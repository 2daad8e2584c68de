package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TelegramNotifier delivers scheduled triggers as Telegram bot messages.
// Triggers live in memory; the scheduler rebuilds them from persisted
// settings at boot.
type TelegramNotifier struct {
	botToken string
	chatID   string
	enabled  bool
	location *time.Location
	client   *http.Client
	logger   zerolog.Logger

	mu        sync.Mutex
	triggers  map[string]Trigger
	firedOn   map[string]time.Time
	onDeliver func(Trigger)
}

func NewTelegramNotifier(botToken string, chatID string, location *time.Location, logger zerolog.Logger) *TelegramNotifier {
	if location == nil {
		location = time.Local
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		enabled:  botToken != "" && chatID != "",
		location: location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		logger:   logger,
		triggers: make(map[string]Trigger),
		firedOn:  make(map[string]time.Time),
	}
}

// OnDeliver registers a hook invoked after each successful delivery.
func (notifier *TelegramNotifier) OnDeliver(hook func(Trigger)) {
	notifier.mu.Lock()
	notifier.onDeliver = hook
	notifier.mu.Unlock()
}

// RequestPermission reports denied when no bot token or chat id is
// configured, the service's analogue of the platform permission prompt.
func (notifier *TelegramNotifier) RequestPermission(ctx context.Context) error {
	if !notifier.enabled {
		return ErrPermissionDenied
	}
	return nil
}

func (notifier *TelegramNotifier) Schedule(ctx context.Context, trigger Trigger) (string, error) {
	if !notifier.enabled {
		return "", ErrPermissionDenied
	}
	if trigger.Hour < 0 || trigger.Hour > 23 || trigger.Minute < 0 || trigger.Minute > 59 {
		return "", fmt.Errorf("invalid trigger time %02d:%02d", trigger.Hour, trigger.Minute)
	}

	trigger.Token = uuid.NewString()

	notifier.mu.Lock()
	notifier.triggers[trigger.Token] = trigger
	notifier.mu.Unlock()

	return trigger.Token, nil
}

func (notifier *TelegramNotifier) CancelCategory(ctx context.Context, category Category) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	for token, trigger := range notifier.triggers {
		if trigger.Category == category {
			delete(notifier.triggers, token)
		}
	}
	return nil
}

func (notifier *TelegramNotifier) CancelAll(ctx context.Context) error {
	notifier.mu.Lock()
	notifier.triggers = make(map[string]Trigger)
	notifier.mu.Unlock()
	return nil
}

func (notifier *TelegramNotifier) Scheduled(ctx context.Context) ([]Trigger, error) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	triggers := make([]Trigger, 0, len(notifier.triggers))
	for _, trigger := range notifier.triggers {
		triggers = append(triggers, trigger)
	}
	sort.Slice(triggers, func(left, right int) bool {
		if triggers[left].Hour != triggers[right].Hour {
			return triggers[left].Hour < triggers[right].Hour
		}
		return triggers[left].Minute < triggers[right].Minute
	})
	return triggers, nil
}

// Start launches the delivery loop. It stops when ctx is canceled.
func (notifier *TelegramNotifier) Start(ctx context.Context) {
	if !notifier.enabled {
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				notifier.deliverDue(ctx, time.Now().In(notifier.location))
			}
		}
	}()
}

func (notifier *TelegramNotifier) deliverDue(ctx context.Context, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, trigger := range notifier.dueTriggers(now, today) {
		message := trigger.Title
		if trigger.Body != "" {
			message = trigger.Title + "\n" + trigger.Body
		}
		if err := notifier.sendTelegram(ctx, message); err != nil {
			notifier.logger.Error().Err(err).
				Str("category", string(trigger.Category)).
				Msg("reminder delivery failed")
			continue
		}
		notifier.notifyDelivered(trigger)
	}
}

// dueTriggers returns the triggers matching the current hour/minute that
// have not fired yet today, and marks them fired.
func (notifier *TelegramNotifier) dueTriggers(now time.Time, today time.Time) []Trigger {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	due := make([]Trigger, 0)
	for token, trigger := range notifier.triggers {
		if trigger.Hour != now.Hour() || trigger.Minute != now.Minute() {
			continue
		}
		if firedOn, ok := notifier.firedOn[token]; ok && firedOn.Equal(today) {
			continue
		}
		notifier.firedOn[token] = today
		due = append(due, trigger)
	}

	if len(notifier.firedOn) > 500 {
		notifier.firedOn = make(map[string]time.Time)
	}
	return due
}

func (notifier *TelegramNotifier) notifyDelivered(trigger Trigger) {
	notifier.mu.Lock()
	hook := notifier.onDeliver
	notifier.mu.Unlock()

	if hook != nil {
		hook(trigger)
	}
}

func (notifier *TelegramNotifier) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", notifier.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
