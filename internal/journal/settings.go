package journal

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/velvetash/somnia/internal/models"
	"github.com/velvetash/somnia/internal/storage"
)

// SettingsStore persists the notification settings singleton. Saving
// always overwrites the record in full.
type SettingsStore struct {
	kv storage.KV
}

func NewSettingsStore(kv storage.KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Load returns zero-value settings when the record is absent or does not
// parse, mirroring the entry store's corruption policy.
func (store *SettingsStore) Load(ctx context.Context) (models.NotificationSettings, error) {
	raw, ok, err := store.kv.Get(ctx, storage.KeyNotificationSettings)
	if err != nil {
		return models.NotificationSettings{}, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return models.NotificationSettings{}, nil
	}

	settings := models.NotificationSettings{}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.NotificationSettings{}, nil
	}
	return settings, nil
}

func (store *SettingsStore) Save(ctx context.Context, settings models.NotificationSettings) error {
	serialized, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := store.kv.Set(ctx, storage.KeyNotificationSettings, string(serialized)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
