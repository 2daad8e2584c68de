package storage

import "context"

// KV is the key-value storage the journal persists through. Values are
// serialized text; a missing key is reported through ok, not an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

const (
	// KeyDreams holds the serialized entry collection, newest first.
	KeyDreams = "dreams"
	// KeyNotificationSettings holds the reminder settings singleton.
	KeyNotificationSettings = "notificationSettings"
)
