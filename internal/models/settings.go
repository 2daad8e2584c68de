package models

import "time"

// NotificationSettings is the singleton record stored under the
// `notificationSettings` key. Times are persisted as RFC3339 strings; only
// their hour and minute components are semantically meaningful.
type NotificationSettings struct {
	JournalEnabled    bool      `json:"journalEnabled"`
	DreamCheckEnabled bool      `json:"dreamCheckEnabled"`
	JournalTime       time.Time `json:"journalTime"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
}
