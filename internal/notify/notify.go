package notify

import (
	"context"
	"errors"
)

// Category is one of the two reminder kinds, each with independent
// enable/schedule state.
type Category string

const (
	CategoryJournal    Category = "journal"
	CategoryDreamCheck Category = "dreamCheck"
)

// ErrPermissionDenied reports that the delivery channel is not available;
// callers abandon the enable transition when they see it.
var ErrPermissionDenied = errors.New("notification permission denied")

// Trigger is one recurring daily notification at a specific hour/minute.
type Trigger struct {
	Token    string
	Category Category
	Hour     int
	Minute   int
	Title    string
	Body     string
}

// Notifier is the local-notification service the scheduler drives. The
// richer contract is deliberate: cancellation is category-scoped so one
// reminder kind never clears the other's triggers.
type Notifier interface {
	RequestPermission(ctx context.Context) error
	Schedule(ctx context.Context, trigger Trigger) (string, error)
	CancelCategory(ctx context.Context, category Category) error
	CancelAll(ctx context.Context) error
	Scheduled(ctx context.Context) ([]Trigger, error)
}
