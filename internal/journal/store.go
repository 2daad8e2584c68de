package journal

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/velvetash/somnia/internal/models"
	"github.com/velvetash/somnia/internal/storage"
)

// tagPalette is cycled by tag position when a new entry is created, the
// same seven colors the journal has always assigned.
var tagPalette = []string{
	"#FFB6C1",
	"#FFD700",
	"#98FB98",
	"#87CEEB",
	"#FF6347",
	"#DDA0DD",
	"#A52A2A",
}

// Draft carries the form state of the new-entry flow.
type Draft struct {
	Text     string
	Lucidity float64
	Clarity  float64
	TagNames []string
}

// Patch carries the mutable fields of the edit flow. Nil fields are left
// untouched.
type Patch struct {
	Text     *string
	Lucidity *float64
	Clarity  *float64
}

// Store owns the durable entry collection. Every operation is a full
// read-modify-write of the whole serialized list under one storage key;
// overlapping writers are not coordinated and the last write wins.
type Store struct {
	kv  storage.KV
	now func() time.Time
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// NewStoreWithClock is for tests that need deterministic ids and dates.
func NewStoreWithClock(kv storage.KV, now func() time.Time) *Store {
	return &Store{kv: kv, now: now}
}

// LoadAll returns the stored collection, newest first. A missing or
// unparsable value is treated as an empty journal rather than an error.
func (store *Store) LoadAll(ctx context.Context) ([]models.Entry, error) {
	raw, ok, err := store.kv.Get(ctx, storage.KeyDreams)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	if !ok {
		return []models.Entry{}, nil
	}

	entries := make([]models.Entry, 0)
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []models.Entry{}, nil
	}
	return entries, nil
}

func (store *Store) Create(ctx context.Context, draft Draft) (models.Entry, error) {
	entries, err := store.LoadAll(ctx)
	if err != nil {
		return models.Entry{}, err
	}

	now := store.now()
	entry := models.Entry{
		ID:       strconv.FormatInt(now.UnixNano(), 10),
		Date:     now.Format("1/2/2006, 3:04:05 PM"),
		Text:     draft.Text,
		Lucidity: draft.Lucidity,
		Clarity:  draft.Clarity,
		Tags:     buildTags(draft.TagNames),
	}

	entries = append([]models.Entry{entry}, entries...)
	if err := store.writeAll(ctx, entries); err != nil {
		return models.Entry{}, err
	}
	return entry, nil
}

// Update replaces the mutable fields of the entry matching id and writes
// the collection back. An unmatched id is a silent no-op.
func (store *Store) Update(ctx context.Context, id string, patch Patch) error {
	entries, err := store.LoadAll(ctx)
	if err != nil {
		return err
	}

	for index := range entries {
		if entries[index].ID != id {
			continue
		}
		if patch.Text != nil {
			entries[index].Text = *patch.Text
		}
		if patch.Lucidity != nil {
			entries[index].Lucidity = *patch.Lucidity
		}
		if patch.Clarity != nil {
			entries[index].Clarity = *patch.Clarity
		}
	}

	return store.writeAll(ctx, entries)
}

func (store *Store) FindByID(ctx context.Context, id string) (models.Entry, bool, error) {
	entries, err := store.LoadAll(ctx)
	if err != nil {
		return models.Entry{}, false, err
	}

	for _, entry := range entries {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return models.Entry{}, false, nil
}

func (store *Store) writeAll(ctx context.Context, entries []models.Entry) error {
	serialized, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("serialize entries: %w", err)
	}
	if err := store.kv.Set(ctx, storage.KeyDreams, string(serialized)); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}

func buildTags(names []string) []models.Tag {
	tags := make([]models.Tag, 0, len(names))
	for index, name := range names {
		if name == "" {
			continue
		}
		tags = append(tags, models.Tag{
			Name:  name,
			Color: tagPalette[index%len(tagPalette)],
		})
	}
	return tags
}
