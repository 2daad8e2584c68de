package journal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/velvetash/somnia/internal/storage"
)

type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: make(map[string]string)}
}

func (kv *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	value, ok := kv.values[key]
	return value, ok, nil
}

func (kv *memoryKV) Set(ctx context.Context, key string, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
	return nil
}

func (kv *memoryKV) Delete(ctx context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.values, key)
	return nil
}

func newTestStore(kv storage.KV) *Store {
	tick := time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC)
	return NewStoreWithClock(kv, func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})
}

func TestLoadAllEmptyWhenKeyAbsent(t *testing.T) {
	store := newTestStore(newMemoryKV())

	entries, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load empty journal: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty journal, got %d entries", len(entries))
	}
}

func TestLoadAllTreatsCorruptValueAsEmpty(t *testing.T) {
	kv := newMemoryKV()
	if err := kv.Set(context.Background(), storage.KeyDreams, "{not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	store := newTestStore(kv)

	entries, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load corrupt journal: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected corrupt value masked as empty, got %d entries", len(entries))
	}
}

func TestCreatePrependsAndAssignsUniqueIDs(t *testing.T) {
	store := newTestStore(newMemoryKV())
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := store.Create(ctx, Draft{Text: text, Lucidity: 3, Clarity: 3}); err != nil {
			t.Fatalf("create %q: %v", text, err)
		}
	}

	entries, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load journal: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Newest first.
	for index, want := range []string{"third", "second", "first"} {
		if entries[index].Text != want {
			t.Fatalf("position %d: expected %q, got %q", index, want, entries[index].Text)
		}
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.ID == "" {
			t.Fatal("entry created without id")
		}
		if seen[entry.ID] {
			t.Fatalf("duplicate id %q", entry.ID)
		}
		seen[entry.ID] = true
	}
}

func TestCreateCyclesTagPalette(t *testing.T) {
	store := newTestStore(newMemoryKV())

	names := make([]string, 0, len(tagPalette)+1)
	for index := 0; index <= len(tagPalette); index++ {
		names = append(names, string(rune('a'+index)))
	}

	entry, err := store.Create(context.Background(), Draft{Text: "tagged", TagNames: names})
	if err != nil {
		t.Fatalf("create tagged entry: %v", err)
	}
	if len(entry.Tags) != len(names) {
		t.Fatalf("expected %d tags, got %d", len(names), len(entry.Tags))
	}
	if entry.Tags[0].Color != tagPalette[0] {
		t.Fatalf("expected first palette color %q, got %q", tagPalette[0], entry.Tags[0].Color)
	}
	if entry.Tags[len(tagPalette)].Color != tagPalette[0] {
		t.Fatalf("palette must cycle, got %q", entry.Tags[len(tagPalette)].Color)
	}
}

func TestUpdateChangesOnlyMutableFields(t *testing.T) {
	store := newTestStore(newMemoryKV())
	ctx := context.Background()

	created, err := store.Create(ctx, Draft{Text: "original", Lucidity: 2, Clarity: 4, TagNames: []string{"Lucid"}})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	text := "rewritten"
	lucidity := 9.5
	if err := store.Update(ctx, created.ID, Patch{Text: &text, Lucidity: &lucidity}); err != nil {
		t.Fatalf("update entry: %v", err)
	}

	updated, found, err := store.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find updated entry: %v", err)
	}
	if !found {
		t.Fatal("updated entry not found")
	}
	if updated.Text != "rewritten" || updated.Lucidity != 9.5 {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Clarity != 4 {
		t.Fatalf("clarity must be untouched by a nil patch field, got %v", updated.Clarity)
	}
	if updated.ID != created.ID || updated.Date != created.Date {
		t.Fatal("id and date must be immutable")
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "Lucid" {
		t.Fatalf("tags must be untouched by update, got %+v", updated.Tags)
	}
}

func TestUpdateUnknownIDIsSilentNoop(t *testing.T) {
	store := newTestStore(newMemoryKV())
	ctx := context.Background()

	if _, err := store.Create(ctx, Draft{Text: "kept"}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	text := "never applied"
	if err := store.Update(ctx, "no-such-id", Patch{Text: &text}); err != nil {
		t.Fatalf("update with unknown id must not error: %v", err)
	}

	entries, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load journal: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "kept" {
		t.Fatalf("collection changed by no-op update: %+v", entries)
	}
}

func TestFindByIDMissing(t *testing.T) {
	store := newTestStore(newMemoryKV())

	_, found, err := store.FindByID(context.Background(), "absent")
	if err != nil {
		t.Fatalf("find in empty journal: %v", err)
	}
	if found {
		t.Fatal("expected absent entry")
	}
}
