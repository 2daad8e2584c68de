package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestTagUnmarshalObjectForm(t *testing.T) {
	tag := Tag{}
	if err := json.Unmarshal([]byte(`{"name":"Lucid","color":"#FFB6C1"}`), &tag); err != nil {
		t.Fatalf("unmarshal object tag: %v", err)
	}
	if tag.Name != "Lucid" || tag.Color != "#FFB6C1" {
		t.Fatalf("unexpected tag %+v", tag)
	}
}

func TestTagUnmarshalLegacyStringForm(t *testing.T) {
	tag := Tag{}
	if err := json.Unmarshal([]byte(`"nightmare"`), &tag); err != nil {
		t.Fatalf("unmarshal legacy tag: %v", err)
	}
	if tag.Name != "nightmare" {
		t.Fatalf("expected name nightmare, got %q", tag.Name)
	}
	if tag.Color != "" {
		t.Fatalf("legacy tags must not be assigned a color, got %q", tag.Color)
	}
}

func TestTagUnmarshalRejectsMalformedValue(t *testing.T) {
	tag := Tag{}
	if err := json.Unmarshal([]byte(`42`), &tag); err == nil {
		t.Fatal("expected error for numeric tag value")
	}
}

func TestEntryUnmarshalMixedTagShapes(t *testing.T) {
	raw := `{
		"id": "1700000000000",
		"date": "11/14/2023, 10:13:20 PM",
		"text": "flying over a city",
		"lucidity": 7.5,
		"clarity": 6,
		"tags": ["old-tag", {"name": "Lucid", "color": "#FFD700"}]
	}`

	entry := Entry{}
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	if len(entry.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(entry.Tags))
	}
	if entry.Tags[0].Name != "old-tag" || entry.Tags[0].Color != "" {
		t.Fatalf("unexpected legacy tag %+v", entry.Tags[0])
	}
	if entry.Tags[1].Name != "Lucid" || entry.Tags[1].Color != "#FFD700" {
		t.Fatalf("unexpected object tag %+v", entry.Tags[1])
	}
}
