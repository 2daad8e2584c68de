package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Entry is one journal record. The JSON field names are the persisted
// shape of the `dreams` storage key and must not change.
type Entry struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Text     string  `json:"text"`
	Lucidity float64 `json:"lucidity"`
	Clarity  float64 `json:"clarity"`
	Tags     []Tag   `json:"tags"`
}

type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type tagObject struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UnmarshalJSON accepts both the current {name, color} object form and the
// bare-string form older entries were written with. Legacy strings carry no
// color; it stays empty rather than being guessed.
func (tag *Tag) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		tag.Name = name
		tag.Color = ""
		return nil
	}

	var object tagObject
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("decode tag: %w", err)
	}
	tag.Name = object.Name
	tag.Color = object.Color
	return nil
}
