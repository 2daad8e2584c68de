package journal

import (
	"strings"

	"github.com/velvetash/somnia/internal/models"
)

const (
	FieldLucidity = "lucidity"
	FieldClarity  = "clarity"
)

// Filter returns the entries whose text or tag names contain query,
// case-insensitively, preserving input order. An empty query returns the
// input unchanged.
func Filter(entries []models.Entry, query string) []models.Entry {
	if query == "" {
		return entries
	}

	lower := strings.ToLower(query)
	matched := make([]models.Entry, 0, len(entries))
	for _, entry := range entries {
		if entryMatches(entry, lower) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func entryMatches(entry models.Entry, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(entry.Text), lowerQuery) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag.Name), lowerQuery) {
			return true
		}
	}
	return false
}

// Average is the arithmetic mean of the named rating across entries.
// An empty journal averages to zero by policy, not as an error.
func Average(entries []models.Entry, field string) float64 {
	values := History(entries, field)
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

// History returns the ordered series of the named rating, the dataset the
// stats chart plots.
func History(entries []models.Entry, field string) []float64 {
	values := make([]float64, 0, len(entries))
	for _, entry := range entries {
		switch field {
		case FieldLucidity:
			values = append(values, entry.Lucidity)
		case FieldClarity:
			values = append(values, entry.Clarity)
		}
	}
	return values
}
