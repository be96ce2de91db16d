// Package seen keeps an operator-owned history of job titles already looked
// at, so `jobs list` can show only what is new.
package seen

import (
	"strings"

	"github.com/jimezsa/jobscan/internal/models"
)

const keySeparator = "::"

// DiffStats summarizes a Diff run.
type DiffStats struct {
	Fetched int
	History int
	Invalid int
	Unseen  int
}

// MergeStats summarizes a Merge run.
type MergeStats struct {
	History int
	Input   int
	Invalid int
	Added   int
	Total   int
}

// Normalize lowercases value and collapses whitespace runs.
func Normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

// Key identifies a title within its website. Titles without a website id
// or with a blank title have no key.
func Key(job models.JobTitle) (string, bool) {
	website := strings.TrimSpace(job.WebsiteID)
	title := Normalize(job.Title)
	if website == "" || title == "" {
		return "", false
	}
	return website + keySeparator + title, true
}

func keySet(history []models.JobTitle) map[string]struct{} {
	keys := make(map[string]struct{}, len(history))
	for _, job := range history {
		if key, ok := Key(job); ok {
			keys[key] = struct{}{}
		}
	}
	return keys
}

// Diff returns the fetched titles missing from history, first occurrence
// only, in fetch order.
func Diff(fetched, history []models.JobTitle) ([]models.JobTitle, DiffStats) {
	stats := DiffStats{Fetched: len(fetched), History: len(history)}
	known := keySet(history)

	unseen := make([]models.JobTitle, 0, len(fetched))
	for _, job := range fetched {
		key, ok := Key(job)
		if !ok {
			stats.Invalid++
			continue
		}
		if _, exists := known[key]; exists {
			continue
		}
		known[key] = struct{}{}
		unseen = append(unseen, job)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends titles not yet in history. History entries are kept as-is,
// including ones without a key.
func Merge(history, input []models.JobTitle) ([]models.JobTitle, MergeStats) {
	stats := MergeStats{History: len(history), Input: len(input)}
	known := keySet(history)

	out := append(make([]models.JobTitle, 0, len(history)+len(input)), history...)
	for _, job := range input {
		key, ok := Key(job)
		if !ok {
			stats.Invalid++
			continue
		}
		if _, exists := known[key]; exists {
			continue
		}
		known[key] = struct{}{}
		out = append(out, job)
		stats.Added++
	}

	stats.Total = len(out)
	return out, stats
}
