// Package settings edits the scraper's general settings: the keyword list
// and the scan interval in minutes.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimezsa/jobscan/internal/models"
)

const (
	MinInterval     = 1
	MaxInterval     = 59
	DefaultInterval = 30
)

var ErrIntervalRange = fmt.Errorf("interval must be between %d and %d minutes", MinInterval, MaxInterval)

var ErrEmptyKeyword = errors.New("keyword is empty")

var defaultKeywords = []string{
	"student",
	"intern",
	"internship",
	"entry level",
	"junior",
	"graduate",
	"trainee",
	"part time",
	"remote",
	"work from home",
}

func Defaults() models.GeneralSettings {
	return models.GeneralSettings{
		Keywords: append([]string{}, defaultKeywords...),
		Interval: DefaultInterval,
	}
}

// Resolve picks what to show for the stored settings. Without stored
// settings the defaults are returned and saved is false.
func Resolve(stored *models.GeneralSettings, fetchErr error) (current models.GeneralSettings, saved bool) {
	if fetchErr != nil || stored == nil {
		return Defaults(), false
	}
	return *stored, true
}

func ValidateInterval(minutes int) error {
	if minutes < MinInterval || minutes > MaxInterval {
		return fmt.Errorf("%d: %w", minutes, ErrIntervalRange)
	}
	return nil
}

func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// NormalizeKeywords lowercases and trims every keyword, dropping empties and
// duplicates while keeping first-seen order.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		keyword = NormalizeKeyword(keyword)
		if keyword == "" {
			continue
		}
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		out = append(out, keyword)
	}
	return out
}

// AddKeyword appends keyword unless it is already present. added is false
// for duplicates.
func AddKeyword(keywords []string, keyword string) (out []string, added bool, err error) {
	keyword = NormalizeKeyword(keyword)
	if keyword == "" {
		return keywords, false, ErrEmptyKeyword
	}
	for _, existing := range keywords {
		if existing == keyword {
			return keywords, false, nil
		}
	}
	return append(append([]string{}, keywords...), keyword), true, nil
}

func RemoveKeyword(keywords []string, keyword string) (out []string, removed bool) {
	keyword = NormalizeKeyword(keyword)
	out = make([]string, 0, len(keywords))
	for _, existing := range keywords {
		if existing == keyword {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	return out, removed
}
