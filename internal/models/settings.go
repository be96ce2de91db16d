package models

import "time"

// GeneralSettings are the scraper-wide keywords and scan interval in minutes.
type GeneralSettings struct {
	ID        string     `json:"_id,omitempty"`
	Keywords  []string   `json:"keywords"`
	Interval  int        `json:"interval"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
