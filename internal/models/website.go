package models

import "time"

// Website is a registered scrape target. LastScanned, LastError and
// LastErrorAt are written only by the remote scraping process.
type Website struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	IsActive    bool       `json:"isActive"`
	Keywords    []string   `json:"keywords,omitempty"`
	LastScanned *time.Time `json:"lastScanned,omitempty"`
	LastError   string     `json:"lastError,omitempty"`
	LastErrorAt *time.Time `json:"lastErrorAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (w Website) HasError() bool {
	return w.LastError != ""
}

// WebsiteInput is the body of create and update requests. Nil fields are
// left out so an update only touches what the operator changed.
type WebsiteInput struct {
	Name     *string  `json:"name,omitempty"`
	URL      *string  `json:"url,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// WebsiteQuery carries the optional server-side filters of GET /websites.
type WebsiteQuery struct {
	Search   string
	IsActive *bool
}
