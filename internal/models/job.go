package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// JobBatch is one scrape's result set for one website.
type JobBatch struct {
	ID        string     `json:"_id"`
	Titles    []string   `json:"data"`
	Website   WebsiteRef `json:"websiteId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// WebsiteRef is the owning website as denormalized into a batch at fetch time.
// The backend sends either a bare id string or a populated object.
type WebsiteRef struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	URL      string `json:"url,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (r *WebsiteRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = WebsiteRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = WebsiteRef{ID: id}
		return nil
	}

	type plain WebsiteRef
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = WebsiteRef(decoded)
	return nil
}

// DisplayName falls back to the id when the reference was not populated.
func (r WebsiteRef) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// JobBatchQuery carries the optional server-side filters of GET /jobs.
type JobBatchQuery struct {
	WebsiteID string
	Search    string
	IsActive  *bool
}

// JobTitle is a single title flattened out of a batch, used for seen history.
type JobTitle struct {
	WebsiteID   string    `json:"website_id"`
	WebsiteName string    `json:"website_name,omitempty"`
	Title       string    `json:"title"`
	ScannedAt   time.Time `json:"scanned_at,omitempty"`
}

// Flatten expands batches into one JobTitle per title, preserving order.
func Flatten(batches []JobBatch) []JobTitle {
	var out []JobTitle
	for _, batch := range batches {
		for _, title := range batch.Titles {
			out = append(out, JobTitle{
				WebsiteID:   batch.Website.ID,
				WebsiteName: batch.Website.Name,
				Title:       title,
				ScannedAt:   batch.CreatedAt,
			})
		}
	}
	return out
}
