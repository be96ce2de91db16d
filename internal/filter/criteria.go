package filter

import (
	"strings"

	"github.com/jimezsa/jobscan/internal/models"
)

type WebsiteCriteria struct {
	Search string
	Active Tristate
}

type JobCriteria struct {
	Search    string
	Active    Tristate
	WebsiteID string
}

// MatchWebsite checks the search text against name or URL.
func MatchWebsite(w models.Website, c WebsiteCriteria) bool {
	if search := strings.ToLower(c.Search); search != "" {
		if !containsFold(w.Name, search) && !containsFold(w.URL, search) {
			return false
		}
	}
	active := w.IsActive
	return c.Active.Matches(&active)
}

// MatchJobBatch checks the search text against every title in the batch. The
// active flag is the owning website's, as denormalized into the batch.
func MatchJobBatch(b models.JobBatch, c JobCriteria) bool {
	if c.WebsiteID != "" && b.Website.ID != c.WebsiteID {
		return false
	}
	if search := strings.ToLower(c.Search); search != "" {
		found := false
		for _, title := range b.Titles {
			if containsFold(title, search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return c.Active.Matches(b.Website.IsActive)
}

// MatchTitles keeps the titles whose text contains search, case-insensitive.
// A batch matches when any one title does, so listings that print single
// titles narrow again here.
func MatchTitles(titles []models.JobTitle, search string) []models.JobTitle {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return titles
	}
	out := make([]models.JobTitle, 0, len(titles))
	for _, job := range titles {
		if containsFold(job.Title, search) {
			out = append(out, job)
		}
	}
	return out
}
