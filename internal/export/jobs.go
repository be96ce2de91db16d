package export

import (
	"io"

	"github.com/jimezsa/jobscan/internal/models"
)

// WriteJobTitles writes one row per title. JSON output keeps the flat shape
// so it can be fed back as seen history.
func WriteJobTitles(w io.Writer, titles []models.JobTitle, format Format, opts WriteOptions) error {
	if format == FormatJSON {
		if titles == nil {
			titles = []models.JobTitle{}
		}
		return writeJSON(w, titles)
	}

	now := opts.now()
	t := table{header: []string{"website", "title", "scanned"}}
	for _, job := range titles {
		website := job.WebsiteName
		if website == "" {
			website = job.WebsiteID
		}
		scanned := job.ScannedAt
		t.rows = append(t.rows, []string{safe(website), safe(job.Title), relative(&scanned, now, "-")})
		t.plain = append(t.plain, []string{website, job.Title, timestamp(&scanned)})
	}
	return render(w, t, format)
}
