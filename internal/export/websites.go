package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobscan/internal/models"
)

func WriteWebsites(w io.Writer, sites []models.Website, format Format, opts WriteOptions) error {
	if format == FormatJSON {
		if sites == nil {
			sites = []models.Website{}
		}
		return writeJSON(w, sites)
	}

	now := opts.now()
	t := table{header: []string{"id", "name", "status", "url", "keywords", "last_scanned", "last_error"}}
	for _, site := range sites {
		status := "inactive"
		if site.IsActive {
			status = "active"
		}
		t.rows = append(t.rows, []string{
			safe(site.ID),
			safe(site.Name),
			status,
			linkCell(w, site.URL, opts),
			safe(strings.Join(site.Keywords, ", ")),
			relative(site.LastScanned, now, "never"),
			ErrorLine(site, opts),
		})
		t.plain = append(t.plain, []string{
			site.ID,
			site.Name,
			strconv.FormatBool(site.IsActive),
			site.URL,
			strings.Join(site.Keywords, ";"),
			timestamp(site.LastScanned),
			site.LastError,
		})
	}
	return render(w, t, format)
}

// ErrorLine describes a website's last error with its age, or "-" when the
// website has none.
func ErrorLine(site models.Website, opts WriteOptions) string {
	if !site.HasError() {
		return "-"
	}
	return site.LastError + " (" + relative(site.LastErrorAt, opts.now(), "unknown time") + ")"
}

// WriteWebsiteDetail prints one website as aligned key/value lines.
func WriteWebsiteDetail(w io.Writer, site models.Website, opts WriteOptions) error {
	now := opts.now()
	status := "inactive"
	if site.IsActive {
		status = "active"
	}
	created := site.CreatedAt
	updated := site.UpdatedAt
	rows := [][]string{
		{"id", safe(site.ID)},
		{"name", safe(site.Name)},
		{"url", linkCell(w, site.URL, opts)},
		{"status", status},
		{"keywords", safe(strings.Join(site.Keywords, ", "))},
		{"last_scanned", relative(site.LastScanned, now, "never")},
		{"last_error", ErrorLine(site, opts)},
		{"created", relative(&created, now, "-")},
		{"updated", relative(&updated, now, "-")},
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
