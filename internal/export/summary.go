package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jimezsa/jobscan/internal/models"
)

func WriteSummary(w io.Writer, summary models.Summary, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, summary)
	}

	rows := [][]string{
		{"total_jobs", strconv.Itoa(summary.TotalJobs)},
		{"total_websites", strconv.Itoa(summary.TotalWebsites)},
		{"active_websites", strconv.Itoa(summary.ActiveWebsites)},
		{"websites_with_errors", strconv.Itoa(summary.WebsitesWithErrors)},
		{"scanned_websites", strconv.Itoa(summary.ScannedWebsites)},
	}
	if summary.ScanResults != nil {
		rows = append(rows, []string{"scan_results", strconv.Itoa(*summary.ScanResults)})
	}
	if summary.RecentJobs != nil {
		rows = append(rows, []string{"recent_jobs", strconv.Itoa(*summary.RecentJobs)})
	}

	t := table{header: []string{"metric", "value"}, rows: rows, plain: rows}
	if err := render(w, t, format); err != nil {
		return err
	}
	if len(summary.Fallbacks) > 0 && (format == FormatTable || format == FormatMarkdown) {
		_, err := fmt.Fprintf(w, "\nunavailable: %s (shown as empty)\n", strings.Join(summary.Fallbacks, ", "))
		return err
	}
	return nil
}
