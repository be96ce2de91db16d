package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/jobscan/internal/models"
)

func TestWriteWebsitesTableShowsErrorAge(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	erroredAt := now.Add(-3 * time.Minute)
	sites := []models.Website{
		{ID: "a", Name: "Acme", URL: "https://acme.test", IsActive: true, LastError: "timeout", LastErrorAt: &erroredAt},
		{ID: "b", Name: "Beta", URL: "https://beta.test", LastError: "403"},
	}

	var buf bytes.Buffer
	if err := WriteWebsites(&buf, sites, FormatTable, WriteOptions{Now: now}); err != nil {
		t.Fatalf("WriteWebsites() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "timeout (3 minutes ago)") {
		t.Fatalf("table missing relative error time:\n%s", out)
	}
	if !strings.Contains(out, "403 (unknown time)") {
		t.Fatalf("table missing unknown time fallback:\n%s", out)
	}
	if !strings.Contains(out, "never") {
		t.Fatalf("table missing never-scanned marker:\n%s", out)
	}
}

func TestWriteWebsitesCSV(t *testing.T) {
	sites := []models.Website{{ID: "a", Name: "Acme, Inc", URL: "https://acme.test", IsActive: true, Keywords: []string{"go", "intern"}}}

	var buf bytes.Buffer
	if err := WriteWebsites(&buf, sites, FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteWebsites() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want 2:\n%s", len(lines), buf.String())
	}
	if want := `a,"Acme, Inc",true,https://acme.test,go;intern,,`; lines[1] != want {
		t.Fatalf("csv row = %q, want %q", lines[1], want)
	}
}

func TestWriteWebsitesJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWebsites(&buf, nil, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteWebsites() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("json = %q, want []", buf.String())
	}
}

func TestWriteJobTitlesMarkdown(t *testing.T) {
	titles := []models.JobTitle{{WebsiteID: "a", WebsiteName: "Acme", Title: "Eng | Platform"}}

	var buf bytes.Buffer
	if err := WriteJobTitles(&buf, titles, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobTitles() error = %v", err)
	}
	if !strings.Contains(buf.String(), `| Acme | Eng \| Platform |`) {
		t.Fatalf("markdown = %q", buf.String())
	}
}

func TestWriteSummary(t *testing.T) {
	recent := 4
	summary := models.Summary{TotalJobs: 2, TotalWebsites: 2, ActiveWebsites: 1, WebsitesWithErrors: 1, ScannedWebsites: 1, RecentJobs: &recent, Fallbacks: []string{"stats"}}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, summary, FormatTable); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"total_jobs", "recent_jobs", "unavailable: stats"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "scan_results") {
		t.Fatalf("summary shows absent scan_results:\n%s", out)
	}

	buf.Reset()
	if err := WriteSummary(&buf, summary, FormatJSON); err != nil {
		t.Fatalf("WriteSummary() json error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("summary json invalid: %v", err)
	}
	if decoded["total_jobs"] != float64(2) {
		t.Fatalf("total_jobs = %v, want 2", decoded["total_jobs"])
	}
}

func TestParseFormat(t *testing.T) {
	if got, _ := ParseFormat("Markdown"); got != FormatMarkdown {
		t.Fatalf("ParseFormat(Markdown) = %q", got)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("ParseFormat(xml) error = nil")
	}
}

func TestShortURLLabel(t *testing.T) {
	if got := shortURLLabel("https://www.acme.test/careers/"); got != "acme.test/careers" {
		t.Fatalf("shortURLLabel() = %q", got)
	}
}
