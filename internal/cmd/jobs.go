package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jimezsa/jobscan/internal/export"
	"github.com/jimezsa/jobscan/internal/filter"
	"github.com/jimezsa/jobscan/internal/models"
	"github.com/jimezsa/jobscan/internal/seen"
)

type JobsCmd struct {
	List JobsListCmd `cmd:"" default:"withargs" help:"List scraped job titles."`
}

type JobsListCmd struct {
	Search     string `help:"Match any job title (case-insensitive)."`
	Website    string `help:"Only batches from this website id."`
	Status     string `help:"Filter by the owning website's status: all, active, inactive." enum:"all,active,inactive" default:"all"`
	Seen       string `help:"Path to a seen-history JSON file."`
	NewOnly    bool   `help:"Output only titles missing from --seen."`
	SeenUpdate bool   `help:"Merge the new titles into --seen after listing."`
	OutputOptions
}

func (c *JobsListCmd) validate() error {
	hasSeen := strings.TrimSpace(c.Seen) != ""
	if c.NewOnly && !hasSeen {
		return errors.New("--new-only requires --seen")
	}
	if c.SeenUpdate && !hasSeen {
		return errors.New("--seen-update requires --seen")
	}
	if hasSeen && pathsEqual(c.Seen, c.Output) {
		return errors.New("--output path must differ from --seen")
	}
	return nil
}

func (c *JobsListCmd) Run(ctx *Context) error {
	if err := c.validate(); err != nil {
		return err
	}
	active, err := filter.ParseTristate(c.Status)
	if err != nil {
		return err
	}

	v, err := ctx.openJobs()
	if err != nil {
		return err
	}
	defer v.Close()

	v.SetCriteria(filter.JobCriteria{
		Search:    strings.TrimSpace(c.Search),
		Active:    active,
		WebsiteID: strings.TrimSpace(c.Website),
	})
	titles := filter.MatchTitles(models.Flatten(v.View()), c.Search)

	var unseen []models.JobTitle
	if c.Seen != "" {
		history, err := seen.Read(c.Seen)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
		unseen, _ = seen.Diff(titles, history)
	}

	output := titles
	if c.NewOnly {
		output = unseen
	}

	format, err := c.resolveFormat(ctx)
	if err != nil {
		return err
	}
	w, closeOut, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := export.WriteJobTitles(w, output, format, c.writeOptions(ctx, w)); err != nil {
		return err
	}

	if c.SeenUpdate {
		if err := updateSeenHistory(c.Seen, unseen); err != nil {
			return err
		}
	}

	summary := titles
	if c.Seen != "" {
		summary = unseen
	}
	fmt.Fprintln(ctx.Err, formatJobsSummary(summary, c.Seen != ""))
	return nil
}

func updateSeenHistory(path string, titles []models.JobTitle) error {
	history, err := seen.Read(path)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	merged, _ := seen.Merge(history, titles)
	if err := seen.Write(path, merged); err != nil {
		return fmt.Errorf("write --seen: %w", err)
	}
	return nil
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

type websiteCount struct {
	website string
	total   int
}

func countByWebsite(titles []models.JobTitle) []websiteCount {
	totals := make(map[string]int, len(titles))
	for _, job := range titles {
		name := strings.TrimSpace(job.WebsiteName)
		if name == "" {
			name = job.WebsiteID
		}
		if name == "" {
			name = "unknown"
		}
		totals[name]++
	}

	counts := make([]websiteCount, 0, len(totals))
	for website, total := range totals {
		counts = append(counts, websiteCount{website: website, total: total})
	}
	sort.Slice(counts, func(i, j int) bool {
		return strings.ToLower(counts[i].website) < strings.ToLower(counts[j].website)
	})
	return counts
}

func formatJobsSummary(titles []models.JobTitle, unseenOnly bool) string {
	label := "titles"
	if unseenOnly {
		label = "new_titles"
	}
	counts := countByWebsite(titles)
	if len(counts) == 0 {
		return fmt.Sprintf("summary: %s=0 by_website=none", label)
	}
	parts := make([]string, 0, len(counts))
	for _, count := range counts {
		parts = append(parts, fmt.Sprintf("%s:%d", count.website, count.total))
	}
	return fmt.Sprintf("summary: %s=%d by_website=%s", label, len(titles), strings.Join(parts, ", "))
}
