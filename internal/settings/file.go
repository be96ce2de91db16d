package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/jobscan/internal/gate"
	"github.com/jimezsa/jobscan/internal/models"
	"gopkg.in/yaml.v3"
)

// File is the declarative form read by `settings apply -f`.
//
//	interval: 15
//	keywords: [intern, junior]
//	websites:
//	  - name: Acme
//	    url: https://acme.example/careers
//	    keywords: [golang]
type File struct {
	Interval int           `yaml:"interval"`
	Keywords []string      `yaml:"keywords"`
	Websites []WebsiteEntry `yaml:"websites"`
}

type WebsiteEntry struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Active   *bool    `yaml:"active"`
	Keywords []string `yaml:"keywords"`
}

func LoadFile(path string) (File, error) {
	var file File
	data, err := os.ReadFile(path)
	if err != nil {
		return file, err
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := file.Validate(); err != nil {
		return file, fmt.Errorf("%s: %w", path, err)
	}
	file.Keywords = NormalizeKeywords(file.Keywords)
	for i := range file.Websites {
		file.Websites[i].Keywords = NormalizeKeywords(file.Websites[i].Keywords)
	}
	return file, nil
}

// Validate checks presence only. An interval of zero means "leave as is".
func (f File) Validate() error {
	if f.Interval != 0 {
		if err := ValidateInterval(f.Interval); err != nil {
			return err
		}
	}
	for i, site := range f.Websites {
		if strings.TrimSpace(site.Name) == "" || strings.TrimSpace(site.URL) == "" {
			return fmt.Errorf("websites[%d]: name and url are required", i)
		}
	}
	return nil
}

// Change is one website mutation needed to reach the file's state.
type Change struct {
	Action gate.Action
	ID     string
	Name   string
	Input  models.WebsiteInput
}

// Plan matches entries to existing websites by URL and returns the creates and
// edits needed. Websites absent from the file are left alone.
func Plan(existing []models.Website, entries []WebsiteEntry) []Change {
	byURL := make(map[string]models.Website, len(existing))
	for _, site := range existing {
		byURL[urlKey(site.URL)] = site
	}

	var changes []Change
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		url := strings.TrimSpace(entry.URL)

		site, ok := byURL[urlKey(url)]
		if !ok {
			in := models.WebsiteInput{Name: &name, URL: &url, Keywords: entry.Keywords}
			if entry.Active != nil {
				active := *entry.Active
				in.IsActive = &active
			}
			changes = append(changes, Change{Action: gate.Create, Name: name, Input: in})
			continue
		}

		var in models.WebsiteInput
		dirty := false
		if site.Name != name {
			in.Name = &name
			dirty = true
		}
		if entry.Active != nil && *entry.Active != site.IsActive {
			active := *entry.Active
			in.IsActive = &active
			dirty = true
		}
		if entry.Keywords != nil && !sameKeywords(site.Keywords, entry.Keywords) {
			in.Keywords = entry.Keywords
			dirty = true
		}
		if dirty {
			changes = append(changes, Change{Action: gate.Edit, ID: site.ID, Name: name, Input: in})
		}
	}
	return changes
}

func urlKey(raw string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(raw), "/"))
}

func sameKeywords(a, b []string) bool {
	a, b = NormalizeKeywords(a), NormalizeKeywords(b)
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, k := range a {
		set[k] = struct{}{}
	}
	for _, k := range b {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}
