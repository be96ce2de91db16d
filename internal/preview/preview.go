// Package preview fetches a registered website's page and shows which of its
// links and headings match the website's keywords. It never writes to the
// backend.
package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobscan/internal/models"
	"github.com/jimezsa/jobscan/internal/network"
	"github.com/rs/zerolog"
)

// Source says where on the page a candidate came from.
type Source string

const (
	SourceJSONLD  Source = "jsonld"
	SourceHeading Source = "heading"
	SourceLink    Source = "link"
)

type Candidate struct {
	Text   string `json:"text"`
	URL    string `json:"url,omitempty"`
	Source Source `json:"source"`
}

type Hit struct {
	Candidate
	Keywords []string `json:"keywords"`
}

type Result struct {
	Website    string   `json:"website"`
	URL        string   `json:"url"`
	Keywords   []string `json:"keywords"`
	Candidates int      `json:"candidates"`
	Hits       []Hit    `json:"hits"`
}

type Previewer struct {
	doer   network.Doer
	logger zerolog.Logger
}

func New(doer network.Doer, logger zerolog.Logger) *Previewer {
	return &Previewer{doer: doer, logger: logger}
}

// Preview fetches site.URL and matches its candidates against the site's
// keywords, or against fallback when the site has none.
func (p *Previewer) Preview(ctx context.Context, site models.Website, fallback []string) (Result, error) {
	keywords := site.Keywords
	if len(keywords) == 0 {
		keywords = fallback
	}
	result := Result{Website: site.Name, URL: site.URL, Keywords: keywords, Hits: []Hit{}}

	doc, err := p.fetch(ctx, site.URL)
	if err != nil {
		return result, fmt.Errorf("preview %s: %w", site.URL, err)
	}

	candidates := Extract(doc, site.URL)
	result.Candidates = len(candidates)
	result.Hits = Match(candidates, keywords)
	p.logger.Debug().
		Str("url", site.URL).
		Int("candidates", len(candidates)).
		Int("hits", len(result.Hits)).
		Msg("preview")
	return result, nil
}

func (p *Previewer) fetch(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("accept-language", "en-US,en;q=0.9")

	resp, err := p.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// Match returns the candidates containing at least one keyword, compared
// case-insensitively, with the keywords each one matched.
func Match(candidates []Candidate, keywords []string) []Hit {
	hits := []Hit{}
	for _, candidate := range candidates {
		text := strings.ToLower(candidate.Text)
		var matched []string
		for _, keyword := range keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword != "" && strings.Contains(text, keyword) {
				matched = append(matched, keyword)
			}
		}
		if len(matched) > 0 {
			hits = append(hits, Hit{Candidate: candidate, Keywords: matched})
		}
	}
	return hits
}
