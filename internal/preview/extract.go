package preview

import (
	"encoding/json"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxCandidateLen = 160

// Extract collects JSON-LD job titles, headings and link texts from doc,
// deduplicated by text and URL. Relative links are resolved against base.
func Extract(doc *goquery.Document, base string) []Candidate {
	var out []Candidate
	seen := map[string]struct{}{}
	add := func(c Candidate) {
		c.Text = cleanText(c.Text)
		if c.Text == "" || len(c.Text) > maxCandidateLen {
			return
		}
		key := strings.ToLower(c.Text) + "|" + c.URL
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}

	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(stripComment(s.Text())), &data); err != nil {
			return
		}
		for _, posting := range jobPostings(data) {
			add(Candidate{
				Text:   stringField(posting, "title", "name"),
				URL:    absoluteURL(base, stringField(posting, "url")),
				Source: SourceJSONLD,
			})
		}
	})

	doc.Find("h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		add(Candidate{Text: s.Text(), Source: SourceHeading})
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}
		add(Candidate{Text: s.Text(), URL: absoluteURL(base, href), Source: SourceLink})
	})

	return out
}

// jobPostings walks a JSON-LD value and returns every JobPosting object,
// looking through arrays, @graph, mainEntity and ItemList elements.
func jobPostings(data any) []map[string]any {
	var out []map[string]any
	switch value := data.(type) {
	case []any:
		for _, item := range value {
			out = append(out, jobPostings(item)...)
		}
	case map[string]any:
		switch strings.ToLower(stringField(value, "@type", "type")) {
		case "jobposting":
			return append(out, value)
		case "itemlist":
			out = append(out, jobPostings(value["itemListElement"])...)
		case "listitem":
			out = append(out, jobPostings(value["item"])...)
		}
		for _, key := range []string{"@graph", "mainEntity"} {
			if nested, ok := value[key]; ok {
				out = append(out, jobPostings(nested)...)
			}
		}
	}
	return out
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func stripComment(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "<!--")
	raw = strings.TrimSuffix(raw, "-->")
	return strings.TrimSpace(raw)
}

func cleanText(value string) string {
	return strings.Join(strings.Fields(html.UnescapeString(value)), " ")
}

func absoluteURL(base string, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
