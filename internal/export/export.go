// Package export renders console data as table, csv, tsv, json or markdown.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

// ParseFormat maps a --format value to a Format, defaulting to table.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatTSV:
		return FormatTSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q", value)
	}
}

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	// Now anchors relative times; zero means time.Now.
	Now time.Time
}

func (o WriteOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// table is the shared row model behind every non-JSON format.
type table struct {
	header []string
	rows   [][]string
	// plain rows carry raw values for csv/tsv
	plain [][]string
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeDelimited(w io.Writer, t table, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(t.header); err != nil {
		return err
	}
	for _, row := range t.plain {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTabular(w io.Writer, t table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeMarkdownTable(w io.Writer, t table) error {
	if len(t.plain) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	separators := make([]string, len(t.header))
	for i := range separators {
		separators[i] = "---"
	}
	lines := []string{
		"| " + strings.Join(t.header, " | ") + " |",
		"| " + strings.Join(separators, " | ") + " |",
	}
	for _, row := range t.plain {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell, "|", `\|`)
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func render(w io.Writer, t table, format Format) error {
	switch format {
	case FormatCSV:
		return writeDelimited(w, t, ',')
	case FormatTSV:
		return writeDelimited(w, t, '\t')
	case FormatMarkdown:
		return writeMarkdownTable(w, t)
	default:
		return writeTabular(w, t)
	}
}

func safe(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return value
}

func timestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// relative renders t as "3 minutes ago", or fallback when t is unknown.
func relative(t *time.Time, now time.Time, fallback string) string {
	if t == nil || t.IsZero() {
		return fallback
	}
	return humanize.RelTime(*t, now, "ago", "from now")
}

func linkCell(w io.Writer, raw string, opts WriteOptions) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "-"
	}
	display := raw
	if opts.Hyperlinks {
		display = shortURLLabel(raw)
	}
	if opts.ColorEnabled {
		output := termenv.NewOutput(w)
		display = output.String(display).Foreground(output.Color(LinkColor)).String()
	}
	if opts.Hyperlinks {
		display = hyperlink(raw, display)
	}
	return display
}

const LinkColor = "#87CEEB"

func hyperlink(target string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + target + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		if host := strings.TrimPrefix(parsed.Host, "www."); host != "" {
			label = host + strings.TrimRight(parsed.Path, "/")
		}
	}
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
