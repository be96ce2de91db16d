package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobscan/internal/preview"
)

// WritePreview lists the matching entries of a website preview. plain
// switches to bare TSV rows without the header line.
func WritePreview(w io.Writer, result preview.Result, plain bool) error {
	if plain {
		for _, hit := range result.Hits {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", hit.Source, hit.Text, hit.URL, strings.Join(hit.Keywords, ";"))
		}
		return nil
	}

	fmt.Fprintf(w, "%s (%s)\n", safe(result.Website), result.URL)
	fmt.Fprintf(w, "keywords: %s\n", strings.Join(result.Keywords, ", "))
	fmt.Fprintf(w, "%d of %d entries match\n\n", len(result.Hits), result.Candidates)
	if len(result.Hits) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "source\ttext\tmatched\turl")
	for _, hit := range result.Hits {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", hit.Source, hit.Text, strings.Join(hit.Keywords, ", "), safe(hit.URL))
	}
	return tw.Flush()
}
