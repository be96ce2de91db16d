package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jimezsa/jobscan/internal/export"
	"github.com/muesli/termenv"
)

// OutputOptions is embedded by every listing command.
type OutputOptions struct {
	Format string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Output string `name:"output" short:"o" help:"Write output to a file."`
}

func (o OutputOptions) resolveFormat(ctx *Context) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if o.Format != "" {
		return export.ParseFormat(o.Format)
	}
	if o.Output != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatTSV, nil
}

// open returns the writer for command output and a func to release it.
func (o OutputOptions) open(ctx *Context) (io.Writer, func() error, error) {
	if o.Output == "" {
		return ctx.Out, func() error { return nil }, nil
	}
	file, err := os.Create(o.Output)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func (o OutputOptions) writeOptions(ctx *Context, w io.Writer) export.WriteOptions {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled && o.Output == ""
	return export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(w),
	}
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

// startIndicator draws a spinner on stderr while a slow request runs.
func startIndicator(ctx *Context, label string) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil || !isTTY(ctx.Err) {
		return func() {}
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		for index := 0; ; index++ {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				fmt.Fprintf(ctx.Err, "\r\033[2K%s... %ds %s", label, seconds, frames[index%len(frames)])
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
