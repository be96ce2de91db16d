package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/jobscan/internal/gateway"
)

type EndpointsCmd struct {
	Check EndpointsCheckCmd `cmd:"" help:"Probe each configured API endpoint."`
}

type EndpointsCheckCmd struct {
	Timeout int `help:"Timeout in seconds." default:"5"`
}

func (c *EndpointsCheckCmd) Run(ctx *Context) error {
	api, err := ctx.API()
	if err != nil {
		return err
	}

	endpoints := api.Endpoints()
	results := make([]gateway.ProbeResult, 0, len(endpoints))
	for _, endpoint := range endpoints {
		results = append(results, api.Probe(ctx.Context(), endpoint, time.Duration(c.Timeout)*time.Second))
	}

	if err := writeProbeResults(ctx, results); err != nil {
		return err
	}
	for _, result := range results {
		if result.Healthy() {
			return nil
		}
	}
	return fmt.Errorf("no healthy endpoint among %d", len(results))
}

func writeProbeResults(ctx *Context, results []gateway.ProbeResult) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Endpoint, statusText(res), fmt.Sprintf("%d", res.Latency.Milliseconds()), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "endpoint\tstatus\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Endpoint, statusText(res), res.Latency.Milliseconds(), res.Error)
	}
	return tw.Flush()
}

func statusText(res gateway.ProbeResult) string {
	if res.Error != "" {
		return "error"
	}
	return fmt.Sprintf("%d", res.Status)
}
