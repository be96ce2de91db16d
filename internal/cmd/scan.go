package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jimezsa/jobscan/internal/export"
	"github.com/jimezsa/jobscan/internal/scanstatus"
)

type ScanCmd struct {
	Status ScanStatusCmd `cmd:"" default:"1" help:"Print whether a scan is running."`
	Watch  ScanWatchCmd  `cmd:"" help:"Print a line each time the scan state changes."`
	Run    ScanRunCmd    `cmd:"" help:"Scan all active websites now, then print the refreshed summary."`
}

type ScanStatusCmd struct{}

func (c *ScanStatusCmd) Run(ctx *Context) error {
	api, err := ctx.API()
	if err != nil {
		return err
	}
	status, err := api.ScanStatus(ctx.Context())
	if err != nil {
		return err
	}
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, status)
	}
	_, err = fmt.Fprintln(ctx.Out, scanLabel(status.IsScanning))
	return err
}

type ScanWatchCmd struct {
	UntilIdle bool `name:"until-idle" help:"Exit once no scan is running."`
}

func (c *ScanWatchCmd) Run(ctx *Context) error {
	api, err := ctx.API()
	if err != nil {
		return err
	}
	runCtx := ctx.Context()

	poller := scanstatus.New(api, ctx.Logger, scanstatus.WithInterval(ctx.Config.PollInterval()))
	updates := poller.Subscribe()
	if err := poller.Start(runCtx); err != nil {
		return err
	}
	defer poller.Stop()

	if err := ctx.settle(func(waitCtx context.Context) error {
		select {
		case <-poller.Ready():
			return nil
		case <-waitCtx.Done():
			return waitCtx.Err()
		}
	}); err != nil {
		return err
	}

	report := func(scanning bool) {
		if ctx.JSONOutput {
			_ = writeJSON(ctx.Out, map[string]any{"time": time.Now().UTC(), "isScanning": scanning})
			return
		}
		fmt.Fprintf(ctx.Out, "%s  %s\n", time.Now().Format("15:04:05"), scanLabel(scanning))
	}

	current := poller.IsScanning()
	report(current)
	if c.UntilIdle && !current {
		return nil
	}
	// The first change may already be queued; drop it if it repeats what
	// was just reported.
	for {
		select {
		case <-runCtx.Done():
			return nil
		case scanning, ok := <-updates:
			if !ok {
				return nil
			}
			if scanning == current {
				continue
			}
			current = scanning
			report(scanning)
			if c.UntilIdle && !scanning {
				return nil
			}
		}
	}
}

type ScanRunCmd struct {
	OutputOptions
}

func (c *ScanRunCmd) Run(ctx *Context) error {
	v, err := ctx.openJobs()
	if err != nil {
		return err
	}
	defer v.Close()

	stop := startIndicator(ctx, "Scanning")
	result, err := v.Scan(ctx.Context())
	stop()
	if err != nil {
		return err
	}
	if result.Error != "" {
		ctx.UI.Warnf("%s", result.Error)
	} else if result.Message != "" {
		ctx.UI.Successf("%s", result.Message)
	}

	summary, err := aggregate(ctx)
	if err != nil {
		return err
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
	return export.WriteSummary(w, summary, format)
}

func scanLabel(scanning bool) string {
	if scanning {
		return "scanning"
	}
	return "idle"
}
