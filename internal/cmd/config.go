package cmd

import (
	"fmt"
	"strings"

	"github.com/jimezsa/jobscan/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write the default config file."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
	Show ShowConfigCmd `cmd:"" help:"Print the effective configuration."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type ShowConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, ctx.Config)
	}
	cfg := ctx.Config
	lines := []string{
		fmt.Sprintf("endpoints\t%s", strings.Join(cfg.Endpoints(), ", ")),
		fmt.Sprintf("timeout\t%s", cfg.Timeout()),
		fmt.Sprintf("poll_interval\t%s", cfg.PollInterval()),
		fmt.Sprintf("rate_limit\t%g/s", cfg.RateLimit),
	}
	if cfg.LogFile != "" {
		lines = append(lines, fmt.Sprintf("log_file\t%s", cfg.LogFile))
	}
	_, err := fmt.Fprintln(ctx.Out, strings.Join(lines, "\n"))
	return err
}
