package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/jobscan/internal/cmd"
	"github.com/jimezsa/jobscan/internal/config"
	"github.com/jimezsa/jobscan/internal/gateway"
	"github.com/jimezsa/jobscan/internal/network"
	"github.com/jimezsa/jobscan/internal/ui"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const endpointCoolOff = 30 * time.Second

func main() {
	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("jobscan"),
		kong.Description("Operator console for the job scraper service."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fallbackUI := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("JOBSCAN_COLOR")), false)
		fallbackUI.Errorf("%v", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if strings.TrimSpace(cli.APIURL) != "" {
		cfg.APIURL = cli.APIURL
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	colorMode := ui.NormalizeColorMode(cli.Color)
	disableColor := cli.JSON || cli.Plain
	userInterface := ui.New(os.Stdout, os.Stderr, colorMode, disableColor)

	logger, logCloser := newLogger(cfg, cli.Verbose, os.Stderr)
	if logCloser != nil {
		defer logCloser.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runCtx := &cmd.Context{
		Ctx:        ctx,
		Out:        os.Stdout,
		Err:        os.Stderr,
		UI:         userInterface,
		Config:     cfg,
		ConfigDir:  configDir,
		Logger:     logger,
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		PlainText:  cli.Plain,
		Yes:        cli.Yes,
		Version:    versionString,
		ColorMode:  colorMode,
	}
	wireAPI(runCtx, cfg, logger, versionString)

	if err := kctx.Run(runCtx); err != nil {
		userInterface.Errorf("%v", err)
		stop()
		if logCloser != nil {
			logCloser.Close()
		}
		os.Exit(1)
	}
}

// wireAPI builds the transport and gateway. A bad endpoint list is kept as
// GatewayErr so commands that never touch the API still run.
func wireAPI(runCtx *cmd.Context, cfg config.Config, logger zerolog.Logger, versionString string) {
	client, err := network.NewClient(cfg.Timeout(), "jobscan/"+versionString)
	if err != nil {
		runCtx.GatewayErr = fmt.Errorf("http client: %w", err)
		return
	}
	runCtx.Doer = client

	endpoints, err := network.NewEndpoints(cfg.Endpoints(), endpointCoolOff)
	if err != nil {
		runCtx.GatewayErr = fmt.Errorf("api endpoints: %w", err)
		return
	}
	runCtx.Endpoints = endpoints
	runCtx.Gateway = gateway.New(client, endpoints, logger, gateway.WithRateLimit(cfg.RateLimit))
}

// newLogger writes to stderr, or to a rotating file when log_file is set.
// With --verbose a file logger also mirrors to stderr.
func newLogger(cfg config.Config, verbose bool, stderr io.Writer) (zerolog.Logger, io.Closer) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var (
		out    io.Writer = stderr
		closer io.Closer
	)
	if path := strings.TrimSpace(cfg.LogFile); path != "" {
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    positiveOr(cfg.LogMaxSizeMB, 10),
			MaxBackups: positiveOr(cfg.LogMaxBackups, 3),
		}
		out, closer = rotating, rotating
		if verbose {
			out = io.MultiWriter(stderr, rotating)
		}
	}

	return zerolog.New(out).With().Timestamp().Logger(), closer
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func applyEnvDefaults(cli *cmd.CLI) {
	if envBool("JOBSCAN_JSON") {
		cli.JSON = true
	}
	if envBool("JOBSCAN_VERBOSE") {
		cli.Verbose = true
	}
	if envBool("JOBSCAN_YES") {
		cli.Yes = true
	}
	if value := os.Getenv("JOBSCAN_COLOR"); value != "" {
		cli.Color = value
	}
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
