package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/jobscan/internal/cmd"
	"github.com/jimezsa/jobscan/internal/config"
	"github.com/rs/zerolog"
)

func TestNewLoggerWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobscan.log")
	var stderr bytes.Buffer

	logger, closer := newLogger(config.Config{LogFile: path}, false, &stderr)
	if closer == nil {
		t.Fatal("newLogger() closer = nil, want file closer")
	}
	logger.Info().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"message":"hello"`) {
		t.Fatalf("log file = %q", data)
	}
	if stderr.Len() != 0 {
		t.Fatalf("stderr = %q, want empty without --verbose", stderr.String())
	}
}

func TestNewLoggerDefaultsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer := newLogger(config.Config{}, true, &stderr)
	if closer != nil {
		t.Fatal("newLogger() closer != nil without log_file")
	}
	logger.Debug().Msg("debugging")
	if !strings.Contains(stderr.String(), "debugging") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestWireAPIRejectsBadEndpoint(t *testing.T) {
	runCtx := &cmd.Context{}
	cfg := config.Config{APIURL: "not a url", TimeoutSeconds: 1}

	wireAPI(runCtx, cfg, newNopLogger(), "test")

	if runCtx.Gateway != nil {
		t.Fatal("Gateway != nil for invalid endpoint")
	}
	if _, err := runCtx.API(); err == nil {
		t.Fatal("API() error = nil, want endpoint error")
	}
}

func TestApplyEnvDefaults(t *testing.T) {
	t.Setenv("JOBSCAN_JSON", "yes")
	t.Setenv("JOBSCAN_YES", "1")
	t.Setenv("JOBSCAN_VERBOSE", "")
	t.Setenv("JOBSCAN_COLOR", "never")

	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	if !cli.JSON || !cli.Yes || cli.Verbose || cli.Color != "never" {
		t.Fatalf("applyEnvDefaults() = %+v", cli)
	}
}

func newNopLogger() zerolog.Logger { return zerolog.Nop() }
