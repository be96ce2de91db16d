package cmd

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jimezsa/jobscan/internal/config"
	"github.com/jimezsa/jobscan/internal/gateway"
	"github.com/jimezsa/jobscan/internal/network"
	"github.com/jimezsa/jobscan/internal/ui"
	"github.com/jimezsa/jobscan/internal/view"
	"github.com/rs/zerolog"
)

var errNoGateway = errors.New("API client is not configured")

type Context struct {
	Ctx        context.Context
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Yes        bool
	Version    string
	ColorMode  ui.ColorMode

	// Gateway is nil when the configured endpoints are unusable; GatewayErr
	// then says why.
	Gateway    *gateway.Gateway
	GatewayErr error
	Endpoints  *network.Endpoints
	// Doer fetches pages outside the API, for previews.
	Doer network.Doer
}

func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) API() (*gateway.Gateway, error) {
	if c.Gateway != nil {
		return c.Gateway, nil
	}
	if c.GatewayErr != nil {
		return nil, c.GatewayErr
	}
	return nil, errNoGateway
}

func (c *Context) confirmer() view.Confirmer {
	if c.Yes {
		return view.AlwaysConfirm
	}
	if c.UI == nil {
		return func(string) (bool, error) { return false, ui.ErrNoInput }
	}
	return c.UI.Confirm
}

func (c *Context) viewOptions() view.Options {
	return view.Options{
		PollInterval: c.Config.PollInterval(),
		Confirm:      c.confirmer(),
		Logger:       c.Logger,
	}
}

// openWebsites opens the websites view, waits for the first scan status and
// loads the list. The caller must Close the view.
func (c *Context) openWebsites() (*view.Websites, error) {
	api, err := c.API()
	if err != nil {
		return nil, err
	}
	ctx := c.Context()
	v, err := view.OpenWebsites(ctx, api, c.viewOptions())
	if err != nil {
		return nil, err
	}
	if err := c.settle(v.WaitReady); err != nil {
		v.Close()
		return nil, err
	}
	if err := v.Refresh(ctx); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

func (c *Context) openJobs() (*view.Jobs, error) {
	api, err := c.API()
	if err != nil {
		return nil, err
	}
	ctx := c.Context()
	v, err := view.OpenJobs(ctx, api, c.viewOptions())
	if err != nil {
		return nil, err
	}
	if err := c.settle(v.WaitReady); err != nil {
		v.Close()
		return nil, err
	}
	if err := v.Refresh(ctx); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

// settle waits for the first scan status, bounded by the request timeout.
func (c *Context) settle(wait func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(c.Context(), c.Config.Timeout()+time.Second)
	defer cancel()
	return wait(ctx)
}
