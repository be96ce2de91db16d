package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimezsa/jobscan/internal/export"
	"github.com/jimezsa/jobscan/internal/filter"
	"github.com/jimezsa/jobscan/internal/gate"
	"github.com/jimezsa/jobscan/internal/models"
	"github.com/jimezsa/jobscan/internal/preview"
	"github.com/jimezsa/jobscan/internal/settings"
	"github.com/jimezsa/jobscan/internal/view"
)

type WebsitesCmd struct {
	List        WebsitesListCmd        `cmd:"" default:"withargs" help:"List websites."`
	Show        WebsitesShowCmd        `cmd:"" help:"Show one website."`
	Add         WebsitesAddCmd         `cmd:"" help:"Register a website."`
	Edit        WebsitesEditCmd        `cmd:"" help:"Edit a website."`
	Toggle      WebsitesToggleCmd      `cmd:"" help:"Flip a website between active and inactive."`
	Delete      WebsitesDeleteCmd      `cmd:"" help:"Delete a website."`
	ClearErrors WebsitesClearErrorsCmd `cmd:"" name:"clear-errors" help:"Clear a website's last error."`
	Watch       WebsitesWatchCmd       `cmd:"" help:"Keep the list on screen, redrawn when the scan state changes."`
	Preview     WebsitesPreviewCmd     `cmd:"" help:"Fetch a website and show which entries match its keywords."`
}

type WebsiteFilterFlags struct {
	Search string `help:"Match name or URL (case-insensitive)."`
	Status string `help:"Filter by status: all, active, inactive." enum:"all,active,inactive" default:"all"`
}

func (f WebsiteFilterFlags) criteria() (filter.WebsiteCriteria, error) {
	active, err := filter.ParseTristate(f.Status)
	if err != nil {
		return filter.WebsiteCriteria{}, err
	}
	return filter.WebsiteCriteria{Search: strings.TrimSpace(f.Search), Active: active}, nil
}

type WebsitesListCmd struct {
	WebsiteFilterFlags
	OutputOptions
}

func (c *WebsitesListCmd) Run(ctx *Context) error {
	criteria, err := c.criteria()
	if err != nil {
		return err
	}
	v, err := ctx.openWebsites()
	if err != nil {
		return err
	}
	defer v.Close()

	v.SetCriteria(criteria)
	return c.write(ctx, v)
}

func (c *WebsitesListCmd) write(ctx *Context, v *view.Websites) error {
	format, err := c.resolveFormat(ctx)
	if err != nil {
		return err
	}
	w, closeOut, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer closeOut()

	if v.HasErrors() && format != export.FormatJSON {
		ctx.UI.Warnf("Some websites have scanning errors; see the last_error column.")
	}
	return export.WriteWebsites(w, v.View(), format, c.writeOptions(ctx, w))
}

type WebsitesShowCmd struct {
	ID string `arg:"" help:"Website id."`
}

func (c *WebsitesShowCmd) Run(ctx *Context) error {
	api, err := ctx.API()
	if err != nil {
		return err
	}
	site, err := api.GetWebsite(ctx.Context(), c.ID)
	if err != nil {
		return err
	}
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, site)
	}
	return export.WriteWebsiteDetail(ctx.Out, site, export.WriteOptions{ColorEnabled: ctx.UI.ColorEnabled})
}

type WebsiteFields struct {
	Name    string   `help:"Display name."`
	URL     string   `name:"url" help:"Page to scrape."`
	Keyword []string `name:"keyword" short:"k" help:"Keyword to look for (repeatable)."`
}

type WebsitesAddCmd struct {
	WebsiteFields
	Inactive bool `help:"Register the website as inactive."`
}

func (c *WebsitesAddCmd) Run(ctx *Context) error {
	name, url := strings.TrimSpace(c.Name), strings.TrimSpace(c.URL)
	if name == "" || url == "" {
		return errors.New("--name and --url are required")
	}
	active := !c.Inactive
	in := models.WebsiteInput{
		Name:     &name,
		URL:      &url,
		IsActive: &active,
		Keywords: settings.NormalizeKeywords(c.Keyword),
	}

	v, err := ctx.openWebsites()
	if err != nil {
		return err
	}
	defer v.Close()

	if err := v.Create(ctx.Context(), in); err != nil {
		return err
	}
	ctx.UI.Successf("Added %s.", name)
	return nil
}

type WebsitesEditCmd struct {
	ID string `arg:"" help:"Website id."`
	WebsiteFields
	Status string `help:"Set status: active or inactive." enum:",active,inactive" default:""`
}

func (c *WebsitesEditCmd) Run(ctx *Context) error {
	var in models.WebsiteInput
	changed := false
	if name := strings.TrimSpace(c.Name); name != "" {
		in.Name = &name
		changed = true
	}
	if url := strings.TrimSpace(c.URL); url != "" {
		in.URL = &url
		changed = true
	}
	if len(c.Keyword) > 0 {
		in.Keywords = settings.NormalizeKeywords(c.Keyword)
		changed = true
	}
	if c.Status != "" {
		active := c.Status == "active"
		in.IsActive = &active
		changed = true
	}
	if !changed {
		return errors.New("nothing to change; pass --name, --url, --keyword or --status")
	}

	v, err := ctx.openWebsites()
	if err != nil {
		return err
	}
	defer v.Close()

	if err := v.Update(ctx.Context(), c.ID, in); err != nil {
		return err
	}
	ctx.UI.Successf("Updated %s.", c.ID)
	return nil
}

type WebsitesToggleCmd struct {
	ID string `arg:"" help:"Website id."`
}

func (c *WebsitesToggleCmd) Run(ctx *Context) error {
	v, err := ctx.openWebsites()
	if err != nil {
		return err
	}
	defer v.Close()

	if err := v.Toggle(ctx.Context(), c.ID); err != nil {
		return err
	}
	if site, ok := v.Find(c.ID); ok {
		state := "inactive"
		if site.IsActive {
			state = "active"
		}
		ctx.UI.Successf("%s is now %s.", site.Name, state)
	}
	return nil
}

type WebsitesDeleteCmd struct {
	ID string `arg:"" help:"Website id."`
}

func (c *WebsitesDeleteCmd) Run(ctx *Context) error {
	v, err := ctx.openWebsites()
	if err != nil {
		return err
	}
	defer v.Close()

	err = v.Delete(ctx.Context(), c.ID)
	if errors.Is(err, view.ErrCancelled) {
		ctx.UI.Infof("Nothing deleted.")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.UI.Successf("Deleted %s.", c.ID)
	return nil
}

type WebsitesClearErrorsCmd struct {
	ID string `arg:"" help:"Website id."`
}

func (c *WebsitesClearErrorsCmd) Run(ctx *Context) error {
	v, err := ctx.openWebsites()
	if err != nil {
		return err
	}
	defer v.Close()

	err = v.ClearErrors(ctx.Context(), c.ID)
	if errors.Is(err, view.ErrCancelled) {
		ctx.UI.Infof("Errors left in place.")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.UI.Successf("Cleared errors for %s.", c.ID)
	return nil
}

type WebsitesWatchCmd struct {
	WebsiteFilterFlags
}

func (c *WebsitesWatchCmd) Run(ctx *Context) error {
	criteria, err := c.criteria()
	if err != nil {
		return err
	}
	v, err := ctx.openWebsites()
	if err != nil {
		return err
	}
	defer v.Close()
	// Subscribe before the first draw so a change in between is not lost.
	updates := v.ScanUpdates()
	v.SetCriteria(criteria)

	format := export.FormatTable
	if ctx.PlainText {
		format = export.FormatTSV
	}
	draw := func() error {
		if isTTY(ctx.Out) {
			fmt.Fprint(ctx.Out, "\033[H\033[2J")
		}
		fmt.Fprintln(ctx.Out, capabilityLine(v.Capabilities(), v.IsScanning()))
		return export.WriteWebsites(ctx.Out, v.View(), format, export.WriteOptions{ColorEnabled: ctx.UI.ColorEnabled})
	}
	if err := draw(); err != nil {
		return err
	}

	runCtx := ctx.Context()
	for {
		select {
		case <-runCtx.Done():
			return nil
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			if err := v.Refresh(runCtx); err != nil {
				ctx.UI.Warnf("%v", err)
			}
			if err := draw(); err != nil {
				return err
			}
		}
	}
}

func capabilityLine(caps gate.Capabilities, scanning bool) string {
	if scanning {
		return "scan in progress: edit, delete, clear-errors, toggle and add are disabled"
	}
	if caps.CanEdit {
		return "idle: all actions available"
	}
	return "idle"
}

type WebsitesPreviewCmd struct {
	ID string `arg:"" help:"Website id."`
}

func (c *WebsitesPreviewCmd) Run(ctx *Context) error {
	api, err := ctx.API()
	if err != nil {
		return err
	}
	if ctx.Doer == nil {
		return errors.New("no HTTP client available for previews")
	}
	runCtx := ctx.Context()

	site, err := api.GetWebsite(runCtx, c.ID)
	if err != nil {
		return err
	}
	stored, fetchErr := api.GeneralSettings(runCtx)
	general, _ := settings.Resolve(stored, fetchErr)

	stop := startIndicator(ctx, "Fetching "+site.URL)
	result, err := preview.New(ctx.Doer, ctx.Logger).Preview(runCtx, site, general.Keywords)
	stop()
	if err != nil {
		return err
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, result)
	}
	return export.WritePreview(ctx.Out, result, ctx.PlainText)
}
