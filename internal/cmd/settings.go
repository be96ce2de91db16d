package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimezsa/jobscan/internal/gate"
	"github.com/jimezsa/jobscan/internal/models"
	"github.com/jimezsa/jobscan/internal/settings"
	"github.com/jimezsa/jobscan/internal/view"
)

type SettingsCmd struct {
	Show          SettingsShowCmd          `cmd:"" default:"1" help:"Show keywords and scan interval."`
	Set           SettingsSetCmd           `cmd:"" help:"Replace keywords and/or the scan interval."`
	AddKeyword    SettingsAddKeywordCmd    `cmd:"" name:"add-keyword" help:"Add keywords."`
	RemoveKeyword SettingsRemoveKeywordCmd `cmd:"" name:"remove-keyword" help:"Remove keywords."`
	Reset         SettingsResetCmd         `cmd:"" help:"Save the default keywords and interval."`
	Apply         SettingsApplyCmd         `cmd:"" help:"Apply settings and websites from a YAML file."`
}

type settingsView struct {
	Keywords []string `json:"keywords"`
	Interval int      `json:"interval"`
	Saved    bool     `json:"saved"`
}

// loadSettings returns the stored settings, or the defaults with saved=false
// when the backend has none or cannot be reached.
func loadSettings(ctx *Context) (models.GeneralSettings, bool, error) {
	api, err := ctx.API()
	if err != nil {
		return models.GeneralSettings{}, false, err
	}
	stored, fetchErr := api.GeneralSettings(ctx.Context())
	if fetchErr != nil {
		ctx.Logger.Warn().Err(fetchErr).Msg("failed to load general settings")
	}
	current, saved := settings.Resolve(stored, fetchErr)
	return current, saved, nil
}

func saveSettings(ctx *Context, keywords []string, interval int) (models.GeneralSettings, error) {
	if err := settings.ValidateInterval(interval); err != nil {
		return models.GeneralSettings{}, err
	}
	api, err := ctx.API()
	if err != nil {
		return models.GeneralSettings{}, err
	}
	saved, err := api.UpdateGeneralSettings(ctx.Context(), settings.NormalizeKeywords(keywords), interval)
	if err != nil {
		return saved, fmt.Errorf("save settings: %w", err)
	}
	return saved, nil
}

func printSettings(ctx *Context, current models.GeneralSettings, saved bool) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, settingsView{Keywords: current.Keywords, Interval: current.Interval, Saved: saved})
	}
	if ctx.PlainText {
		_, err := fmt.Fprintf(ctx.Out, "interval\t%d\nkeywords\t%s\n", current.Interval, strings.Join(current.Keywords, ";"))
		return err
	}
	suffix := ""
	if !saved {
		suffix = " (defaults, not saved)"
	}
	fmt.Fprintf(ctx.Out, "interval: every %d minute(s)%s\n", current.Interval, suffix)
	fmt.Fprintf(ctx.Out, "keywords (%d):\n", len(current.Keywords))
	for _, keyword := range current.Keywords {
		fmt.Fprintf(ctx.Out, "  - %s\n", keyword)
	}
	return nil
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	current, saved, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	return printSettings(ctx, current, saved)
}

type SettingsSetCmd struct {
	Interval int    `help:"Scan interval in minutes (1-59)."`
	Keywords string `help:"Comma-separated keywords; replaces the current list."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if c.Interval == 0 && c.Keywords == "" {
		return errors.New("nothing to change; pass --interval or --keywords")
	}
	current, _, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	interval := current.Interval
	if c.Interval != 0 {
		interval = c.Interval
	}
	keywords := current.Keywords
	if c.Keywords != "" {
		keywords = strings.Split(c.Keywords, ",")
	}

	saved, err := saveSettings(ctx, keywords, interval)
	if err != nil {
		return err
	}
	ctx.UI.Successf("Settings saved.")
	return printSettings(ctx, saved, true)
}

type SettingsAddKeywordCmd struct {
	Keywords []string `arg:"" name:"keyword" help:"Keywords to add."`
}

func (c *SettingsAddKeywordCmd) Run(ctx *Context) error {
	current, _, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	keywords := current.Keywords
	for _, keyword := range c.Keywords {
		var added bool
		keywords, added, err = settings.AddKeyword(keywords, keyword)
		if err != nil {
			return err
		}
		if !added {
			ctx.UI.Warnf("%q is already a keyword.", settings.NormalizeKeyword(keyword))
		}
	}

	saved, err := saveSettings(ctx, keywords, current.Interval)
	if err != nil {
		return err
	}
	ctx.UI.Successf("Settings saved.")
	return printSettings(ctx, saved, true)
}

type SettingsRemoveKeywordCmd struct {
	Keywords []string `arg:"" name:"keyword" help:"Keywords to remove."`
}

func (c *SettingsRemoveKeywordCmd) Run(ctx *Context) error {
	current, _, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	keywords := current.Keywords
	for _, keyword := range c.Keywords {
		var removed bool
		keywords, removed = settings.RemoveKeyword(keywords, keyword)
		if !removed {
			ctx.UI.Warnf("%q is not a keyword.", settings.NormalizeKeyword(keyword))
		}
	}

	saved, err := saveSettings(ctx, keywords, current.Interval)
	if err != nil {
		return err
	}
	ctx.UI.Successf("Settings saved.")
	return printSettings(ctx, saved, true)
}

type SettingsResetCmd struct{}

func (c *SettingsResetCmd) Run(ctx *Context) error {
	ok, err := ctx.confirmer()("Replace keywords and interval with the defaults?")
	if err != nil {
		return err
	}
	if !ok {
		ctx.UI.Infof("Settings left unchanged.")
		return nil
	}
	defaults := settings.Defaults()
	saved, err := saveSettings(ctx, defaults.Keywords, defaults.Interval)
	if err != nil {
		return err
	}
	ctx.UI.Successf("Settings reset to defaults.")
	return printSettings(ctx, saved, true)
}

type SettingsApplyCmd struct {
	File   string `name:"file" short:"f" required:"" type:"existingfile" help:"YAML file with interval, keywords and websites."`
	DryRun bool   `name:"dry-run" help:"Print what would change without sending anything."`
}

func (c *SettingsApplyCmd) Run(ctx *Context) error {
	file, err := settings.LoadFile(c.File)
	if err != nil {
		return err
	}

	current, _, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	interval := current.Interval
	if file.Interval != 0 {
		interval = file.Interval
	}
	keywords := current.Keywords
	if file.Keywords != nil {
		keywords = file.Keywords
	}

	var websites *view.Websites
	var changes []settings.Change
	if len(file.Websites) > 0 {
		websites, err = ctx.openWebsites()
		if err != nil {
			return err
		}
		defer websites.Close()
		changes = settings.Plan(websites.All(), file.Websites)
	}

	if c.DryRun {
		fmt.Fprintf(ctx.Out, "settings: interval=%d keywords=%s\n", interval, strings.Join(keywords, ", "))
		for _, change := range changes {
			fmt.Fprintf(ctx.Out, "website: %s %s\n", change.Action, change.Name)
		}
		return nil
	}

	if _, err := saveSettings(ctx, keywords, interval); err != nil {
		return err
	}
	ctx.UI.Successf("Settings saved.")

	var failed int
	for _, change := range changes {
		switch change.Action {
		case gate.Create:
			err = websites.Create(ctx.Context(), change.Input)
		default:
			err = websites.Update(ctx.Context(), change.ID, change.Input)
		}
		if err != nil {
			failed++
			ctx.UI.Errorf("%s %s: %v", change.Action, change.Name, err)
			continue
		}
		ctx.UI.Successf("%s %s", change.Action, change.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d website changes failed", failed, len(changes))
	}
	return nil
}
