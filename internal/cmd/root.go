package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`
	Yes     bool   `short:"y" help:"Answer yes to confirmation prompts."`
	APIURL  string `name:"api-url" help:"Scraper API base URL (overrides config)."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version   VersionCmd   `cmd:"" help:"Print version."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Websites  WebsitesCmd  `cmd:"" help:"Manage scrape target websites."`
	Jobs      JobsCmd      `cmd:"" help:"Browse scraped job titles."`
	Stats     StatsCmd     `cmd:"" help:"Show the aggregated statistics summary."`
	Scan      ScanCmd      `cmd:"" help:"Inspect or trigger scans."`
	Settings  SettingsCmd  `cmd:"" help:"View and edit general scraper settings."`
	Endpoints EndpointsCmd `cmd:"" help:"API endpoint utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
