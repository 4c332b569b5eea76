package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`
	APIURL  string `name:"api-url" help:"Backend base URL (overrides config)."`
	Proxy   string `help:"Proxy URL for backend requests (overrides config)."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version     VersionCmd     `cmd:"" help:"Print version."`
	Config      ConfigCmd      `cmd:"" help:"Manage configuration."`
	Serve       ServeCmd       `cmd:"" help:"Serve the JobFlow web frontend."`
	Preferences PreferencesCmd `cmd:"" help:"Submit job preferences and print the preference id."`
	Jobs        JobsCmd        `cmd:"" help:"List matching jobs for a preference."`
	Facets      FacetsCmd      `cmd:"" help:"Show job counts per source and posting window."`
	Alerts      AlertsCmd      `cmd:"" help:"Manage job alerts."`
	Token       TokenCmd       `cmd:"" help:"Manage the stored API token."`
}

func NewCLI() *CLI {
	return &CLI{}
}
