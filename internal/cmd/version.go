package cmd

import "fmt"

type VersionCmd struct{}

type versionInfo struct {
	Version string `json:"version"`
	APIURL  string `json:"api_url"`
}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, versionInfo{Version: ctx.Version, APIURL: ctx.Config.APIURL})
	}
	_, err := fmt.Fprintln(ctx.Out, ctx.Version)
	return err
}
