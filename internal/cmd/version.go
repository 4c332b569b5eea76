package cmd

import "fmt"

type VersionCmd struct{}

// Run prints the build version, as {"version": ...} with --json.
func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, map[string]string{"version": ctx.Version})
	}
	_, err := fmt.Fprintln(ctx.Out, ctx.Version)
	return err
}
