package cmd

import (
	"errors"
	"fmt"

	"github.com/jimezsa/jobflow/internal/prefs"
)

type PreferencesCmd struct {
	Title      string `arg:"" help:"Job title to search for."`
	Experience string `help:"Experience band in years: 0-1, 1-3, 3-5, 5+." enum:"0-1,1-3,3-5,5+" default:"1-3"`
	Location   string `help:"Preferred location."`
	Remote     bool   `help:"Remote-only roles."`
}

func (p *PreferencesCmd) Run(ctx *Context) error {
	form := prefs.Form{
		JobTitle:   p.Title,
		Experience: p.Experience,
		Location:   p.Location,
		RemoteOnly: p.Remote,
	}
	if err := form.Validate(); err != nil {
		return err
	}

	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	cctx, cancel := ctx.Signals()
	defer cancel()

	pref, err := prefs.Submit(cctx, client, form)
	if err != nil {
		ctx.Logger.Debug().Err(err).Msg("submit preferences")
		return errors.New(prefs.ErrorMessage(err))
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, map[string]string{"prefId": pref.ID})
	}
	if _, err := fmt.Fprintln(ctx.Out, pref.ID); err != nil {
		return err
	}
	ctx.UI.Warnf("Next: jobflow jobs %s", pref.ID)
	return nil
}
