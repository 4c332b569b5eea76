package cmd

import (
	"bufio"
	"fmt"
	"strings"
)

type TokenCmd struct {
	Set   SetTokenCmd   `cmd:"" help:"Store the API token used for backend requests."`
	Clear ClearTokenCmd `cmd:"" help:"Remove the stored API token."`
}

type SetTokenCmd struct {
	Token string `arg:"" optional:"" help:"Token value. Read from stdin when omitted."`
}

type ClearTokenCmd struct{}

func (s *SetTokenCmd) Run(ctx *Context) error {
	token := strings.TrimSpace(s.Token)
	if token == "" && ctx.UI != nil && ctx.UI.In != nil {
		line, _ := bufio.NewReader(ctx.UI.In).ReadString('\n')
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("token is required")
	}

	store, err := ctx.CredentialStore()
	if err != nil {
		return err
	}
	if err := store.Save(token); err != nil {
		return err
	}
	ctx.UI.Successf("Token saved to %s", store.Path())
	return nil
}

func (c *ClearTokenCmd) Run(ctx *Context) error {
	store, err := ctx.CredentialStore()
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	ctx.UI.Successf("Token removed.")
	return nil
}
