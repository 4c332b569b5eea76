package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/content"
	"github.com/jimezsa/jobflow/internal/web"
)

type ServeCmd struct {
	Addr    string `help:"Listen address (default from config)."`
	Content string `help:"Landing page content YAML (default: built-in)."`
}

func (s *ServeCmd) Run(ctx *Context) error {
	logger := ctx.Logger.With().Str("component", "web").Logger()

	// Browser sessions carry their own token cookie; the file credential
	// is only a fallback for the CLI.
	client, err := ctx.APIClient(api.WithUnauthorizedHandler(func() {
		logger.Debug().Msg("backend rejected session token")
	}))
	if err != nil {
		return err
	}

	landing, err := content.Load(firstNonEmpty(s.Content, ctx.Config.ContentFile))
	if err != nil {
		return err
	}

	if !ctx.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := web.New(web.Options{
		Backend: func(store api.CredentialStore) web.Backend {
			return client.WithCredentials(store)
		},
		Landing:  landing,
		PageSize: ctx.Config.PageSize,
		LoginURL: ctx.Config.LoginURL,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	addr := firstNonEmpty(s.Addr, ctx.Config.ListenAddr)
	runCtx, cancel := ctx.Signals()
	defer cancel()

	ctx.UI.Infof("Serving JobFlow on %s (backend %s)", addr, client.BaseURL())
	return srv.Run(runCtx, addr)
}
