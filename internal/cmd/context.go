package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/config"
	"github.com/jimezsa/jobflow/internal/credential"
	"github.com/jimezsa/jobflow/internal/network"
	"github.com/jimezsa/jobflow/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
	APIURL     string
	Proxy      string

	// NewDoer overrides the transport in tests.
	NewDoer func(network.Options) (api.Doer, error)
}

// Signals returns a context cancelled on interrupt or SIGTERM.
func (c *Context) Signals() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (c *Context) CredentialStore() (*credential.FileStore, error) {
	path, err := c.Config.CredentialPath()
	if err != nil {
		return nil, err
	}
	return credential.NewFileStore(path), nil
}

// APIClient builds a backend client from config and global flags. The
// stored token is sent on every call; a 401 clears it and prints a hint.
// Extra options are applied last.
func (c *Context) APIClient(extra ...api.Option) (*api.Client, error) {
	store, err := c.CredentialStore()
	if err != nil {
		return nil, err
	}

	netOpts := network.Options{
		Timeout: c.Config.Timeout(),
		Proxy:   config.ResolveProxy(c.Proxy, c.Config),
	}
	var doer api.Doer
	if c.NewDoer != nil {
		doer, err = c.NewDoer(netOpts)
	} else {
		doer, err = network.NewClient(netOpts)
	}
	if err != nil {
		return nil, err
	}

	opts := []api.Option{
		api.WithCredentials(store),
		api.WithLogger(c.Logger),
		api.WithUnauthorizedHandler(func() {
			if c.UI != nil {
				c.UI.Warnf("Stored token was rejected and has been removed. Run `jobflow token set` to sign in again.")
			}
		}),
	}
	opts = append(opts, extra...)

	baseURL := c.Config.APIURL
	if c.APIURL != "" {
		baseURL = c.APIURL
	}
	return api.New(baseURL, doer, opts...)
}
