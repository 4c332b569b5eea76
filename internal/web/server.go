// Package web serves the JobFlow pages: landing, preferences form, results
// view and alert management. Every request builds its own view from the
// URL, so no view state is shared between requests.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimezsa/jobflow/internal/alerts"
	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/content"
	"github.com/jimezsa/jobflow/internal/prefs"
	"github.com/jimezsa/jobflow/internal/results"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Backend is every backend call the pages make. *api.Client satisfies it.
type Backend interface {
	prefs.Submitter
	results.Backend
	alerts.Store
}

// BackendFunc returns a backend that authenticates with store. The server
// calls it once per request with that request's cookie credential.
type BackendFunc func(store api.CredentialStore) Backend

type Options struct {
	Backend  BackendFunc
	Landing  content.Landing
	PageSize int
	// LoginURL is where a 401 from the backend sends the browser.
	LoginURL string
	Logger   zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	backend  BackendFunc
	landing  content.Landing
	pageSize int
	loginURL string
	logger   zerolog.Logger
	now      func() time.Time
	engine   *gin.Engine
}

func New(opts Options) (*Server, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	s := &Server{
		backend:  opts.Backend,
		landing:  opts.Landing,
		pageSize: opts.PageSize,
		loginURL: strings.TrimSpace(opts.LoginURL),
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if s.pageSize <= 0 {
		s.pageSize = results.DefaultPageSize
	}
	if s.loginURL == "" {
		s.loginURL = "/preferences"
	}
	if s.now == nil {
		s.now = time.Now
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()
	engine.Use(requestID(), requestLogger(s.logger), gin.Recovery())
	engine.SetHTMLTemplate(tmpl)
	s.engine = engine
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/health", s.health)
	r.GET("/", s.home)

	r.GET("/preferences", s.preferencesForm)
	r.POST("/preferences", s.submitPreferences)

	r.GET("/results", s.results)
	r.POST("/results/apply", s.applyFilters)
	r.POST("/results/clear", s.clearFilters)
	r.GET("/results/page", s.navigate)
	r.POST("/results/alerts", s.resultsAlert)

	r.GET("/alerts", s.alerts)
	r.POST("/alerts/:id", s.saveAlert)
	r.GET("/alerts/:id/delete", s.confirmDelete)
	r.POST("/alerts/:id/delete", s.deleteAlert)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// backendFor scopes the backend to the credential cookie of c.
func (s *Server) backendFor(c *gin.Context) Backend {
	return s.backend(newCookieStore(c))
}

// unauthorized redirects to the login page when err is a 401. The cookie
// has already been cleared by the client hook.
func (s *Server) unauthorized(c *gin.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	s.logger.Info().Str("path", c.Request.URL.Path).Msg("session expired")
	c.Redirect(http.StatusSeeOther, s.loginURL)
	c.Abort()
	return true
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
