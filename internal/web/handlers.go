package web

import (
	"errors"
	"net/http"
	"net/url"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/jimezsa/jobflow/internal/alerts"
	"github.com/jimezsa/jobflow/internal/models"
	"github.com/jimezsa/jobflow/internal/prefs"
	"github.com/jimezsa/jobflow/internal/results"
)

type hiddenField struct {
	Name  string
	Value string
}

func hiddenFields(values url.Values) []hiddenField {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]hiddenField, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, hiddenField{Name: key, Value: values.Get(key)})
	}
	return fields
}

func resultsURL(state results.State) string {
	return "/results?" + state.Values().Encode()
}

func navURL(state results.State, nav string) string {
	values := state.Values()
	values.Set("nav", nav)
	return "/results/page?" + values.Encode()
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":   "JobFlow",
		"Landing": s.landing,
	})
}

type preferencesPage struct {
	Title       string
	Form        prefs.Form
	Experiences []results.Option
	Error       string
}

func experienceLabel(band string) string {
	return band + " years"
}

func (s *Server) renderPreferences(c *gin.Context, status int, form prefs.Form, message string) {
	options := make([]results.Option, 0, len(models.ExperienceBands))
	for _, band := range models.ExperienceBands {
		options = append(options, results.Option{
			Value:    band,
			Label:    experienceLabel(band),
			Selected: band == form.Experience,
		})
	}
	c.HTML(status, "preferences.html", preferencesPage{
		Title:       "Your Preferences",
		Form:        form,
		Experiences: options,
		Error:       message,
	})
}

func (s *Server) preferencesForm(c *gin.Context) {
	s.renderPreferences(c, http.StatusOK, prefs.NewForm(), "")
}

func (s *Server) submitPreferences(c *gin.Context) {
	var form prefs.Form
	if err := c.ShouldBind(&form); err != nil {
		s.renderPreferences(c, http.StatusBadRequest, prefs.NewForm(), "Invalid form submission")
		return
	}

	pref, err := prefs.Submit(c.Request.Context(), s.backendFor(c), form)
	if err != nil {
		if s.unauthorized(c, err) {
			return
		}
		status := http.StatusBadGateway
		var vErr *prefs.ValidationError
		if errors.As(err, &vErr) {
			status = http.StatusUnprocessableEntity
		} else {
			s.logger.Warn().Err(err).Msg("submit preferences")
		}
		s.renderPreferences(c, status, form, prefs.ErrorMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/results?"+url.Values{results.KeyPrefID: {pref.ID}}.Encode())
}

type resultsPage struct {
	Title        string
	Snap         results.Snapshot
	EmptyMessage string
	State        []hiddenField
	NavFirst     string
	NavPrev      string
	NavNext      string
	NavLast      string
	Channels     []results.Option
	Frequencies  []results.Option
	PrefsURL     string
	AlertsURL    string
}

func (s *Server) renderResults(c *gin.Context, status int, view *results.View) {
	snap := view.Snapshot(s.now())
	state := view.State()

	channels := make([]results.Option, 0, len(models.Channels))
	for _, ch := range models.Channels {
		channels = append(channels, results.Option{Value: string(ch), Label: ch.Label(), Selected: ch == snap.Alert.Form.Channel})
	}
	frequencies := make([]results.Option, 0, len(models.Frequencies))
	for _, f := range models.Frequencies {
		frequencies = append(frequencies, results.Option{Value: string(f), Label: f.Label(), Selected: f == snap.Alert.Form.Frequency})
	}

	c.HTML(status, "results.html", resultsPage{
		Title:        "Your Jobs",
		Snap:         snap,
		EmptyMessage: results.EmptyMessage,
		State:        hiddenFields(state.Values()),
		NavFirst:     navURL(state, "first"),
		NavPrev:      navURL(state, "prev"),
		NavNext:      navURL(state, "next"),
		NavLast:      navURL(state, "last"),
		Channels:     channels,
		Frequencies:  frequencies,
		PrefsURL:     "/preferences",
		AlertsURL:    "/alerts",
	})
}

// refresh loads jobs and facets for view and returns the jobs error. ok is
// false when the response has already been written.
func (s *Server) refresh(c *gin.Context, view *results.View) (ok bool, err error) {
	err = view.Refresh(c.Request.Context())
	if s.unauthorized(c, err) {
		return false, err
	}
	if err != nil && !errors.Is(err, results.ErrMissingPreference) {
		s.logger.Warn().Err(err).Str("pref_id", view.PrefID()).Msg("fetch jobs")
	}
	return true, err
}

func (s *Server) results(c *gin.Context) {
	state := results.ParseState(c.Request.URL.Query())
	view := results.NewView(s.backendFor(c), state.PrefID, s.pageSize)
	view.Restore(state)

	ok, err := s.refresh(c, view)
	if !ok {
		return
	}
	// A restored page past the end is pulled back and the URL corrected.
	// Without a total from the backend there is nothing to clamp against.
	if err == nil && view.ClampPage() {
		c.Redirect(http.StatusFound, resultsURL(view.State()))
		return
	}
	s.renderResults(c, http.StatusOK, view)
}

func (s *Server) applyFilters(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	view := results.NewView(nil, c.PostForm(results.KeyPrefID), s.pageSize)
	view.SetPending(results.ParseFilters(c.Request.PostForm))
	view.ApplyFilters()
	c.Redirect(http.StatusSeeOther, resultsURL(view.State()))
}

func (s *Server) clearFilters(c *gin.Context) {
	view := results.NewView(nil, c.PostForm(results.KeyPrefID), s.pageSize)
	view.ClearFilters()
	c.Redirect(http.StatusSeeOther, resultsURL(view.State()))
}

// navigate applies a pager action. The current page is fetched first so the
// target can be clamped against the real total.
func (s *Server) navigate(c *gin.Context) {
	query := c.Request.URL.Query()
	state := results.ParseState(query)
	view := results.NewView(s.backendFor(c), state.PrefID, s.pageSize)
	view.Restore(state)

	if err := view.FetchJobs(c.Request.Context()); err != nil {
		if s.unauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusSeeOther, resultsURL(state))
		return
	}

	switch query.Get("nav") {
	case "first":
		view.GotoFirst()
	case "prev":
		view.GotoPrev()
	case "next":
		view.GotoNext()
	case "last":
		view.GotoLast()
	case "jump":
		view.GotoJump(query.Get("to"))
	}
	view.ClampPage()
	c.Redirect(http.StatusSeeOther, resultsURL(view.State()))
}

// resultsAlert saves an alert, or sends a test alert, from the results
// page and renders the page again with the outcome.
func (s *Server) resultsAlert(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	state := results.ParseState(c.Request.PostForm)
	view := results.NewView(s.backendFor(c), state.PrefID, s.pageSize)
	view.Restore(state)

	channel, _ := models.ParseChannel(c.PostForm("channel"))
	frequency, _ := models.ParseFrequency(c.PostForm("frequency"))
	form := results.AlertForm{Contact: c.PostForm("contact"), Channel: channel, Frequency: frequency}

	var err error
	if c.PostForm("action") == "test" {
		view.SetAlertForm(form)
		err = view.SendTestAlert(c.Request.Context(), channel)
	} else {
		err = view.SaveAlert(c.Request.Context(), form)
	}
	if s.unauthorized(c, err) {
		return
	}

	status := http.StatusOK
	var vErr *results.ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, results.ErrMissingPreference):
		status = http.StatusUnprocessableEntity
	case err != nil:
		status = http.StatusBadGateway
		s.logger.Warn().Err(err).Str("pref_id", view.PrefID()).Msg("save alert")
	}

	if ok, _ := s.refresh(c, view); !ok {
		return
	}
	s.renderResults(c, status, view)
}

type alertsPage struct {
	Title       string
	Rows        []alerts.Row
	Error       string
	Empty       bool
	Channels    []models.Channel
	Frequencies []models.Frequency
	CreateURL   string
}

func (s *Server) renderAlerts(c *gin.Context, status int, m *alerts.Manager) {
	c.HTML(status, "alerts.html", alertsPage{
		Title:       "Manage Alerts",
		Rows:        m.Rows(),
		Error:       m.Error(),
		Empty:       m.Empty(),
		Channels:    models.Channels,
		Frequencies: models.Frequencies,
		CreateURL:   "/preferences",
	})
}

// loadAlerts builds a manager with the current list. It reports false when
// the response has already been written.
func (s *Server) loadAlerts(c *gin.Context) (*alerts.Manager, bool) {
	m := alerts.NewManager(s.backendFor(c))
	if err := m.Load(c.Request.Context()); err != nil {
		if s.unauthorized(c, err) {
			return nil, false
		}
		s.logger.Warn().Err(err).Msg("list alerts")
	}
	return m, true
}

func (s *Server) alerts(c *gin.Context) {
	m, ok := s.loadAlerts(c)
	if !ok {
		return
	}
	if id := c.Query("edit"); id != "" {
		_ = m.BeginEdit(id)
	}
	s.renderAlerts(c, http.StatusOK, m)
}

func (s *Server) saveAlert(c *gin.Context) {
	id := c.Param("id")
	m, ok := s.loadAlerts(c)
	if !ok {
		return
	}
	if err := m.BeginEdit(id); err != nil {
		c.Redirect(http.StatusSeeOther, "/alerts")
		return
	}

	channel, _ := models.ParseChannel(c.PostForm("channel"))
	frequency, _ := models.ParseFrequency(c.PostForm("frequency"))
	_ = m.SetDraft(id, alerts.Draft{
		Contact:   c.PostForm("contact"),
		Channel:   channel,
		Frequency: frequency,
	})

	if err := m.Save(c.Request.Context(), id); err != nil {
		if s.unauthorized(c, err) {
			return
		}
		s.logger.Warn().Err(err).Str("alert_id", id).Msg("update alert")
		if m.RowError(id) != "" {
			s.renderAlerts(c, http.StatusBadGateway, m)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/alerts")
}

func (s *Server) confirmDelete(c *gin.Context) {
	id := c.Param("id")
	m, ok := s.loadAlerts(c)
	if !ok {
		return
	}
	for _, row := range m.Rows() {
		if row.ID == id {
			c.HTML(http.StatusOK, "alert_delete.html", gin.H{
				"Title": "Delete Alert",
				"Row":   row,
			})
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/alerts")
}

func (s *Server) deleteAlert(c *gin.Context) {
	id := c.Param("id")
	m, ok := s.loadAlerts(c)
	if !ok {
		return
	}
	confirmed := c.PostForm("confirm") == "yes"
	if err := m.Delete(c.Request.Context(), id, confirmed); err != nil {
		if s.unauthorized(c, err) {
			return
		}
		s.logger.Warn().Err(err).Str("alert_id", id).Msg("delete alert")
		if m.RowError(id) != "" {
			s.renderAlerts(c, http.StatusBadGateway, m)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/alerts")
}
