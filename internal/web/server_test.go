package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/gin-gonic/gin"
	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/content"
	"github.com/jimezsa/jobflow/internal/models"
	"github.com/jimezsa/jobflow/internal/results"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBackend struct {
	mu sync.Mutex

	store        api.CredentialStore
	tokens       []string
	unauthorized bool

	prefID    string
	prefErr   error
	page      models.JobPage
	jobsErr   error
	facets    models.Facets
	alerts    []models.Alert
	updateErr error

	prefInputs  []models.PreferenceInput
	jobQueries  []models.JobQuery
	alertInputs []models.AlertInput
	updates     map[string]models.AlertUpdate
	deletes     []string
}

// call records the token and simulates the client's 401 hook.
func (f *fakeBackend) call() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, f.store.Token())
	if f.unauthorized {
		_ = f.store.Clear()
		return &api.Error{Status: http.StatusUnauthorized, Message: "expired", Err: api.ErrUnauthorized}
	}
	return nil
}

func (f *fakeBackend) SubmitPreferences(_ context.Context, input models.PreferenceInput) (string, error) {
	if err := f.call(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefInputs = append(f.prefInputs, input)
	return f.prefID, f.prefErr
}

func (f *fakeBackend) FetchJobs(_ context.Context, q models.JobQuery) (models.JobPage, error) {
	if err := f.call(); err != nil {
		return models.JobPage{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobQueries = append(f.jobQueries, q)
	if f.jobsErr != nil {
		return models.JobPage{}, f.jobsErr
	}
	return f.page, nil
}

func (f *fakeBackend) FetchFacets(context.Context, models.FacetQuery) (models.Facets, error) {
	if err := f.call(); err != nil {
		return models.Facets{}, err
	}
	return f.facets, nil
}

func (f *fakeBackend) SaveAlert(_ context.Context, input models.AlertInput) (models.Alert, error) {
	if err := f.call(); err != nil {
		return models.Alert{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alertInputs = append(f.alertInputs, input)
	return models.Alert{ID: "new", Channel: input.Channel, Frequency: input.Frequency}, nil
}

func (f *fakeBackend) SendTestAlert(_ context.Context, prefID string, channel models.Channel) (string, error) {
	if err := f.call(); err != nil {
		return "", err
	}
	return "Test alert sent via " + string(channel), nil
}

func (f *fakeBackend) ListAlerts(context.Context) ([]models.Alert, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Alert, len(f.alerts))
	copy(out, f.alerts)
	return out, nil
}

func (f *fakeBackend) UpdateAlert(_ context.Context, id string, update models.AlertUpdate) (models.Alert, error) {
	if err := f.call(); err != nil {
		return models.Alert{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return models.Alert{}, f.updateErr
	}
	if f.updates == nil {
		f.updates = map[string]models.AlertUpdate{}
	}
	f.updates[id] = update
	return models.Alert{ID: id}, nil
}

func (f *fakeBackend) DeleteAlert(_ context.Context, id string) error {
	if err := f.call(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return nil
}

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, backend *fakeBackend) *Server {
	t.Helper()
	landing, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	srv, err := New(Options{
		Backend: func(store api.CredentialStore) Backend {
			backend.store = store
			return backend
		},
		Landing:  landing,
		PageSize: 10,
		LoginURL: "/login",
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	return do(t, srv, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(t *testing.T, srv *Server, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, srv, req)
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func location(t *testing.T, rec *httptest.ResponseRecorder) *url.URL {
	t.Helper()
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	return loc
}

func threeJobs() models.JobPage {
	return models.JobPage{
		Items: []models.Job{
			{ID: "1", Title: "Go Developer", Company: "Acme", Source: models.SourceAdzuna, ApplyURL: "https://example.com/1", PostedAt: "2024-03-10T09:00:00Z"},
			{ID: "2", Title: "SRE", Company: "Beta", Location: "Pune", Source: models.SourceRemotive, PostedAt: "2024-03-01"},
			{ID: "3", Title: "Platform Engineer", Company: "Gamma", Source: models.SourceNaukri},
		},
		Total: 25,
	}
}

func TestHealthAndRequestID(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	rec := get(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["status"] != "ok" {
		t.Fatalf("body = %q, err = %v", rec.Body.String(), err)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("missing request id header")
	}
}

func TestLandingPage(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := document(t, rec)
	names := doc.Find("#testimonials .name")
	if names.Length() != 3 || names.First().Text() != "Priya Sharma" {
		t.Fatalf("testimonials = %d, first = %q", names.Length(), names.First().Text())
	}
	if got := doc.Find("#testimonials .avatar").First().Text(); got != "PS" {
		t.Fatalf("avatar = %q", got)
	}
	if got := doc.Find("#contact .email").Text(); got != "hello@jobflow.ai" {
		t.Fatalf("email = %q", got)
	}
	if doc.Find("#how-it-works .steps li").Length() != 3 {
		t.Fatalf("expected three steps")
	}
}

func TestPreferencesForm(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	doc := document(t, get(t, srv, "/preferences"))
	if got, _ := doc.Find("select[name=experience] option[selected]").Attr("value"); got != "1-3" {
		t.Fatalf("default experience = %q", got)
	}
}

func TestSubmitPreferencesRedirects(t *testing.T) {
	backend := &fakeBackend{prefID: "p 123"}
	srv := newTestServer(t, backend)

	rec := postForm(t, srv, "/preferences", url.Values{
		"jobTitle":   {"  Backend Engineer "},
		"experience": {"3-5"},
		"location":   {" Bangalore "},
		"remoteOnly": {"true"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	loc := location(t, rec)
	if loc.Path != "/results" || loc.Query().Get("prefId") != "p 123" {
		t.Fatalf("location = %s", loc)
	}
	want := models.PreferenceInput{JobTitle: "Backend Engineer", Experience: "3-5", Location: "Bangalore", RemoteOnly: true}
	if len(backend.prefInputs) != 1 || backend.prefInputs[0] != want {
		t.Fatalf("inputs = %+v", backend.prefInputs)
	}
}

func TestSubmitPreferencesValidation(t *testing.T) {
	backend := &fakeBackend{prefID: "p1"}
	srv := newTestServer(t, backend)

	rec := postForm(t, srv, "/preferences", url.Values{"jobTitle": {"   "}, "experience": {"1-3"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := document(t, rec).Find(".error").Text(); got != "Job title is required" {
		t.Fatalf("error = %q", got)
	}
	if len(backend.prefInputs) != 0 {
		t.Fatalf("no request should be sent")
	}
}

func TestSubmitPreferencesEmptyID(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	rec := postForm(t, srv, "/preferences", url.Values{"jobTitle": {"Dev"}, "experience": {"1-3"}})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := document(t, rec)
	if got := doc.Find(".error").Text(); got != "Invalid response from server" {
		t.Fatalf("error = %q", got)
	}
	if got, _ := doc.Find("input[name=jobTitle]").Attr("value"); got != "Dev" {
		t.Fatalf("form should keep the title, got %q", got)
	}
}

func TestResultsPage(t *testing.T) {
	backend := &fakeBackend{
		page: threeJobs(),
		facets: models.Facets{
			SourceCounts:  map[string]int{"adzuna": 20, "remotive": 5},
			RecencyCounts: map[string]int{"1": 1, "any": 25},
			Total:         25,
		},
	}
	srv := newTestServer(t, backend)

	rec := get(t, srv, "/results?prefId=p1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := document(t, rec)
	if got := doc.Find(".page-label").Text(); got != "Page 1 of 3 • 25 results" {
		t.Fatalf("page label = %q", got)
	}
	if doc.Find(".job-card").Length() != 3 {
		t.Fatalf("cards = %d", doc.Find(".job-card").Length())
	}
	if doc.Find(".pager span.prev.disabled").Length() != 1 || doc.Find(".pager span.first.disabled").Length() != 1 {
		t.Fatalf("prev and first should be disabled")
	}
	next, ok := doc.Find(".pager a.next").Attr("href")
	if !ok || !strings.Contains(next, "nav=next") {
		t.Fatalf("next link = %q", next)
	}
	if got := doc.Find("select[name=source] option").First().Text(); got != "All sources (25)" {
		t.Fatalf("first source option = %q", got)
	}
	first := doc.Find(".job-card").First()
	if first.Find(".badge").Text() != "New" || first.Find(".posted").Text() != "3 hours ago" || first.Find(".location").Text() != "—" {
		t.Fatalf("unexpected first card: %s", first.Text())
	}
	if href, _ := doc.Find("a.change-prefs").Attr("href"); href != "/preferences" {
		t.Fatalf("change preferences link = %q", href)
	}

	q := backend.jobQueries[0]
	if q.PrefID != "p1" || q.Page != 0 || q.Size != 10 || q.Filters != models.DefaultFilters() {
		t.Fatalf("query = %+v", q)
	}
}

func TestResultsMissingPreference(t *testing.T) {
	backend := &fakeBackend{page: threeJobs()}
	srv := newTestServer(t, backend)

	doc := document(t, get(t, srv, "/results"))
	if got := doc.Find(".error.setup").Text(); got != results.MissingPrefMessage {
		t.Fatalf("setup error = %q", got)
	}
	if len(backend.tokens) != 0 {
		t.Fatalf("no backend call expected")
	}
}

func TestResultsClampsRestoredPage(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{page: threeJobs()})
	rec := get(t, srv, "/results?prefId=p1&page=7")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := location(t, rec).Query().Get("page"); got != "2" {
		t.Fatalf("page = %q", got)
	}
}

func TestApplyAndClearFilters(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})

	rec := postForm(t, srv, "/results/apply", url.Values{
		"prefId":  {"p1"},
		"source":  {"naukri"},
		"days":    {"7"},
		"company": {" Acme "},
		"sort":    {"recency"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	q := location(t, rec).Query()
	if q.Get("prefId") != "p1" || q.Get("page") != "0" || q.Get("source") != "naukri" || q.Get("days") != "7" || q.Get("company") != "Acme" || q.Get("sort") != "recency" {
		t.Fatalf("query = %s", q.Encode())
	}

	rec = postForm(t, srv, "/results/clear", url.Values{"prefId": {"p1"}})
	q = location(t, rec).Query()
	if q.Get("prefId") != "p1" || q.Has("source") || q.Has("days") || q.Has("company") || q.Has("sort") {
		t.Fatalf("query = %s", q.Encode())
	}
}

func TestNavigate(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{page: threeJobs()})
	cases := []struct {
		query string
		want  string
	}{
		{"prefId=p1&page=0&nav=next", "1"},
		{"prefId=p1&page=1&nav=prev", "0"},
		{"prefId=p1&page=0&nav=last", "2"},
		{"prefId=p1&page=2&nav=next", "2"},
		{"prefId=p1&page=2&nav=first", "0"},
		{"prefId=p1&page=1&nav=jump&to=3", "2"},
		{"prefId=p1&page=1&nav=jump&to=abc", "1"},
		{"prefId=p1&page=1&nav=jump&to=0", "1"},
	}
	for _, tc := range cases {
		rec := get(t, srv, "/results/page?"+tc.query)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: status = %d", tc.query, rec.Code)
		}
		if got := location(t, rec).Query().Get("page"); got != tc.want {
			t.Fatalf("%s: page = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestResultsAlertValidation(t *testing.T) {
	backend := &fakeBackend{page: threeJobs()}
	srv := newTestServer(t, backend)

	rec := postForm(t, srv, "/results/alerts", url.Values{
		"prefId":    {"p1"},
		"page":      {"0"},
		"contact":   {"not-an-email"},
		"channel":   {"EMAIL"},
		"frequency": {"DAILY"},
		"action":    {"save"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(backend.alertInputs) != 0 {
		t.Fatalf("no alert request expected")
	}
	doc := document(t, rec)
	if got := doc.Find(".alert-error").Text(); got != "Please enter a valid email address." {
		t.Fatalf("alert error = %q", got)
	}
	if got, _ := doc.Find(".alert-panel input[name=contact]").Attr("value"); got != "not-an-email" {
		t.Fatalf("contact = %q", got)
	}
}

func TestResultsAlertSaveAndTest(t *testing.T) {
	backend := &fakeBackend{page: threeJobs()}
	srv := newTestServer(t, backend)

	rec := postForm(t, srv, "/results/alerts", url.Values{
		"prefId":    {"p1"},
		"contact":   {"+91 98765 43210"},
		"channel":   {"WHATSAPP"},
		"frequency": {"WEEKLY"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := document(t, rec).Find(".alert-confirmation").Text(); got != "Alert saved! You'll get weekly updates via WhatsApp." {
		t.Fatalf("confirmation = %q", got)
	}
	if len(backend.alertInputs) != 1 || backend.alertInputs[0].PrefID != "p1" {
		t.Fatalf("inputs = %+v", backend.alertInputs)
	}

	rec = postForm(t, srv, "/results/alerts", url.Values{"prefId": {"p1"}, "channel": {"EMAIL"}, "action": {"test"}})
	if got := document(t, rec).Find(".test-message").Text(); got != "Test alert sent via EMAIL" {
		t.Fatalf("test message = %q", got)
	}
}

func TestResultsFetchFailureKeepsPage(t *testing.T) {
	backend := &fakeBackend{jobsErr: errors.New("backend down")}
	srv := newTestServer(t, backend)

	rec := get(t, srv, "/results?prefId=p1&page=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
	doc := document(t, rec)
	if got := doc.Find(".jobs-error").Text(); got != "backend down" {
		t.Fatalf("jobs error = %q", got)
	}
	if got, _ := doc.Find("input[name=page]").Attr("value"); got != "2" {
		t.Fatalf("page should stay at 2, hidden field = %q", got)
	}
}

// rejectingDoer answers every request with 401.
type rejectingDoer struct{}

func (rejectingDoer) Do(*fhttp.Request) (*fhttp.Response, error) {
	return &fhttp.Response{
		StatusCode: fhttp.StatusUnauthorized,
		Header:     fhttp.Header{},
		Body:       io.NopCloser(strings.NewReader(`{"message":"expired"}`)),
	}, nil
}

func TestUnauthorizedJobsAndFacetsClearCookieOnce(t *testing.T) {
	client, err := api.New("http://backend.test/", rejectingDoer{})
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	landing, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	srv, err := New(Options{
		Backend: func(store api.CredentialStore) Backend {
			return client.WithCredentials(store)
		},
		Landing:  landing,
		LoginURL: "/login",
		Logger:   zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/results?prefId=p1", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookie, Value: "old"})
		rec := do(t, srv, req)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
			t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
		}
		cleared := 0
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == AuthCookie {
				cleared++
			}
		}
		if cleared != 1 {
			t.Fatalf("auth cookie cleared %d times: %v", cleared, rec.Header().Values("Set-Cookie"))
		}
	}
}

func TestCookieTokenIsForwarded(t *testing.T) {
	backend := &fakeBackend{page: threeJobs()}
	srv := newTestServer(t, backend)

	req := httptest.NewRequest(http.MethodGet, "/results?prefId=p1", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: "tok"})
	if rec := do(t, srv, req); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, token := range backend.tokens {
		if token != "tok" {
			t.Fatalf("tokens = %v", backend.tokens)
		}
	}
}

func TestUnauthorizedRedirectsToLogin(t *testing.T) {
	backend := &fakeBackend{unauthorized: true}
	srv := newTestServer(t, backend)

	req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: "old"})
	rec := do(t, srv, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == AuthCookie && cookie.Value == "" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("auth cookie should be cleared: %v", rec.Header().Values("Set-Cookie"))
	}
}

func seededAlerts() []models.Alert {
	return []models.Alert{
		{ID: "a1", Contact: "one@example.com", Channel: models.ChannelEmail, Frequency: models.FrequencyDaily},
		{ID: "a2", Contact: "+91 98765 43210", Channel: models.ChannelWhatsApp, Frequency: models.FrequencyEvery3Days},
	}
}

func TestAlertsPage(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{alerts: seededAlerts()})

	doc := document(t, get(t, srv, "/alerts"))
	if doc.Find("tbody tr").Length() != 2 {
		t.Fatalf("rows = %d", doc.Find("tbody tr").Length())
	}
	if got := doc.Find("#alert-a2 .frequency").Text(); got != "Every 3 Days" {
		t.Fatalf("frequency = %q", got)
	}
	if href, _ := doc.Find("a.create-new").Attr("href"); href != "/preferences" {
		t.Fatalf("create link = %q", href)
	}

	doc = document(t, get(t, srv, "/alerts?edit=a1"))
	if doc.Find("#alert-a1 form.edit").Length() != 1 || doc.Find("#alert-a2 form.edit").Length() != 0 {
		t.Fatalf("only a1 should be in edit mode")
	}
	if got, _ := doc.Find("#alert-a1 input[name=contact]").Attr("value"); got != "one@example.com" {
		t.Fatalf("draft contact = %q", got)
	}
}

func TestAlertsEmpty(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	doc := document(t, get(t, srv, "/alerts"))
	if got := doc.Find(".empty").Text(); got != "No alerts yet." {
		t.Fatalf("empty = %q", got)
	}
}

func TestSaveAlert(t *testing.T) {
	backend := &fakeBackend{alerts: seededAlerts()}
	srv := newTestServer(t, backend)

	rec := postForm(t, srv, "/alerts/a1", url.Values{"contact": {" new@example.com "}, "channel": {"EMAIL"}, "frequency": {"WEEKLY"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/alerts" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
	got := backend.updates["a1"]
	if got.Contact != "new@example.com" || got.Frequency != models.FrequencyWeekly {
		t.Fatalf("update = %+v", got)
	}
}

func TestSaveAlertFailureKeepsEditMode(t *testing.T) {
	backend := &fakeBackend{alerts: seededAlerts(), updateErr: &api.Error{Status: 500, Message: "boom"}}
	srv := newTestServer(t, backend)

	rec := postForm(t, srv, "/alerts/a1", url.Values{"contact": {"x@example.com"}, "channel": {"EMAIL"}, "frequency": {"DAILY"}})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := document(t, rec)
	if got := doc.Find("#alert-a1 .row-error").Text(); got != "Failed to update alert" {
		t.Fatalf("row error = %q", got)
	}
	if got, _ := doc.Find("#alert-a1 input[name=contact]").Attr("value"); got != "x@example.com" {
		t.Fatalf("draft contact = %q", got)
	}
}

func TestDeleteAlert(t *testing.T) {
	backend := &fakeBackend{alerts: seededAlerts()}
	srv := newTestServer(t, backend)

	doc := document(t, get(t, srv, "/alerts/a2/delete"))
	if got := doc.Find(".contact").Text(); got != "+91 98765 43210" {
		t.Fatalf("confirm page contact = %q", got)
	}

	rec := postForm(t, srv, "/alerts/a2/delete", url.Values{})
	if rec.Code != http.StatusSeeOther || len(backend.deletes) != 0 {
		t.Fatalf("unconfirmed delete: status = %d deletes = %v", rec.Code, backend.deletes)
	}

	rec = postForm(t, srv, "/alerts/a2/delete", url.Values{"confirm": {"yes"}})
	if rec.Code != http.StatusSeeOther || len(backend.deletes) != 1 || backend.deletes[0] != "a2" {
		t.Fatalf("confirmed delete: status = %d deletes = %v", rec.Code, backend.deletes)
	}
}
