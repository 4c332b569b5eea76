// Package results holds the state machine behind the job results view:
// pending and applied filters, the page window, facet counts and the alert
// subscription panel.
package results

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/models"
)

const DefaultPageSize = 10

const (
	MissingPrefMessage = "Missing prefId. Please submit preferences again."
	EmptyMessage       = "No jobs found yet. Try changing your filters."
)

// ErrMissingPreference is returned by fetches when the view has no
// preference id. No request is sent.
var ErrMissingPreference = errors.New("missing preference id")

// Backend is the part of the API the view talks to. *api.Client
// satisfies it.
type Backend interface {
	FetchJobs(ctx context.Context, q models.JobQuery) (models.JobPage, error)
	FetchFacets(ctx context.Context, q models.FacetQuery) (models.Facets, error)
	SaveAlert(ctx context.Context, input models.AlertInput) (models.Alert, error)
	SendTestAlert(ctx context.Context, prefID string, channel models.Channel) (string, error)
}

// State is the URL-restorable part of the view.
type State struct {
	PrefID  string
	Page    int
	Applied models.Filters
}

// View owns the results view state. Each state slice is written only by
// its own operation; fetch completions from superseded requests are
// dropped.
type View struct {
	backend Backend
	prefID  string
	size    int

	mu      sync.Mutex
	pending models.Filters
	applied models.Filters
	page    int

	jobs      []models.Job
	total     int
	loading   bool
	loaded    bool
	jobsErr   string
	jobsSeq   uint64
	facets    *models.Facets
	facetsSeq uint64
	alert     AlertState
}

func NewView(backend Backend, prefID string, size int) *View {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &View{
		backend: backend,
		prefID:  strings.TrimSpace(prefID),
		size:    size,
		pending: models.DefaultFilters(),
		applied: models.DefaultFilters(),
		alert:   AlertState{Form: NewAlertForm()},
	}
}

// Restore loads URL state into a fresh view. Pending starts equal to
// applied.
func (v *View) Restore(state State) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if prefID := strings.TrimSpace(state.PrefID); prefID != "" {
		v.prefID = prefID
	}
	v.applied = state.Applied.Normalized()
	v.pending = v.applied
	v.page = state.Page
	if v.page < 0 {
		v.page = 0
	}
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{PrefID: v.prefID, Page: v.page, Applied: v.applied}
}

func (v *View) PrefID() string {
	return v.prefID
}

func (v *View) PageSize() int {
	return v.size
}

// SetPending replaces the pending filters. Nothing is fetched.
func (v *View) SetPending(filters models.Filters) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = filters
}

func (v *View) Pending() models.Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

func (v *View) Applied() models.Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.applied
}

// ApplyFilters commits pending to applied and resets the page.
func (v *View) ApplyFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applied = v.pending.Normalized()
	v.pending = v.applied
	v.page = 0
}

// ClearFilters resets pending and applied to the defaults in one step.
func (v *View) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = models.DefaultFilters()
	v.applied = models.DefaultFilters()
	v.page = 0
}

func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

func (v *View) TotalPages() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return TotalPages(v.total, v.size)
}

// move applies step to the current page, clamps the result and reports
// whether the page changed.
func (v *View) move(step func(page, totalPages int) int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := Clamp(step(v.page, TotalPages(v.total, v.size)), v.total, v.size)
	if next == v.page {
		return false
	}
	v.page = next
	return true
}

func (v *View) GotoFirst() bool {
	return v.move(func(int, int) int { return 0 })
}

func (v *View) GotoPrev() bool {
	return v.move(func(page, _ int) int { return page - 1 })
}

func (v *View) GotoNext() bool {
	return v.move(func(page, _ int) int { return page + 1 })
}

func (v *View) GotoLast() bool {
	return v.move(func(_, totalPages int) int { return totalPages - 1 })
}

// GotoJump moves to a 1-based page number. Invalid input is ignored.
func (v *View) GotoJump(input string) bool {
	return v.move(func(page, totalPages int) int {
		target, ok := ParseJump(input, totalPages)
		if !ok {
			return page
		}
		return target
	})
}

// ClampPage pulls a restored page back into range once the total is known.
func (v *View) ClampPage() bool {
	return v.move(func(page, _ int) int { return page })
}

// FetchJobs loads the current page for the applied filters. On failure the
// previous jobs stay in place next to the error message.
func (v *View) FetchJobs(ctx context.Context) error {
	v.mu.Lock()
	if v.prefID == "" {
		v.jobsErr = MissingPrefMessage
		v.mu.Unlock()
		return ErrMissingPreference
	}
	v.jobsSeq++
	seq := v.jobsSeq
	query := models.JobQuery{PrefID: v.prefID, Page: v.page, Size: v.size, Filters: v.applied}
	v.loading = true
	v.jobsErr = ""
	v.mu.Unlock()

	page, err := v.backend.FetchJobs(ctx, query)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.jobsSeq {
		return nil
	}
	v.loading = false
	if err != nil {
		v.jobsErr = api.Message(err, "Failed to fetch jobs")
		return err
	}
	v.jobs = page.Items
	if v.jobs == nil {
		v.jobs = []models.Job{}
	}
	v.total = page.Total
	v.loaded = true
	return nil
}

// FetchFacets loads counts for the company/sort scope. Failures only hide
// the counts.
func (v *View) FetchFacets(ctx context.Context) {
	v.mu.Lock()
	if v.prefID == "" {
		v.facets = nil
		v.mu.Unlock()
		return
	}
	v.facetsSeq++
	seq := v.facetsSeq
	company, sortBy := v.applied.FacetScope()
	query := models.FacetQuery{PrefID: v.prefID, CompanyContains: company, SortBy: sortBy}
	v.mu.Unlock()

	facets, err := v.backend.FetchFacets(ctx, query)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.facetsSeq {
		return
	}
	if err != nil {
		v.facets = nil
		return
	}
	v.facets = &facets
}

// Refresh runs the jobs and facets fetches concurrently and returns the
// jobs error.
func (v *View) Refresh(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v.FetchFacets(ctx)
	}()
	err := v.FetchJobs(ctx)
	wg.Wait()
	return err
}

// SaveAlert validates the form and subscribes the preference to alerts.
// The form is kept on failure.
func (v *View) SaveAlert(ctx context.Context, form AlertForm) error {
	v.mu.Lock()
	v.alert.Form = form
	v.alert.Error = ""
	v.alert.Confirmation = ""
	if v.prefID == "" {
		v.alert.Error = MissingPrefMessage
		v.mu.Unlock()
		return ErrMissingPreference
	}
	if err := form.Validate(); err != nil {
		v.alert.Error = err.Error()
		v.mu.Unlock()
		return err
	}
	input := form.input(v.prefID)
	v.alert.Saving = true
	v.mu.Unlock()

	saved, err := v.backend.SaveAlert(ctx, input)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.alert.Saving = false
	if err != nil {
		v.alert.Error = api.Message(err, "Failed to save alert")
		return err
	}
	channel := saved.Channel
	if channel == "" {
		channel = input.Channel
	}
	frequency := saved.Frequency
	if frequency == "" {
		frequency = input.Frequency
	}
	v.alert.Confirmation = "Alert saved! You'll get " + strings.ToLower(frequency.Label()) + " updates via " + channel.Label() + "."
	return nil
}

// SetAlertForm replaces the alert panel inputs without saving.
func (v *View) SetAlertForm(form AlertForm) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alert.Form = form
}

// SendTestAlert asks the backend to deliver a sample alert now.
func (v *View) SendTestAlert(ctx context.Context, channel models.Channel) error {
	if v.prefID == "" {
		v.mu.Lock()
		v.alert.Error = MissingPrefMessage
		v.mu.Unlock()
		return ErrMissingPreference
	}

	msg, err := v.backend.SendTestAlert(ctx, v.prefID, channel)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.alert.Error = api.Message(err, "Failed to send test alert")
		return err
	}
	v.alert.TestMessage = msg
	return nil
}
