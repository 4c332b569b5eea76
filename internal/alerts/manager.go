// Package alerts manages the list of saved alert subscriptions with
// per-row inline editing.
package alerts

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/models"
)

const (
	UpdateFailedMessage = "Failed to update alert"
	DeleteFailedMessage = "Failed to delete alert"
	LoadFailedMessage   = "Failed to load alerts"
)

var ErrNotFound = errors.New("alert not found")

// Store is the part of the API the manager needs. *api.Client satisfies it.
type Store interface {
	ListAlerts(ctx context.Context) ([]models.Alert, error)
	UpdateAlert(ctx context.Context, id string, update models.AlertUpdate) (models.Alert, error)
	DeleteAlert(ctx context.Context, id string) error
}

// Draft holds the editable fields of a row in edit mode.
type Draft struct {
	Contact   string
	Channel   models.Channel
	Frequency models.Frequency
}

func draftOf(a models.Alert) Draft {
	return Draft{Contact: a.Contact, Channel: a.Channel, Frequency: a.Frequency}
}

func (d Draft) update() models.AlertUpdate {
	return models.AlertUpdate{
		Contact:   strings.TrimSpace(d.Contact),
		Channel:   d.Channel,
		Frequency: d.Frequency,
	}
}

// Row is one alert as rendered, with its edit state.
type Row struct {
	models.Alert
	Editing bool
	Draft   Draft
	Error   string
}

type Manager struct {
	store Store

	mu      sync.Mutex
	alerts  []models.Alert
	drafts  map[string]Draft
	errs    map[string]string
	loadErr string
	loaded  bool
}

func NewManager(store Store) *Manager {
	return &Manager{
		store:  store,
		drafts: map[string]Draft{},
		errs:   map[string]string{},
	}
}

// Load replaces the list with the backend's current collection. On
// failure the previous list is kept.
func (m *Manager) Load(ctx context.Context) error {
	list, err := m.store.ListAlerts(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.loadErr = api.Message(err, LoadFailedMessage)
		return err
	}
	m.alerts = list
	m.loadErr = ""
	m.loaded = true

	// Drafts for rows that disappeared are dropped.
	for id := range m.drafts {
		if m.index(id) < 0 {
			delete(m.drafts, id)
			delete(m.errs, id)
		}
	}
	return nil
}

func (m *Manager) index(id string) int {
	for i, a := range m.alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// BeginEdit puts a row into edit mode with a copy of its current values.
func (m *Manager) BeginEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.drafts[id] = draftOf(m.alerts[i])
	delete(m.errs, id)
	return nil
}

// SetDraft replaces the draft of a row already in edit mode.
func (m *Manager) SetDraft(id string, draft Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[id]; !ok {
		return ErrNotFound
	}
	m.drafts[id] = draft
	return nil
}

// Cancel leaves edit mode and discards the draft.
func (m *Manager) Cancel(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	delete(m.errs, id)
}

func (m *Manager) Editing(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.drafts[id]
	return ok
}

// Save submits the draft as a full update. On success the row leaves edit
// mode and the list is fetched again. On failure the row stays in edit
// mode with an error.
func (m *Manager) Save(ctx context.Context, id string) error {
	m.mu.Lock()
	draft, ok := m.drafts[id]
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	if _, err := m.store.UpdateAlert(ctx, id, draft.update()); err != nil {
		m.mu.Lock()
		m.errs[id] = UpdateFailedMessage
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	delete(m.drafts, id)
	delete(m.errs, id)
	m.mu.Unlock()
	return m.Load(ctx)
}

// Delete removes an alert. Nothing happens unless confirmed is true. The
// row is removed locally right away and the list is then fetched again; a
// failed refetch keeps the local removal.
func (m *Manager) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if err := m.store.DeleteAlert(ctx, id); err != nil {
		m.mu.Lock()
		m.errs[id] = DeleteFailedMessage
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	if i := m.index(id); i >= 0 {
		m.alerts = append(m.alerts[:i:i], m.alerts[i+1:]...)
	}
	delete(m.drafts, id)
	delete(m.errs, id)
	m.mu.Unlock()

	return m.Load(ctx)
}

// Rows returns the list in backend order with edit state attached.
func (m *Manager) Rows() []Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make([]Row, 0, len(m.alerts))
	for _, a := range m.alerts {
		row := Row{Alert: a, Draft: draftOf(a), Error: m.errs[a.ID]}
		if draft, ok := m.drafts[a.ID]; ok {
			row.Editing = true
			row.Draft = draft
		}
		rows = append(rows, row)
	}
	return rows
}

// RowError returns the message of the last failed mutation of id.
func (m *Manager) RowError(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errs[id]
}

// Error returns the message of the last failed load.
func (m *Manager) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// Empty reports a successful load that returned no alerts.
func (m *Manager) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded && len(m.alerts) == 0
}
