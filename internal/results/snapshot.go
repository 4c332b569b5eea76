package results

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jimezsa/jobflow/internal/dates"
	"github.com/jimezsa/jobflow/internal/models"
)

// Option is one entry of a filter dropdown.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Card is a job prepared for display.
type Card struct {
	models.Job
	Location string
	Posted   string
	IsNew    bool
}

// Snapshot is a consistent copy of the view for rendering.
type Snapshot struct {
	PrefID     string
	Pending    models.Filters
	Applied    models.Filters
	Page       int
	PageSize   int
	Total      int
	TotalPages int

	Jobs       []Card
	Loading    bool
	Error      string
	SetupError string
	Empty      bool

	CanPrev   bool
	CanNext   bool
	PageLabel string

	HasFacets      bool
	SourceOptions  []Option
	RecencyOptions []Option
	SortOptions    []Option

	FiltersActive bool
	Alert         AlertState
}

// Snapshot copies the view state. now drives the relative posted times.
func (v *View) Snapshot(now time.Time) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	totalPages := TotalPages(v.total, v.size)
	snap := Snapshot{
		PrefID:        v.prefID,
		Pending:       v.pending,
		Applied:       v.applied,
		Page:          v.page,
		PageSize:      v.size,
		Total:         v.total,
		TotalPages:    totalPages,
		Loading:       v.loading,
		CanPrev:       v.page > 0,
		CanNext:       v.page+1 < totalPages,
		PageLabel:     PageLabel(v.page, v.total, v.size),
		HasFacets:     v.facets != nil,
		FiltersActive: !v.applied.IsDefault(),
		Alert:         v.alert,
	}

	if v.prefID == "" {
		snap.SetupError = MissingPrefMessage
	} else {
		snap.Error = v.jobsErr
	}

	snap.Jobs = make([]Card, 0, len(v.jobs))
	for _, job := range v.jobs {
		snap.Jobs = append(snap.Jobs, NewCard(job, now))
	}
	snap.Empty = v.loaded && snap.Error == "" && snap.SetupError == "" && len(snap.Jobs) == 0

	snap.SourceOptions = SourceOptions(v.pending.Source, v.facets)
	snap.RecencyOptions = RecencyOptions(v.pending.Recency, v.facets)
	snap.SortOptions = SortOptions(v.pending.SortBy)
	return snap
}

// PageLabel renders e.g. "Page 1 of 3 • 25 results".
func PageLabel(page, total, size int) string {
	noun := "results"
	if total == 1 {
		noun = "result"
	}
	return fmt.Sprintf("Page %d of %d • %s %s", page+1, TotalPages(total, size), humanize.Comma(int64(total)), noun)
}

func withCount(label string, count int, ok bool) string {
	if !ok {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, humanize.Comma(int64(count)))
}

func SourceOptions(selected models.Source, facets *models.Facets) []Option {
	if selected == "" {
		selected = models.SourceAll
	}
	opts := make([]Option, 0, len(models.Sources)+1)

	total, hasTotal := 0, facets != nil
	if facets != nil {
		total = facets.Total
	}
	opts = append(opts, Option{
		Value:    string(models.SourceAll),
		Label:    withCount("All sources", total, hasTotal),
		Selected: selected == models.SourceAll,
	})

	for _, src := range models.Sources {
		count, ok := 0, false
		if facets != nil {
			count, ok = facets.SourceCounts[string(src)]
			if !ok {
				count, ok = 0, true
			}
		}
		opts = append(opts, Option{
			Value:    string(src),
			Label:    withCount(SourceLabel(src), count, ok),
			Selected: selected == src,
		})
	}
	return opts
}

func RecencyOptions(selected models.Recency, facets *models.Facets) []Option {
	windows := append([]models.Recency{models.RecencyAny}, models.RecencyWindows...)
	opts := make([]Option, 0, len(windows))
	for _, window := range windows {
		count, ok := 0, false
		if facets != nil {
			count, ok = facets.RecencyCounts[window.Key()]
			if !ok && window == models.RecencyAny {
				count, ok = facets.Total, true
			}
		}
		opts = append(opts, Option{
			Value:    window.Key(),
			Label:    withCount(RecencyLabel(window), count, ok),
			Selected: selected == window,
		})
	}
	return opts
}

func SortOptions(selected models.SortOrder) []Option {
	if selected == "" {
		selected = models.SortRelevance
	}
	return []Option{
		{Value: string(models.SortRelevance), Label: "Relevance", Selected: selected == models.SortRelevance},
		{Value: string(models.SortRecency), Label: "Newest first", Selected: selected == models.SortRecency},
	}
}

func SourceLabel(src models.Source) string {
	switch src {
	case models.SourceAll, "":
		return "All sources"
	case models.SourceAdzuna:
		return "Adzuna"
	case models.SourceRemotive:
		return "Remotive"
	case models.SourceNaukri:
		return "Naukri"
	default:
		value := string(src)
		return strings.ToUpper(value[:1]) + value[1:]
	}
}

func RecencyLabel(r models.Recency) string {
	switch r {
	case models.RecencyAny:
		return "Any time"
	case 1:
		return "Last 24 hours"
	default:
		return fmt.Sprintf("Last %d days", int(r))
	}
}

// NewCard prepares job for display relative to now.
func NewCard(job models.Job, now time.Time) Card {
	card := Card{Job: job, Location: strings.TrimSpace(job.Location)}
	if card.Location == "" {
		card.Location = "—"
	}
	if ts, ok := dates.ParseISOOrNull(job.PostedAt); ok {
		card.Posted = humanize.RelTime(ts, now, "ago", "from now")
		card.IsNew = dates.IsWithinDays(job.PostedAt, 1, now)
	} else if strings.TrimSpace(job.PostedAt) != "" {
		card.Posted = strings.TrimSpace(job.PostedAt)
	}
	return card
}
