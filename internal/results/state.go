package results

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jimezsa/jobflow/internal/models"
)

// Query keys used to keep the results URL in sync with the view.
const (
	KeyPrefID  = "prefId"
	KeyPage    = "page"
	KeySource  = "source"
	KeyDays    = "days"
	KeyCompany = "company"
	KeySort    = "sort"
)

// ParseFilters reads filter criteria from form or query values. Unknown
// values fall back to the defaults.
func ParseFilters(values url.Values) models.Filters {
	filters := models.DefaultFilters()
	if src, err := models.ParseSource(values.Get(KeySource)); err == nil {
		filters.Source = src
	}
	if days, err := models.ParseRecency(values.Get(KeyDays)); err == nil {
		filters.Recency = days
	}
	if sortBy, err := models.ParseSortOrder(values.Get(KeySort)); err == nil {
		filters.SortBy = sortBy
	}
	filters.CompanyContains = strings.TrimSpace(values.Get(KeyCompany))
	return filters
}

// ParseState reads the view state from the results URL.
func ParseState(values url.Values) State {
	page, err := strconv.Atoi(strings.TrimSpace(values.Get(KeyPage)))
	if err != nil || page < 0 {
		page = 0
	}
	return State{
		PrefID:  strings.TrimSpace(values.Get(KeyPrefID)),
		Page:    page,
		Applied: ParseFilters(values),
	}
}

// Values encodes s. Default filters are left out to keep URLs short.
func (s State) Values() url.Values {
	values := url.Values{}
	values.Set(KeyPrefID, s.PrefID)
	values.Set(KeyPage, strconv.Itoa(s.Page))

	filters := s.Applied.Normalized()
	if filters.Source != models.SourceAll {
		values.Set(KeySource, string(filters.Source))
	}
	if filters.Recency != models.RecencyAny {
		values.Set(KeyDays, filters.Recency.Key())
	}
	if filters.CompanyContains != "" {
		values.Set(KeyCompany, filters.CompanyContains)
	}
	if filters.SortBy != models.SortRelevance {
		values.Set(KeySort, string(filters.SortBy))
	}
	return values
}

// WithPage returns a copy of s on another page.
func (s State) WithPage(page int) State {
	s.Page = page
	return s
}
