package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Source identifies the platform a job was aggregated from.
type Source string

const (
	SourceAll      Source = "all"
	SourceAdzuna   Source = "adzuna"
	SourceRemotive Source = "remotive"
	SourceNaukri   Source = "naukri"
)

// Sources lists the concrete sources in display order.
var Sources = []Source{SourceAdzuna, SourceRemotive, SourceNaukri}

func ParseSource(value string) (Source, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == string(SourceAll) {
		return SourceAll, nil
	}
	for _, src := range Sources {
		if string(src) == value {
			return src, nil
		}
	}
	return SourceAll, fmt.Errorf("unknown source: %s", value)
}

// Recency is a posted-within window in days. RecencyAny is unbounded.
type Recency int

const RecencyAny Recency = 0

// RecencyWindows lists the bounded windows offered to the user.
var RecencyWindows = []Recency{1, 3, 7, 14, 30}

// Key returns the facet key for the window ("any" for unbounded).
func (r Recency) Key() string {
	if r == RecencyAny {
		return "any"
	}
	return strconv.Itoa(int(r))
}

func ParseRecency(value string) (Recency, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "any" || value == "0" {
		return RecencyAny, nil
	}
	days, err := strconv.Atoi(value)
	if err != nil {
		return RecencyAny, fmt.Errorf("invalid recency: %s", value)
	}
	for _, window := range RecencyWindows {
		if int(window) == days {
			return window, nil
		}
	}
	return RecencyAny, fmt.Errorf("unsupported recency window: %d", days)
}

// SortOrder is the order the backend returns jobs in.
type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortRecency   SortOrder = "recency"
)

func ParseSortOrder(value string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(SortRelevance):
		return SortRelevance, nil
	case string(SortRecency):
		return SortRecency, nil
	default:
		return SortRelevance, fmt.Errorf("unknown sort order: %s", value)
	}
}

// Filters is an immutable set of filter criteria. The results view keeps a
// pending and an applied copy.
type Filters struct {
	Source          Source
	Recency         Recency
	CompanyContains string
	SortBy          SortOrder
}

// DefaultFilters returns the criteria used after a clear.
func DefaultFilters() Filters {
	return Filters{
		Source:  SourceAll,
		Recency: RecencyAny,
		SortBy:  SortRelevance,
	}
}

// Normalized fills zero values with defaults and trims the company text.
func (f Filters) Normalized() Filters {
	if f.Source == "" {
		f.Source = SourceAll
	}
	if f.SortBy == "" {
		f.SortBy = SortRelevance
	}
	if f.Recency < 0 {
		f.Recency = RecencyAny
	}
	f.CompanyContains = strings.TrimSpace(f.CompanyContains)
	return f
}

// FacetScope returns the part of the filters facet counts depend on.
func (f Filters) FacetScope() (string, SortOrder) {
	return f.CompanyContains, f.SortBy
}

// IsDefault reports whether f equals the cleared state.
func (f Filters) IsDefault() bool {
	return f.Normalized() == DefaultFilters()
}
