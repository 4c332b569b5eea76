package models

// Job is a posting returned by the matching backend. It is never mutated
// on this side.
type Job struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Source   Source `json:"source"`
	ApplyURL string `json:"applyUrl"`
	PostedAt string `json:"postedAt,omitempty"`
}

// JobPage is one page of jobs as returned by GET /jobs.
type JobPage struct {
	Items []Job `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int   `json:"total"`
}

// JobQuery holds the parameters of a jobs fetch.
type JobQuery struct {
	PrefID  string
	Page    int
	Size    int
	Filters Filters
}

// FacetQuery holds the narrower scope used for facet counts.
type FacetQuery struct {
	PrefID          string
	CompanyContains string
	SortBy          SortOrder
}

// Facets are per-source and per-recency counts for the current scope.
type Facets struct {
	SourceCounts  map[string]int `json:"sourceCounts"`
	RecencyCounts map[string]int `json:"recencyCounts"`
	Total         int            `json:"total"`
}
