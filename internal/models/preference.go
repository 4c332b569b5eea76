package models

// Experience bands offered by the preferences form.
const (
	Experience0to1  = "0-1"
	Experience1to3  = "1-3"
	Experience3to5  = "3-5"
	Experience5Plus = "5+"
)

var ExperienceBands = []string{Experience0to1, Experience1to3, Experience3to5, Experience5Plus}

// PreferenceInput is the criteria bundle posted to /preferences.
type PreferenceInput struct {
	JobTitle   string `json:"jobTitle"`
	Experience string `json:"experience"`
	Location   string `json:"location"`
	RemoteOnly bool   `json:"remoteOnly"`
}

// Preference is a submitted criteria bundle and its opaque identifier.
type Preference struct {
	ID string
	PreferenceInput
}
