// Package prefs validates and submits the job preferences form.
package prefs

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/models"
)

// Submitter posts preferences to the backend. *api.Client satisfies it.
type Submitter interface {
	SubmitPreferences(ctx context.Context, input models.PreferenceInput) (string, error)
}

// Form mirrors the inputs of the preferences page.
type Form struct {
	JobTitle   string `form:"jobTitle" validate:"required"`
	Experience string `form:"experience" validate:"required,oneof=0-1 1-3 3-5 5+"`
	Location   string `form:"location"`
	RemoteOnly bool   `form:"remoteOnly"`
}

// ValidationError is shown inline next to the form; no request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = validator.New()

// NewForm returns the form with its initial values.
func NewForm() Form {
	return Form{Experience: models.Experience1to3}
}

// Normalized trims text inputs and defaults the experience band.
func (f Form) Normalized() Form {
	f.JobTitle = strings.TrimSpace(f.JobTitle)
	f.Location = strings.TrimSpace(f.Location)
	f.Experience = strings.TrimSpace(f.Experience)
	if f.Experience == "" {
		f.Experience = models.Experience1to3
	}
	return f
}

func (f Form) Validate() error {
	f = f.Normalized()
	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return &ValidationError{Message: err.Error()}
		}
		switch fieldErrs[0].Field() {
		case "JobTitle":
			return &ValidationError{Message: "Job title is required"}
		case "Experience":
			return &ValidationError{Message: "Experience must be one of " + strings.Join(models.ExperienceBands, ", ")}
		default:
			return &ValidationError{Message: fieldErrs[0].Error()}
		}
	}
	return nil
}

// Input builds the request payload from a normalized form.
func (f Form) Input() models.PreferenceInput {
	f = f.Normalized()
	return models.PreferenceInput{
		JobTitle:   f.JobTitle,
		Experience: f.Experience,
		Location:   f.Location,
		RemoteOnly: f.RemoteOnly,
	}
}

// Submit validates the form and returns the created preference.
func Submit(ctx context.Context, backend Submitter, form Form) (models.Preference, error) {
	if err := form.Validate(); err != nil {
		return models.Preference{}, err
	}
	input := form.Input()
	id, err := backend.SubmitPreferences(ctx, input)
	if err != nil {
		return models.Preference{}, err
	}
	if strings.TrimSpace(id) == "" {
		return models.Preference{}, &api.Error{Message: "Invalid response from server"}
	}
	return models.Preference{ID: id, PreferenceInput: input}, nil
}

// ErrorMessage maps a Submit error to the text shown above the form.
func ErrorMessage(err error) string {
	return api.Message(err, "Failed to submit preferences")
}
