package results

import (
	"strings"
	"unicode"

	"github.com/jimezsa/jobflow/internal/models"
)

const minPhoneDigits = 7

// AlertForm holds the alert subscription inputs of the results view.
type AlertForm struct {
	Contact   string
	Channel   models.Channel
	Frequency models.Frequency
}

// NewAlertForm returns the initial alert form.
func NewAlertForm() AlertForm {
	return AlertForm{Channel: models.ChannelEmail, Frequency: models.FrequencyDaily}
}

// ValidationError blocks a submission before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the contact against the selected channel.
func (f AlertForm) Validate() error {
	contact := strings.TrimSpace(f.Contact)
	if contact == "" {
		return &ValidationError{Message: "Please enter an email address or phone number."}
	}
	switch f.Channel {
	case models.ChannelWhatsApp:
		if !phoneLike(contact) {
			return &ValidationError{Message: "Please enter a valid WhatsApp number, e.g. +91 98765 43210."}
		}
	default:
		if !strings.Contains(contact, "@") {
			return &ValidationError{Message: "Please enter a valid email address."}
		}
	}
	return nil
}

func (f AlertForm) input(prefID string) models.AlertInput {
	channel := f.Channel
	if channel == "" {
		channel = models.ChannelEmail
	}
	frequency := f.Frequency
	if frequency == "" {
		frequency = models.FrequencyDaily
	}
	return models.AlertInput{
		PrefID:    prefID,
		Contact:   strings.TrimSpace(f.Contact),
		Channel:   channel,
		Frequency: frequency,
	}
}

func phoneLike(value string) bool {
	digits := 0
	for i, r := range value {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}

// AlertState is what the alert panel renders.
type AlertState struct {
	Form         AlertForm
	Saving       bool
	Error        string
	Confirmation string
	TestMessage  string
}
