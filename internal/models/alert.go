package models

import (
	"fmt"
	"strings"
)

// Channel is how an alert is delivered.
type Channel string

const (
	ChannelEmail    Channel = "EMAIL"
	ChannelWhatsApp Channel = "WHATSAPP"
)

var Channels = []Channel{ChannelEmail, ChannelWhatsApp}

func ParseChannel(value string) (Channel, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", string(ChannelEmail):
		return ChannelEmail, nil
	case string(ChannelWhatsApp):
		return ChannelWhatsApp, nil
	default:
		return ChannelEmail, fmt.Errorf("unknown channel: %s", value)
	}
}

func (c Channel) Label() string {
	switch c {
	case ChannelWhatsApp:
		return "WhatsApp"
	default:
		return "Email"
	}
}

// Frequency is the alert cadence.
type Frequency string

const (
	FrequencyDaily      Frequency = "DAILY"
	FrequencyEvery3Days Frequency = "EVERY_3_DAYS"
	FrequencyWeekly     Frequency = "WEEKLY"
)

var Frequencies = []Frequency{FrequencyDaily, FrequencyEvery3Days, FrequencyWeekly}

func ParseFrequency(value string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", string(FrequencyDaily):
		return FrequencyDaily, nil
	case string(FrequencyEvery3Days):
		return FrequencyEvery3Days, nil
	case string(FrequencyWeekly):
		return FrequencyWeekly, nil
	default:
		return FrequencyDaily, fmt.Errorf("unknown frequency: %s", value)
	}
}

func (f Frequency) Label() string {
	switch f {
	case FrequencyEvery3Days:
		return "Every 3 Days"
	case FrequencyWeekly:
		return "Weekly"
	default:
		return "Daily"
	}
}

// Alert is a persisted alert subscription.
type Alert struct {
	ID        string    `json:"id"`
	Contact   string    `json:"contact"`
	Channel   Channel   `json:"channel"`
	Frequency Frequency `json:"frequency"`
	PrefID    string    `json:"prefId,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

// AlertInput creates a subscription for a preference.
type AlertInput struct {
	PrefID    string
	Contact   string
	Channel   Channel
	Frequency Frequency
}

// AlertUpdate is the full-record update body for PUT /alerts/{id}.
type AlertUpdate struct {
	Contact   string    `json:"contact"`
	Channel   Channel   `json:"channel"`
	Frequency Frequency `json:"frequency"`
}
