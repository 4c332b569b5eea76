package api

import (
	"context"
	"fmt"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobflow/internal/models"
)

type preferenceResponse struct {
	PrefID string `json:"prefId"`
}

// SubmitPreferences posts the criteria and returns the opaque preference id.
func (c *Client) SubmitPreferences(ctx context.Context, input models.PreferenceInput) (string, error) {
	var out preferenceResponse
	err := c.doJSON(ctx, request{
		method: fhttp.MethodPost,
		path:   []string{"preferences"},
		body:   input,
	}, &out)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out.PrefID) == "" {
		return "", &Error{Message: "Invalid response from server"}
	}
	return out.PrefID, nil
}

type jobsParams struct {
	PrefID           string `url:"prefId"`
	Page             int    `url:"page"`
	Size             int    `url:"size"`
	Source           string `url:"source"`
	PostedWithinDays int    `url:"postedWithinDays,omitempty"`
	CompanyContains  string `url:"companyContains,omitempty"`
	SortBy           string `url:"sortBy"`
}

// FetchJobs returns one page of jobs for the applied filters.
func (c *Client) FetchJobs(ctx context.Context, q models.JobQuery) (models.JobPage, error) {
	filters := q.Filters.Normalized()
	params := jobsParams{
		PrefID:           q.PrefID,
		Page:             q.Page,
		Size:             q.Size,
		Source:           string(filters.Source),
		PostedWithinDays: int(filters.Recency),
		CompanyContains:  filters.CompanyContains,
		SortBy:           string(filters.SortBy),
	}

	var page models.JobPage
	if err := c.doJSON(ctx, request{
		method: fhttp.MethodGet,
		path:   []string{"jobs"},
		params: params,
	}, &page); err != nil {
		return models.JobPage{}, err
	}
	if page.Items == nil {
		page.Items = []models.Job{}
	}
	return page, nil
}

type facetsParams struct {
	PrefID          string `url:"prefId"`
	CompanyContains string `url:"companyContains,omitempty"`
	SortBy          string `url:"sortBy"`
}

// FetchFacets returns counts scoped by company substring and sort only.
func (c *Client) FetchFacets(ctx context.Context, q models.FacetQuery) (models.Facets, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = models.SortRelevance
	}
	params := facetsParams{
		PrefID:          q.PrefID,
		CompanyContains: strings.TrimSpace(q.CompanyContains),
		SortBy:          string(sortBy),
	}

	var facets models.Facets
	if err := c.doJSON(ctx, request{
		method: fhttp.MethodGet,
		path:   []string{"jobs", "facets"},
		params: params,
	}, &facets); err != nil {
		return models.Facets{}, err
	}
	return facets, nil
}

type alertParams struct {
	PrefID    string `url:"prefId"`
	Contact   string `url:"contact"`
	Channel   string `url:"channel"`
	Frequency string `url:"frequency"`
}

// SaveAlert creates an alert subscription for a preference.
func (c *Client) SaveAlert(ctx context.Context, input models.AlertInput) (models.Alert, error) {
	var alert models.Alert
	err := c.doJSON(ctx, request{
		method: fhttp.MethodPost,
		path:   []string{"alerts"},
		params: alertParams{
			PrefID:    input.PrefID,
			Contact:   input.Contact,
			Channel:   string(input.Channel),
			Frequency: string(input.Frequency),
		},
	}, &alert)
	return alert, err
}

// ListAlerts returns every stored subscription.
func (c *Client) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := c.doJSON(ctx, request{
		method: fhttp.MethodGet,
		path:   []string{"alerts"},
	}, &alerts); err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return alerts, nil
}

// UpdateAlert replaces contact, channel and frequency of an alert.
func (c *Client) UpdateAlert(ctx context.Context, id string, update models.AlertUpdate) (models.Alert, error) {
	if strings.TrimSpace(id) == "" {
		return models.Alert{}, &Error{Message: "alert id is required"}
	}
	var alert models.Alert
	err := c.doJSON(ctx, request{
		method: fhttp.MethodPut,
		path:   []string{"alerts", id},
		body:   update,
	}, &alert)
	return alert, err
}

func (c *Client) DeleteAlert(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &Error{Message: "alert id is required"}
	}
	return c.doJSON(ctx, request{
		method: fhttp.MethodDelete,
		path:   []string{"alerts", id},
	}, nil)
}

type testAlertParams struct {
	PrefID  string `url:"prefId"`
	Channel string `url:"channel"`
}

// SendTestAlert asks the backend to deliver a sample alert and returns its
// plain-text confirmation.
func (c *Client) SendTestAlert(ctx context.Context, prefID string, channel models.Channel) (string, error) {
	if strings.TrimSpace(prefID) == "" {
		return "", &Error{Message: "prefId is required"}
	}
	if channel == "" {
		channel = models.ChannelEmail
	}
	msg, err := c.doText(ctx, request{
		method: fhttp.MethodGet,
		path:   []string{"alerts", "test"},
		params: testAlertParams{PrefID: prefID, Channel: string(channel)},
	})
	if err != nil {
		return "", fmt.Errorf("send test alert: %w", err)
	}
	return msg, nil
}
