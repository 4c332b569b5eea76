package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/jobflow/internal/export"
	"github.com/jimezsa/jobflow/internal/models"
	"github.com/jimezsa/jobflow/internal/results"
)

type JobsCmd struct {
	PrefID  string `arg:"" name:"pref-id" help:"Preference id returned by 'jobflow preferences'."`
	Page    int    `help:"Page number, starting at 1." default:"1"`
	Size    int    `help:"Results per page (default from config)."`
	Source  string `help:"Source filter: all, adzuna, remotive, naukri." enum:"all,adzuna,remotive,naukri" default:"all"`
	Days    string `help:"Posted within N days: any, 1, 3, 7, 14, 30." enum:"any,1,3,7,14,30" default:"any"`
	Company string `help:"Only companies whose name contains this text."`
	Sort    string `help:"Sort order: relevance or recency." enum:"relevance,recency" default:"relevance"`
	Links   string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	OutputOptions
}

func (j *JobsCmd) filters() (models.Filters, error) {
	source, err := models.ParseSource(j.Source)
	if err != nil {
		return models.Filters{}, err
	}
	recency, err := models.ParseRecency(j.Days)
	if err != nil {
		return models.Filters{}, err
	}
	sortBy, err := models.ParseSortOrder(j.Sort)
	if err != nil {
		return models.Filters{}, err
	}
	return models.Filters{
		Source:          source,
		Recency:         recency,
		CompanyContains: j.Company,
		SortBy:          sortBy,
	}.Normalized(), nil
}

func (j *JobsCmd) Run(ctx *Context) error {
	filters, err := j.filters()
	if err != nil {
		return err
	}
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}

	size := j.Size
	if size <= 0 {
		size = ctx.Config.PageSize
	}
	view := results.NewView(client, j.PrefID, size)
	view.Restore(results.State{PrefID: j.PrefID, Page: j.Page - 1, Applied: filters})

	cctx, cancel := ctx.Signals()
	defer cancel()

	stop := startIndicator(ctx, "Fetching jobs")
	err = view.FetchJobs(cctx)
	if err == nil && view.ClampPage() {
		ctx.UI.Warnf("Page %d is out of range; showing page %d.", j.Page, view.Page()+1)
		err = view.FetchJobs(cctx)
	}
	stop()

	if errors.Is(err, results.ErrMissingPreference) {
		return fmt.Errorf("%s: %w", results.MissingPrefMessage, err)
	}
	if err != nil {
		return fmt.Errorf("fetch jobs: %w", err)
	}
	snap := view.Snapshot(time.Now())

	outputPath := resolveOutputPath(j.OutputOptions)
	format, err := resolveFormat(ctx, j.OutputOptions, outputPath)
	if err != nil {
		return err
	}
	writer, closeOutput, err := openOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	defer closeOutput()

	jobs := make([]models.Job, 0, len(snap.Jobs))
	for _, card := range snap.Jobs {
		jobs = append(jobs, card.Job)
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(j.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	if err := export.WriteJobs(writer, jobs, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(writer),
		LinkStyle:    linkStyle,
	}); err != nil {
		return err
	}

	printJobsSummary(ctx, snap)
	return nil
}

func printJobsSummary(ctx *Context, snap results.Snapshot) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintln(ctx.Err, formatJobsSummary(snap))
}

func formatJobsSummary(snap results.Snapshot) string {
	if snap.Empty {
		return results.EmptyMessage
	}
	summary := snap.PageLabel
	if snap.FiltersActive {
		summary += " (filtered: " + describeFilters(snap.Applied) + ")"
	}
	return summary
}

func describeFilters(f models.Filters) string {
	parts := []string{}
	if f.Source != models.SourceAll {
		parts = append(parts, results.SourceLabel(f.Source))
	}
	if f.Recency != models.RecencyAny {
		parts = append(parts, strings.ToLower(results.RecencyLabel(f.Recency)))
	}
	if f.CompanyContains != "" {
		parts = append(parts, fmt.Sprintf("company contains %q", f.CompanyContains))
	}
	if f.SortBy == models.SortRecency {
		parts = append(parts, "newest first")
	}
	return strings.Join(parts, ", ")
}
