package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/models"
	"github.com/jimezsa/jobflow/internal/results"
)

type FacetsCmd struct {
	PrefID  string `arg:"" name:"pref-id" help:"Preference id."`
	Company string `help:"Only companies whose name contains this text."`
	Sort    string `help:"Sort order: relevance or recency." enum:"relevance,recency" default:"relevance"`
}

func (f *FacetsCmd) Run(ctx *Context) error {
	sortBy, err := models.ParseSortOrder(f.Sort)
	if err != nil {
		return err
	}
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	cctx, cancel := ctx.Signals()
	defer cancel()

	facets, err := client.FetchFacets(cctx, models.FacetQuery{
		PrefID:          f.PrefID,
		CompanyContains: f.Company,
		SortBy:          sortBy,
	})
	if err != nil {
		return fmt.Errorf("%s", api.Message(err, "Failed to fetch facets"))
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, facets)
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\t")
	for _, opt := range results.SourceOptions(models.SourceAll, &facets) {
		fmt.Fprintf(tw, "  %s\t\n", opt.Label)
	}
	fmt.Fprintln(tw, "POSTED\t")
	for _, opt := range results.RecencyOptions(models.RecencyAny, &facets) {
		fmt.Fprintf(tw, "  %s\t\n", opt.Label)
	}
	return tw.Flush()
}
