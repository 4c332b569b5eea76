package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jimezsa/jobflow/internal/dates"
	"github.com/jimezsa/jobflow/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
	// Now anchors relative posted times. Zero means time.Now.
	Now time.Time
}

func (o WriteOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func WriteJobs(w io.Writer, jobs []models.Job, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatCSV:
		return writeCSV(w, jobCSVHeader(), jobRows(jobs, jobCSVRow), ',')
	case FormatTSV:
		return writeCSV(w, jobCSVHeader(), jobRows(jobs, jobCSVRow), '\t')
	case FormatMarkdown:
		return writeJobsMarkdown(w, jobs, opts)
	default:
		return writeJobsTable(w, jobs, opts)
	}
}

// WriteAlerts renders saved alert subscriptions.
func WriteAlerts(w io.Writer, alerts []models.Alert, format Format) error {
	rows := make([][]string, 0, len(alerts))
	for _, alert := range alerts {
		rows = append(rows, alertRow(alert))
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, alerts)
	case FormatCSV:
		return writeCSV(w, alertHeader(), rows, ',')
	case FormatTSV, FormatMarkdown:
		return writeCSV(w, alertHeader(), rows, '\t')
	default:
		if len(alerts) == 0 {
			_, err := fmt.Fprintln(w, "No alerts yet.")
			return err
		}
		return writeTable(w, alertHeader(), rows)
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeCSV(w io.Writer, header []string, rows [][]string, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeJobsTable(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	output := termenv.NewOutput(w)
	now := opts.now()
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, jobTableRow(job, output, opts, now))
	}
	return writeTable(w, jobTableHeader(), rows)
}

func writeJobsMarkdown(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	now := opts.now()
	for _, job := range jobs {
		urlLine := "  Apply: -"
		if link := safe(job.ApplyURL); link != "" {
			urlLine = fmt.Sprintf("  Apply: [Open listing](<%s>)", link)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(job.Title), safe(job.Company)),
			fmt.Sprintf("  Location: %s", orDash(job.Location)),
			fmt.Sprintf("  Source: %s", safe(string(job.Source))),
			urlLine,
		}
		if posted := postedLabel(job.PostedAt, now); posted != "" {
			lines = append(lines, fmt.Sprintf("  Posted: %s", posted))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func jobRows(jobs []models.Job, row func(models.Job) []string) [][]string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, row(job))
	}
	return rows
}

func jobCSVHeader() []string {
	return []string{
		"id",
		"source",
		"title",
		"company",
		"location",
		"apply_url",
		"posted_at",
	}
}

func jobCSVRow(job models.Job) []string {
	return []string{
		job.ID,
		string(job.Source),
		job.Title,
		job.Company,
		job.Location,
		job.ApplyURL,
		job.PostedAt,
	}
}

func alertHeader() []string {
	return []string{"id", "contact", "channel", "frequency", "pref_id", "created"}
}

func alertRow(alert models.Alert) []string {
	created := ""
	if !alert.CreatedAt.IsZero() {
		created = alert.CreatedAt.Format(time.RFC3339)
	}
	return []string{
		alert.ID,
		alert.Contact,
		alert.Channel.Label(),
		alert.Frequency.Label(),
		alert.PrefID,
		created,
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func orDash(value string) string {
	if value = safe(value); value == "" {
		return "-"
	}
	return value
}

// postedLabel renders posted relative to now, or the raw value when it
// cannot be parsed.
func postedLabel(posted string, now time.Time) string {
	if ts, ok := dates.ParseISOOrNull(posted); ok {
		label := humanize.RelTime(ts, now, "ago", "from now")
		if dates.IsWithinDays(posted, 1, now) {
			label += " (new)"
		}
		return label
	}
	return safe(posted)
}

func jobTableHeader() []string {
	return []string{
		"source",
		"title",
		"company",
		"location",
		"posted",
		"url",
	}
}

func jobTableRow(job models.Job, output *termenv.Output, opts WriteOptions, now time.Time) []string {
	link := safe(job.ApplyURL)
	displayURL := "-"
	if link != "" {
		displayURL = link
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(link)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color("#87CEEB")).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(link, displayURL)
		}
	}
	return []string{
		safe(string(job.Source)),
		safe(job.Title),
		safe(job.Company),
		orDash(job.Location),
		orDash(postedLabel(job.PostedAt, now)),
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
