package export

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobradar/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
	// Top limits how many ranked jobs are shown; zero shows all.
	Top int
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

const linkColor = "#87CEEB"

// ParseFormat maps a --format value to a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "table", "":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

// WriteResult prints a run to a terminal or pipe. CSV and JSON always carry
// the whole result; table and markdown honor opts.Top.
func WriteResult(w io.Writer, result models.RunResult, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		data, err := EncodeJSON(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatCSV:
		_, err := w.Write(EncodeCSV(result))
		return err
	case FormatMarkdown:
		return writeMarkdown(w, result, opts)
	default:
		return writeTable(w, result, opts)
	}
}

func topJobs(jobs []models.ScoredPosting, top int) []models.ScoredPosting {
	if top <= 0 || len(jobs) <= top {
		return jobs
	}
	return jobs[:top]
}

func writeTable(w io.Writer, result models.RunResult, opts WriteOptions) error {
	jobs := topJobs(result.Jobs, opts.Top)
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No jobs found matching your criteria.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tscore\tposition\tcompany\tlocation\tposted\turl")
	output := termenv.NewOutput(w)
	for i, job := range jobs {
		fmt.Fprintln(tw, strings.Join([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(job.RelevanceScore),
			safe(job.Position),
			safe(job.Company),
			safe(job.Location),
			safe(job.Posted()),
			displayURL(job.URL, output, opts),
		}, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if more := len(result.Jobs) - len(jobs); more > 0 {
		_, err := fmt.Fprintf(w, "... and %d more jobs\n", more)
		return err
	}
	return nil
}

func writeMarkdown(w io.Writer, result models.RunResult, opts WriteOptions) error {
	jobs := topJobs(result.Jobs, opts.Top)
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for i, job := range jobs {
		urlLine := "  URL: -"
		if link := safe(job.URL); link != "" {
			urlLine = fmt.Sprintf("  URL: [Apply](<%s>)", link)
		}
		lines := []string{
			fmt.Sprintf("%d. **%s** (%s)", i+1, safe(job.Position), safe(job.Company)),
			fmt.Sprintf("  Location: %s", safe(job.Location)),
			fmt.Sprintf("  Score: %d", job.RelevanceScore),
		}
		if posted := safe(job.Posted()); posted != "" {
			lines = append(lines, fmt.Sprintf("  Posted: %s", posted))
		}
		if job.Salary != "" {
			lines = append(lines, fmt.Sprintf("  Salary: %s", safe(job.Salary)))
		}
		lines = append(lines, urlLine)
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if more := len(result.Jobs) - len(jobs); more > 0 {
		_, err := fmt.Fprintf(w, "\n_... and %d more jobs_\n", more)
		return err
	}
	return nil
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func displayURL(raw string, output *termenv.Output, opts WriteOptions) string {
	link := safe(raw)
	if link == "" {
		return "-"
	}
	label := link
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		label = shortURLLabel(link)
	}
	if opts.ColorEnabled {
		label = output.String(label).Foreground(output.Color(linkColor)).String()
	}
	if opts.Hyperlinks {
		label = hyperlink(link, label)
	}
	return label
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
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
