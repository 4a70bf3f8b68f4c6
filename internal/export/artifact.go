package export

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/jobradar/internal/models"
)

// isoMillis matches the millisecond ISO-8601 form dashboards already parse.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var csvHeader = []string{"Position", "Company", "Location", "Posted Date", "Application URL", "Score"}

type resultDocument struct {
	RunID       string          `json:"runId,omitempty"`
	GeneratedAt string          `json:"generatedAt"`
	TotalJobs   int             `json:"totalJobs"`
	Profile     *models.Profile `json:"profile,omitempty"`
	Jobs        []jobDocument   `json:"jobs"`
}

type jobDocument struct {
	Position       string `json:"position"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Posted         string `json:"posted"`
	Date           string `json:"date"`
	AgoTime        string `json:"agoTime"`
	Salary         string `json:"salary"`
	JobURL         string `json:"jobUrl"`
	CompanyLogo    string `json:"companyLogo"`
	RelevanceScore int    `json:"relevanceScore"`
}

// EncodeJSON renders the summary document: generatedAt, totalJobs and the
// ranked jobs. Missing fields are empty strings, never null.
func EncodeJSON(result models.RunResult) ([]byte, error) {
	doc := resultDocument{
		RunID:       result.RunID,
		GeneratedAt: formatTimestamp(result.GeneratedAt),
		TotalJobs:   result.TotalJobs,
		Profile:     result.Profile,
		Jobs:        make([]jobDocument, 0, len(result.Jobs)),
	}
	for _, job := range result.Jobs {
		doc.Jobs = append(doc.Jobs, jobDocument{
			Position:       job.Position,
			Company:        job.Company,
			Location:       job.Location,
			Posted:         job.Posted(),
			Date:           job.Date,
			AgoTime:        job.AgoTime,
			Salary:         job.Salary,
			JobURL:         job.URL,
			CompanyLogo:    job.CompanyLogo,
			RelevanceScore: job.RelevanceScore,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// EncodeCSV renders the ranked jobs as a table with a fixed header.
func EncodeCSV(result models.RunResult) []byte {
	var buf bytes.Buffer
	writeCSVLine(&buf, csvHeader)
	for _, job := range result.Jobs {
		writeCSVLine(&buf, []string{
			job.Position,
			job.Company,
			job.Location,
			job.Posted(),
			job.URL,
			strconv.Itoa(job.RelevanceScore),
		})
	}
	return buf.Bytes()
}

func writeCSVLine(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(escapeCSV(field))
	}
	buf.WriteByte('\n')
}

// escapeCSV quotes a field only when it holds a comma, a double quote or a
// newline.
func escapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.UTC().Format(isoMillis)
}
