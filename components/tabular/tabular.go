package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"

	"github.com/tributary-dev/tributary/capability"
)

// Agent reformats CSV content delivered on its input into a pipe-delimited
// table. The campaign workflow uses FormatTable directly for the same job.
type Agent struct{}

func New(capability.Config) (capability.Capability, error) {
	return &Agent{}, nil
}

func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	table := FormatTable(query)
	if table == "" {
		return "", errors.New("no tabular data was found in the input")
	}
	return table, nil
}

// FormatTable renders CSV content as a pipe-delimited table with a header
// separator row. Returns "" when the content has no parseable rows; callers
// treat that as "fall back to something smarter".
func FormatTable(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil || len(rows) == 0 {
		return ""
	}

	headers := rows[0]
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	writeRow(headers)

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)

	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[i] = strings.TrimSpace(row[i])
			}
		}
		writeRow(cells)
	}
	return b.String()
}

func init() {
	capability.Register("CSV-Agent", capability.EnrichNone, New)
}
