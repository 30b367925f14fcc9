package campaign

import "strings"

// Customer is one valid row of uploaded campaign data.
type Customer struct {
	Name        string
	Email       string
	Description string
}

// ParseCustomers extracts customers from extracted tabular data. Two row
// shapes are accepted: a pipe-delimited table (header and separator rows
// skipped) or, when the extraction contains no table at all, the raw
// comma-delimited upload (header skipped). Rows with fewer than three fields
// or without an "@" in the address are dropped silently; bad rows are a data
// problem, not a campaign failure.
func ParseCustomers(extracted, fileContent string) []Customer {
	lines := splitLines(extracted)
	if len(lines) == 0 {
		return nil
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "|") {
			return parsePipeRows(lines)
		}
	}
	return parseCommaRows(splitLines(fileContent))
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parsePipeRows(lines []string) []Customer {
	var rows []string
	for _, line := range lines {
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cleaned := strings.TrimSpace(strings.Trim(line, "|"))
		// Separator rows reduce to dashes.
		if cleaned == "" || strings.HasPrefix(cleaned, "-") {
			continue
		}
		rows = append(rows, cleaned)
	}
	if len(rows) < 2 {
		return nil
	}

	var out []Customer
	for _, row := range rows[1:] { // rows[0] is the header
		cells := strings.Split(row, "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if c, ok := customerFromFields(cells); ok {
			out = append(out, c)
		}
	}
	return out
}

func parseCommaRows(lines []string) []Customer {
	if len(lines) < 2 {
		return nil
	}
	var out []Customer
	for _, line := range lines[1:] {
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if c, ok := customerFromFields(parts); ok {
			out = append(out, c)
		}
	}
	return out
}

func customerFromFields(fields []string) (Customer, bool) {
	if len(fields) < 3 {
		return Customer{}, false
	}
	if !strings.Contains(fields[1], "@") {
		return Customer{}, false
	}
	return Customer{Name: fields[0], Email: fields[1], Description: fields[2]}, true
}
