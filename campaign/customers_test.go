package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCustomersFromPipeTable(t *testing.T) {
	extracted := `| Name | Email | Description |
| --- | --- | --- |
| Alice | alice@example.com | Platform engineering lead |
| Bob | not-an-email | Data science consultant |
| Carol | carol@example.com | CTO |`

	got := ParseCustomers(extracted, "ignored when a table is present")
	assert.Equal(t, []Customer{
		{Name: "Alice", Email: "alice@example.com", Description: "Platform engineering lead"},
		{Name: "Carol", Email: "carol@example.com", Description: "CTO"},
	}, got)
}

func TestParseCustomersFallsBackToRawCSV(t *testing.T) {
	raw := "Name,Email,Description\nAlice,alice@example.com,Engineer\nshort,row"
	got := ParseCustomers("no table in this extraction", raw)
	assert.Equal(t, []Customer{{Name: "Alice", Email: "alice@example.com", Description: "Engineer"}}, got)
}

func TestParseCustomersEmptyInputs(t *testing.T) {
	assert.Nil(t, ParseCustomers("", ""))
	assert.Nil(t, ParseCustomers("| Name | Email | Description |", ""), "header-only table has no customers")
	assert.Nil(t, ParseCustomers("prose only", "Name,Email,Description"), "header-only CSV has no customers")
}
